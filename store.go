package main

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const maxCodeAttempts = 64

// Store is the in-memory registry of rooms, keyed by room code. It owns
// creation, lookup, removal, and the periodic expiry sweep.
type Store struct {
	lock  sync.RWMutex
	rooms map[string]*Room
	clock clockwork.Clock
}

func NewStore(clock clockwork.Clock) *Store {
	return &Store{rooms: make(map[string]*Room), clock: clock}
}

// Create registers a room under a fresh collision-checked code. The retry
// budget only runs out when the code space is effectively full.
func (s *Store) Create() (*Room, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i := 0; i < maxCodeAttempts; i++ {
		code := GenerateRoomCode()
		if _, exists := s.rooms[code]; exists {
			continue
		}
		room := NewRoom(code, s.clock.Now())
		s.rooms[code] = room
		return room, nil
	}
	return nil, ErrCodesExhausted
}

func (s *Store) Get(code string) (*Room, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	room, exists := s.rooms[code]
	return room, exists
}

// Remove deletes the room and detaches its subscribers. Connections still
// bound to it simply receive no further updates.
func (s *Store) Remove(code string) {
	s.lock.Lock()
	room, exists := s.rooms[code]
	delete(s.rooms, code)
	s.lock.Unlock()
	if exists {
		room.Close()
	}
}

// RemoveRoom removes this exact room, guarding against a code that has
// been reused since the caller looked it up.
func (s *Store) RemoveRoom(room *Room) {
	s.lock.Lock()
	if current, exists := s.rooms[room.Code()]; exists && current == room {
		delete(s.rooms, room.Code())
	}
	s.lock.Unlock()
	room.Close()
}

func (s *Store) Count() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.rooms)
}

// SweepExpired removes every room strictly older than maxAge and returns
// how many were dropped. A room exactly at the threshold survives.
func (s *Store) SweepExpired(now time.Time, maxAge time.Duration) int {
	s.lock.Lock()
	expired := make([]*Room, 0)
	for code, room := range s.rooms {
		if now.Sub(room.CreatedAt()) > maxAge {
			expired = append(expired, room)
			delete(s.rooms, code)
		}
	}
	s.lock.Unlock()
	for _, room := range expired {
		room.Close()
	}
	return len(expired)
}

// RunSweeper sweeps on a fixed interval until the context is cancelled,
// independent of any client activity.
func (s *Store) RunSweeper(ctx context.Context, interval, maxAge time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if swept := s.SweepExpired(s.clock.Now(), maxAge); swept > 0 {
				LogSweptRooms(swept)
			}
		}
	}
}
