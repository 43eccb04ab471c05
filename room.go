package main

import (
	"encoding/json"
	"slices"
	"sync"
	"time"
)

type Member struct {
	ID      string
	Name    string
	card    string
	hasCard bool
}

// Room is one estimation session. Mutations are serialized by lock;
// subscriber bookkeeping has its own lock so the broadcast fan-out never
// blocks the next mutation.
type Room struct {
	code      string
	createdAt time.Time

	lock         sync.Mutex
	members      []*Member
	revealed     bool
	counting     bool
	countdown    int
	countdownGen int

	subLock   sync.RWMutex
	receivers []chan []byte
}

func NewRoom(code string, now time.Time) *Room {
	return &Room{
		code:      code,
		createdAt: now,
		members:   make([]*Member, 0),
		receivers: make([]chan []byte, 0),
	}
}

func (r *Room) Code() string {
	return r.code
}

func (r *Room) CreatedAt() time.Time {
	return r.createdAt
}

// Join inserts the member with no selection. A stale member carrying the
// same name under a different id is evicted first, so rejoining with the
// same display name reclaims the seat instead of duplicating it.
func (r *Room) Join(memberID, name string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.members = slices.DeleteFunc(r.members, func(m *Member) bool {
		return m.Name == name && m.ID != memberID
	})
	for _, m := range r.members {
		if m.ID == memberID {
			m.Name = name
			m.card = ""
			m.hasCard = false
			return
		}
	}
	r.members = append(r.members, &Member{ID: memberID, Name: name})
}

func (r *Room) SelectCard(memberID, card string) error {
	if !ValidCard(card) {
		return ErrInvalidCard
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, m := range r.members {
		if m.ID == memberID {
			m.card = card
			m.hasCard = true
			return nil
		}
	}
	return ErrNotAMember
}

// Reveal makes every selection visible. Idempotent; cancels any countdown
// still in progress.
func (r *Room) Reveal() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.revealed = true
	r.counting = false
	r.countdownGen++
}

// NewRound hides selections again and clears every member's card, along
// with any countdown still ticking.
func (r *Room) NewRound() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.revealed = false
	r.counting = false
	r.countdownGen++
	for _, m := range r.members {
		m.card = ""
		m.hasCard = false
	}
}

// Leave removes the member and reports whether the room is now empty.
// Deciding what to do with an empty room is the caller's job.
func (r *Room) Leave(memberID string) (empty bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.members = slices.DeleteFunc(r.members, func(m *Member) bool {
		return m.ID == memberID
	})
	return len(r.members) == 0
}

func (r *Room) MemberCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.members)
}

// View builds the sanitized snapshot. This is the only path by which
// selections leave the room: while unrevealed, other members' cards are
// replaced by markers and no average is computed.
func (r *Room) View() RoomView {
	r.lock.Lock()
	defer r.lock.Unlock()
	view := RoomView{
		ID:       r.code,
		Members:  make([]MemberView, 0, len(r.members)),
		Revealed: r.revealed,
	}
	for _, m := range r.members {
		mv := MemberView{ID: m.ID, Name: m.Name}
		switch {
		case !m.hasCard:
			mv.Selection = SelectionNone
		case r.revealed:
			mv.Selection = m.card
		default:
			mv.Selection = SelectionHidden
		}
		view.Members = append(view.Members, mv)
	}
	if r.counting {
		ticks := r.countdown
		view.Countdown = &ticks
	}
	if r.revealed {
		cards := make([]string, 0, len(r.members))
		for _, m := range r.members {
			if m.hasCard {
				cards = append(cards, m.card)
			}
		}
		if avg, ok := Average(cards); ok {
			view.Average = avg
		}
	}
	return view
}

func (r *Room) Subscribe(newChan chan []byte) {
	r.subLock.Lock()
	defer r.subLock.Unlock()
	r.receivers = append(r.receivers, newChan)
}

func (r *Room) Unsubscribe(channel chan []byte) {
	r.subLock.Lock()
	defer r.subLock.Unlock()
	for i, receiver := range r.receivers {
		if receiver == channel {
			r.receivers = slices.Delete(r.receivers, i, i+1)
			break
		}
	}
}

func (r *Room) broadcast(message []byte) {
	r.subLock.RLock()
	defer r.subLock.RUnlock()
	for _, receiver := range r.receivers {
		select {
		case receiver <- message:
		default:
			// receiver buffer full, drop rather than block the room
		}
	}
}

// BroadcastState pushes the current sanitized view to every subscriber.
// Called after every mutating operation.
func (r *Room) BroadcastState() {
	encoded, err := json.Marshal(StateUpdateMessage{Type: "stateUpdate", RoomView: r.View()})
	if err != nil {
		return
	}
	r.broadcast(encoded)
}

// Close detaches all subscribers and invalidates any in-flight countdown
// tick. Used when the room is removed from the store.
func (r *Room) Close() {
	r.lock.Lock()
	r.counting = false
	r.countdownGen++
	r.lock.Unlock()
	r.subLock.Lock()
	r.receivers = r.receivers[:0]
	r.subLock.Unlock()
}
