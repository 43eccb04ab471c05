package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

const outboundBuffer = 16

// Session binds one connection to at most one (room, member) pair for its
// lifetime. Every event after the initial join is routed with the stored
// binding; disconnect runs cleanup exactly once.
type Session struct {
	store          *Store
	clock          clockwork.Clock
	rejoin         *RejoinJWT
	socket         *ClientSocket
	limiter        *rate.Limiter
	remoteAddr     string
	countdownTicks int

	room     *Room
	memberID string
	outbound chan []byte
	logger   RoomConnLogger
}

func NewSession(store *Store, clock clockwork.Clock, rejoin *RejoinJWT, socket *ClientSocket, remoteAddr string, countdownTicks int) *Session {
	return &Session{
		store:          store,
		clock:          clock,
		rejoin:         rejoin,
		socket:         socket,
		limiter:        rate.NewLimiter(5, 10),
		remoteAddr:     remoteAddr,
		countdownTicks: countdownTicks,
	}
}

// Run reads inbound events until the connection drops, then cleans up the
// binding. Unknown frame types are reported and skipped, never fatal.
func (s *Session) Run(ctx context.Context) {
	for {
		msg, err := s.socket.ReadMessage()
		if err != nil {
			if errors.Is(err, ErrUndefinedType) {
				s.notifyError(KindBadRequest)
				continue
			}
			break
		}
		switch m := msg.(type) {
		case JoinMessage:
			s.handleJoin(ctx, m)
		case SelectCardMessage:
			s.handleSelectCard(m)
		case RevealMessage:
			s.handleReveal()
		case StartCountdownMessage:
			s.handleStartCountdown(ctx)
		case NewRoundMessage:
			s.handleNewRound()
		}
	}
	s.cleanup()
}

func (s *Session) handleJoin(ctx context.Context, m JoinMessage) {
	if s.room != nil {
		s.notifyError(KindBadRequest)
		return
	}
	roomCode := m.RoomCode
	memberID := uuid.NewString()
	if m.RejoinKey != "" {
		if code, member, ok := s.rejoin.ParseRejoinKey(m.RejoinKey); ok {
			roomCode = code
			memberID = member
		}
	}
	room, exists := s.store.Get(roomCode)
	if !exists {
		s.notifyError(KindRoomNotFound)
		return
	}
	rejoinKey, err := s.rejoin.GenerateRejoinKey(roomCode, memberID)
	if err != nil {
		rejoinKey = ""
	}
	s.room = room
	s.memberID = memberID
	s.outbound = make(chan []byte, outboundBuffer)
	// the ack goes through the pump too, so it precedes the first
	// broadcast and the pump stays the socket's only writer
	ack, _ := json.Marshal(JoinedMessage{Type: "joined", RoomCode: roomCode, MemberID: memberID, RejoinKey: rejoinKey})
	s.outbound <- ack
	room.Join(memberID, m.Name)
	room.Subscribe(s.outbound)
	go s.writePump(ctx)
	s.logger = GetRoomConnLogger(s.remoteAddr, roomCode)
	s.logger.JoinedRoom()
	room.BroadcastState()
}

func (s *Session) handleSelectCard(m SelectCardMessage) {
	if !s.allow() {
		return
	}
	if err := s.room.SelectCard(s.memberID, m.Card); err != nil {
		s.notifyError(errorKind(err))
		return
	}
	s.room.BroadcastState()
}

func (s *Session) handleReveal() {
	if !s.allow() {
		return
	}
	s.room.Reveal()
	s.room.BroadcastState()
}

func (s *Session) handleStartCountdown(ctx context.Context) {
	if !s.allow() {
		return
	}
	// no-op on an already revealed room; StartCountdown broadcasts the
	// initial counting state itself
	s.room.StartCountdown(ctx, s.clock, s.countdownTicks)
}

func (s *Session) handleNewRound() {
	if !s.allow() {
		return
	}
	s.room.NewRound()
	s.room.BroadcastState()
}

// allow gates a mutating event on the binding existing and the connection
// staying under its message budget.
func (s *Session) allow() bool {
	if s.room == nil {
		s.notifyError(KindNotAMember)
		return false
	}
	if !s.limiter.Allow() {
		s.notifyError(KindBadRequest)
		return false
	}
	return true
}

// notifyError reports a failure to this connection only. Before the join
// the reader is the sole writer, so it may write directly; afterwards the
// write pump owns the socket and errors are queued like any broadcast.
func (s *Session) notifyError(kind string) {
	if s.outbound == nil {
		s.socket.SendErrorNotice(kind)
		return
	}
	encoded, err := json.Marshal(ErrorMessage{Type: "error", Kind: kind})
	if err != nil {
		return
	}
	select {
	case s.outbound <- encoded:
	default:
	}
}

func (s *Session) writePump(ctx context.Context) {
	for {
		select {
		case msg, more := <-s.outbound:
			if !more {
				return
			}
			if err := s.socket.SendRaw(msg); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) cleanup() {
	if s.room == nil {
		return
	}
	s.room.Unsubscribe(s.outbound)
	close(s.outbound)
	empty := s.room.Leave(s.memberID)
	if empty {
		s.store.RemoveRoom(s.room)
		s.logger.RemovingRoom()
	} else {
		s.room.BroadcastState()
	}
	s.logger.LeftRoom()
}
