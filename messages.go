package main

import (
	"encoding/json"
	"errors"
	"net"

	"github.com/gobwas/ws/wsutil"
)

type ClientSocket struct {
	conn net.Conn
}

func NewClientSocket(conn net.Conn) *ClientSocket {
	return &ClientSocket{conn}
}

type JoinMessage struct {
	RoomCode  string `json:"roomCode"`
	Name      string `json:"name"`
	RejoinKey string `json:"rejoinKey"`
}

type SelectCardMessage struct {
	Card string `json:"card"`
}

type RevealMessage struct{}

type StartCountdownMessage struct{}

type NewRoundMessage struct{}

type JoinedMessage struct {
	Type      string `json:"type"`
	RoomCode  string `json:"roomCode"`
	MemberID  string `json:"memberId"`
	RejoinKey string `json:"rejoinKey,omitempty"`
}

type StateUpdateMessage struct {
	Type string `json:"type"`
	RoomView
}

type ErrorMessage struct {
	Type string `json:"type"`
	Kind string `json:"kind"`
}

var ErrUndefinedType = errors.New("incorrect type")

func (c ClientSocket) sendMessage(message any) error {
	encoded, _ := json.Marshal(message)
	return wsutil.WriteServerText(c.conn, encoded)
}

func (c ClientSocket) SendJoined(roomCode, memberID, rejoinKey string) error {
	return c.sendMessage(JoinedMessage{Type: "joined", RoomCode: roomCode, MemberID: memberID, RejoinKey: rejoinKey})
}

func (c ClientSocket) SendErrorNotice(kind string) error {
	return c.sendMessage(ErrorMessage{Type: "error", Kind: kind})
}

func (c ClientSocket) SendRaw(msg []byte) error {
	return wsutil.WriteServerText(c.conn, msg)
}

// Returns one of the inbound message structs.
func (c ClientSocket) ReadMessage() (any, error) {
	msg, err := wsutil.ReadClientText(c.conn)
	if err != nil {
		return nil, err
	}
	message := UnmarshalJSON[struct {
		Type string `json:"type"`
	}](msg)
	var parsedMessage any
	switch message.Type {
	case "join":
		parsedMessage = UnmarshalJSON[JoinMessage](msg)
	case "selectCard":
		parsedMessage = UnmarshalJSON[SelectCardMessage](msg)
	case "reveal":
		parsedMessage = RevealMessage{}
	case "startCountdown":
		parsedMessage = StartCountdownMessage{}
	case "newRound":
		parsedMessage = NewRoundMessage{}
	default:
		return nil, ErrUndefinedType
	}
	return parsedMessage, nil
}
