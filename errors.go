package main

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrNotAMember     = errors.New("not a member of this room")
	ErrInvalidCard    = errors.New("card is not in the deck")
	ErrCodesExhausted = errors.New("room code generation exhausted")
)

// Error kinds sent back to the originating connection.
const (
	KindRoomNotFound = "roomNotFound"
	KindNotAMember   = "notAMember"
	KindInvalidCard  = "invalidCard"
	KindBadRequest   = "badRequest"
)

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return KindRoomNotFound
	case errors.Is(err, ErrNotAMember):
		return KindNotAMember
	case errors.Is(err, ErrInvalidCard):
		return KindInvalidCard
	default:
		return KindBadRequest
	}
}
