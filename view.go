package main

// Markers replacing a member's selection in views of an unrevealed room.
const (
	SelectionHidden = "hidden"
	SelectionNone   = "none"
)

type MemberView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Selection string `json:"selection"`
}

// RoomView is the sanitized snapshot pushed to every bound connection and
// returned by the room lookup endpoint. Raw card values appear only when
// the room is revealed; until then members see the hidden/none markers.
type RoomView struct {
	ID        string       `json:"id"`
	Members   []MemberView `json:"members"`
	Revealed  bool         `json:"revealed"`
	Countdown *int         `json:"countdown,omitempty"`
	Average   string       `json:"average,omitempty"`
}
