package engine

import (
	"errors"

	"github.com/google/uuid"
)

// WindowsPerLine is the number of train-car windows printed per line on a
// player sheet.
const WindowsPerLine = 4

var (
	ErrNoCardRevealed       = errors.New("no card revealed")
	ErrGameEnded            = errors.New("game has ended")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrUnknownLine          = errors.New("unknown line")
	ErrUnknownStation       = errors.New("unknown station")
	ErrLineFull             = errors.New("no empty windows available for this line")
	ErrStationAlreadyMarked = errors.New("station already marked")
	ErrWrongCardForTransfer = errors.New("can only mark a transfer station with a transfer card")
	ErrWrongCardForFreeRide = errors.New("can only mark a free-ride station with a free ride card")
)

// StationMarkKind distinguishes a plain cross from a transfer number.
type StationMarkKind string

const (
	MarkCross          StationMarkKind = "cross"
	MarkTransferNumber StationMarkKind = "transfer_number"
)

// StationMark is one player's mark on a station. Connections is only set
// for transfer numbers and is doubled at scoring.
type StationMark struct {
	Kind        StationMarkKind `json:"kind"`
	Connections int             `json:"connections,omitempty"`
}

// CompletionStatusKind tracks whether a player finished a line first.
type CompletionStatusKind string

const (
	StatusNotCompleted    CompletionStatusKind = "not_completed"
	StatusFirstToComplete CompletionStatusKind = "first_to_complete"
	StatusLaterCompletion CompletionStatusKind = "later_completion"
)

// CompletionStatus records the points a player locked in for a line. It is
// assigned exactly once, when completion is first detected.
type CompletionStatus struct {
	Kind   CompletionStatusKind `json:"kind"`
	Points int                  `json:"points,omitempty"`
}

// ActionKind discriminates the player actions accepted during a round.
type ActionKind string

const (
	ActionChooseLine               ActionKind = "choose_line"
	ActionMarkTransferStation      ActionKind = "mark_transfer_station"
	ActionMarkFreeRideStation      ActionKind = "mark_free_ride_station"
	ActionCompleteLineAnnouncement ActionKind = "complete_line_announcement"
)

// Action is a player's move for the current card. LineID applies to
// choose-line and announcements, StationID to the two mark actions.
// CarWindowIndex is accepted from clients but windows always fill
// left-to-right regardless.
type Action struct {
	Kind           ActionKind `json:"kind"`
	LineID         LineID     `json:"line_id,omitempty"`
	CarWindowIndex int        `json:"car_window_index,omitempty"`
	StationID      string     `json:"station_id,omitempty"`
}

// EventKind discriminates the outcomes of a processed action.
type EventKind string

const (
	// EventLineCompleted is addressed to every player in the session.
	EventLineCompleted EventKind = "line_completed"
	// EventActionResult is addressed to the acting player only.
	EventActionResult EventKind = "action_result"
)

// ActionEvent is an outbound notification produced by ProcessAction. The
// session layer decides delivery: line completions are broadcast, action
// results go back to the actor.
type ActionEvent struct {
	Kind     EventKind
	PlayerID uuid.UUID
	LineID   LineID
	Success  bool
	Message  string
}
