package game

import (
	"time"

	"github.com/google/uuid"
)

// Lanes is the number of parallel input channels.
const Lanes = 4

type Kind uint8

const (
	NormalNote Kind = iota
	GoldNote
	HoldNote
	MineNote
)

func (k Kind) String() string {
	switch k {
	case NormalNote:
		return "normal"
	case GoldNote:
		return "gold"
	case HoldNote:
		return "hold"
	case MineNote:
		return "mine"
	}
	return "unknown"
}

type Note struct {
	ID           uuid.UUID
	Lane         uint8
	Kind         Kind
	Time         time.Duration // The time the note should be hit
	HoldDuration time.Duration // Only set for Hold notes

	// This is state
	Hit    bool // Resolved by an input
	Missed bool // Expired without input, or a mine that passed safely
}

// Resolved reports whether the note has left the pending state.
func (n *Note) Resolved() bool {
	return n.Hit || n.Missed
}

func (n *Note) Reset() {
	n.Hit = false
	n.Missed = false
}

// ValidLane reports whether lane names one of the input channels.
func ValidLane(lane int) bool {
	return lane >= 0 && lane < Lanes
}

// Input is a discrete lane press at a point of play time.
type Input struct {
	Lane int
	Time time.Duration
}
