package score

import (
	"time"

	"git.lost.host/meutraa/onset/internal/game"
)

const (
	MaxHealth   = 100
	MissPenalty = 10
	MinePenalty = 20

	NormalValue = 100
	GoldValue   = 300
)

type Scorer interface {
	// ApplyInput resolves the earliest pending note on lane within the
	// hit window, nil when nothing matched.
	ApplyInput(input game.Input) *Feedback

	// Sweep marks every pending note that can no longer be reached as
	// missed and returns how many were marked.
	Sweep(elapsed time.Duration) int

	State() State
	Reset()
}

// State is the running total of a play attempt.
type State struct {
	Score    int
	Combo    int
	MaxCombo int
	Health   int
	Counts   [game.Ouch + 1]int // Per grade
}

func NewState() State {
	return State{Health: MaxHealth}
}

func (s State) Failed() bool {
	return s.Health <= 0
}

type Feedback struct {
	Note     *game.Note
	Grade    game.Grade
	Distance time.Duration // note.Time - elapsed, zero for misses
	Points   int
}
