package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

type Difficulty struct {
	Name            string
	OnsetThreshold  float64       // Minimum amplitude to emit a note
	GoldThreshold   float64       // Amplitude above which a note is gold
	MineChance      float64       // Mine probability factor, scaled down per window
	MinNoteInterval time.Duration // Minimum gap between generated onsets
}

var (
	Easy = Difficulty{
		Name:            "EASY",
		OnsetThreshold:  0.35,
		GoldThreshold:   0.6,
		MineChance:      0.0,
		MinNoteInterval: 500 * time.Millisecond,
	}
	Normal = Difficulty{
		Name:            "NORMAL",
		OnsetThreshold:  0.28,
		GoldThreshold:   0.5,
		MineChance:      0.05,
		MinNoteInterval: 350 * time.Millisecond,
	}
	Hard = Difficulty{
		Name:            "HARD",
		OnsetThreshold:  0.18,
		GoldThreshold:   0.4,
		MineChance:      0.1,
		MinNoteInterval: 180 * time.Millisecond,
	}
)

// DifficultyNames lists the profiles in menu order.
var DifficultyNames = []string{Easy.Name, Normal.Name, Hard.Name}

var difficultyMap = map[string]Difficulty{
	Easy.Name:   Easy,
	Normal.Name: Normal,
	Hard.Name:   Hard,
}

func DifficultyByName(name string) (Difficulty, error) {
	d, ok := difficultyMap[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
	}
	return d, nil
}
