package beatmap

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"git.lost.host/meutraa/onset/internal/game"
	"github.com/google/uuid"
)

const (
	WindowSize = 1024 // Samples per onset window

	// A window is double when its onset exceeds the gold threshold by this.
	doubleMargin = 0.15
	// A non double onset becomes a hold note when a draw exceeds this.
	holdThreshold = 0.8

	minHold   = 200 * time.Millisecond
	holdRange = 400 * time.Millisecond

	// Mines are rare even on the hardest profile.
	mineChanceDivisor = 50
	mineGap           = 200 * time.Millisecond
)

type DefaultGenerator struct {
	Rand Rand
}

// NewGenerator seeds a generator. The same seed, samples and difficulty
// always produce the same chart.
func NewGenerator(seed int64) *DefaultGenerator {
	return &DefaultGenerator{Rand: rand.New(rand.NewSource(seed))}
}

func (g *DefaultGenerator) rng() Rand {
	if nil == g.Rand {
		g.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g.Rand
}

func (g *DefaultGenerator) newID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(g.rng())
	if nil != err {
		return uuid.New()
	}
	return id
}

func (g *DefaultGenerator) windowTime(i, sampleRate int) time.Duration {
	return time.Duration(i) * time.Second / time.Duration(sampleRate)
}

func (g *DefaultGenerator) Generate(samples []float64, sampleRate int, difficulty game.Difficulty) *game.Chart {
	notes := []*game.Note{}
	if sampleRate <= 0 || len(samples) == 0 {
		return game.NewChart(notes, difficulty)
	}
	r := g.rng()

	var lastNoteTime time.Duration
	for i := 0; i < len(samples); i += WindowSize {
		t := g.windowTime(i, sampleRate)
		onset := math.Abs(samples[i])

		if onset > difficulty.OnsetThreshold && t-lastNoteTime > difficulty.MinNoteInterval {
			lane := uint8(r.Intn(game.Lanes))
			isGold := onset > difficulty.GoldThreshold
			isDouble := onset > difficulty.GoldThreshold+doubleMargin
			isHold := r.Float64() > holdThreshold && !isDouble

			note := &game.Note{Lane: lane, Time: t, Kind: game.NormalNote}
			switch {
			case isHold:
				note.Kind = game.HoldNote
				note.HoldDuration = minHold + time.Duration(r.Float64()*float64(holdRange))
			case isGold:
				note.Kind = game.GoldNote
			}
			note.ID = g.newID()
			notes = append(notes, note)

			if isDouble && !isHold {
				// 1 to 3 lanes over so the pair never shares a lane
				pair := (int(lane) + r.Intn(game.Lanes-1) + 1) % game.Lanes
				notes = append(notes, &game.Note{
					ID:   g.newID(),
					Lane: uint8(pair),
					Time: t,
					Kind: game.NormalNote,
				})
			}
			lastNoteTime = t
		} else if r.Float64() < difficulty.MineChance/mineChanceDivisor && t-lastNoteTime > mineGap {
			notes = append(notes, &game.Note{
				ID:   g.newID(),
				Lane: uint8(r.Intn(game.Lanes)),
				Time: t,
				Kind: game.MineNote,
			})
		}
	}

	// Stable so double notes stay adjacent in insertion order
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})
	return game.NewChart(notes, difficulty)
}
