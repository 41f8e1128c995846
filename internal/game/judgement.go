package game

import (
	"fmt"
	"time"
)

type Grade uint8

const (
	Perfect Grade = iota
	Jackpot       // A perfect hit on a gold note
	Good
	Miss
	Ouch // A mine was pressed
)

func (g Grade) String() string {
	switch g {
	case Perfect:
		return "PERFECT"
	case Jackpot:
		return "JACKPOT!"
	case Good:
		return "GOOD"
	case Miss:
		return "MISS"
	case Ouch:
		return "OUCH!"
	}
	return "UNKNOWN"
}

const (
	WindowPerfect = 100 * time.Millisecond
	WindowGood    = 180 * time.Millisecond
)

// Windows holds the timing tolerances of the scorer. A hit needs
// |note.Time - elapsed| < Good, Perfect is the tighter tier inside it.
type Windows struct {
	Perfect   time.Duration
	Good      time.Duration
	MissAfter time.Duration // How far past note.Time a note stays reachable
}

func DefaultWindows() Windows {
	return Windows{
		Perfect:   WindowPerfect,
		Good:      WindowGood,
		MissAfter: DefaultHighway.MissAfter(),
	}
}

// Highway is the on-screen geometry the miss tolerance is derived from.
// Notes scroll towards a hit line and are missed once they render Margin
// pixels below the bottom edge.
type Highway struct {
	Height    float64 // Pixels
	HitZone   float64 // Fraction of Height where the hit line sits
	NoteSpeed float64 // Pixels per millisecond at ReferenceHeight
	Margin    float64 // Pixels below the bottom edge
}

const ReferenceHeight = 800.0

var DefaultHighway = Highway{
	Height:    ReferenceHeight,
	HitZone:   0.8,
	NoteSpeed: 0.65,
	Margin:    50,
}

// PixelsPerMs is the scroll speed scaled to the highway height.
func (h Highway) PixelsPerMs() float64 {
	return h.NoteSpeed * (h.Height / ReferenceHeight)
}

// MissAfter is the time past the hit instant at which a note leaves the
// playing field.
func (h Highway) MissAfter() time.Duration {
	pxPerMs := h.PixelsPerMs()
	if pxPerMs <= 0 {
		return WindowGood
	}
	ms := (h.Height*(1-h.HitZone) + h.Margin) / pxPerMs
	return time.Duration(ms * float64(time.Millisecond))
}

type InvalidLaneError struct {
	Lane int
}

func (e *InvalidLaneError) Error() string {
	return fmt.Sprintf("lane %d outside [0,%d]", e.Lane, Lanes-1)
}
