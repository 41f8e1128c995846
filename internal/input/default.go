package input

import (
	"errors"
	"fmt"
	"math"
	"unicode"

	"git.lost.host/meutraa/onset/internal/game"
	"github.com/eiannone/keyboard"
)

var ErrUnmappedKey = errors.New("key is not mapped to a lane")

type Action uint8

const (
	Press Action = iota
	TogglePause
	Retry
	Quit
)

type Event struct {
	Action Action
	Lane   int // Only for Press
}

// Keymap translates keys into lane presses.
type Keymap struct {
	keys []rune
}

func NewKeymap(keys []rune) (*Keymap, error) {
	if len(keys) != game.Lanes {
		return nil, fmt.Errorf("need %d lane keys, got %d", game.Lanes, len(keys))
	}
	seen := map[rune]bool{}
	for _, k := range keys {
		if seen[k] {
			return nil, fmt.Errorf("key %q mapped twice", k)
		}
		seen[k] = true
	}
	return &Keymap{keys: keys}, nil
}

func (m *Keymap) Lane(r rune) (int, error) {
	for i, k := range m.keys {
		if unicode.ToLower(r) == unicode.ToLower(k) {
			return i, nil
		}
	}
	return -1, ErrUnmappedKey
}

// Translate maps a keyboard event, false when the key means nothing.
func (m *Keymap) Translate(key keyboard.Key, r rune) (Event, bool) {
	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Event{Action: Quit}, true
	case keyboard.KeySpace:
		return Event{Action: TogglePause}, true
	case keyboard.KeyEnter:
		return Event{Action: Retry}, true
	}
	lane, err := m.Lane(r)
	if nil != err {
		return Event{}, false
	}
	return Event{Action: Press, Lane: lane}, true
}

// TouchLane maps a horizontal position on a surface of the given width
// to the lane under it.
func TouchLane(x, width float64) (int, error) {
	if width <= 0 {
		return -1, &game.InvalidLaneError{Lane: -1}
	}
	lane := int(math.Floor(x / (width / game.Lanes)))
	if !game.ValidLane(lane) {
		return -1, &game.InvalidLaneError{Lane: lane}
	}
	return lane, nil
}

// ReadInput captures the keyboard and forwards translated events until
// the returned close function is called.
func ReadInput(m *Keymap, events chan<- Event) (func() error, error) {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	go func() {
		for key := range keys {
			if nil != key.Err {
				continue
			}
			if ev, ok := m.Translate(key.Key, key.Rune); ok {
				events <- ev
			}
		}
	}()
	return keyboard.Close, nil
}
