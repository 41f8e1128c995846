package game

import (
	"errors"
	"testing"
	"time"
)

func TestMissAfter(t *testing.T) {
	tests := map[float64]time.Duration{
		800:  323076923 * time.Nanosecond,
		1600: 284615384 * time.Nanosecond,
	}
	for height, expected := range tests {
		h := DefaultHighway
		h.Height = height
		got := h.MissAfter()
		if d := got - expected; d > time.Microsecond || d < -time.Microsecond {
			t.Errorf("height %v: MissAfter = %v, want %v", height, got, expected)
		}
	}
}

func TestMissAfterOutlastsWidestWindow(t *testing.T) {
	w := DefaultWindows()
	if w.MissAfter <= w.Good {
		t.Errorf("MissAfter %v must exceed the good window %v", w.MissAfter, w.Good)
	}
}

func TestDifficultyByName(t *testing.T) {
	for _, name := range DifficultyNames {
		d, err := DifficultyByName(name)
		if nil != err {
			t.Fatal(err)
		}
		if d.Name != name {
			t.Errorf("got %v, want %v", d.Name, name)
		}
	}
	if d, _ := DifficultyByName(" hard "); d != Hard {
		t.Errorf("lookup should trim and ignore case, got %+v", d)
	}
	if _, err := DifficultyByName("insane"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestNewChartCounts(t *testing.T) {
	notes := []*Note{
		{Kind: NormalNote}, {Kind: GoldNote}, {Kind: HoldNote},
		{Kind: MineNote}, {Kind: MineNote, Time: time.Second},
	}
	c := NewChart(notes, Normal)
	if c.NoteCount != 3 || c.GoldCount != 1 || c.HoldCount != 1 || c.MineCount != 2 {
		t.Errorf("unexpected counts %+v", c)
	}
	if c.Duration() != time.Second {
		t.Errorf("Duration = %v", c.Duration())
	}

	clone := c.Clone()
	clone.Notes[0].Hit = true
	if c.Notes[0].Hit {
		t.Error("clone shares note state with the original")
	}
}
