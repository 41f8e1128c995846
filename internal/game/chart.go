package game

import "time"

type Chart struct {
	Notes      []*Note
	NoteCount  int64
	GoldCount  int64
	HoldCount  int64
	MineCount  int64
	Difficulty Difficulty

	activeNotes    []*Note
	startNoteIndex int
	endNoteIndex   int
}

func NewChart(notes []*Note, difficulty Difficulty) *Chart {
	c := &Chart{Notes: notes, Difficulty: difficulty}
	for _, n := range notes {
		switch n.Kind {
		case MineNote:
			c.MineCount++
		case HoldNote:
			c.HoldCount++
			c.NoteCount++
		case GoldNote:
			c.GoldCount++
			c.NoteCount++
		default:
			c.NoteCount++
		}
	}
	return c
}

// Clone copies every note so the flags of the copy can be mutated
// without touching the original chart.
func (c *Chart) Clone() *Chart {
	nn := make([]*Note, len(c.Notes))
	for i, n := range c.Notes {
		nnn := *n
		nn[i] = &nnn
	}
	return &Chart{
		Notes:      nn,
		NoteCount:  c.NoteCount,
		GoldCount:  c.GoldCount,
		HoldCount:  c.HoldCount,
		MineCount:  c.MineCount,
		Difficulty: c.Difficulty,
	}
}

// Duration is the time of the last note, zero for an empty chart.
func (c *Chart) Duration() time.Duration {
	if len(c.Notes) == 0 {
		return 0
	}
	return c.Notes[len(c.Notes)-1].Time
}

func (c *Chart) Active() ([]*Note, int, int) {
	return c.activeNotes, c.startNoteIndex, c.endNoteIndex
}

func (c *Chart) SetActive(start int, end int) {
	c.activeNotes = c.Notes[start:end]
	c.startNoteIndex = start
	c.endNoteIndex = end
}
