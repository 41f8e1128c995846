package render

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"git.lost.host/meutraa/onset/internal/game"
	"git.lost.host/meutraa/onset/internal/score"
	"git.lost.host/meutraa/onset/internal/theme"
)

const (
	laneSpacing      = 4
	judgementFrames  = 30
	missFrames       = 45
	judgementPadding = 10
)

type cell struct {
	row, col int
}

// Highway draws the lanes as terminal rows, one row standing in for one
// pixel of game.Highway.
type Highway struct {
	Theme theme.Theme

	geometry     game.Highway
	columns      int
	rows, hitRow int
	lanes        [game.Lanes]int
	middle       int
	SideCol      int

	painted []cell
}

func NewHighway(th theme.Theme, columns, rows int) *Highway {
	h := &Highway{Theme: th}
	h.Resize(columns, rows)
	return h
}

func (h *Highway) Resize(columns, rows int) {
	h.columns, h.rows = columns, rows
	h.geometry = game.DefaultHighway
	h.geometry.Height = float64(rows)
	h.hitRow = int(math.Round(float64(rows) * h.geometry.HitZone))
	h.middle = columns >> 1
	for i := range h.lanes {
		h.lanes[i] = h.middle + laneSpacing*(2*i-3)/2
	}
	h.SideCol = h.lanes[0] - 36
	if h.SideCol < 2 {
		h.SideCol = 2
	}
	h.painted = h.painted[:0]
}

// Row is where a note d ahead of the hit line sits, rows grow downwards.
func (h *Highway) Row(d time.Duration) int {
	ms := float64(d) / float64(time.Millisecond)
	return h.hitRow - int(math.Round(ms*h.geometry.PixelsPerMs()))
}

func (h *Highway) Column(lane uint8) int {
	return h.lanes[lane%game.Lanes]
}

func (h *Highway) HitRow() int {
	return h.hitRow
}

func (h *Highway) visible(row int) bool {
	return row >= 1 && row <= h.rows
}

func (h *Highway) paint(r Renderer, row, col int, s string) {
	if !h.visible(row) {
		return
	}
	r.Fill(row, col, s)
	h.painted = append(h.painted, cell{row, col})
}

// Draw clears the last frame and draws the notes in the chart's active
// window, sliding the window forward as notes leave and enter the field.
func (h *Highway) Draw(r Renderer, chart *game.Chart, elapsed time.Duration, held []int) {
	for _, c := range h.painted {
		r.Fill(c.row, c.col, " ")
	}
	h.painted = h.painted[:0]

	var down [game.Lanes]bool
	for _, lane := range held {
		if game.ValidLane(lane) {
			down[lane] = true
		}
	}
	for i := uint8(0); i < game.Lanes; i++ {
		r.Fill(h.hitRow, h.Column(i), h.Theme.RenderHitField(i, down[i]))
	}

	active, start, end := chart.Active()
	startOffset := 0
	for i, note := range active {
		col := h.Column(note.Lane)
		row := h.Row(score.Distance(note, elapsed))
		tail := row
		if note.Kind == game.HoldNote {
			tail = h.Row(score.Distance(note, elapsed) + note.HoldDuration)
		}

		if tail > h.rows {
			// Only a leading run can leave without skipping a held tail
			if startOffset == i {
				startOffset++
			}
			continue
		}

		if note.Kind == game.HoldNote {
			bottom := row - 1
			if note.Hit && bottom >= h.hitRow {
				bottom = h.hitRow - 1
			}
			for tr := tail; tr <= bottom; tr++ {
				h.paint(r, tr, col, h.Theme.RenderHoldTail(note.Lane))
			}
		}
		if !note.Hit && row != h.hitRow {
			h.paint(r, row, col, h.Theme.RenderNote(note))
		}
	}

	endOffset := 0
	for _, note := range chart.Notes[end:] {
		if h.Row(score.Distance(note, elapsed)) >= 1 {
			endOffset++
		} else {
			break
		}
	}

	chart.SetActive(start+startOffset, end+endOffset)
}

// Judge shows the grade of a judgement above the hit line.
func (h *Highway) Judge(r Renderer, f score.Feedback) {
	row := h.hitRow - 3
	if row < 1 {
		row = 1
	}
	blank := strings.Repeat(" ", judgementPadding)
	r.Fill(row, h.middle-judgementPadding/2, blank)
	r.Fill(row+1, h.middle-judgementPadding/2, blank)

	text := f.Grade.String()
	width := utf8.RuneCountInString(text)
	r.AddDecoration(h.middle-width/2, row, h.Theme.RenderGrade(f.Grade), width, judgementFrames)
	sub := h.Theme.Subtext(f.Grade)
	sw := utf8.RuneCountInString(sub)
	r.AddDecoration(h.middle-sw/2, row+1, sub, sw, judgementFrames)

	if f.Grade == game.Miss && nil != f.Note {
		col := h.Column(f.Note.Lane)
		mid := h.rows >> 1
		r.AddDecoration(col-1, mid-1, "\033[1;31m╭\033[0m", 1, missFrames)
		r.AddDecoration(col+1, mid-1, "\033[1;31m╮\033[0m", 1, missFrames)
		r.AddDecoration(col-1, mid, "\033[1;31m╰\033[0m", 1, missFrames)
		r.AddDecoration(col+1, mid, "\033[1;31m╯\033[0m", 1, missFrames)
	}
}
