package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/onset/internal/game"
)

type DefaultTheme struct {
}

func colored(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderNote(note *game.Note) string {
	return colored(KindColor(note.Kind), syms[note.Kind])
}

func (t *DefaultTheme) RenderHoldTail(lane uint8) string {
	return colored(KindColor(game.HoldNote), holdSym)
}

func (t *DefaultTheme) RenderHitField(lane uint8, held bool) string {
	if held {
		return colored(heldColor, barSyms[lane%game.Lanes])
	}
	return barSyms[lane%game.Lanes]
}

func (t *DefaultTheme) RenderGrade(grade game.Grade) string {
	return colored(GradeColor(grade), grade.String())
}

// Subtext is the short line shown under the grade.
func (t *DefaultTheme) Subtext(grade game.Grade) string {
	s, ok := subtexts[grade]
	if !ok {
		return ""
	}
	return s
}

const (
	holdSym = "┃"
)

var (
	syms = map[game.Kind]string{
		game.NormalNote: "⬤",
		game.GoldNote:   "✦",
		game.HoldNote:   "⬤",
		game.MineNote:   "⨯",
	}
	barSyms   = [...]string{"-", "-", "-", "-"}
	heldColor = color.RGBA{255, 255, 255, 255}

	kindColors = map[game.Kind]color.RGBA{
		game.NormalNote: {0, 118, 236, 255}, // blue
		game.GoldNote:   {236, 195, 0, 255}, // yellow
		game.HoldNote:   {0, 236, 128, 255}, // green
		game.MineNote:   {236, 30, 0, 255},  // red
	}
	gradeColors = map[game.Grade]color.RGBA{
		game.Perfect: {0, 236, 236, 255},
		game.Jackpot: {236, 195, 0, 255},
		game.Good:    {0, 236, 128, 255},
		game.Miss:    {106, 106, 106, 255},
		game.Ouch:    {236, 30, 0, 255},
	}
	subtexts = map[game.Grade]string{
		game.Perfect: "Pure!",
		game.Jackpot: "Pure!",
		game.Good:    "Hit",
		game.Miss:    "...",
		game.Ouch:    "Mine!",
	}
	fallback = color.RGBA{255, 255, 255, 255}
)

func KindColor(k game.Kind) color.RGBA {
	col, ok := kindColors[k]
	if !ok {
		return fallback
	}
	return col
}

func GradeColor(g game.Grade) color.RGBA {
	col, ok := gradeColors[g]
	if !ok {
		return fallback
	}
	return col
}
