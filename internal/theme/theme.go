package theme

import "git.lost.host/meutraa/onset/internal/game"

type Theme interface {
	RenderNote(note *game.Note) string
	RenderHoldTail(lane uint8) string
	RenderHitField(lane uint8, held bool) string
	RenderGrade(grade game.Grade) string
	Subtext(grade game.Grade) string
}
