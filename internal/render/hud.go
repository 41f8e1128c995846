package render

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"git.lost.host/meutraa/onset/internal/game"
	"git.lost.host/meutraa/onset/internal/score"
	"git.lost.host/meutraa/onset/internal/session"
	"git.lost.host/meutraa/onset/internal/theme"
)

const healthBarWidth = 20

// HealthBar draws health out of score.MaxHealth in width cells.
func HealthBar(health, width int) string {
	if health < 0 {
		health = 0
	} else if health > score.MaxHealth {
		health = score.MaxHealth
	}
	filled := (health*width + score.MaxHealth/2) / score.MaxHealth
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

var grades = [...]game.Grade{game.Perfect, game.Jackpot, game.Good, game.Miss, game.Ouch}

// Stats is what the side panel shows besides the score state.
type Stats struct {
	Elapsed, Length time.Duration
	Paused          bool
	RenderTime      time.Duration
}

func (h *Highway) DrawHUD(r Renderer, st score.State, chart *game.Chart, stats Stats) {
	col := h.SideCol
	r.Fill(2, col, fmt.Sprintf("  Render Time:  %5.0f µs", float64(stats.RenderTime)/float64(time.Microsecond)))
	r.Fill(3, col, fmt.Sprintf("     Progress:  %5s / %-5s", clockText(stats.Elapsed), clockText(stats.Length)))
	if stats.Paused {
		r.Fill(4, col, "       PAUSED          ")
	} else {
		r.Fill(4, col, "                       ")
	}

	r.Fill(6, col, fmt.Sprintf("        Score:  %8d", st.Score))
	r.Fill(7, col, fmt.Sprintf("        Combo:  %8d", st.Combo))
	r.Fill(8, col, fmt.Sprintf("    Max Combo:  %8d", st.MaxCombo))
	r.FillColor(9, col, healthColor(st.Health), fmt.Sprintf("       Health:  %s %3d", HealthBar(st.Health, healthBarWidth), st.Health))

	notes, start, end := chart.Active()
	r.Fill(11, col, fmt.Sprintf("       Active:  [%v - %v] (%v)   ", start, end, len(notes)))
	r.Fill(12, col, fmt.Sprintf("        Notes:  %6v", chart.NoteCount))
	r.Fill(13, col, fmt.Sprintf("         Gold:  %6v", chart.GoldCount))
	r.Fill(14, col, fmt.Sprintf("        Holds:  %6v", chart.HoldCount))
	r.Fill(15, col, fmt.Sprintf("        Mines:  %6v", chart.MineCount))
	for i, g := range grades {
		r.FillColor(17+i, col, theme.GradeColor(g), fmt.Sprintf("%13s:  %6v", g, st.Counts[g]))
	}
}

func healthColor(health int) color.RGBA {
	switch {
	case health > 60:
		return color.RGBA{0, 236, 128, 255}
	case health > 30:
		return color.RGBA{236, 195, 0, 255}
	}
	return color.RGBA{236, 30, 0, 255}
}

func clockText(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// ResultLines is the text of the results screen.
func ResultLines(res session.Result) []string {
	title := "TRACK COMPLETE"
	if res.Failed {
		title = "FAILED"
	}
	lines := []string{
		title,
		"",
		fmt.Sprintf("Rank       %8s", res.Rank),
		fmt.Sprintf("Score      %8d", res.Score),
		fmt.Sprintf("Max Combo  %8d", res.MaxCombo),
		fmt.Sprintf("Health     %8d", res.Health),
		"",
	}
	for _, g := range grades {
		lines = append(lines, fmt.Sprintf("%-9s  %8d", g, res.Counts[g]))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Mean       %8.2f ms", float64(res.Mean)/float64(time.Millisecond)),
		fmt.Sprintf("Stdev      %8.2f ms", float64(res.Stdev)/float64(time.Millisecond)),
		"",
		"[enter] retry  [esc] quit",
	)
	return lines
}

func (h *Highway) DrawResults(r Renderer, res session.Result) {
	r.Clear()
	lines := ResultLines(res)
	top := (h.rows - len(lines)) / 2
	if top < 1 {
		top = 1
	}
	for i, l := range lines {
		r.Fill(top+i, h.middle-12, l)
	}
	r.Flush()
}
