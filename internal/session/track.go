package session

import (
	"fmt"

	"git.lost.host/meutraa/onset/internal/audio"
	"git.lost.host/meutraa/onset/internal/beatmap"
	"git.lost.host/meutraa/onset/internal/game"
	"git.lost.host/meutraa/onset/internal/log"
)

// Track is a decoded song together with the chart generated for it.
type Track struct {
	Buffer *audio.Buffer
	Chart  *game.Chart

	generator beatmap.Generator
	log       *log.Logger
}

type Loader struct {
	Decoder   audio.Decoder
	Generator beatmap.Generator
	Log       *log.Logger
}

// LoadTrack decodes data and generates its chart. A decode failure is
// returned as is and no chart is produced.
func (l *Loader) LoadTrack(data []byte, difficulty game.Difficulty) (*Track, error) {
	logger := log.OrDiscard(l.Log)

	buffer, err := l.Decoder.Decode(data)
	if nil != err {
		return nil, fmt.Errorf("unable to load track: %w", err)
	}
	logger.Infof("decoded %v of audio at %d Hz", buffer.Duration(), buffer.SampleRate)

	t := &Track{Buffer: buffer, generator: l.Generator, log: logger}
	t.generate(difficulty)
	return t, nil
}

func (t *Track) generate(difficulty game.Difficulty) {
	t.Chart = t.generator.Generate(t.Buffer.Samples, t.Buffer.SampleRate, difficulty)
	t.log.Infof("generated %s chart: %d notes, %d gold, %d holds, %d mines",
		difficulty.Name, t.Chart.NoteCount, t.Chart.GoldCount, t.Chart.HoldCount, t.Chart.MineCount)
}

// SetDifficulty regenerates the whole chart for another profile.
func (t *Track) SetDifficulty(difficulty game.Difficulty) {
	if t.Chart.Difficulty == difficulty {
		return
	}
	t.generate(difficulty)
}
