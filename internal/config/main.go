package config

import (
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/onset/internal/game"
	"git.lost.host/meutraa/onset/internal/log"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

type Config struct {
	AudioFile   string
	Difficulty  game.Difficulty
	Seed        int64 // Zero picks a time based seed
	Delay       time.Duration
	FramePeriod time.Duration
	Keys        []rune // One per lane
	Height      int    // Highway rows, zero fits the terminal
	LogLevel    log.Level
	LogFile     string
}

func newApp(c *Config, difficulty, keys, level *string) *kingpin.Application {
	difficulties := append(append([]string{}, game.DifficultyNames...), lower(game.DifficultyNames)...)

	app := kingpin.New("onset", "Turn any song into a four lane rhythm game.")
	app.Version(Version)
	app.Arg("audio", "Audio file (wav, mp3 or ogg)").Required().ExistingFileVar(&c.AudioFile)
	app.Flag("difficulty", "Chart difficulty").Default(game.Normal.Name).Short('D').Envar("ONSET_DIFFICULTY").EnumVar(difficulty, difficulties...)
	app.Flag("seed", "Chart seed, 0 for random").Default("0").Short('s').Envar("ONSET_SEED").Int64Var(&c.Seed)
	app.Flag("delay", "Start delay").Default("1.5s").Short('d').Envar("ONSET_DELAY").DurationVar(&c.Delay)
	app.Flag("frame-period", "Render frame period").Default("16ms").Short('p').Envar("ONSET_FRAME_PERIOD").DurationVar(&c.FramePeriod)
	app.Flag("keys", "Lane keys, left to right").Default("dfjk").Short('k').Envar("ONSET_KEYS").StringVar(keys)
	app.Flag("height", "Highway rows, 0 to fit the terminal").Default("0").Envar("ONSET_HEIGHT").IntVar(&c.Height)
	app.Flag("log-level", "Log level").Default("info").Envar("ONSET_LOG_LEVEL").StringVar(level)
	app.Flag("log-file", "Write logs to this file").Envar("ONSET_LOG_FILE").StringVar(&c.LogFile)
	return app
}

func lower(names []string) []string {
	l := make([]string, len(names))
	for i, n := range names {
		l[i] = strings.ToLower(n)
	}
	return l
}

// Parse reads the command line, flags fall back to ONSET_* environment
// variables.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	var difficulty, keys, level string
	app := newApp(c, &difficulty, &keys, &level)
	if _, err := app.Parse(args); nil != err {
		return nil, err
	}

	d, err := game.DifficultyByName(difficulty)
	if nil != err {
		return nil, err
	}
	c.Difficulty = d

	c.Keys = []rune(keys)
	if len(c.Keys) != game.Lanes {
		return nil, fmt.Errorf("need %d lane keys, got %q", game.Lanes, keys)
	}
	if c.Height < 0 {
		return nil, fmt.Errorf("height must not be negative, got %d", c.Height)
	}
	if c.FramePeriod <= 0 {
		return nil, fmt.Errorf("frame period must be positive, got %v", c.FramePeriod)
	}
	c.LogLevel = log.LevelFromString(level)
	return c, nil
}
