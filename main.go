package main

import (
	"fmt"
	stdlog "log"
	"os"
	"time"

	"git.lost.host/meutraa/onset/internal/audio"
	"git.lost.host/meutraa/onset/internal/beatmap"
	"git.lost.host/meutraa/onset/internal/config"
	"git.lost.host/meutraa/onset/internal/input"
	"git.lost.host/meutraa/onset/internal/log"
	"git.lost.host/meutraa/onset/internal/render"
	"git.lost.host/meutraa/onset/internal/session"
	"git.lost.host/meutraa/onset/internal/theme"
)

func main() {
	if err := run(); nil != err {
		stdlog.Fatalln(err)
	}
}

func openLog(c *config.Config) (*log.Logger, func(), error) {
	if c.LogFile == "" {
		return log.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if nil != err {
		return nil, nil, fmt.Errorf("unable to open log file: %w", err)
	}
	return log.New(f, c.LogLevel), func() { f.Close() }, nil
}

func run() error {
	c, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	logger, closeLog, err := openLog(c)
	if nil != err {
		return err
	}
	defer closeLog()

	data, err := os.ReadFile(c.AudioFile)
	if nil != err {
		return fmt.Errorf("unable to read audio file: %w", err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Infof("opening %v (%s, seed %d)", c.AudioFile, c.Difficulty.Name, seed)

	// Ensure our Default implementations are used as interfaces
	var decoder audio.Decoder = &audio.DefaultDecoder{}
	var generator beatmap.Generator = beatmap.NewGenerator(seed)
	var r render.Renderer = &render.DefaultRenderer{}
	var th theme.Theme = &theme.DefaultTheme{}

	loader := &session.Loader{Decoder: decoder, Generator: generator, Log: logger}
	track, err := loader.LoadTrack(data, c.Difficulty)
	if nil != err {
		return err
	}

	player := audio.NewPlayer(track.Buffer)
	if err := player.Init(); nil != err {
		return fmt.Errorf("unable to open speaker: %w", err)
	}
	defer player.Stop()

	keymap, err := input.NewKeymap(c.Keys)
	if nil != err {
		return err
	}
	events := make(chan input.Event, 128)
	closeKeys, err := input.ReadInput(keymap, events)
	if nil != err {
		return err
	}
	defer func() {
		if err := closeKeys(); nil != err {
			logger.Warnf("unable to close keyboard: %v", err)
		}
	}()

	// Clear the screen and hide the cursor
	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state
		if err := r.Deinit(); nil != err {
			logger.Errorf("unable to restore terminal: %v", err)
		}
	}()

	p := &Program{
		Config:   c,
		Log:      logger,
		Renderer: r,
		Theme:    th,
		Player:   player,
		Track:    track,
		Events:   events,
	}
	return p.Run()
}
