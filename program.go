package main

import (
	"time"

	"git.lost.host/meutraa/onset/internal/audio"
	"git.lost.host/meutraa/onset/internal/config"
	"git.lost.host/meutraa/onset/internal/input"
	"git.lost.host/meutraa/onset/internal/log"
	"git.lost.host/meutraa/onset/internal/render"
	"git.lost.host/meutraa/onset/internal/score"
	"git.lost.host/meutraa/onset/internal/session"
	"git.lost.host/meutraa/onset/internal/theme"
)

type Program struct {
	Config   *config.Config
	Log      *log.Logger
	Renderer render.Renderer
	Theme    theme.Theme
	Player   *audio.Player
	Track    *session.Track
	Events   <-chan input.Event

	session  *session.Session
	highway  *render.Highway
	trackEnd <-chan struct{}

	quit       bool
	renderTime time.Duration
}

// Run plays attempts until the player quits.
func (p *Program) Run() error {
	p.highway = render.NewHighway(p.Theme, 80, 24)
	p.session = session.New(p.Track, session.Options{
		Log: p.Log,
		OnJudgement: func(f score.Feedback) {
			p.highway.Judge(p.Renderer, f)
		},
	})

	for {
		if err := p.play(); nil != err {
			return err
		}
		if p.quit {
			return nil
		}
		res := p.session.End()
		p.highway.DrawResults(p.Renderer, res)
		if !p.awaitRetry() {
			return nil
		}
	}
}

func (p *Program) Resize() error {
	columns, rows, err := p.Renderer.Size()
	if nil != err {
		return err
	}
	if p.Config.Height > 0 && p.Config.Height < rows {
		rows = p.Config.Height
	}
	p.highway.Resize(columns, rows)
	return nil
}

func (p *Program) drain() {
	for len(p.Events) > 0 {
		<-p.Events
	}
}

func (p *Program) play() error {
	p.Renderer.Clear()
	if err := p.Resize(); nil != err {
		return err
	}
	p.Renderer.Flush()

	// Presses during the countdown would land before the first note
	time.Sleep(p.Config.Delay)
	p.drain()

	p.quit = false
	p.session.Start()
	done, err := p.Player.Play()
	if nil != err {
		return err
	}
	p.trackEnd = done

	p.Renderer.RenderLoop(p.Config.FramePeriod, p.frame, func(d time.Duration) {
		p.renderTime = d
	})
	p.Player.Stop()
	return nil
}

func (p *Program) togglePause() {
	if p.session.Paused() {
		p.session.Resume()
		p.Player.Resume()
	} else {
		p.session.Pause()
		p.Player.Pause()
	}
}

func (p *Program) frame(frame uint64) bool {
	// get the key inputs that occured so far
	for i := len(p.Events); i > 0; i-- {
		ev := <-p.Events
		switch ev.Action {
		case input.Quit:
			p.quit = true
			return false
		case input.TogglePause:
			p.togglePause()
		case input.Press:
			p.session.OnInput(ev.Lane)
		}
	}

	select {
	case <-p.trackEnd:
		p.session.Finish()
		p.trackEnd = nil
	default:
	}

	ended := p.session.Tick()
	elapsed := p.session.Elapsed()
	p.highway.Draw(p.Renderer, p.session.Chart(), elapsed, nil)
	p.highway.DrawHUD(p.Renderer, p.session.State(), p.session.Chart(), render.Stats{
		Elapsed:    elapsed,
		Length:     p.Track.Buffer.Duration(),
		Paused:     p.session.Paused(),
		RenderTime: p.renderTime,
	})
	return !ended
}

func (p *Program) awaitRetry() bool {
	for ev := range p.Events {
		switch ev.Action {
		case input.Retry:
			return true
		case input.Quit:
			return false
		}
	}
	return false
}
