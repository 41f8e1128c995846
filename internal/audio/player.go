package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

var ErrNotInitialized = errors.New("player not initialized")

// Player streams a decoded Buffer to the speaker.
type Player struct {
	mu          sync.Mutex
	buffer      *Buffer
	ctrl        *beep.Ctrl
	seeker      beep.StreamSeeker
	done        chan struct{}
	initialized bool
}

func NewPlayer(buffer *Buffer) *Player {
	return &Player{buffer: buffer}
}

func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if nil == p.buffer || nil == p.buffer.pcm {
		return ErrNotInitialized
	}
	rate := p.buffer.pcm.Format().SampleRate
	if err := speaker.Init(rate, rate.N(time.Second/60)); nil != err {
		return err
	}
	p.initialized = true
	return nil
}

// Play starts the track from the beginning. The returned channel is
// closed once the track has played to its natural end.
func (p *Player) Play() (<-chan struct{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil, ErrNotInitialized
	}
	speaker.Clear()

	done := make(chan struct{})
	var once sync.Once
	p.seeker = p.buffer.pcm.Streamer(0, p.buffer.pcm.Len())
	p.ctrl = &beep.Ctrl{Streamer: p.seeker}
	p.done = done
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		once.Do(func() { close(done) })
	})))
	return done, nil
}

func (p *Player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if nil == p.ctrl {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

func (p *Player) Pause() {
	p.setPaused(true)
}

func (p *Player) Resume() {
	p.setPaused(false)
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Clear()
	}
	p.ctrl = nil
	p.seeker = nil
}

// Position is the current playback time. Presentation only, the session
// clock keeps its own time.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if nil == p.seeker {
		return 0
	}
	speaker.Lock()
	pos := p.seeker.Position()
	speaker.Unlock()
	return p.buffer.pcm.Format().SampleRate.D(pos)
}
