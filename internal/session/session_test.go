package session

import (
	"errors"
	"math"
	"testing"
	"time"

	"git.lost.host/meutraa/onset/internal/audio"
	"git.lost.host/meutraa/onset/internal/beatmap"
	"git.lost.host/meutraa/onset/internal/clock"
	"git.lost.host/meutraa/onset/internal/game"
	"git.lost.host/meutraa/onset/internal/score"
	"git.lost.host/meutraa/onset/internal/testdata"
)

const ms = time.Millisecond

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) set(d time.Duration) { f.t = time.Unix(0, 0).Add(d) }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

type fakeDecoder struct {
	buffer *audio.Buffer
	err    error
}

func (d *fakeDecoder) Decode([]byte) (*audio.Buffer, error) {
	return d.buffer, d.err
}

// fixedGenerator ignores the samples and hands out a copy of notes.
type fixedGenerator struct {
	notes []game.Note
	calls int
}

func (g *fixedGenerator) Generate(samples []float64, sampleRate int, d game.Difficulty) *game.Chart {
	g.calls++
	notes := make([]*game.Note, len(g.notes))
	for i := range g.notes {
		n := g.notes[i]
		notes[i] = &n
	}
	return game.NewChart(notes, d)
}

func newTestSession(t *testing.T, notes []game.Note) (*Session, *fakeTime, *[]score.Feedback) {
	loader := &Loader{
		Decoder:   &fakeDecoder{buffer: &audio.Buffer{SampleRate: 44100}},
		Generator: &fixedGenerator{notes: notes},
	}
	track, err := loader.LoadTrack(nil, game.Normal)
	if nil != err {
		t.Fatal(err)
	}
	f := &fakeTime{}
	f.set(0)
	feedback := []score.Feedback{}
	s := New(track, Options{
		Clock:       clock.NewWithNow(f.now),
		OnJudgement: func(fb score.Feedback) { feedback = append(feedback, fb) },
	})
	return s, f, &feedback
}

func TestLoadTrackDecodeError(t *testing.T) {
	loader := &Loader{
		Decoder:   &fakeDecoder{err: &audio.DecodeError{Container: audio.Unknown, Err: errors.New("bad")}},
		Generator: &fixedGenerator{},
	}
	track, err := loader.LoadTrack([]byte("nope"), game.Easy)
	if nil != track {
		t.Error("expected no track")
	}
	var de *audio.DecodeError
	if !errors.As(err, &de) {
		t.Errorf("expected a DecodeError, got %v", err)
	}
	if loader.Generator.(*fixedGenerator).calls != 0 {
		t.Error("generator ran after a decode failure")
	}
}

func TestLoadTrackWAV(t *testing.T) {
	// A loud pulse at the start of every eighth window
	pcm := make([]int16, 8000*4)
	for i := 0; i < len(pcm); i += 8 * beatmap.WindowSize {
		pcm[i] = math.MaxInt16
	}
	loader := &Loader{Decoder: &audio.DefaultDecoder{}, Generator: beatmap.NewGenerator(9)}
	track, err := loader.LoadTrack(testdata.WAV(pcm, 8000), game.Easy)
	if nil != err {
		t.Fatal(err)
	}
	if track.Buffer.SampleRate != 8000 || len(track.Buffer.Samples) != len(pcm) {
		t.Errorf("unexpected buffer: %d Hz, %d samples", track.Buffer.SampleRate, len(track.Buffer.Samples))
	}
	// Pulses are 1.024s apart, the first one is too close to the start
	if len(track.Chart.Notes) < 3 {
		t.Errorf("expected notes from the pulses, got %d", len(track.Chart.Notes))
	}
}

func TestSetDifficultyRegenerates(t *testing.T) {
	g := &fixedGenerator{notes: []game.Note{{Time: time.Second}}}
	loader := &Loader{Decoder: &fakeDecoder{buffer: &audio.Buffer{SampleRate: 1}}, Generator: g}
	track, err := loader.LoadTrack(nil, game.Normal)
	if nil != err {
		t.Fatal(err)
	}
	track.SetDifficulty(game.Normal)
	if g.calls != 1 {
		t.Errorf("same difficulty regenerated, %d calls", g.calls)
	}
	track.SetDifficulty(game.Hard)
	if g.calls != 2 || track.Chart.Difficulty != game.Hard {
		t.Errorf("expected a hard chart, calls=%d difficulty=%v", g.calls, track.Chart.Difficulty.Name)
	}
}

func TestSessionFlow(t *testing.T) {
	s, f, feedback := newTestSession(t, []game.Note{
		{Lane: 0, Time: 1000 * ms},
		{Lane: 1, Kind: game.GoldNote, Time: 2000 * ms},
		{Lane: 2, Kind: game.MineNote, Time: 3000 * ms},
		{Lane: 3, Time: 4000 * ms},
		{Lane: 0, Time: 5000 * ms},
	})
	s.Start()

	f.set(1090 * ms)
	s.OnInput(0) // Perfect, 200
	f.set(1500 * ms)
	s.Pause()
	f.set(9 * time.Second)
	s.OnInput(1) // Ignored while paused
	if s.Tick() {
		t.Fatal("paused session ended")
	}
	s.Resume() // 7.5s paused
	if s.Elapsed() != 1500*ms {
		t.Fatalf("Elapsed = %v after resume, want 1.5s", s.Elapsed())
	}

	f.advance(500 * ms)
	s.OnInput(1) // Jackpot at 2000, 600 + 10
	f.advance(1000 * ms)
	s.OnInput(3) // Nothing on lane 3 near 3000
	for i := 0; i < 100; i++ {
		f.advance(16 * ms)
		if s.Tick() {
			t.Fatal("session ended early")
		}
	}
	// At 4.6s lane 3 at 4000 expired, the mine passed safely
	st := s.State()
	if st.Score != 810 || st.Combo != 0 || st.MaxCombo != 2 || st.Health != 90 {
		t.Errorf("unexpected state %+v", st)
	}

	f.advance(400 * ms)
	s.OnInput(0) // Perfect at 5000 with combo 0

	s.Finish()
	if !s.Tick() {
		t.Fatal("finished session should report ended")
	}
	r := s.End()
	if r.Score != 1010 || r.MaxCombo != 2 || r.Rank != score.RankS || r.Failed {
		t.Errorf("unexpected result %+v", r)
	}

	grades := []game.Grade{}
	for _, fb := range *feedback {
		grades = append(grades, fb.Grade)
	}
	expected := []game.Grade{game.Perfect, game.Jackpot, game.Miss, game.Perfect}
	if len(grades) != len(expected) {
		t.Fatalf("grades %v, want %v", grades, expected)
	}
	for i := range expected {
		if grades[i] != expected[i] {
			t.Errorf("grades %v, want %v", grades, expected)
			break
		}
	}
	if len(s.Inputs()) != 4 {
		t.Errorf("recorded %d inputs, want 4", len(s.Inputs()))
	}
	for _, n := range s.Chart().Notes[:4] {
		if n.Hit == n.Missed {
			t.Errorf("note %+v not resolved exactly once", *n)
		}
	}
}

func TestSessionHealthDepletion(t *testing.T) {
	notes := []game.Note{}
	for i := 0; i < 10; i++ {
		notes = append(notes, game.Note{Lane: uint8(i % 4), Time: time.Duration(i+1) * 500 * ms})
	}
	notes = append(notes, game.Note{Lane: 0, Time: time.Minute})
	s, f, _ := newTestSession(t, notes)
	s.Start()

	ended := false
	for e := time.Duration(0); e < 10*time.Second && !ended; e += 16 * ms {
		f.set(e)
		ended = s.Tick()
	}
	if !ended {
		t.Fatal("session did not end on depleted health")
	}
	r := s.End()
	if r.Health != 0 || r.Rank != score.RankF || !r.Failed {
		t.Errorf("unexpected result %+v", r)
	}
	// Over is over
	f.set(time.Minute)
	s.OnInput(0)
	if s.State().Score != 0 {
		t.Error("input accepted after the session ended")
	}
}

func TestPressRelease(t *testing.T) {
	s, f, _ := newTestSession(t, []game.Note{
		{Lane: 2, Time: 1000 * ms},
		{Lane: 2, Time: 1100 * ms},
	})
	s.Start()
	f.set(1000 * ms)
	s.Press(2)
	s.Press(2) // Held, key repeat
	if s.State().Combo != 1 {
		t.Fatalf("combo = %d, held lane pressed twice", s.State().Combo)
	}
	if lanes := s.ActiveLanes(); len(lanes) != 1 || lanes[0] != 2 {
		t.Errorf("ActiveLanes = %v", lanes)
	}
	s.Release(2)
	s.Press(2)
	if s.State().Combo != 2 {
		t.Errorf("combo = %d after release and press", s.State().Combo)
	}
}

func TestSetLanes(t *testing.T) {
	s, f, _ := newTestSession(t, []game.Note{
		{Lane: 0, Time: 1000 * ms},
		{Lane: 3, Time: 1000 * ms},
		{Lane: 3, Time: 1050 * ms},
	})
	s.Start()
	f.set(1000 * ms)
	s.SetLanes([]int{0, 3, 7})
	s.SetLanes([]int{3}) // Still held, no new press
	if st := s.State(); st.Combo != 2 {
		t.Errorf("combo = %d, want 2", st.Combo)
	}
	if lanes := s.ActiveLanes(); len(lanes) != 1 || lanes[0] != 3 {
		t.Errorf("ActiveLanes = %v", lanes)
	}
}

func TestInvalidLaneIgnored(t *testing.T) {
	s, f, _ := newTestSession(t, []game.Note{{Lane: 0, Time: time.Second}})
	s.Start()
	f.set(time.Second)
	for _, lane := range []int{-1, 4, 100} {
		s.OnInput(lane)
		s.Press(lane)
	}
	if st := s.State(); st != score.NewState() {
		t.Errorf("invalid lanes changed state %+v", st)
	}
	if len(s.Inputs()) != 0 {
		t.Error("invalid lanes were recorded")
	}
}

func TestRestartKeepsTrackPristine(t *testing.T) {
	s, f, _ := newTestSession(t, []game.Note{{Lane: 1, Time: time.Second}})
	s.Start()
	f.set(time.Second)
	s.OnInput(1)
	if s.track.Chart.Notes[0].Resolved() {
		t.Fatal("attempt mutated the loaded track")
	}

	f.set(time.Hour)
	s.Start()
	if s.State() != score.NewState() || s.Chart().Notes[0].Resolved() || s.Elapsed() != 0 {
		t.Error("restart did not reset the attempt")
	}
}

func TestEndBeforeTrackFinished(t *testing.T) {
	s, f, _ := newTestSession(t, []game.Note{{Lane: 0, Time: time.Second}})
	if s.Tick() {
		t.Error("unstarted session reported ended")
	}
	s.Start()
	f.set(2 * time.Second)
	s.Tick()
	r := s.End()
	if r.Health != 90 || r.Rank != score.RankS || r.Failed {
		t.Errorf("unexpected result %+v", r)
	}
}
