package session

import (
	"time"

	"git.lost.host/meutraa/onset/internal/clock"
	"git.lost.host/meutraa/onset/internal/game"
	"git.lost.host/meutraa/onset/internal/log"
	"git.lost.host/meutraa/onset/internal/score"
)

type Options struct {
	Windows game.Windows
	Clock   *clock.Clock
	Log     *log.Logger

	// OnJudgement receives hit, mine and miss feedback.
	OnJudgement func(score.Feedback)
}

// Result is what is left of an attempt once it is over.
type Result struct {
	Score    int
	MaxCombo int
	Health   int
	Rank     score.Rank
	Failed   bool
	Counts   [game.Ouch + 1]int
	Mean     time.Duration
	Stdev    time.Duration
}

// Session is one play attempt over a Track. It is driven from a single
// goroutine and never blocks.
type Session struct {
	track   *Track
	windows game.Windows
	clock   *clock.Clock
	log     *log.Logger
	notify  func(score.Feedback)

	chart   *game.Chart // This attempt's copy of the note flags
	scorer  *score.DefaultScorer
	active  [game.Lanes]bool
	inputs  []game.Input
	started bool

	trackEnded bool
	outcome    score.Outcome
}

func New(track *Track, opts Options) *Session {
	if opts.Windows == (game.Windows{}) {
		opts.Windows = game.DefaultWindows()
	}
	if nil == opts.Clock {
		opts.Clock = clock.New()
	}
	return &Session{
		track:   track,
		windows: opts.Windows,
		clock:   opts.Clock,
		log:     log.OrDiscard(opts.Log),
		notify:  opts.OnJudgement,
	}
}

// Start begins a fresh attempt, discarding any previous one.
func (s *Session) Start() {
	s.chart = s.track.Chart.Clone()
	s.scorer = score.NewScorer(s.chart, s.windows)
	s.scorer.OnJudgement = s.notify
	s.active = [game.Lanes]bool{}
	s.inputs = nil
	s.trackEnded = false
	s.outcome = score.Outcome{}
	s.started = true
	s.clock.Start()
	s.log.Debugf("session started with %d notes", len(s.chart.Notes))
}

func (s *Session) Pause() {
	s.clock.Pause()
}

func (s *Session) Resume() {
	s.clock.Resume()
}

func (s *Session) Paused() bool {
	return s.clock.Paused()
}

func (s *Session) live() bool {
	return s.started && !s.outcome.Ended && !s.clock.Paused()
}

func (s *Session) evaluate() {
	s.outcome = score.Evaluate(s.scorer.State(), s.trackEnded)
}

// OnInput handles one discrete press on lane.
func (s *Session) OnInput(lane int) {
	if !game.ValidLane(lane) {
		s.log.Debugf("ignoring input: %v", &game.InvalidLaneError{Lane: lane})
		return
	}
	if !s.live() {
		return
	}
	input := game.Input{Lane: lane, Time: s.clock.Elapsed()}
	s.inputs = append(s.inputs, input)
	s.scorer.ApplyInput(input)
	s.evaluate()
}

// Press is OnInput for sources that repeat while a lane is held, only
// the first press of a hold counts.
func (s *Session) Press(lane int) {
	if !game.ValidLane(lane) || s.active[lane] {
		return
	}
	s.active[lane] = true
	s.OnInput(lane)
}

func (s *Session) Release(lane int) {
	if game.ValidLane(lane) {
		s.active[lane] = false
	}
}

// SetLanes replaces the held lanes, pressing those that were not held.
func (s *Session) SetLanes(lanes []int) {
	var next [game.Lanes]bool
	for _, lane := range lanes {
		if game.ValidLane(lane) {
			next[lane] = true
		}
	}
	for lane, held := range next {
		if held && !s.active[lane] {
			s.OnInput(lane)
		}
	}
	s.active = next
}

func (s *Session) ActiveLanes() []int {
	lanes := []int{}
	for lane, held := range s.active {
		if held {
			lanes = append(lanes, lane)
		}
	}
	return lanes
}

// Tick runs the per frame miss sweep and reports whether the attempt is
// over.
func (s *Session) Tick() bool {
	if !s.started {
		return false
	}
	if !s.live() {
		return s.outcome.Ended
	}
	s.scorer.Sweep(s.clock.Elapsed())
	s.evaluate()
	return s.outcome.Ended
}

// Finish signals that the track played to its end.
func (s *Session) Finish() {
	if !s.started || s.outcome.Ended {
		return
	}
	s.trackEnded = true
	s.evaluate()
}

// End stops the attempt, ranking it on the current health if it was
// still running.
func (s *Session) End() Result {
	if !s.started {
		return Result{Rank: score.RankF}
	}
	if !s.outcome.Ended {
		s.trackEnded = true
		s.evaluate()
	}
	st := s.scorer.State()
	r := Result{
		Score:    st.Score,
		MaxCombo: st.MaxCombo,
		Health:   st.Health,
		Rank:     s.outcome.Rank,
		Failed:   s.outcome.Failed,
		Counts:   st.Counts,
		Mean:     s.scorer.Mean(),
		Stdev:    s.scorer.Stdev(),
	}
	s.log.Infof("session ended: score %d, max combo %d, health %d, rank %s", r.Score, r.MaxCombo, r.Health, r.Rank)
	return r
}

func (s *Session) Ended() bool {
	return s.outcome.Ended
}

func (s *Session) Elapsed() time.Duration {
	return s.clock.Elapsed()
}

func (s *Session) State() score.State {
	if nil == s.scorer {
		return score.NewState()
	}
	return s.scorer.State()
}

// Chart is the attempt's note sequence, nil before Start.
func (s *Session) Chart() *game.Chart {
	return s.chart
}

// Inputs are the presses of this attempt, usable with score.Replay.
func (s *Session) Inputs() []game.Input {
	return s.inputs
}
