package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/onset/internal/game"
)

type DefaultScorer struct {
	chart   *game.Chart
	windows game.Windows
	state   State

	lanes      [game.Lanes][]*game.Note // Time ordered notes per lane
	laneCursor [game.Lanes]int          // First possibly pending note per lane
	sweep      int                      // First note the sweep has not passed

	// Running sums of hit distances for the error statistics
	hits          int
	sumOfDistance float64
	sumOfSquares  float64

	// OnJudgement is called for every hit, mine and miss.
	OnJudgement func(Feedback)
}

func NewScorer(chart *game.Chart, windows game.Windows) *DefaultScorer {
	s := &DefaultScorer{chart: chart, windows: windows}
	for _, n := range chart.Notes {
		if game.ValidLane(int(n.Lane)) {
			s.lanes[n.Lane] = append(s.lanes[n.Lane], n)
		}
	}
	s.Reset()
	return s
}

// Reset clears all note flags and totals for a new attempt.
func (s *DefaultScorer) Reset() {
	for _, n := range s.chart.Notes {
		n.Reset()
	}
	s.state = NewState()
	s.laneCursor = [game.Lanes]int{}
	s.sweep = 0
	s.hits = 0
	s.sumOfDistance, s.sumOfSquares = 0, 0
}

func (s *DefaultScorer) State() State {
	return s.state
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// Distance is positive when the note is still ahead of the hit line.
func Distance(n *game.Note, elapsed time.Duration) time.Duration {
	return n.Time - elapsed
}

func (s *DefaultScorer) damage(amount int) {
	s.state.Health -= amount
	if s.state.Health < 0 {
		s.state.Health = 0
	}
}

func (s *DefaultScorer) emit(f Feedback) {
	s.state.Counts[f.Grade]++
	if nil != s.OnJudgement {
		s.OnJudgement(f)
	}
}

func (s *DefaultScorer) find(lane int, elapsed time.Duration) *game.Note {
	notes := s.lanes[lane]
	cursor := s.laneCursor[lane]
	for cursor < len(notes) && notes[cursor].Resolved() {
		cursor++
	}
	s.laneCursor[lane] = cursor

	for _, note := range notes[cursor:] {
		if note.Resolved() {
			continue
		}
		d := Distance(note, elapsed)
		if d >= s.windows.Good {
			// Every later note is further away
			break
		}
		if -d < s.windows.Good {
			return note
		}
		// Too late for this one, the sweep has not reached it yet
	}
	return nil
}

func (s *DefaultScorer) ApplyInput(input game.Input) *Feedback {
	if !game.ValidLane(input.Lane) {
		return nil
	}
	note := s.find(input.Lane, input.Time)
	if nil == note {
		return nil
	}
	note.Hit = true

	f := Feedback{Note: note, Distance: Distance(note, input.Time)}
	if note.Kind == game.MineNote {
		f.Grade = game.Ouch
		s.state.Combo = 0
		s.damage(MinePenalty)
		s.emit(f)
		return &f
	}

	value := NormalValue
	if note.Kind == game.GoldNote {
		value = GoldValue
	}
	if abs(f.Distance) < s.windows.Perfect {
		f.Points = value*2 + s.state.Combo*10
		f.Grade = game.Perfect
		if note.Kind == game.GoldNote {
			f.Grade = game.Jackpot
		}
	} else {
		f.Points = value + s.state.Combo*5
		f.Grade = game.Good
	}
	s.state.Score += f.Points
	s.state.Combo++
	if s.state.Combo > s.state.MaxCombo {
		s.state.MaxCombo = s.state.Combo
	}

	s.hits++
	d := float64(f.Distance)
	s.sumOfDistance += d
	s.sumOfSquares += d * d

	s.emit(f)
	return &f
}

func (s *DefaultScorer) Sweep(elapsed time.Duration) int {
	limit := elapsed - s.windows.MissAfter
	notes := s.chart.Notes
	marked := 0
	for s.sweep < len(notes) && notes[s.sweep].Time < limit {
		note := notes[s.sweep]
		s.sweep++
		if note.Resolved() {
			continue
		}
		note.Missed = true
		marked++
		if note.Kind == game.MineNote {
			// Letting a mine pass is the desired outcome
			continue
		}
		s.state.Combo = 0
		s.damage(MissPenalty)
		s.emit(Feedback{Note: note, Grade: game.Miss})
	}
	return marked
}

// Mean is the average signed hit distance.
func (s *DefaultScorer) Mean() time.Duration {
	if s.hits == 0 {
		return 0
	}
	return time.Duration(s.sumOfDistance / float64(s.hits))
}

// Stdev is the sample standard deviation of the hit distances.
func (s *DefaultScorer) Stdev() time.Duration {
	if s.hits < 2 {
		return 0
	}
	n := float64(s.hits)
	mean := s.sumOfDistance / n
	variance := (s.sumOfSquares - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return time.Duration(math.Sqrt(variance))
}

// Replay applies recorded inputs to a fresh copy of chart, sweeping up to
// each input first, and returns the final state. Sweep granularity is per
// input rather than per frame.
func Replay(chart *game.Chart, inputs []game.Input, windows game.Windows) State {
	s := NewScorer(chart.Clone(), windows)
	for _, input := range inputs {
		s.Sweep(input.Time)
		if s.state.Failed() {
			return s.state
		}
		s.ApplyInput(input)
		if s.state.Failed() {
			return s.state
		}
	}
	s.Sweep(math.MaxInt64)
	return s.state
}
