package score

type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankF Rank = "F"
)

// RankFor grades a finished attempt by its remaining health.
func RankFor(health int) Rank {
	switch {
	case health > 80:
		return RankS
	case health > 60:
		return RankA
	case health > 40:
		return RankB
	case health > 0:
		return RankC
	}
	return RankF
}

type Outcome struct {
	Ended  bool
	Failed bool // Health ran out before the track finished
	Rank   Rank
}

// Evaluate decides whether the attempt is over. Depleted health ends it
// regardless of the remaining notes, otherwise it ends with the track.
func Evaluate(state State, trackEnded bool) Outcome {
	if state.Failed() {
		return Outcome{Ended: true, Failed: true, Rank: RankF}
	}
	if trackEnded {
		return Outcome{Ended: true, Rank: RankFor(state.Health)}
	}
	return Outcome{}
}
