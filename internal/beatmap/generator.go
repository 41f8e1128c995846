package beatmap

import "git.lost.host/meutraa/onset/internal/game"

type Generator interface {
	Generate(samples []float64, sampleRate int, difficulty game.Difficulty) *game.Chart
}

// Rand is the randomness consumed by the generator. *rand.Rand from
// math/rand satisfies it, Read feeds the note ids.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Read(p []byte) (n int, err error)
}
