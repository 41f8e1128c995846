package testdata

import (
	"bytes"
	"encoding/binary"
	"math"
)

const WindowSize = 1024

// Pulses builds a buffer whose onset windows start with the given
// amplitudes, every other sample is silent.
func Pulses(amplitudes []float64) []float64 {
	samples := make([]float64, len(amplitudes)*WindowSize)
	for i, a := range amplitudes {
		samples[i*WindowSize] = a
	}
	return samples
}

// Song is a deterministic pseudo musical buffer: a decaying beat every
// beatWindows windows with a slow swell on top.
func Song(windows, beatWindows int) []float64 {
	amps := make([]float64, windows)
	for i := range amps {
		swell := 0.5 + 0.5*math.Sin(float64(i)/37)
		if beatWindows > 0 && i%beatWindows == 0 {
			amps[i] = 0.3 + 0.6*swell
		} else {
			amps[i] = 0.25 * swell * math.Abs(math.Sin(float64(i)*1.7))
		}
	}
	return Pulses(amps)
}

// WAV encodes mono 16-bit PCM samples as a canonical RIFF/WAVE file.
func WAV(samples []int16, sampleRate int) []byte {
	var buf bytes.Buffer
	dataSize := uint32(len(samples) * 2)
	w := func(v interface{}) {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	buf.WriteString("RIFF")
	w(36 + dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	w(uint32(16))
	w(uint16(1)) // PCM
	w(uint16(1)) // Mono
	w(uint32(sampleRate))
	w(uint32(sampleRate * 2))
	w(uint16(2))
	w(uint16(16))
	buf.WriteString("data")
	w(dataSize)
	w(samples)
	return buf.Bytes()
}
