package audio

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

type Container string

const (
	WAV     Container = "wav"
	MP3     Container = "mp3"
	Vorbis  Container = "ogg"
	Unknown Container = "unknown"
)

// DecodeError is returned for malformed or unsupported audio. No samples
// are produced when it is returned.
type DecodeError struct {
	Container Container
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode %s audio: %v", e.Container, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type Decoder interface {
	Decode(data []byte) (*Buffer, error)
}

// Buffer is a fully decoded track.
type Buffer struct {
	Samples    []float64 // First channel amplitudes in [-1, 1]
	SampleRate int

	pcm *beep.Buffer
}

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.SampleRate)
}

// Sniff identifies the container from its magic bytes.
func Sniff(data []byte) Container {
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return WAV
	case len(data) >= 4 && bytes.Equal(data[0:4], []byte("OggS")):
		return Vorbis
	case len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")):
		return MP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// MPEG frame sync
		return MP3
	}
	return Unknown
}

type DefaultDecoder struct{}

func (d *DefaultDecoder) open(c Container, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	rc := io.NopCloser(bytes.NewReader(data))
	switch c {
	case WAV:
		return wav.Decode(bytes.NewReader(data))
	case MP3:
		return mp3.Decode(rc)
	case Vorbis:
		return vorbis.Decode(rc)
	}
	return nil, beep.Format{}, errors.New("unrecognised container")
}

func (d *DefaultDecoder) Decode(data []byte) (*Buffer, error) {
	c := Sniff(data)
	streamer, format, err := d.open(c, data)
	if nil != err {
		return nil, &DecodeError{Container: c, Err: errors.Wrapf(err, "%d bytes", len(data))}
	}
	defer streamer.Close()

	if format.SampleRate <= 0 {
		return nil, &DecodeError{Container: c, Err: errors.Errorf("invalid sample rate %d", format.SampleRate)}
	}

	pcm := beep.NewBuffer(format)
	pcm.Append(streamer)
	if err := streamer.Err(); nil != err {
		return nil, &DecodeError{Container: c, Err: errors.Wrap(err, "stream")}
	}

	return &Buffer{
		Samples:    firstChannel(pcm),
		SampleRate: int(format.SampleRate),
		pcm:        pcm,
	}, nil
}

func firstChannel(pcm *beep.Buffer) []float64 {
	samples := make([]float64, 0, pcm.Len())
	s := pcm.Streamer(0, pcm.Len())
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for _, frame := range chunk[:n] {
			samples = append(samples, frame[0])
		}
		if !ok {
			break
		}
	}
	return samples
}
