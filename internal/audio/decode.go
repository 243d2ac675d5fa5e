package audio

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/nullwave/tonekit/internal/sound"
)

// DecodeOggVorbis decodes a complete OGG Vorbis stream into a Sound, per
// spec.md §6: mono files are duplicated to both channels; anything beyond
// mono/stereo is rejected rather than silently downmixed.
func DecodeOggVorbis(r io.Reader) (*sound.Sound, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode ogg vorbis: %w", err)
	}
	if format.Channels != 1 && format.Channels != 2 {
		return nil, fmt.Errorf("decode ogg vorbis: unsupported channel count %d", format.Channels)
	}

	frameCount := len(samples) / format.Channels
	frames := make([]float32, frameCount*2)
	if format.Channels == 2 {
		copy(frames, samples)
	} else {
		for i := 0; i < frameCount; i++ {
			frames[i*2] = samples[i]
			frames[i*2+1] = samples[i]
		}
	}

	return &sound.Sound{
		Frames:     frames,
		SampleRate: format.SampleRate,
	}, nil
}
