package tonekit

import (
	"io"

	"github.com/nullwave/tonekit/internal/audio"
	"github.com/nullwave/tonekit/internal/sound"
)

// Sound is the immutable stereo PCM buffer handed to LoadSound.
type Sound = sound.Sound

// DecodeOggVorbis decodes a complete OGG Vorbis stream into a Sound ready
// for LoadSound, per spec.md §6.
func DecodeOggVorbis(r io.Reader) (*Sound, error) {
	return audio.DecodeOggVorbis(r)
}
