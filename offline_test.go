package tonekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSecondsProducesNonSilentBuffer(t *testing.T) {
	const sampleRate = 100
	m := NewHeadless(sampleRate)
	snd := &Sound{Frames: make([]float32, sampleRate*2), SampleRate: sampleRate}
	for i := range snd.Frames {
		snd.Frames[i] = 0.5
	}
	soundID, err := m.LoadSound(snd)
	require.NoError(t, err)
	process(m, 1)

	_, err = m.PlaySound(soundID, DefaultInstanceSettings())
	require.NoError(t, err)

	out := RenderSeconds(m, 0.5)
	require.Len(t, out, sampleRate/2*2)

	nonZero := false
	for _, s := range out {
		if s != 0 {
			nonZero = true
			break
		}
	}
	assert.True(t, nonZero, "rendered buffer should contain the playing instance's contribution")
}

func TestEncodeWAVFloat32LEHeaderFields(t *testing.T) {
	samples := []float32{0.1, -0.1, 0.2, -0.2}
	wav := EncodeWAVFloat32LE(samples, 48000, 2)
	require.Len(t, wav, 44+len(samples)*4)
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "data", string(wav[36:40]))
}
