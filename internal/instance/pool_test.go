package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/sound"
)

func TestPoolBroadcastStopAllOfSound(t *testing.T) {
	pool := NewPool(4)
	soundID := ids.SoundId(1)
	a := pool.Play(ids.InstanceId(1), soundID, DefaultSettings())
	b := pool.Play(ids.InstanceId(2), soundID, DefaultSettings())
	other := pool.Play(ids.InstanceId(3), ids.SoundId(2), DefaultSettings())

	pool.StopAllOfSound(soundID, 0, nil) // zero duration: Stopped at once

	assert.Equal(t, Stopped, a.Playback())
	assert.Equal(t, Stopped, b.Playback())
	assert.Equal(t, Playing, other.Playback())
}

func TestPoolStepRemovesStoppedInstances(t *testing.T) {
	pool := NewPool(4)
	store := sound.NewStore()
	snd := &sound.Sound{SampleRate: 100, Frames: make([]float32, 10*2)} // 0.1s
	store.Load(1, snd)
	pool.Play(ids.InstanceId(1), ids.SoundId(1), DefaultSettings())

	require.Equal(t, 1, pool.Len())
	for i := 0; i < 50; i++ {
		pool.Step(1.0/100.0, store)
	}
	assert.Equal(t, 0, pool.Len())
}

func TestPoolUnknownIdLookupFails(t *testing.T) {
	pool := NewPool(1)
	_, ok := pool.Get(ids.InstanceId(999))
	assert.False(t, ok)
}
