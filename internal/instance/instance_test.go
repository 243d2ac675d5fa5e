package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/sound"
	"github.com/nullwave/tonekit/internal/tween"
)

func sineSound(sampleRate int, seconds float64) *sound.Sound {
	n := int(float64(sampleRate) * seconds)
	frames := make([]float32, n*2)
	for i := 0; i < n; i++ {
		frames[i*2] = 0.5
		frames[i*2+1] = 0.5
	}
	return &sound.Sound{SampleRate: sampleRate, Frames: frames}
}

func TestStoppedIsAbsorbing(t *testing.T) {
	snd := sineSound(100, 0.05) // 5 frames only, no loop -> stops fast
	inst := New(ids.InstanceId(1), ids.SoundId(1), DefaultSettings())
	dt := 1.0 / 100.0
	for i := 0; i < 10; i++ {
		inst.Step(dt, snd)
	}
	require.Equal(t, Stopped, inst.Playback())

	l, r := inst.Step(dt, snd)
	assert.Zero(t, l)
	assert.Zero(t, r)
	assert.Equal(t, Stopped, inst.Playback())
}

func TestFadeToStopScenario(t *testing.T) {
	// 2.0s sine sound at sample rate 1000 for resolution; play, then after
	// 0.5s wall time issue Stop(tween=linear 0.25s); at t=0.75s instance is
	// Stopped and output is silent from there on. Mirrors spec.md scenario 1.
	sr := 1000
	snd := sineSound(sr, 2.0)
	inst := New(ids.InstanceId(1), ids.SoundId(1), DefaultSettings())
	dt := 1.0 / float64(sr)

	steps := func(seconds float64) {
		n := int(seconds / dt)
		for i := 0; i < n; i++ {
			inst.Step(dt, snd)
		}
	}

	steps(0.5)
	inst.Stop(0.25, tween.Linear)
	require.Equal(t, Stopping, inst.Playback())

	steps(0.25)
	require.Equal(t, Stopped, inst.Playback())

	l, r := inst.Step(dt, snd)
	assert.Zero(t, l)
	assert.Zero(t, r)
}

func TestSeekToRoundTrip(t *testing.T) {
	snd := sineSound(1000, 2.0)
	inst := New(ids.InstanceId(1), ids.SoundId(1), DefaultSettings())
	inst.SeekTo(1.234)
	inst.Step(0, snd)
	assert.InDelta(t, 1.234, inst.Position, 1e-9)
}

func TestLoopWrapsPositionWithinWindow(t *testing.T) {
	sr := 1000
	snd := sineSound(sr, 4.0)
	loopStart := 1.0
	settings := DefaultSettings()
	settings.LoopStart = &loopStart
	inst := New(ids.InstanceId(1), ids.SoundId(1), settings)
	inst.SeekTo(3.9999)
	dt := 1.0 / float64(sr)
	inst.Step(dt, snd)
	assert.GreaterOrEqual(t, inst.Position, loopStart)
	assert.Less(t, inst.Position, snd.Duration())
	assert.NotEqual(t, Stopped, inst.Playback())
}

func TestPauseResumePrecedence(t *testing.T) {
	// open question (1): Pause arriving mid-Resume takes precedence.
	inst := New(ids.InstanceId(1), ids.SoundId(1), DefaultSettings())
	inst.Pause(1.0, tween.Linear)
	inst.Resume(1.0, tween.Linear)
	require.Equal(t, Resuming, inst.Playback())
	inst.Pause(1.0, tween.Linear)
	require.Equal(t, Pausing, inst.Playback())
}

func TestCommandsToStoppedAreNoOps(t *testing.T) {
	inst := New(ids.InstanceId(1), ids.SoundId(1), DefaultSettings())
	inst.Stop(0, nil) // zero duration, immediate
	snd := sineSound(100, 1)
	inst.Step(0.01, snd)
	require.Equal(t, Stopped, inst.Playback())

	inst.SetVolume(0.1, 0, nil)
	inst.Pause(0, nil)
	inst.Resume(0, nil)
	assert.Equal(t, Stopped, inst.Playback())
}

func TestMissingSoundStopsInstance(t *testing.T) {
	inst := New(ids.InstanceId(1), ids.SoundId(1), DefaultSettings())
	inst.Step(0.01, nil)
	assert.Equal(t, Stopped, inst.Playback())
}
