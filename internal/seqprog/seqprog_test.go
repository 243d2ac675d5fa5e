package seqprog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullwave/tonekit/internal/duration"
	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/instance"
)

func TestEffectiveMaxCommandsPerTickDefaultsWhenUnset(t *testing.T) {
	p := Program{}
	assert.Equal(t, defaultMaxCommandsPerTick, p.EffectiveMaxCommandsPerTick())

	p.MaxCommandsPerTick = 4
	assert.Equal(t, 4, p.EffectiveMaxCommandsPerTick())
}

func TestBuildLoopSoundMatchesWorkedScenario(t *testing.T) {
	// spec.md scenario 2: sound 4.0s, authored tempo 120 BPM, semantic
	// duration 8 beats (= 4s at 120bpm). loop_settings {start: Beats(2),
	// end: Beats(6)} -> start=1s, end=3s, period=2s. First looped play
	// begins at t=2s (lead-in wait) with position=1s; next at t=4s.
	start := duration.OfBeats(2)
	end := duration.OfBeats(6)
	loop := LoopSettings{Start: &start, End: &end}
	settings := instance.Settings{StartPosition: 0, Volume: 1, Pitch: 1, Panning: 0.5}

	prog := BuildLoopSound(ids.SoundId(1), loop, settings, 4.0, 120)

	require.Len(t, prog.Steps, 5)
	assert.Equal(t, StepPlaySound, prog.Steps[0].Kind)
	assert.Equal(t, 0.0, prog.Steps[0].Settings.StartPosition)

	assert.Equal(t, StepWait, prog.Steps[1].Kind)
	assert.InDelta(t, 2.0, prog.Steps[1].Wait.InSeconds(120), 1e-9)

	assert.Equal(t, StepStartLoop, prog.Steps[2].Kind)

	assert.Equal(t, StepPlaySound, prog.Steps[3].Kind)
	assert.InDelta(t, 1.0, prog.Steps[3].Settings.StartPosition, 1e-9)

	assert.Equal(t, StepWait, prog.Steps[4].Kind)
	assert.InDelta(t, 2.0, prog.Steps[4].Wait.InSeconds(120), 1e-9)
}

func TestBuildLoopSoundDefaultsStartAndEndFromSound(t *testing.T) {
	settings := instance.DefaultSettings()
	prog := BuildLoopSound(ids.SoundId(1), LoopSettings{}, settings, 4.0, 120)
	assert.InDelta(t, 4.0, prog.Steps[1].Wait.InSeconds(120), 1e-9)
}
