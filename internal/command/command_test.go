package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/instance"
	"github.com/nullwave/tonekit/internal/sound"
	"github.com/nullwave/tonekit/internal/tween"
)

func TestPlaySoundBuildsInstancePlayCommand(t *testing.T) {
	c := PlaySound(ids.InstanceId(1), ids.SoundId(2), instance.DefaultSettings())
	assert.Equal(t, InstancePlay, c.Kind)
	assert.Equal(t, ids.InstanceId(1), c.InstanceID)
	assert.Equal(t, ids.SoundId(2), c.SoundID)
}

func TestSetVolumeCarriesTweenFields(t *testing.T) {
	c := SetVolume(ids.InstanceId(1), 0.5, 2.0, tween.Linear)
	assert.Equal(t, InstanceSetVolume, c.Kind)
	assert.Equal(t, 0.5, c.Target)
	assert.Equal(t, 2.0, c.Duration)
	assert.NotNil(t, c.Ease)
}

func TestLoadCarriesSoundPointer(t *testing.T) {
	snd := &sound.Sound{SampleRate: 100}
	c := Load(ids.SoundId(1), snd)
	assert.Equal(t, SoundLoad, c.Kind)
	assert.Same(t, snd, c.Sound)
}

func TestCustomCarriesArbitraryPayload(t *testing.T) {
	c := Custom(struct{ X int }{X: 7})
	assert.Equal(t, CustomEvent, c.Kind)
	assert.Equal(t, 7, c.Custom.(struct{ X int }).X)
}

func TestSeekToAndSeekByCarryTargetSeconds(t *testing.T) {
	to := SeekTo(ids.InstanceId(1), 3.5)
	assert.Equal(t, InstanceSeekTo, to.Kind)
	assert.Equal(t, 3.5, to.Target)

	by := SeekBy(ids.InstanceId(1), -1.25)
	assert.Equal(t, InstanceSeekBy, by.Kind)
	assert.Equal(t, -1.25, by.Target)
}

func TestAddAndRemoveMetronomeIntervalCarryBeats(t *testing.T) {
	add := AddMetronomeInterval(0.5)
	assert.Equal(t, MetronomeAddInterval, add.Kind)
	assert.Equal(t, 0.5, add.Target)

	remove := RemoveMetronomeInterval(0.5)
	assert.Equal(t, MetronomeRemoveInterval, remove.Kind)
	assert.Equal(t, 0.5, remove.Target)
}
