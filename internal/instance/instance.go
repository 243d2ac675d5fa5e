// Package instance implements Instance, one playing copy of a sound, its
// parameter tweens, and its playback state machine, plus Pool, the
// audio-thread-owned collection of all live instances and the mixer that
// sums them into a stereo output accumulator.
package instance

import (
	"math"
	"sync/atomic"

	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/param"
	"github.com/nullwave/tonekit/internal/sound"
	"github.com/nullwave/tonekit/internal/tween"
)

// Playback is the instance lifecycle state. Stopped is absorbing: no
// transition ever leaves it.
type Playback int

const (
	Playing Playback = iota
	Paused
	Stopped
	Pausing
	Stopping
	Resuming
)

// Settings configures a freshly created Instance. The zero value is not the
// documented default (its Volume, Pitch and Panning are 0); DefaultSettings()
// returns StartPosition 0, Volume 1, Pitch 1, Panning 0.5.
type Settings struct {
	StartPosition float64 // seconds
	Volume        float64
	Pitch         float64
	Panning       float64
	Reverse       bool
	LoopStart     *float64 // seconds; nil = no loop
}

// DefaultSettings returns the spec-mandated defaults.
func DefaultSettings() Settings {
	return Settings{StartPosition: 0, Volume: 1, Pitch: 1, Panning: 0.5}
}

// Instance is one playing copy of a Sound.
type Instance struct {
	ID       ids.InstanceId
	SoundID  ids.SoundId
	Position float64 // seconds
	Reverse  bool

	Volume  *param.Parameter
	Pitch   *param.Parameter
	Panning *param.Parameter
	Fade    *param.Parameter

	LoopStart *float64 // seconds; nil = no loop

	playback Playback

	// published is a single-writer snapshot for the control-thread handle:
	// bits 0-7 encode Playback, the rest is reserved. Written at the end of
	// every Step (once per frame) and by New, read-only from the control side.
	published atomic.Uint32
	// publishedPos mirrors Position for the handle, as math.Float64bits.
	publishedPos atomic.Uint64
}

// New constructs an Instance in state Playing with fade 1.0, per spec.md
// §4.3.
func New(id ids.InstanceId, soundID ids.SoundId, settings Settings) *Instance {
	inst := &Instance{
		ID:        id,
		SoundID:   soundID,
		Position:  settings.StartPosition,
		Reverse:   settings.Reverse,
		Volume:    param.New(settings.Volume),
		Pitch:     param.New(settings.Pitch),
		Panning:   param.New(settings.Panning),
		Fade:      param.New(1.0),
		LoopStart: settings.LoopStart,
		playback:  Playing,
	}
	inst.publish()
	return inst
}

// Playback returns the current playback state.
func (inst *Instance) Playback() Playback { return inst.playback }

func (inst *Instance) publish() {
	inst.published.Store(uint32(inst.playback))
	inst.publishedPos.Store(math.Float64bits(inst.Position))
}

// PublishedState is read from the control thread: a lock-free snapshot of
// playback state and position as of the last-completed callback block.
func (inst *Instance) PublishedState() (Playback, float64) {
	pb := Playback(inst.published.Load())
	pos := math.Float64bits(0)
	pos = inst.publishedPos.Load()
	return pb, math.Float64frombits(pos)
}

// SetVolume retargets the volume parameter. No-op if Stopped.
func (inst *Instance) SetVolume(target, duration float64, ease tween.Easing) {
	if inst.playback == Stopped {
		return
	}
	inst.Volume.Set(target, duration, ease)
}

// SetPitch retargets the pitch parameter. No-op if Stopped.
func (inst *Instance) SetPitch(target, duration float64, ease tween.Easing) {
	if inst.playback == Stopped {
		return
	}
	inst.Pitch.Set(target, duration, ease)
}

// SetPanning retargets the panning parameter. No-op if Stopped.
func (inst *Instance) SetPanning(target, duration float64, ease tween.Easing) {
	if inst.playback == Stopped {
		return
	}
	inst.Panning.Set(target, duration, ease)
}

// Pause transitions Playing/Resuming -> Pausing, fading to 0. No-op
// otherwise (including when already Paused/Pausing/Stopping/Stopped).
func (inst *Instance) Pause(duration float64, ease tween.Easing) {
	switch inst.playback {
	case Playing, Resuming:
		inst.playback = Pausing
		inst.Fade.Set(0, duration, ease)
	}
}

// Resume transitions Paused/Pausing -> Resuming, fading to 1. Together with
// Pause (above), which accepts from Resuming, the most recent of the two
// decides the fade direction: a Pause mid-Resume re-enters Pausing, and a
// Resume mid-Pause re-enters Resuming.
func (inst *Instance) Resume(duration float64, ease tween.Easing) {
	switch inst.playback {
	case Paused, Pausing:
		inst.playback = Resuming
		inst.Fade.Set(1, duration, ease)
	}
}

// Stop transitions any non-Stopped state to Stopping, fading to 0. With a
// duration <= 0 it goes straight to Stopped.
func (inst *Instance) Stop(duration float64, ease tween.Easing) {
	if inst.playback == Stopped {
		return
	}
	inst.Fade.Set(0, duration, ease)
	if duration <= 0 {
		inst.playback = Stopped
		return
	}
	inst.playback = Stopping
}

// SeekTo sets the playback position directly, in seconds.
func (inst *Instance) SeekTo(seconds float64) {
	inst.Position = seconds
}

// SeekBy adjusts the playback position by a relative number of seconds.
func (inst *Instance) SeekBy(deltaSeconds float64) {
	inst.Position += deltaSeconds
}

// Step advances the instance by one audio frame (dt = 1/sampleRate) per
// spec.md §4.3 and returns its contribution to the stereo accumulator.
// snd is nil if the instance's sound was unloaded while still referenced;
// per spec.md §4.2 that transitions the instance to Stopped.
func (inst *Instance) Step(dt float64, snd *sound.Sound) (l, r float32) {
	defer inst.publish()

	if snd == nil {
		inst.playback = Stopped
		return 0, 0
	}

	inst.Volume.Step(dt)
	inst.Pitch.Step(dt)
	inst.Panning.Step(dt)
	fade := inst.Fade.Step(dt)

	if (inst.playback == Pausing || inst.playback == Stopping) && fade <= 0 && !inst.Fade.Active() {
		if inst.playback == Pausing {
			inst.playback = Paused
		} else {
			inst.playback = Stopped
		}
	}

	if inst.playback == Stopped || inst.playback == Paused {
		return 0, 0
	}

	p := inst.Pitch.Value
	if inst.Reverse {
		inst.Position -= dt * p
	} else {
		inst.Position += dt * p
	}

	duration := snd.Duration()
	pastEnd := (!inst.Reverse && inst.Position >= duration) || (inst.Reverse && inst.Position < 0)
	if pastEnd {
		if inst.LoopStart != nil {
			inst.Position = wrapIntoLoop(inst.Position, *inst.LoopStart, duration)
		} else {
			inst.playback = Stopped
			return 0, 0
		}
	}

	sl, sr := snd.SampleAt(inst.Position * float64(snd.SampleRate))
	gain := float32(inst.Volume.Value * fade)
	pan := float32(inst.Panning.Value)
	outL := sl * (1 - pan) * gain
	outR := sr * pan * gain
	return outL, outR
}

// wrapIntoLoop wraps a playback position that has run past the end of a
// sound back into [loopStart, duration), per spec.md §4.3 step 5 and the
// open question (2): seeking past end with a loop configured wraps into the
// loop window.
func wrapIntoLoop(position, loopStart, duration float64) float64 {
	span := duration - loopStart
	if span <= 0 {
		return loopStart
	}
	offset := position - loopStart
	offset = math.Mod(offset, span)
	if offset < 0 {
		offset += span
	}
	return loopStart + offset
}
