// Package command defines the typed commands that flow from the control
// thread to the audio thread over the command ring, per spec.md §4.1.
package command

import (
	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/instance"
	"github.com/nullwave/tonekit/internal/seqprog"
	"github.com/nullwave/tonekit/internal/sound"
	"github.com/nullwave/tonekit/internal/tween"
)

// Kind discriminates the Command union. Grouped per spec.md §4.1:
// Sound{Load,Unload}, Instance{...}, Metronome{...}, Sequence{...},
// EmitCustomEvent.
type Kind int

const (
	SoundLoad Kind = iota
	SoundUnload

	InstancePlay
	InstanceSetVolume
	InstanceSetPitch
	InstanceSetPanning
	InstancePause
	InstanceResume
	InstanceStop
	InstanceSeekTo
	InstanceSeekBy
	InstancePauseAllOfSound
	InstanceResumeAllOfSound
	InstanceStopAllOfSound

	MetronomeSetTempo
	MetronomeStart
	MetronomePause
	MetronomeStop
	MetronomeAddInterval
	MetronomeRemoveInterval

	SequenceStart
	SequenceMute
	SequenceUnmute
	SequencePause
	SequenceResume
	SequenceStop

	CustomEvent
)

// Command is a single flat struct carrying every command kind's payload, a
// superset left zero when unused -- mirrors the flat-event style the
// teacher corpus uses for its own timeline events, and keeps Command a
// plain value type cheap to copy through the ring with no allocation.
type Command struct {
	Kind Kind

	SoundID    ids.SoundId
	InstanceID ids.InstanceId
	SequenceID ids.SequenceId

	Sound    *sound.Sound      // SoundLoad
	Settings instance.Settings // InstancePlay

	Target   float64       // volume/pitch/panning/tempo/seek/interval target
	Duration float64       // tween duration in seconds, already resolved
	Ease     tween.Easing  // tween easing, nil = Linear

	Program seqprog.Program // SequenceStart

	Custom any // CustomEvent payload
}

// PlaySound builds an InstancePlay command.
func PlaySound(instanceID ids.InstanceId, soundID ids.SoundId, settings instance.Settings) Command {
	return Command{Kind: InstancePlay, InstanceID: instanceID, SoundID: soundID, Settings: settings}
}

// SetVolume builds an InstanceSetVolume command.
func SetVolume(instanceID ids.InstanceId, target, durationSeconds float64, ease tween.Easing) Command {
	return Command{Kind: InstanceSetVolume, InstanceID: instanceID, Target: target, Duration: durationSeconds, Ease: ease}
}

// SetPitch builds an InstanceSetPitch command.
func SetPitch(instanceID ids.InstanceId, target, durationSeconds float64, ease tween.Easing) Command {
	return Command{Kind: InstanceSetPitch, InstanceID: instanceID, Target: target, Duration: durationSeconds, Ease: ease}
}

// SetPanning builds an InstanceSetPanning command.
func SetPanning(instanceID ids.InstanceId, target, durationSeconds float64, ease tween.Easing) Command {
	return Command{Kind: InstanceSetPanning, InstanceID: instanceID, Target: target, Duration: durationSeconds, Ease: ease}
}

// Pause builds an InstancePause command.
func Pause(instanceID ids.InstanceId, durationSeconds float64, ease tween.Easing) Command {
	return Command{Kind: InstancePause, InstanceID: instanceID, Duration: durationSeconds, Ease: ease}
}

// Resume builds an InstanceResume command.
func Resume(instanceID ids.InstanceId, durationSeconds float64, ease tween.Easing) Command {
	return Command{Kind: InstanceResume, InstanceID: instanceID, Duration: durationSeconds, Ease: ease}
}

// Stop builds an InstanceStop command.
func Stop(instanceID ids.InstanceId, durationSeconds float64, ease tween.Easing) Command {
	return Command{Kind: InstanceStop, InstanceID: instanceID, Duration: durationSeconds, Ease: ease}
}

// SeekTo builds an InstanceSeekTo command; Target carries the absolute
// position in seconds.
func SeekTo(instanceID ids.InstanceId, seconds float64) Command {
	return Command{Kind: InstanceSeekTo, InstanceID: instanceID, Target: seconds}
}

// SeekBy builds an InstanceSeekBy command; Target carries the relative
// offset in seconds.
func SeekBy(instanceID ids.InstanceId, deltaSeconds float64) Command {
	return Command{Kind: InstanceSeekBy, InstanceID: instanceID, Target: deltaSeconds}
}

// AddMetronomeInterval builds a MetronomeAddInterval command; Target
// carries the interval, in beats.
func AddMetronomeInterval(beats float64) Command {
	return Command{Kind: MetronomeAddInterval, Target: beats}
}

// RemoveMetronomeInterval builds a MetronomeRemoveInterval command; Target
// carries the interval, in beats.
func RemoveMetronomeInterval(beats float64) Command {
	return Command{Kind: MetronomeRemoveInterval, Target: beats}
}

// Load builds a SoundLoad command.
func Load(soundID ids.SoundId, s *sound.Sound) Command {
	return Command{Kind: SoundLoad, SoundID: soundID, Sound: s}
}

// Unload builds a SoundUnload command.
func Unload(soundID ids.SoundId) Command {
	return Command{Kind: SoundUnload, SoundID: soundID}
}

// StartSequence builds a SequenceStart command.
func StartSequence(sequenceID ids.SequenceId, program seqprog.Program) Command {
	return Command{Kind: SequenceStart, SequenceID: sequenceID, Program: program}
}

// Custom builds an Emit CustomEvent command.
func Custom(payload any) Command {
	return Command{Kind: CustomEvent, Custom: payload}
}
