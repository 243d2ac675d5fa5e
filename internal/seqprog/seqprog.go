// Package seqprog defines the authored timeline a Sequence executes: an
// ordered list of Step values plus the loop-macro helpers built on top of
// them. It has no dependency on the runtime VM (package sequence) or the
// command transport (package command) that consumes its output, keeping
// the authoring surface free of cycles.
package seqprog

import (
	"github.com/nullwave/tonekit/internal/duration"
	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/instance"
	"github.com/nullwave/tonekit/internal/tween"
)

// StepKind discriminates the tagged Step union of spec.md §3.
type StepKind int

const (
	StepWait StepKind = iota
	StepWaitForInterval
	StepPlaySound
	StepSetInstanceVolume
	StepSetInstancePitch
	StepSetInstancePanning
	StepPauseInstance
	StepResumeInstance
	StepStopInstance
	StepSetMetronomeTempo
	StepStartMetronome
	StepPauseMetronome
	StepStopMetronome
	StepEmitCustomEvent
	StepStartLoop
	StepGoToStep
)

// Step is one entry in an authored Program, a flat tagged struct mirroring
// the field layout the teacher corpus uses for its own timeline events
// (mml.Event): one struct, a Kind selector, and a superset of payload
// fields left zero when unused.
type Step struct {
	Kind StepKind

	Wait         duration.Duration // StepWait
	IntervalBeat float64           // StepWaitForInterval

	SoundID  ids.SoundId // StepPlaySound
	Settings instance.Settings

	InstanceID ids.InstanceId // Set*/Pause/Resume/Stop instance steps
	Target     float64        // volume/pitch/panning/tempo target
	TweenDur   duration.Duration
	Ease       tween.Easing

	Custom any // StepEmitCustomEvent payload

	GoToIndex int // StepGoToStep
}

// Program is an authored, ordered timeline.
type Program struct {
	Steps []Step
	// MaxCommandsPerTick is a per-program command bound, resolved by
	// EffectiveMaxCommandsPerTick (zero means "use the package default").
	// The sequence VM does not read it: Sequence.Tick emits at most one
	// command per call, and Manager.Process passes its own fixed bound of 16
	// to sequence.Manager.Tick.
	MaxCommandsPerTick int
}

const defaultMaxCommandsPerTick = 16

// EffectiveMaxCommandsPerTick resolves the configured bound or the default.
func (p Program) EffectiveMaxCommandsPerTick() int {
	if p.MaxCommandsPerTick > 0 {
		return p.MaxCommandsPerTick
	}
	return defaultMaxCommandsPerTick
}

// LoopSettings resolves a loop window against a sound's own duration, per
// spec.md §3: unset Start defaults to 0s, unset End defaults to the
// sound's semantic duration.
type LoopSettings struct {
	Start *duration.Duration
	End   *duration.Duration
}

// BuildLoopSound synthesizes the Program for spec.md §4.5's LoopSound
// macro: play once from the given position, wait one loop period
// (end-start), then loop {play from loop start, wait (end-start)}. governingTempoBPM is
// captured once, at macro-expansion time, per spec.md §9 ("Duration
// resolution timing"): a later SetMetronomeTempo does not alter an
// already-started loop's period.
func BuildLoopSound(soundID ids.SoundId, loop LoopSettings, settings instance.Settings, semanticDurationSeconds, governingTempoBPM float64) Program {
	start := 0.0
	if loop.Start != nil {
		start = loop.Start.InSeconds(governingTempoBPM)
	}
	end := semanticDurationSeconds
	if loop.End != nil {
		end = loop.End.InSeconds(governingTempoBPM)
	}

	firstSettings := settings
	loopSettings := settings
	loopSettings.StartPosition = start
	period := duration.OfSeconds(end - start)

	// The lead-in wait uses the same (end-start) period as the steady-state
	// loop body, not (end - firstSettings.StartPosition): the macro's wait
	// timing is governed by the loop window alone, so an intro played from
	// an earlier position still hands off to the loop after exactly one
	// loop period (matches spec.md scenario 2's worked timeline).
	//
	// No explicit GoToStep is needed: StartLoop sets loop_anchor to the
	// step after it, and running off the end of the program with an anchor
	// set implicitly jumps back there (spec.md §4.5).
	steps := []Step{
		{Kind: StepPlaySound, SoundID: soundID, Settings: firstSettings},
		{Kind: StepWait, Wait: period},
		{Kind: StepStartLoop},
		{Kind: StepPlaySound, SoundID: soundID, Settings: loopSettings},
		{Kind: StepWait, Wait: period},
	}
	return Program{Steps: steps}
}
