// Package sequence implements the Sequence VM: a step-indexed interpreter
// driven by tick(dt) that walks an authored seqprog.Program and emits
// command.Command values, per spec.md §4.5. Replaces the coroutine-style
// yielding-wait sequence the original used with one integer program
// counter, one wait timer, and one optional loop anchor -- deterministic
// and trivially serializable.
package sequence

import (
	"github.com/nullwave/tonekit/internal/command"
	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/metronome"
	"github.com/nullwave/tonekit/internal/seqprog"
)

// State is a Sequence's run state.
type State int

const (
	Playing State = iota
	Paused
	Finished
)

// Sequence is the runtime state of one executing Program.
type Sequence struct {
	Program seqprog.Program

	pc        int
	muted     bool
	state     State
	waitTimer float64
	loopAnchor *int

	waitForIntervalPC   int
	waitForIntervalBase float64
}

// New constructs a Sequence positioned at step 0, in state Playing.
func New(program seqprog.Program) *Sequence {
	return &Sequence{Program: program, waitForIntervalPC: -1}
}

// State reports the sequence's current run state.
func (s *Sequence) State() State { return s.state }

// Mute suppresses future PlaySound emissions; control events still fire.
func (s *Sequence) Mute() { s.muted = true }

// Unmute re-enables PlaySound emissions.
func (s *Sequence) Unmute() { s.muted = false }

// Pause freezes pc and wait_timer.
func (s *Sequence) Pause() {
	if s.state == Playing {
		s.state = Paused
	}
}

// Resume un-freezes a paused sequence.
func (s *Sequence) Resume() {
	if s.state == Paused {
		s.state = Playing
	}
}

// Stop marks the sequence Finished; its next Tick reports it finished, per
// spec.md §4.5's cooperative-stop discipline for sequences.
func (s *Sequence) Stop() { s.state = Finished }

func crossesMultiple(prev, cur, x float64) bool {
	if x <= 0 {
		return false
	}
	k := int(prev/x) + 1
	return float64(k)*x <= cur
}

// Tick advances the sequence by one step if its wait_timer has elapsed,
// per spec.md §4.5. It returns at most one emitted command (command steps
// emit exactly one; Wait, WaitForInterval, StartLoop, GoToStep and a muted
// PlaySound emit none) and whether the sequence is finished.
func (s *Sequence) Tick(dt, governingTempoBPM float64, m *metronome.Metronome) (emitted *command.Command, finished bool) {
	if s.state == Finished {
		return nil, true
	}
	if s.state != Playing {
		return nil, false
	}
	if s.waitTimer > 0 {
		s.waitTimer -= dt
		return nil, false
	}
	if s.pc >= len(s.Program.Steps) {
		if s.loopAnchor != nil {
			s.pc = *s.loopAnchor
			return nil, false
		}
		s.state = Finished
		return nil, true
	}

	step := s.Program.Steps[s.pc]
	switch step.Kind {
	case seqprog.StepWait:
		s.waitTimer = step.Wait.InSeconds(governingTempoBPM)
		s.pc++
		return nil, false

	case seqprog.StepWaitForInterval:
		if s.waitForIntervalPC != s.pc {
			s.waitForIntervalPC = s.pc
			s.waitForIntervalBase = m.BeatPosition
			return nil, false
		}
		if !crossesMultiple(s.waitForIntervalBase, m.BeatPosition, step.IntervalBeat) {
			return nil, false
		}
		s.waitForIntervalPC = -1
		s.pc++
		return nil, false

	case seqprog.StepPlaySound:
		s.pc++
		if s.muted {
			return nil, false
		}
		c := command.PlaySound(ids.NextInstanceId(), step.SoundID, step.Settings)
		return &c, false

	case seqprog.StepSetInstanceVolume:
		s.pc++
		c := command.SetVolume(step.InstanceID, step.Target, step.TweenDur.InSeconds(governingTempoBPM), step.Ease)
		return &c, false

	case seqprog.StepSetInstancePitch:
		s.pc++
		c := command.SetPitch(step.InstanceID, step.Target, step.TweenDur.InSeconds(governingTempoBPM), step.Ease)
		return &c, false

	case seqprog.StepSetInstancePanning:
		s.pc++
		c := command.SetPanning(step.InstanceID, step.Target, step.TweenDur.InSeconds(governingTempoBPM), step.Ease)
		return &c, false

	case seqprog.StepPauseInstance:
		s.pc++
		c := command.Pause(step.InstanceID, step.TweenDur.InSeconds(governingTempoBPM), step.Ease)
		return &c, false

	case seqprog.StepResumeInstance:
		s.pc++
		c := command.Resume(step.InstanceID, step.TweenDur.InSeconds(governingTempoBPM), step.Ease)
		return &c, false

	case seqprog.StepStopInstance:
		s.pc++
		c := command.Stop(step.InstanceID, step.TweenDur.InSeconds(governingTempoBPM), step.Ease)
		return &c, false

	case seqprog.StepSetMetronomeTempo:
		s.pc++
		c := command.Command{Kind: command.MetronomeSetTempo, Target: step.Target}
		return &c, false

	case seqprog.StepStartMetronome:
		s.pc++
		c := command.Command{Kind: command.MetronomeStart}
		return &c, false

	case seqprog.StepPauseMetronome:
		s.pc++
		c := command.Command{Kind: command.MetronomePause}
		return &c, false

	case seqprog.StepStopMetronome:
		s.pc++
		c := command.Command{Kind: command.MetronomeStop}
		return &c, false

	case seqprog.StepEmitCustomEvent:
		s.pc++
		c := command.Custom(step.Custom)
		return &c, false

	case seqprog.StepStartLoop:
		anchor := s.pc + 1
		s.loopAnchor = &anchor
		s.pc++
		return nil, false

	case seqprog.StepGoToStep:
		s.pc = step.GoToIndex
		return nil, false
	}
	return nil, false
}

// Manager owns every live Sequence, keyed by id, for the audio thread.
type Manager struct {
	sequences map[ids.SequenceId]*Sequence
}

// NewManager constructs an empty Manager.
func NewManager() *Manager {
	return &Manager{sequences: make(map[ids.SequenceId]*Sequence)}
}

// Start registers a new running Sequence under id.
func (mgr *Manager) Start(id ids.SequenceId, program seqprog.Program) *Sequence {
	seq := New(program)
	mgr.sequences[id] = seq
	return seq
}

// Get resolves a SequenceId; commands addressed to an unknown id are
// silently dropped by callers, matching the instance pool's discipline.
func (mgr *Manager) Get(id ids.SequenceId) (*Sequence, bool) {
	seq, ok := mgr.sequences[id]
	return seq, ok
}

// Tick advances every managed sequence by one step, in map iteration
// order (sequences are independent, so no cross-sequence ordering is
// guaranteed or required). It stops admitting further sequences once
// maxCommands output commands have been emitted this tick, so a single
// callback block's sequence work stays bounded per spec.md §5; any
// sequence skipped this way is simply ticked again on the next call.
// Finished sequences are removed and returned for the caller to retire
// (ownership passes to the sequence return ring, per spec.md §4.2).
func (mgr *Manager) Tick(dt, governingTempoBPM float64, m *metronome.Metronome, maxCommands int) (emitted []command.Command, finishedIDs []ids.SequenceId) {
	if maxCommands <= 0 {
		maxCommands = 16
	}
	for id, seq := range mgr.sequences {
		if len(emitted) >= maxCommands {
			break
		}
		cmd, finished := seq.Tick(dt, governingTempoBPM, m)
		if cmd != nil {
			emitted = append(emitted, *cmd)
		}
		if finished {
			finishedIDs = append(finishedIDs, id)
		}
	}
	for _, id := range finishedIDs {
		delete(mgr.sequences, id)
	}
	return emitted, finishedIDs
}

// Len returns the number of currently managed sequences.
func (mgr *Manager) Len() int { return len(mgr.sequences) }
