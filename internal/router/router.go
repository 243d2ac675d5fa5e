// Package router implements the command router: the audio thread's single
// dispatch point that drains the command ring and routes each command to
// exactly one subsystem, per spec.md §4.1.
package router

import (
	"github.com/nullwave/tonekit/internal/command"
	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/instance"
	"github.com/nullwave/tonekit/internal/metronome"
	"github.com/nullwave/tonekit/internal/ring"
	"github.com/nullwave/tonekit/internal/sequence"
	"github.com/nullwave/tonekit/internal/sound"
)

// CustomEventSink receives CustomEvent command payloads as they are
// dispatched, for a client observing sequence-authored events. Called on
// the audio thread: implementations must not block or allocate.
type CustomEventSink func(payload any)

// Router owns references to every subsystem a Command can target and
// dispatches commands to exactly one of them, in strict ring FIFO order.
type Router struct {
	Sounds    *sound.Store
	Instances *instance.Pool
	Metronome *metronome.Metronome
	Sequences *sequence.Manager
	OnCustom  CustomEventSink
	// SoundReturn receives a sound evicted by a SoundUnload command, so
	// ownership passes to the control thread for off-thread drop. If the
	// ring is full, the audio thread re-owns the sound rather than drop it
	// (spec.md §7's return-ring invariant), leaving it loaded.
	SoundReturn *ring.Ring[*sound.Sound]
}

// New constructs a Router wired to the given subsystems. Any nil
// subsystem disables the corresponding command group (dispatch is then a
// no-op for it), useful in tests that exercise a subset.
func New(sounds *sound.Store, instances *instance.Pool, m *metronome.Metronome, sequences *sequence.Manager) *Router {
	return &Router{Sounds: sounds, Instances: instances, Metronome: m, Sequences: sequences}
}

// Dispatch routes a single command to its subsystem. Commands addressed
// to an unknown InstanceId/SequenceId are silently dropped, per spec.md
// §4.3's "no-op on unknown id" discipline.
func (r *Router) Dispatch(c command.Command) {
	switch c.Kind {
	case command.SoundLoad:
		if r.Sounds != nil {
			r.Sounds.Load(c.SoundID, c.Sound)
		}

	case command.SoundUnload:
		if r.Sounds == nil {
			return
		}
		evicted := r.Sounds.Unload(c.SoundID)
		if evicted == nil {
			return
		}
		if r.SoundReturn == nil || !r.SoundReturn.Push(evicted) {
			r.Sounds.Reinsert(c.SoundID, evicted)
		}

	case command.InstancePlay:
		if r.Instances != nil {
			r.Instances.Play(c.InstanceID, c.SoundID, c.Settings)
		}

	case command.InstanceSetVolume:
		if inst, ok := r.getInstance(c.InstanceID); ok {
			inst.SetVolume(c.Target, c.Duration, c.Ease)
		}

	case command.InstanceSetPitch:
		if inst, ok := r.getInstance(c.InstanceID); ok {
			inst.SetPitch(c.Target, c.Duration, c.Ease)
		}

	case command.InstanceSetPanning:
		if inst, ok := r.getInstance(c.InstanceID); ok {
			inst.SetPanning(c.Target, c.Duration, c.Ease)
		}

	case command.InstancePause:
		if inst, ok := r.getInstance(c.InstanceID); ok {
			inst.Pause(c.Duration, c.Ease)
		}

	case command.InstanceResume:
		if inst, ok := r.getInstance(c.InstanceID); ok {
			inst.Resume(c.Duration, c.Ease)
		}

	case command.InstanceStop:
		if inst, ok := r.getInstance(c.InstanceID); ok {
			inst.Stop(c.Duration, c.Ease)
		}

	case command.InstanceSeekTo:
		if inst, ok := r.getInstance(c.InstanceID); ok {
			inst.SeekTo(c.Target)
		}

	case command.InstanceSeekBy:
		if inst, ok := r.getInstance(c.InstanceID); ok {
			inst.SeekBy(c.Target)
		}

	case command.InstancePauseAllOfSound:
		if r.Instances != nil {
			r.Instances.PauseAllOfSound(c.SoundID, c.Duration, c.Ease)
		}

	case command.InstanceResumeAllOfSound:
		if r.Instances != nil {
			r.Instances.ResumeAllOfSound(c.SoundID, c.Duration, c.Ease)
		}

	case command.InstanceStopAllOfSound:
		if r.Instances != nil {
			r.Instances.StopAllOfSound(c.SoundID, c.Duration, c.Ease)
		}

	case command.MetronomeSetTempo:
		if r.Metronome != nil {
			r.Metronome.SetTempo(c.Target)
		}

	case command.MetronomeStart:
		if r.Metronome != nil {
			r.Metronome.Start()
		}

	case command.MetronomePause:
		if r.Metronome != nil {
			r.Metronome.Pause()
		}

	case command.MetronomeStop:
		if r.Metronome != nil {
			r.Metronome.Stop()
		}

	case command.MetronomeAddInterval:
		if r.Metronome != nil {
			r.Metronome.AddInterval(c.Target)
		}

	case command.MetronomeRemoveInterval:
		if r.Metronome != nil {
			r.Metronome.RemoveInterval(c.Target)
		}

	case command.SequenceStart:
		if r.Sequences != nil {
			r.Sequences.Start(c.SequenceID, c.Program)
		}

	case command.SequenceMute:
		if seq, ok := r.getSequence(c.SequenceID); ok {
			seq.Mute()
		}

	case command.SequenceUnmute:
		if seq, ok := r.getSequence(c.SequenceID); ok {
			seq.Unmute()
		}

	case command.SequencePause:
		if seq, ok := r.getSequence(c.SequenceID); ok {
			seq.Pause()
		}

	case command.SequenceResume:
		if seq, ok := r.getSequence(c.SequenceID); ok {
			seq.Resume()
		}

	case command.SequenceStop:
		if seq, ok := r.getSequence(c.SequenceID); ok {
			seq.Stop()
		}

	case command.CustomEvent:
		if r.OnCustom != nil {
			r.OnCustom(c.Custom)
		}
	}
}

// DrainAll dispatches every command in commands, in order. Manager.Process
// does not use it: it calls Dispatch directly, both for the command ring
// and for the commands sequences emit within the same frame.
func (r *Router) DrainAll(commands []command.Command) {
	for _, c := range commands {
		r.Dispatch(c)
	}
}

func (r *Router) getInstance(id ids.InstanceId) (*instance.Instance, bool) {
	if r.Instances == nil {
		return nil, false
	}
	return r.Instances.Get(id)
}

func (r *Router) getSequence(id ids.SequenceId) (*sequence.Sequence, bool) {
	if r.Sequences == nil {
		return nil, false
	}
	return r.Sequences.Get(id)
}
