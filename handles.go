package tonekit

import (
	"github.com/nullwave/tonekit/internal/command"
	"github.com/nullwave/tonekit/internal/instance"
)

// Playback re-exports the instance lifecycle enum for client inspection.
type Playback = instance.Playback

const (
	Playing  = instance.Playing
	Paused   = instance.Paused
	Stopped  = instance.Stopped
	Pausing  = instance.Pausing
	Stopping = instance.Stopping
	Resuming = instance.Resuming
)

// MetronomeEvent is one interval crossing observed by the client, per
// spec.md §4.4.
type MetronomeEvent struct {
	Interval float64
	Beat     float64
}

// InstanceHandle is a lightweight, copyable client-side reference to one
// playing Instance. All mutating methods submit a command and return
// immediately; the effect is applied on the next audio callback block.
type InstanceHandle struct {
	id  InstanceID
	mgr *Manager
}

// ID returns the handle's underlying InstanceID.
func (h InstanceHandle) ID() InstanceID { return h.id }

// State reads the instance's last-published playback state and position,
// a lock-free snapshot as of the most recently completed callback block.
// Returns (Stopped, 0) if the instance is unknown to this handle's manager
// (e.g. it was never delivered because the manager was replaced).
func (h InstanceHandle) State() (Playback, float64) {
	if h.mgr == nil {
		return Stopped, 0
	}
	inst, ok := h.mgr.pool.Get(h.id)
	if !ok {
		return Stopped, 0
	}
	return inst.PublishedState()
}

// SetVolume retargets the instance's volume.
func (h InstanceHandle) SetVolume(target, durationSeconds float64, ease Easing) error {
	return h.mgr.push(command.SetVolume(h.id, target, durationSeconds, ease))
}

// SetPitch retargets the instance's pitch.
func (h InstanceHandle) SetPitch(target, durationSeconds float64, ease Easing) error {
	return h.mgr.push(command.SetPitch(h.id, target, durationSeconds, ease))
}

// SetPanning retargets the instance's stereo panning (0 = left, 1 = right).
func (h InstanceHandle) SetPanning(target, durationSeconds float64, ease Easing) error {
	return h.mgr.push(command.SetPanning(h.id, target, durationSeconds, ease))
}

// Pause fades the instance out and transitions it to Paused.
func (h InstanceHandle) Pause(durationSeconds float64, ease Easing) error {
	return h.mgr.push(command.Pause(h.id, durationSeconds, ease))
}

// Resume fades the instance back in from Paused.
func (h InstanceHandle) Resume(durationSeconds float64, ease Easing) error {
	return h.mgr.push(command.Resume(h.id, durationSeconds, ease))
}

// Stop fades the instance out and transitions it to the terminal Stopped
// state. Cooperative: there is no hard cancel.
func (h InstanceHandle) Stop(durationSeconds float64, ease Easing) error {
	return h.mgr.push(command.Stop(h.id, durationSeconds, ease))
}

// SeekTo sets the instance's playback position directly, in seconds.
func (h InstanceHandle) SeekTo(seconds float64) error {
	return h.mgr.push(command.SeekTo(h.id, seconds))
}

// SeekBy adjusts the instance's playback position by a relative number of
// seconds.
func (h InstanceHandle) SeekBy(deltaSeconds float64) error {
	return h.mgr.push(command.SeekBy(h.id, deltaSeconds))
}

// SequenceHandle is a lightweight, copyable client-side reference to one
// running Sequence.
type SequenceHandle struct {
	id  SequenceID
	mgr *Manager
}

// ID returns the handle's underlying SequenceID.
func (h SequenceHandle) ID() SequenceID { return h.id }

// Mute suppresses the sequence's future PlaySound emissions only; control
// events (metronome, custom, parameter changes) still fire.
func (h SequenceHandle) Mute() error {
	return h.mgr.push(command.Command{Kind: command.SequenceMute, SequenceID: h.id})
}

// Unmute re-enables PlaySound emission.
func (h SequenceHandle) Unmute() error {
	return h.mgr.push(command.Command{Kind: command.SequenceUnmute, SequenceID: h.id})
}

// Pause freezes the sequence's program counter and wait timer.
func (h SequenceHandle) Pause() error {
	return h.mgr.push(command.Command{Kind: command.SequencePause, SequenceID: h.id})
}

// Resume un-freezes a paused sequence.
func (h SequenceHandle) Resume() error {
	return h.mgr.push(command.Command{Kind: command.SequenceResume, SequenceID: h.id})
}

// Stop transitions the sequence to Finished on the next tick.
func (h SequenceHandle) Stop() error {
	return h.mgr.push(command.Command{Kind: command.SequenceStop, SequenceID: h.id})
}

// MetronomeHandle is a lightweight reference to the engine's single
// metronome (spec.md describes Metronome in the singular; MetronomeID
// exists for call-site symmetry with the other handle kinds).
type MetronomeHandle struct {
	mgr *Manager
}

// Metronome returns a handle to the engine's metronome.
func (m *Manager) Metronome() MetronomeHandle {
	return MetronomeHandle{mgr: m}
}

// BeatPosition reads the metronome's last-published beat position, a
// lock-free snapshot as of the most recently completed callback block.
func (h MetronomeHandle) BeatPosition() float64 {
	beat, _ := h.mgr.metro.PublishedState()
	return beat
}

// Running reports whether the metronome was advancing as of the most
// recently completed callback block.
func (h MetronomeHandle) Running() bool {
	_, running := h.mgr.metro.PublishedState()
	return running
}

// SetTempo sets tempo in beats per minute.
func (h MetronomeHandle) SetTempo(bpm float64) error { return h.mgr.SetMetronomeTempo(bpm) }

// TempoBPM reads the metronome's last-published tempo, in beats per
// minute, a lock-free snapshot as of the most recently completed callback
// block.
func (h MetronomeHandle) TempoBPM() float64 {
	return h.mgr.metro.PublishedTempoBPS() * 60.0
}

// Start resumes the metronome without resetting its position.
func (h MetronomeHandle) Start() error { return h.mgr.StartMetronome() }

// Pause stops the metronome, preserving its position.
func (h MetronomeHandle) Pause() error { return h.mgr.PauseMetronome() }

// Stop stops the metronome and resets its position to 0.
func (h MetronomeHandle) Stop() error { return h.mgr.StopMetronome() }

// AddInterval subscribes the metronome to fire a MetronomeEvent every time
// beat_position crosses a multiple of x beats, per spec.md §4.4.
func (h MetronomeHandle) AddInterval(beats float64) error {
	return h.mgr.push(command.AddMetronomeInterval(beats))
}

// RemoveInterval unsubscribes an interval previously passed to AddInterval.
func (h MetronomeHandle) RemoveInterval(beats float64) error {
	return h.mgr.push(command.RemoveMetronomeInterval(beats))
}
