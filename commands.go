package tonekit

import (
	"github.com/nullwave/tonekit/internal/command"
	"github.com/nullwave/tonekit/internal/duration"
	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/instance"
	"github.com/nullwave/tonekit/internal/seqprog"
	"github.com/nullwave/tonekit/internal/sound"
	"github.com/nullwave/tonekit/internal/tween"
)

// Easing re-exports the tween easing function type so callers need not
// import an internal path to build one.
type Easing = tween.Easing

var (
	// Linear re-exports the zero-configuration easing.
	Linear = tween.Linear
	// EaseIn, EaseOut, EaseInOut re-export the pow-based easing families.
	EaseIn    = tween.EaseIn
	EaseOut   = tween.EaseOut
	EaseInOut = tween.EaseInOut
)

// InstanceSettings re-exports the per-instance creation settings.
type InstanceSettings = instance.Settings

// DefaultInstanceSettings returns the spec-mandated defaults: position 0,
// volume 1, pitch 1, panning 0.5, no loop.
func DefaultInstanceSettings() InstanceSettings {
	return instance.DefaultSettings()
}

// LoadSound decodes nothing itself -- callers decode via DecodeOggVorbis or
// their own collaborator and hand the engine a ready PCM buffer -- and
// submits it to the engine under a freshly minted SoundID.
func (m *Manager) LoadSound(s *sound.Sound) (SoundID, error) {
	id := ids.NextSoundId()
	token := ids.NewCorrelationToken()
	if err := m.push(command.Load(id, s)); err != nil {
		m.log.Warn("LoadSound dropped", "correlation_id", token, "error", err)
		return 0, err
	}
	m.log.Debug("LoadSound queued", "correlation_id", token, "sound_id", id)
	return id, nil
}

// UnloadSound removes a sound from the store. It sends no stop to existing
// instances referencing it; each such instance finds the sound missing on
// its next Step and goes to Stopped. Callers stop them first, per spec.md
// §4.2.
func (m *Manager) UnloadSound(id SoundID) error {
	return m.push(command.Unload(id))
}

// PlaySound creates a new Instance of soundID with the given settings and
// returns its handle immediately; the actual creation is applied on the
// next audio callback block.
func (m *Manager) PlaySound(soundID SoundID, settings InstanceSettings) (InstanceHandle, error) {
	id := ids.NextInstanceId()
	token := ids.NewCorrelationToken()
	if err := m.push(command.PlaySound(id, soundID, settings)); err != nil {
		m.log.Warn("PlaySound dropped", "correlation_id", token, "error", err)
		return InstanceHandle{}, err
	}
	m.log.Debug("PlaySound queued", "correlation_id", token, "instance_id", id, "sound_id", soundID)
	return InstanceHandle{id: id, mgr: m}, nil
}

// StartSequence starts a new Sequence running program and returns its
// handle.
func (m *Manager) StartSequence(program seqprog.Program) (SequenceHandle, error) {
	id := ids.NextSequenceId()
	if err := m.push(command.StartSequence(id, program)); err != nil {
		return SequenceHandle{}, err
	}
	return SequenceHandle{id: id, mgr: m}, nil
}

// StartLoopSound is the LoopSound macro of spec.md §4.5: it synthesizes a
// Program from loop settings and starts it as a sequence, capturing the
// governing tempo at this call (not dynamically). The governing tempo is
// snd's own authored tempo if it has one, else the metronome's
// last-published tempo, per spec.md §3's Duration resolution rule.
func (m *Manager) StartLoopSound(soundID SoundID, snd *sound.Sound, loop seqprog.LoopSettings, settings InstanceSettings) (SequenceHandle, error) {
	governingTempoBPM := duration.GoverningTempo(snd.AuthoredTempo, m.Metronome().TempoBPM())
	program := seqprog.BuildLoopSound(soundID, loop, settings, snd.SemanticDuration(), governingTempoBPM)
	return m.StartSequence(program)
}

// SetMetronomeTempo sets the metronome's tempo in BPM.
func (m *Manager) SetMetronomeTempo(bpm float64) error {
	return m.push(command.Command{Kind: command.MetronomeSetTempo, Target: bpm})
}

// StartMetronome resumes the metronome without resetting its position.
func (m *Manager) StartMetronome() error {
	return m.push(command.Command{Kind: command.MetronomeStart})
}

// PauseMetronome stops the metronome, preserving its beat position.
func (m *Manager) PauseMetronome() error {
	return m.push(command.Command{Kind: command.MetronomePause})
}

// StopMetronome stops the metronome and resets its beat position to 0.
func (m *Manager) StopMetronome() error {
	return m.push(command.Command{Kind: command.MetronomeStop})
}

// PauseInstancesOfSound broadcasts Pause to every live instance of soundID.
func (m *Manager) PauseInstancesOfSound(soundID SoundID, durationSeconds float64, ease Easing) error {
	return m.push(command.Command{Kind: command.InstancePauseAllOfSound, SoundID: soundID, Duration: durationSeconds, Ease: ease})
}

// ResumeInstancesOfSound broadcasts Resume to every live instance of soundID.
func (m *Manager) ResumeInstancesOfSound(soundID SoundID, durationSeconds float64, ease Easing) error {
	return m.push(command.Command{Kind: command.InstanceResumeAllOfSound, SoundID: soundID, Duration: durationSeconds, Ease: ease})
}

// StopInstancesOfSound broadcasts Stop to every live instance of soundID.
func (m *Manager) StopInstancesOfSound(soundID SoundID, durationSeconds float64, ease Easing) error {
	return m.push(command.Command{Kind: command.InstanceStopAllOfSound, SoundID: soundID, Duration: durationSeconds, Ease: ease})
}

// EmitCustomEvent enqueues a CustomEvent command carrying an arbitrary
// payload, delivered to OnCustomEvent on the next callback block.
func (m *Manager) EmitCustomEvent(payload any) error {
	return m.push(command.Custom(payload))
}
