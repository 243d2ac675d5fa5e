// Package ids defines the opaque, comparable identifier types shared across
// every subsystem, plus a SoundMeta record type. The ids are plain counters
// and carry no metadata.
package ids

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// SoundId addresses a loaded Sound in the sound store.
type SoundId uint64

// InstanceId addresses one live playing copy of a sound.
type InstanceId uint64

// SequenceId addresses one running Sequence.
type SequenceId uint64

// MetronomeId addresses one Metronome. The engine supports a single
// metronome per manager in this implementation (spec.md's Metronome
// component is described in the singular); the id type exists so call
// sites and commands are symmetric with the other three and a future
// multi-metronome engine is a additive, not a breaking, change.
type MetronomeId uint64

// counters mint monotonically increasing ids for each kind. Control-thread
// only: minting never happens on the audio thread.
var (
	nextSound      atomic.Uint64
	nextInstance   atomic.Uint64
	nextSequence   atomic.Uint64
	nextMetronome  atomic.Uint64
)

// NextSoundId mints a fresh SoundId.
func NextSoundId() SoundId { return SoundId(nextSound.Add(1)) }

// NextInstanceId mints a fresh InstanceId.
func NextInstanceId() InstanceId { return InstanceId(nextInstance.Add(1)) }

// NextSequenceId mints a fresh SequenceId.
func NextSequenceId() SequenceId { return SequenceId(nextSequence.Add(1)) }

// NextMetronomeId mints a fresh MetronomeId.
func NextMetronomeId() MetronomeId { return MetronomeId(nextMetronome.Add(1)) }

// NewCorrelationToken mints an opaque external tracing token, independent
// of the comparable slot ids above: it exists purely for logging and
// diagnostics (e.g. tying a LoadSound call to the log lines it produces
// across the control/audio boundary) and is never consulted by the audio
// thread or used as a map key in any hot-path structure.
func NewCorrelationToken() uuid.UUID { return uuid.New() }

// SoundMeta describes a sound's duration, authored tempo and semantic
// length. Nothing in the engine fills or reads it: Beats-duration resolution
// reads AuthoredTempo and SemanticBeats from the sound.Sound itself.
type SoundMeta struct {
	DurationSeconds float64
	AuthoredTempo   float64 // 0 = none
	SemanticBeats   float64 // 0 = none
}
