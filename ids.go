package tonekit

import "github.com/nullwave/tonekit/internal/ids"

// SoundID, InstanceID, SequenceID and MetronomeID are the client-visible
// identifier types, re-exported from the internal package that mints them
// so a caller never needs to import an internal path.
type (
	SoundID      = ids.SoundId
	InstanceID   = ids.InstanceId
	SequenceID   = ids.SequenceId
	MetronomeID  = ids.MetronomeId
)
