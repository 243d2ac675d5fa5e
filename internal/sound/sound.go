// Package sound holds the immutable stereo PCM buffers the engine plays and
// a map-backed store addressable by id, owned exclusively by the audio
// thread.
package sound

import "github.com/nullwave/tonekit/internal/ids"

// Sound is an immutable stereo sample buffer at a known rate, shared
// read-only with every Instance that references it. Frames are interleaved
// left/right float32 samples, one pair per frame.
type Sound struct {
	Frames     []float32 // len == FrameCount*2
	SampleRate int
	// AuthoredTempo is the sound's own tempo in BPM, if the source material
	// specifies one (e.g. embedded loop metadata). Zero means "none": Beats
	// durations referencing this sound fall back to the governing
	// metronome's tempo.
	AuthoredTempo float64
	// SemanticBeats is the sound's duration expressed in beats, if the
	// source declares a musical length distinct from its raw duration
	// (e.g. a loop recorded with trailing silence). Zero means "none": use
	// Duration() as the semantic duration too.
	SemanticBeats float64
}

// FrameCount returns the number of stereo frames in the buffer.
func (s *Sound) FrameCount() int {
	return len(s.Frames) / 2
}

// Duration returns the buffer's length in seconds.
func (s *Sound) Duration() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(s.FrameCount()) / float64(s.SampleRate)
}

// SemanticDuration returns the sound's musically-meaningful duration in
// seconds: SemanticBeats converted via AuthoredTempo if both are set, else
// the full buffer Duration.
func (s *Sound) SemanticDuration() float64 {
	if s.SemanticBeats > 0 && s.AuthoredTempo > 0 {
		return s.SemanticBeats * 60.0 / s.AuthoredTempo
	}
	return s.Duration()
}

// SampleAt returns the linearly-interpolated stereo sample at a fractional
// frame position. Positions outside [0, FrameCount) return silence.
func (s *Sound) SampleAt(position float64) (l, r float32) {
	n := s.FrameCount()
	if n == 0 || position < 0 || position >= float64(n) {
		return 0, 0
	}
	i0 := int(position)
	frac := float32(position - float64(i0))
	i1 := i0 + 1
	if i1 >= n {
		i1 = i0
	}
	l0, r0 := s.Frames[i0*2], s.Frames[i0*2+1]
	l1, r1 := s.Frames[i1*2], s.Frames[i1*2+1]
	l = l0 + (l1-l0)*frac
	r = r0 + (r1-r0)*frac
	return l, r
}

// Store keeps loaded sounds addressable by id. It is owned and mutated only
// by the audio thread: Load/Unload are invoked from the command router, not
// called concurrently from the control thread.
type Store struct {
	sounds map[ids.SoundId]*Sound
}

// NewStore creates an empty sound store.
func NewStore() *Store {
	return &Store{sounds: make(map[ids.SoundId]*Sound)}
}

// Load inserts or replaces the sound at id.
func (st *Store) Load(id ids.SoundId, s *Sound) {
	st.sounds[id] = s
}

// Unload removes id from the store and returns the removed Sound (nil if
// absent) for the caller to push onto the unused-sound return ring.
func (st *Store) Unload(id ids.SoundId) *Sound {
	s, ok := st.sounds[id]
	if !ok {
		return nil
	}
	delete(st.sounds, id)
	return s
}

// Get resolves id to its Sound, or (nil, false) if unloaded or unknown --
// the case spec.md requires transitioning the referencing instance to
// Stopped.
func (st *Store) Get(id ids.SoundId) (*Sound, bool) {
	s, ok := st.sounds[id]
	return s, ok
}

// Reinsert restores a sound that could not be delivered to a full return
// ring, per spec.md §4.2: the audio thread must re-own rather than drop it.
func (st *Store) Reinsert(id ids.SoundId, s *Sound) {
	st.sounds[id] = s
}
