// Package metronome implements the musical clock: a beat position that
// advances with tempo and fires interval events as it crosses multiples of
// subscribed intervals.
package metronome

import (
	"math"
	"sort"
	"sync/atomic"
)

// Event is a single interval crossing: Interval is the subscribed interval
// value and Beat is the exact multiple of it that was crossed.
type Event struct {
	Interval float64
	Beat     float64
}

// Metronome tracks musical position in beats and fires Event values as
// beat_position crosses positive integer multiples of subscribed intervals.
type Metronome struct {
	TempoBPS     float64 // beats per second; SetTempo converts from BPM
	BeatPosition float64
	Running      bool

	intervals []float64 // kept sorted ascending, per spec open-question (3)
	pending   []Event

	// publishedBeat, publishedRunning and publishedTempo are a single-writer
	// snapshot for a control-thread handle, mirroring the discipline
	// instance.Instance uses for its own published state: written once per
	// mutation, read lock-free.
	publishedBeat    atomic.Uint64
	publishedRunning atomic.Bool
	publishedTempo   atomic.Uint64
}

// New constructs a stopped Metronome at beat position 0.
func New() *Metronome {
	return &Metronome{}
}

func (m *Metronome) publish() {
	m.publishedBeat.Store(math.Float64bits(m.BeatPosition))
	m.publishedRunning.Store(m.Running)
	m.publishedTempo.Store(math.Float64bits(m.TempoBPS))
}

// PublishedState is read from the control thread: a lock-free snapshot of
// beat position and running state as of the last-completed Tick.
func (m *Metronome) PublishedState() (beatPosition float64, running bool) {
	return math.Float64frombits(m.publishedBeat.Load()), m.publishedRunning.Load()
}

// PublishedTempoBPS is read from the control thread: a lock-free snapshot
// of the tempo in beats per second as of the last-completed mutation.
func (m *Metronome) PublishedTempoBPS() float64 {
	return math.Float64frombits(m.publishedTempo.Load())
}

// SetTempo sets tempo in beats per minute; stored internally as beats/sec.
func (m *Metronome) SetTempo(bpm float64) {
	m.TempoBPS = bpm / 60.0
	m.publish()
}

// Start resumes advancing beat_position without resetting it.
func (m *Metronome) Start() {
	m.Running = true
	m.publish()
}

// Pause stops advancing beat_position, preserving its value.
func (m *Metronome) Pause() {
	m.Running = false
	m.publish()
}

// Stop stops advancing and resets beat_position to 0.
func (m *Metronome) Stop() {
	m.Running = false
	m.BeatPosition = 0
	m.publish()
}

// AddInterval subscribes to event emission every multiple of x beats. x must
// be positive; non-positive values are ignored.
func (m *Metronome) AddInterval(x float64) {
	if x <= 0 {
		return
	}
	for _, existing := range m.intervals {
		if existing == x {
			return
		}
	}
	m.intervals = append(m.intervals, x)
	sort.Float64s(m.intervals)
}

// RemoveInterval unsubscribes x, a no-op if not present.
func (m *Metronome) RemoveInterval(x float64) {
	for i, existing := range m.intervals {
		if existing == x {
			m.intervals = append(m.intervals[:i], m.intervals[i+1:]...)
			return
		}
	}
}

// Tick advances beat_position by dt*tempo, if running, and buffers any
// interval crossings. Events are ordered by interval ascending, then by
// multiple k ascending, per spec open-question (3).
func (m *Metronome) Tick(dt float64) {
	if !m.Running {
		return
	}
	prev := m.BeatPosition
	m.BeatPosition += dt * m.TempoBPS
	for _, x := range m.intervals { // m.intervals is kept sorted ascending
		firstK := int(prev/x) + 1
		for k := firstK; float64(k)*x <= m.BeatPosition; k++ {
			m.pending = append(m.pending, Event{Interval: x, Beat: float64(k) * x})
		}
	}
	m.publish()
}

// DrainEvents returns and clears the events buffered since the last call.
func (m *Metronome) DrainEvents() []Event {
	if len(m.pending) == 0 {
		return nil
	}
	out := m.pending
	m.pending = nil
	return out
}
