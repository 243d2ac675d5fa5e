// Package tonekit is a real-time audio playback and scheduling engine: a
// client-owned control thread issues commands (play a sound, fade a
// volume, loop a clip from beat 2 to beat 4, run a metronome) that a
// dedicated audio-callback thread applies and renders into a continuous
// stereo stream, never blocking, allocating, or locking on the hot path.
package tonekit

import (
	"log/slog"

	"github.com/nullwave/tonekit/internal/audio"
	"github.com/nullwave/tonekit/internal/command"
	"github.com/nullwave/tonekit/internal/duration"
	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/instance"
	"github.com/nullwave/tonekit/internal/metronome"
	"github.com/nullwave/tonekit/internal/ring"
	"github.com/nullwave/tonekit/internal/router"
	"github.com/nullwave/tonekit/internal/sequence"
	"github.com/nullwave/tonekit/internal/sound"
)

// SetupError re-exports the audio backend's one-time setup failure kinds,
// per spec.md §7.
type SetupError = audio.SetupError

const (
	NoDefaultOutputDevice   = audio.NoDefaultOutputDevice
	DeviceConfigUnavailable = audio.DeviceConfigUnavailable
	StreamBuildFailed       = audio.StreamBuildFailed
	StreamPlayFailed        = audio.StreamPlayFailed
)

// ManagerConfig tunes the engine's fixed-size resources. It starts from
// defaultManagerConfig and ManagerOptions override its fields; only a nil
// Logger falls back to a default (slog.Default()).
type ManagerConfig struct {
	SampleRate      int
	SoundCapacity   int
	CommandCapacity int
	ReturnCapacity  int
	Logger          *slog.Logger
}

// ManagerOption configures a Manager at construction, following the
// functional-options idiom used throughout this codebase's ancestry.
type ManagerOption func(*ManagerConfig)

// WithSoundCapacity sets the instance pool's initial capacity hint. It does
// not limit how many sounds can be loaded.
func WithSoundCapacity(n int) ManagerOption {
	return func(c *ManagerConfig) { c.SoundCapacity = n }
}

// WithCommandCapacity bounds the control->audio command ring.
func WithCommandCapacity(n int) ManagerOption {
	return func(c *ManagerConfig) { c.CommandCapacity = n }
}

// WithReturnCapacity bounds both audio->control resource return rings.
func WithReturnCapacity(n int) ManagerOption {
	return func(c *ManagerConfig) { c.ReturnCapacity = n }
}

// WithLogger installs a structured logger for setup and control-thread
// events. The audio thread itself never logs, per spec.md §7.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(c *ManagerConfig) { c.Logger = l }
}

func defaultManagerConfig(sampleRate int) ManagerConfig {
	return ManagerConfig{
		SampleRate:      sampleRate,
		SoundCapacity:   64,
		CommandCapacity: 256,
		ReturnCapacity:  64,
		Logger:          slog.Default(),
	}
}

// Manager is the engine's control-thread handle: it owns the command ring,
// the two resource return rings, and the output device. Audio-thread state
// (sound store, instance pool, metronome, sequence manager, router) is
// touched only from inside Process, invoked by the audio backend.
type Manager struct {
	cfg ManagerConfig
	log *slog.Logger

	cmds        *ring.Ring[command.Command]
	sounds      *ring.Ring[*sound.Sound]
	seqs        *ring.Ring[ids.SequenceId]
	metroEvents *ring.Ring[metronome.Event]

	store  *sound.Store
	pool   *instance.Pool
	metro  *metronome.Metronome
	seqMgr *sequence.Manager
	router *router.Router

	output *audio.Output

	onCustom func(payload any)
}

func newCore(cfg ManagerConfig) *Manager {
	mgr := &Manager{
		cfg:         cfg,
		log:         cfg.Logger,
		cmds:        ring.New[command.Command](cfg.CommandCapacity),
		sounds:      ring.New[*sound.Sound](cfg.ReturnCapacity),
		seqs:        ring.New[ids.SequenceId](cfg.ReturnCapacity),
		metroEvents: ring.New[metronome.Event](cfg.ReturnCapacity),
		store:       sound.NewStore(),
		pool:        instance.NewPool(cfg.SoundCapacity),
		metro:       metronome.New(),
		seqMgr:      sequence.NewManager(),
	}
	mgr.router = router.New(mgr.store, mgr.pool, mgr.metro, mgr.seqMgr)
	mgr.router.SoundReturn = mgr.sounds
	mgr.router.OnCustom = func(payload any) {
		if mgr.onCustom != nil {
			mgr.onCustom(payload)
		}
	}
	return mgr
}

func resolveConfig(sampleRate int, opts []ManagerOption) ManagerConfig {
	cfg := defaultManagerConfig(sampleRate)
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// NewManager acquires the default output device at sampleRate and
// constructs the engine around it, per spec.md §6's AudioManager
// construction contract. Returns a SetupError on device/stream failure.
func NewManager(sampleRate int, opts ...ManagerOption) (*Manager, error) {
	cfg := resolveConfig(sampleRate, opts)
	mgr := newCore(cfg)

	output, err := audio.NewOutput(sampleRate, mgr)
	if err != nil {
		mgr.log.Error("failed to acquire audio output", "error", err)
		return nil, err
	}
	if err := output.Play(); err != nil {
		mgr.log.Error("failed to start audio output", "error", err)
		return nil, err
	}
	mgr.output = output
	mgr.log.Info("audio manager started", "sample_rate", sampleRate, "command_capacity", cfg.CommandCapacity)
	return mgr, nil
}

// NewHeadless constructs the engine core without acquiring an OS output
// device: Process must be driven manually (tests, offline rendering to a
// buffer or file). Mirrors this codebase's long-standing split between a
// live device-backed player and an offline sample renderer.
func NewHeadless(sampleRate int, opts ...ManagerOption) *Manager {
	cfg := resolveConfig(sampleRate, opts)
	return newCore(cfg)
}

// OnCustomEvent installs a callback invoked on the audio thread whenever a
// sequence emits EmitCustomEvent. Keep it brief and non-blocking, per
// spec.md §4.1's real-time discipline.
func (m *Manager) OnCustomEvent(fn func(payload any)) {
	m.onCustom = fn
}

// push submits a command to the audio thread, returning ErrCommandQueueFull
// if the ring has no free slot. A successful push never silently drops.
func (m *Manager) push(c command.Command) error {
	if !m.cmds.Push(c) {
		return ErrCommandQueueFull
	}
	return nil
}

// Process implements audio.SampleSource: it is the audio callback thread's
// entry point, called once per output block. It drains the command ring,
// advances the metronome and every sequence, renders one stereo frame per
// slot in dst, and retires resources onto the return rings. dst holds
// interleaved stereo float32 samples.
func (m *Manager) Process(dst []float32) {
	for {
		c, ok := m.cmds.Pop()
		if !ok {
			break
		}
		m.router.Dispatch(c)
	}

	sampleRate := m.cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1
	}
	dt := 1.0 / float64(sampleRate)

	frameCount := len(dst) / 2
	for i := 0; i < frameCount; i++ {
		m.metro.Tick(dt)
		for _, ev := range m.metro.DrainEvents() {
			m.metroEvents.Push(ev) // best-effort; a full ring rejects, and so drops, this newest notification
		}

		// A step's own Duration carries no sound reference, so the governing
		// tempo here is always the metronome's; per-sound authored tempo is
		// resolved once, at loop-macro build time, in StartLoopSound.
		governingTempo := duration.GoverningTempo(0, m.metro.TempoBPS*60.0)
		emitted, finished := m.seqMgr.Tick(dt, governingTempo, m.metro, 16)
		for _, c := range emitted {
			m.router.Dispatch(c)
		}
		for _, id := range finished {
			// If the return ring is full: the audio thread already removed
			// the sequence from seqMgr, so there is nothing left to re-own;
			// the id is simply dropped from the return path and the control
			// thread will not be notified of this completion.
			m.seqs.Push(id)
		}

		l, r, _ := m.pool.Step(dt, m.store)
		dst[i*2] = l
		dst[i*2+1] = r
	}
}

// DrainReturns removes every sound and sequence id the audio thread has
// retired since the last call, for the control thread to drop off-thread.
// Call this periodically (e.g. once per UI tick); it never blocks.
func (m *Manager) DrainReturns() (droppedSounds []*sound.Sound, finishedSequences []ids.SequenceId) {
	for {
		s, ok := m.sounds.Pop()
		if !ok {
			break
		}
		droppedSounds = append(droppedSounds, s)
	}
	for {
		id, ok := m.seqs.Pop()
		if !ok {
			break
		}
		finishedSequences = append(finishedSequences, id)
	}
	return droppedSounds, finishedSequences
}

// DrainMetronomeEvents returns every interval-crossing event fired since
// the last call, ordered by interval ascending then multiple ascending
// within a tick, per spec.md §4.4.
func (m *Manager) DrainMetronomeEvents() []MetronomeEvent {
	var out []MetronomeEvent
	for {
		ev, ok := m.metroEvents.Pop()
		if !ok {
			break
		}
		out = append(out, MetronomeEvent{Interval: ev.Interval, Beat: ev.Beat})
	}
	return out
}

// Close stops the output device. The Manager must not be used afterward.
func (m *Manager) Close() error {
	if m.output == nil {
		return nil
	}
	return m.output.Stop()
}

// SampleRate returns the device sample rate the engine was constructed at.
func (m *Manager) SampleRate() int { return m.cfg.SampleRate }
