package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullwave/tonekit/internal/command"
	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/instance"
	"github.com/nullwave/tonekit/internal/metronome"
	"github.com/nullwave/tonekit/internal/ring"
	"github.com/nullwave/tonekit/internal/sequence"
	"github.com/nullwave/tonekit/internal/seqprog"
	"github.com/nullwave/tonekit/internal/sound"
)

func newTestRouter() (*Router, *sound.Store, *instance.Pool, *metronome.Metronome, *sequence.Manager) {
	store := sound.NewStore()
	pool := instance.NewPool(4)
	m := metronome.New()
	seqMgr := sequence.NewManager()
	r := New(store, pool, m, seqMgr)
	return r, store, pool, m, seqMgr
}

func TestDispatchLoadAndPlaySound(t *testing.T) {
	r, store, pool, _, _ := newTestRouter()
	snd := &sound.Sound{SampleRate: 10, Frames: make([]float32, 20)}
	r.Dispatch(command.Load(ids.SoundId(1), snd))
	got, ok := store.Get(ids.SoundId(1))
	require.True(t, ok)
	assert.Same(t, snd, got)

	r.Dispatch(command.PlaySound(ids.InstanceId(1), ids.SoundId(1), instance.DefaultSettings()))
	inst, ok := pool.Get(ids.InstanceId(1))
	require.True(t, ok)
	assert.Equal(t, instance.Playing, inst.Playback())
}

func TestUnloadReturnsToFullRingReinsertsSound(t *testing.T) {
	r, store, _, _, _ := newTestRouter()
	snd := &sound.Sound{SampleRate: 10, Frames: make([]float32, 20)}
	r.Dispatch(command.Load(ids.SoundId(1), snd))

	full := ring.New[*sound.Sound](1)
	full.Push(&sound.Sound{}) // pre-fill so the next push fails
	r.SoundReturn = full

	r.Dispatch(command.Unload(ids.SoundId(1)))
	_, ok := store.Get(ids.SoundId(1))
	assert.True(t, ok, "sound must be re-owned by the store when the return ring is full")
}

func TestSeekToAndSeekByDispatchToInstance(t *testing.T) {
	r, _, pool, _, _ := newTestRouter()
	r.Dispatch(command.PlaySound(ids.InstanceId(1), ids.SoundId(1), instance.DefaultSettings()))

	r.Dispatch(command.SeekTo(ids.InstanceId(1), 2.0))
	inst, ok := pool.Get(ids.InstanceId(1))
	require.True(t, ok)
	assert.Equal(t, 2.0, inst.Position)

	r.Dispatch(command.SeekBy(ids.InstanceId(1), -0.5))
	assert.Equal(t, 1.5, inst.Position)
}

func TestAddAndRemoveIntervalDispatchToMetronome(t *testing.T) {
	r, _, _, m, _ := newTestRouter()
	m.SetTempo(60) // 1 beat/sec
	m.Start()

	r.Dispatch(command.AddMetronomeInterval(1.0))
	m.Tick(1.0)
	events := m.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, 1.0, events[0].Interval)

	r.Dispatch(command.RemoveMetronomeInterval(1.0))
	m.Tick(1.0)
	assert.Empty(t, m.DrainEvents())
}

func TestUnknownInstanceCommandIsNoOp(t *testing.T) {
	r, _, _, _, _ := newTestRouter()
	assert.NotPanics(t, func() {
		r.Dispatch(command.SetVolume(ids.InstanceId(999), 0.5, 0, nil))
	})
}

func TestSequenceStartThenMuteRoutesThroughManager(t *testing.T) {
	r, _, _, _, seqMgr := newTestRouter()
	prog := seqprog.Program{Steps: []seqprog.Step{{Kind: seqprog.StepEmitCustomEvent, Custom: "x"}}}
	r.Dispatch(command.StartSequence(ids.SequenceId(1), prog))
	require.Equal(t, 1, seqMgr.Len())

	r.Dispatch(command.Command{Kind: command.SequenceMute, SequenceID: ids.SequenceId(1)})
	seq, ok := seqMgr.Get(ids.SequenceId(1))
	require.True(t, ok)
	_ = seq // muted state isn't directly observable; exercised in package sequence's own tests
}

func TestCustomEventDispatchesToSink(t *testing.T) {
	r, _, _, _, _ := newTestRouter()
	var got any
	r.OnCustom = func(payload any) { got = payload }
	r.Dispatch(command.Custom("hello"))
	assert.Equal(t, "hello", got)
}

func TestDrainAllAppliesInOrder(t *testing.T) {
	r, _, pool, _, _ := newTestRouter()
	cmds := []command.Command{
		command.PlaySound(ids.InstanceId(1), ids.SoundId(1), instance.DefaultSettings()),
		command.Stop(ids.InstanceId(1), 0, nil),
	}
	r.DrainAll(cmds)
	inst, ok := pool.Get(ids.InstanceId(1))
	require.True(t, ok)
	// A zero-duration Stop has no fade to wait for: the Stop, applied after
	// the Play, leaves the instance Stopped at once.
	assert.Equal(t, instance.Stopped, inst.Playback())
}
