package instance

import (
	"github.com/nullwave/tonekit/internal/ids"
	"github.com/nullwave/tonekit/internal/sound"
	"github.com/nullwave/tonekit/internal/tween"
)

// Pool is the audio-thread-owned collection of every live Instance. It
// pre-sizes its backing storage from capacity at construction, per the
// callback-safety discipline in spec.md §9. It still allocates on PlaySound
// (the new Instance, its map insertion and its bySound entry) and in Step
// whenever instances stop (the returned slice of stopped ids).
type Pool struct {
	instances map[ids.InstanceId]*Instance
	// bySound maintains an insertion-ordered multimap from SoundId to the
	// InstanceIds currently referencing it, for the broadcast commands
	// (PauseInstancesOfSound and siblings), per spec.md §9.
	bySound map[ids.SoundId][]ids.InstanceId
}

// NewPool constructs an empty Pool sized for the expected instance count.
func NewPool(capacityHint int) *Pool {
	return &Pool{
		instances: make(map[ids.InstanceId]*Instance, capacityHint),
		bySound:   make(map[ids.SoundId][]ids.InstanceId, capacityHint),
	}
}

// Play creates a new Instance in state Playing, per spec.md §4.3.
func (p *Pool) Play(id ids.InstanceId, soundID ids.SoundId, settings Settings) *Instance {
	inst := New(id, soundID, settings)
	p.instances[id] = inst
	p.bySound[soundID] = append(p.bySound[soundID], id)
	return inst
}

// Get resolves an InstanceId. Commands addressed to an unknown id are
// silently dropped per spec.md §4.3 -- callers should no-op on !ok.
func (p *Pool) Get(id ids.InstanceId) (*Instance, bool) {
	inst, ok := p.instances[id]
	return inst, ok
}

// ForEachOfSound invokes fn for every live instance referencing soundID, for
// the PauseInstancesOfSound/ResumeInstancesOfSound/StopInstancesOfSound
// broadcast commands.
func (p *Pool) ForEachOfSound(soundID ids.SoundId, fn func(*Instance)) {
	for _, id := range p.bySound[soundID] {
		if inst, ok := p.instances[id]; ok {
			fn(inst)
		}
	}
}

// Step advances every live instance by one frame, sums their contributions
// into a stereo accumulator, and removes instances that have reached
// Stopped (together with their bySound index entries), returning their ids.
// store resolves each instance's SoundId; a
// missing sound drives the instance to Stopped per spec.md §4.2.
func (p *Pool) Step(dt float64, store *sound.Store) (l, r float32, stopped []ids.InstanceId) {
	for id, inst := range p.instances {
		snd, _ := store.Get(inst.SoundID)
		sl, sr := inst.Step(dt, snd)
		l += sl
		r += sr
		if inst.Playback() == Stopped {
			stopped = append(stopped, id)
		}
	}
	for _, id := range stopped {
		p.remove(id)
	}
	return l, r, stopped
}

func (p *Pool) remove(id ids.InstanceId) {
	inst, ok := p.instances[id]
	if !ok {
		return
	}
	delete(p.instances, id)
	list := p.bySound[inst.SoundID]
	for i, other := range list {
		if other == id {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(p.bySound, inst.SoundID)
	} else {
		p.bySound[inst.SoundID] = list
	}
}

// Len returns the number of currently live instances.
func (p *Pool) Len() int { return len(p.instances) }

// StopAllOfSound is a convenience broadcast used directly by the command
// router; ease is applied to every live instance referencing soundID.
func (p *Pool) StopAllOfSound(soundID ids.SoundId, duration float64, ease tween.Easing) {
	p.ForEachOfSound(soundID, func(inst *Instance) { inst.Stop(duration, ease) })
}

// PauseAllOfSound broadcasts Pause to every live instance referencing
// soundID.
func (p *Pool) PauseAllOfSound(soundID ids.SoundId, duration float64, ease tween.Easing) {
	p.ForEachOfSound(soundID, func(inst *Instance) { inst.Pause(duration, ease) })
}

// ResumeAllOfSound broadcasts Resume to every live instance referencing
// soundID.
func (p *Pool) ResumeAllOfSound(soundID ids.SoundId, duration float64, ease tween.Easing) {
	p.ForEachOfSound(soundID, func(inst *Instance) { inst.Resume(duration, ease) })
}
