// Package param implements Parameter: a scalar with an optional active
// tween, stepped once per audio frame.
package param

import "github.com/nullwave/tonekit/internal/tween"

// Parameter is a scalar value that can be retargeted instantly or ramped
// toward a new value over time via an active Tween.
type Parameter struct {
	Value float64
	tw    *tween.Tween
}

// New returns a Parameter initialized to value with no active tween.
func New(value float64) *Parameter {
	return &Parameter{Value: value}
}

// Set retargets the parameter. A duration <= 0 snaps instantly, whatever the
// ease; otherwise a Tween (Linear if ease is nil) is installed and consumed
// by subsequent Step calls.
func (p *Parameter) Set(target float64, duration float64, ease tween.Easing) {
	if duration <= 0 {
		p.Value = target
		p.tw = nil
		return
	}
	p.tw = tween.New(p.Value, target, duration, ease)
}

// Step advances dt seconds of the active tween, if any, updating Value.
// Returns the current value for convenience.
func (p *Parameter) Step(dt float64) float64 {
	if p.tw == nil {
		return p.Value
	}
	v, done := p.tw.Step(dt)
	p.Value = v
	if done {
		p.tw = nil
	}
	return p.Value
}

// Active reports whether a tween is currently interpolating this parameter.
func (p *Parameter) Active() bool {
	return p.tw != nil
}
