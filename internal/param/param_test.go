package param

import (
	"testing"

	"github.com/nullwave/tonekit/internal/tween"
)

func TestSnapInstantWithZeroDuration(t *testing.T) {
	p := New(0)
	p.Set(5, 0, nil)
	if p.Value != 5 {
		t.Fatalf("instant set should snap, got %v", p.Value)
	}
	if p.Active() {
		t.Fatalf("instant set should not leave a tween active")
	}
}

func TestStepClearsTweenAtCompletion(t *testing.T) {
	p := New(0)
	p.Set(1, 1.0, tween.Linear)
	for i := 0; i < 20; i++ {
		p.Step(0.05)
	}
	if p.Active() {
		t.Fatalf("tween should be cleared after full duration elapsed")
	}
	if p.Value != 1 {
		t.Fatalf("value after tween completion = %v, want 1", p.Value)
	}
}

func TestRetargetMidTweenUsesCurrentValueAsStart(t *testing.T) {
	p := New(0)
	p.Set(10, 1.0, tween.Linear)
	p.Step(0.5) // value should now be ~5
	mid := p.Value
	p.Set(0, 1.0, tween.Linear) // retarget down to 0 from wherever we are
	v := p.Step(0)
	if v > mid {
		t.Fatalf("retargeted tween should start descending immediately from %v, got %v", mid, v)
	}
}
