package macro

import (
	"testing"
	"time"

	"github.com/WhiteMagic/macrod/internal/action"
	"github.com/WhiteMagic/macrod/internal/input"
)

func TestNewAssignsUniqueIDs(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		m := New(nil, false)
		if seen[m.ID()] {
			t.Fatalf("duplicate macro id %d", m.ID())
		}
		seen[m.ID()] = true
	}
}

func TestBuilderAppendsInOrder(t *testing.T) {
	k, err := input.KeyFromName("space")
	if err != nil {
		t.Fatalf("KeyFromName: %v", err)
	}

	m := New(nil, false)
	if err := m.Press(k); err != nil {
		t.Fatalf("Press: %v", err)
	}
	m.Pause(100 * time.Millisecond)
	if err := m.Release(k); err != nil {
		t.Fatalf("Release: %v", err)
	}

	seq := m.Actions()
	if len(seq) != 3 {
		t.Fatalf("sequence length = %d, want 3", len(seq))
	}

	press, ok := seq[0].(*action.KeyAction)
	if !ok || !press.Pressed() {
		t.Errorf("seq[0] = %v, want key press", seq[0])
	}
	if _, ok := seq[1].(*action.PauseAction); !ok {
		t.Errorf("seq[1] = %T, want *PauseAction", seq[1])
	}
	release, ok := seq[2].(*action.KeyAction)
	if !ok || release.Pressed() {
		t.Errorf("seq[2] = %v, want key release", seq[2])
	}
}

func TestTapAppendsPressAndRelease(t *testing.T) {
	k, err := input.KeyFromName("enter")
	if err != nil {
		t.Fatalf("KeyFromName: %v", err)
	}

	m := New(nil, false)
	if err := m.Tap(k); err != nil {
		t.Fatalf("Tap: %v", err)
	}

	seq := m.Actions()
	if len(seq) != 2 {
		t.Fatalf("sequence length = %d, want 2", len(seq))
	}
	first := seq[0].(*action.KeyAction)
	second := seq[1].(*action.KeyAction)
	if !first.Pressed() || second.Pressed() {
		t.Error("Tap must append a press followed by a release")
	}
	if first.Key() != k || second.Key() != k {
		t.Error("Tap must target the given key")
	}
}

func TestPressRejectsInvalidKey(t *testing.T) {
	m := New(nil, false)
	if err := m.Press(input.Key{}); err == nil {
		t.Error("Press with an invalid key must fail")
	}
	if len(m.Actions()) != 0 {
		t.Error("failed Press must not append")
	}
}
