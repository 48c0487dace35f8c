package actions

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"fakeinput/internal/input"
)

func newTestRunner() (*Runner, *recorder) {
	rec := &recorder{}
	r := NewRunner(rec, rec)
	r.logf = func(string, ...interface{}) {}
	return r, rec
}

func TestExecuteSequence(t *testing.T) {
	r, rec := newTestRunner()
	seq := NewSequence().
		Chord(input.KeyControlL, input.KeyAltL, input.KeyDelete).
		Tap(input.KeyA).
		Click(input.MouseRight).
		MoveTo(10, 20).
		Move(-1, 1).
		WheelUp().
		WheelDown().
		Wait(15 * time.Millisecond).
		Run("calc")

	n, err := r.Execute(context.Background(), seq.Actions())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if n != 9 {
		t.Errorf("Expected 9 steps, got %d", n)
	}

	want := []string{
		"press Control_L", "press Alt_L", "press Delete",
		"release Delete", "release Alt_L", "release Control_L",
		"press A", "release A",
		"down Right", "up Right",
		"moveto 10 20",
		"move -1 1",
		"wheel up",
		"wheel down",
		"wait 15ms",
		"run calc",
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}
}

func TestExecuteValidatesFirst(t *testing.T) {
	r, rec := newTestRunner()

	n, err := r.Execute(context.Background(), []Action{
		{Op: OpTap, Key: "A"},
		{Op: OpTap, Key: "Hyper"},
	})
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey, got %v", err)
	}
	if n != 0 || len(rec.calls) != 0 {
		t.Errorf("Expected nothing to run, got %d steps and %v", n, rec.calls)
	}
}

func TestExecuteDelayBetweenSteps(t *testing.T) {
	r, rec := newTestRunner()
	r.Delay = 5 * time.Millisecond

	_, err := r.Execute(context.Background(), NewSequence().Tap(input.KeyA).Tap(input.KeyB).Actions())
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"press A", "release A", "wait 5ms", "press B", "release B"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}
}

func TestExecuteStopsOnCancel(t *testing.T) {
	r, rec := newTestRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := r.Execute(ctx, NewSequence().Tap(input.KeyA).Actions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if n != 0 || len(rec.calls) != 0 {
		t.Errorf("Expected no steps, got %d and %v", n, rec.calls)
	}
}

func TestExecuteRunFailure(t *testing.T) {
	r, rec := newTestRunner()
	rec.runErr = errors.New("no such file")

	n, err := r.Execute(context.Background(), NewSequence().Tap(input.KeyA).Run("missing").Tap(input.KeyB).Actions())
	if !errors.Is(err, rec.runErr) {
		t.Errorf("Expected run error, got %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 completed step, got %d", n)
	}
}

func TestDefaultButtonIsLeft(t *testing.T) {
	r, rec := newTestRunner()

	if _, err := r.Execute(context.Background(), []Action{{Op: OpClick}}); err != nil {
		t.Fatal(err)
	}
	want := []string{"down Left", "up Left"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("Expected %v, got %v", want, rec.calls)
	}
}
