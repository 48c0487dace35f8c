package actions

import (
	"context"
	"fmt"
	"log"
	"time"

	"fakeinput/internal/input"
)

// Input is the device a Runner drives. *input.Device implements it.
type Input interface {
	PressKey(k input.KeyType)
	ReleaseKey(k input.KeyType)
	PressButton(b input.MouseButton)
	ReleaseButton(b input.MouseButton)
	Move(dx, dy int)
	MoveTo(x, y int)
	WheelUp()
	WheelDown()
}

// System runs commands and waits. osutils.System implements it.
type System interface {
	Run(command string) error
	Wait(d time.Duration)
}

// Runner plays actions back in order.
type Runner struct {
	input  Input
	system System
	// Delay is waited between consecutive steps.
	Delay time.Duration
	logf  func(format string, args ...interface{})
}

func NewRunner(in Input, sys System) *Runner {
	return &Runner{input: in, system: sys, logf: log.Printf}
}

// Execute validates all actions, then runs them one by one. The context is
// checked before each step; a step in progress is never interrupted. It
// returns the number of steps completed.
func (r *Runner) Execute(ctx context.Context, actions []Action) (int, error) {
	if err := Validate(actions); err != nil {
		return 0, err
	}
	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if i > 0 && r.Delay > 0 {
			r.system.Wait(r.Delay)
		}
		if err := r.step(a); err != nil {
			r.logf("Actions: Step %d (%s) failed: %v", i, a, err)
			return i, fmt.Errorf("action %d: %w", i, err)
		}
	}
	return len(actions), nil
}

// step assumes a has been validated
func (r *Runner) step(a Action) error {
	switch a.Op {
	case OpPress:
		k, _ := parseKey(a.Key)
		r.input.PressKey(k)
	case OpRelease:
		k, _ := parseKey(a.Key)
		r.input.ReleaseKey(k)
	case OpTap:
		k, _ := parseKey(a.Key)
		r.input.PressKey(k)
		r.input.ReleaseKey(k)
	case OpChord:
		keys := make([]input.KeyType, len(a.Keys))
		for i, name := range a.Keys {
			keys[i], _ = parseKey(name)
		}
		for _, k := range keys {
			r.input.PressKey(k)
		}
		for i := len(keys) - 1; i >= 0; i-- {
			r.input.ReleaseKey(keys[i])
		}
	case OpMouseDown:
		b, _ := parseButton(a.Button)
		r.input.PressButton(b)
	case OpMouseUp:
		b, _ := parseButton(a.Button)
		r.input.ReleaseButton(b)
	case OpClick:
		b, _ := parseButton(a.Button)
		r.input.PressButton(b)
		r.input.ReleaseButton(b)
	case OpMove:
		r.input.Move(a.X, a.Y)
	case OpMoveTo:
		r.input.MoveTo(a.X, a.Y)
	case OpWheel:
		if a.Direction == WheelUp {
			r.input.WheelUp()
		} else {
			r.input.WheelDown()
		}
	case OpWait:
		r.system.Wait(time.Duration(a.Ms) * time.Millisecond)
	case OpRun:
		return r.system.Run(a.Command)
	}
	return nil
}
