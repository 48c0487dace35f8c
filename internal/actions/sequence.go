package actions

import (
	"time"

	"fakeinput/internal/input"
)

// Sequence builds a list of actions.
//
//	seq := actions.NewSequence().
//		Chord(input.KeyControlL, input.KeyC).
//		Wait(100 * time.Millisecond).
//		Click(input.MouseLeft)
type Sequence struct {
	actions []Action
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) add(a Action) *Sequence {
	s.actions = append(s.actions, a)
	return s
}

func (s *Sequence) Press(k input.KeyType) *Sequence {
	return s.add(Action{Op: OpPress, Key: k.String()})
}

func (s *Sequence) Release(k input.KeyType) *Sequence {
	return s.add(Action{Op: OpRelease, Key: k.String()})
}

func (s *Sequence) Tap(k input.KeyType) *Sequence {
	return s.add(Action{Op: OpTap, Key: k.String()})
}

// Chord presses keys in order and releases them in reverse.
func (s *Sequence) Chord(keys ...input.KeyType) *Sequence {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return s.add(Action{Op: OpChord, Keys: names})
}

func (s *Sequence) MouseDown(b input.MouseButton) *Sequence {
	return s.add(Action{Op: OpMouseDown, Button: b.String()})
}

func (s *Sequence) MouseUp(b input.MouseButton) *Sequence {
	return s.add(Action{Op: OpMouseUp, Button: b.String()})
}

func (s *Sequence) Click(b input.MouseButton) *Sequence {
	return s.add(Action{Op: OpClick, Button: b.String()})
}

func (s *Sequence) Move(dx, dy int) *Sequence {
	return s.add(Action{Op: OpMove, X: dx, Y: dy})
}

func (s *Sequence) MoveTo(x, y int) *Sequence {
	return s.add(Action{Op: OpMoveTo, X: x, Y: y})
}

func (s *Sequence) WheelUp() *Sequence {
	return s.add(Action{Op: OpWheel, Direction: WheelUp})
}

func (s *Sequence) WheelDown() *Sequence {
	return s.add(Action{Op: OpWheel, Direction: WheelDown})
}

// Wait is rounded down to whole milliseconds.
func (s *Sequence) Wait(d time.Duration) *Sequence {
	return s.add(Action{Op: OpWait, Ms: int(d / time.Millisecond)})
}

func (s *Sequence) Run(command string) *Sequence {
	return s.add(Action{Op: OpRun, Command: command})
}

// Actions returns a copy of the built actions.
func (s *Sequence) Actions() []Action {
	return append([]Action(nil), s.actions...)
}
