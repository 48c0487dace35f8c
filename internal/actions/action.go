// Package actions describes keyboard and mouse steps as data, parses them from
// scripts and plays them back against an input device.
package actions

import (
	"fmt"
	"strings"

	"fakeinput/internal/input"
)

// Op names a kind of action
type Op string

const (
	OpPress     Op = "press"
	OpRelease   Op = "release"
	OpTap       Op = "tap"
	OpChord     Op = "chord"
	OpMouseDown Op = "mousedown"
	OpMouseUp   Op = "mouseup"
	OpClick     Op = "click"
	OpMove      Op = "move"
	OpMoveTo    Op = "moveto"
	OpWheel     Op = "wheel"
	OpWait      Op = "wait"
	OpRun       Op = "run"
)

// Wheel directions
const (
	WheelUp   = "up"
	WheelDown = "down"
)

// Action is one step of a sequence. Which fields are used depends on Op.
type Action struct {
	Op        Op       `json:"op"`
	Key       string   `json:"key,omitempty"`
	Keys      []string `json:"keys,omitempty"`
	Button    string   `json:"button,omitempty"`
	X         int      `json:"x,omitempty"`
	Y         int      `json:"y,omitempty"`
	Ms        int      `json:"ms,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Command   string   `json:"command,omitempty"`
}

// Validate checks that the op is known and its symbolic values resolve.
func (a Action) Validate() error {
	switch a.Op {
	case OpPress, OpRelease, OpTap:
		_, err := parseKey(a.Key)
		return err
	case OpChord:
		if len(a.Keys) == 0 {
			return fmt.Errorf("%w: chord needs at least one key", ErrBadArgument)
		}
		for _, k := range a.Keys {
			if _, err := parseKey(k); err != nil {
				return err
			}
		}
	case OpMouseDown, OpMouseUp, OpClick:
		_, err := parseButton(a.Button)
		return err
	case OpMove, OpMoveTo:
	case OpWheel:
		if a.Direction != WheelUp && a.Direction != WheelDown {
			return fmt.Errorf("%w: wheel direction %q", ErrBadArgument, a.Direction)
		}
	case OpWait:
		if a.Ms < 0 {
			return fmt.Errorf("%w: negative wait %d", ErrBadArgument, a.Ms)
		}
	case OpRun:
		if strings.TrimSpace(a.Command) == "" {
			return fmt.Errorf("%w: empty command", ErrBadArgument)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, a.Op)
	}
	return nil
}

// String formats the action as a script line.
func (a Action) String() string {
	switch a.Op {
	case OpPress, OpRelease, OpTap:
		return fmt.Sprintf("%s %s", a.Op, a.Key)
	case OpChord:
		return fmt.Sprintf("%s %s", a.Op, strings.Join(a.Keys, "+"))
	case OpMouseDown, OpMouseUp, OpClick:
		if a.Button == "" {
			return string(a.Op)
		}
		return fmt.Sprintf("%s %s", a.Op, a.Button)
	case OpMove, OpMoveTo:
		return fmt.Sprintf("%s %d %d", a.Op, a.X, a.Y)
	case OpWheel:
		return fmt.Sprintf("%s %s", a.Op, a.Direction)
	case OpWait:
		return fmt.Sprintf("%s %d", a.Op, a.Ms)
	case OpRun:
		return fmt.Sprintf("%s %s", a.Op, a.Command)
	default:
		return string(a.Op)
	}
}

// Validate checks every action and reports the index of the first bad one.
func Validate(actions []Action) error {
	for i, a := range actions {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}
	return nil
}

func parseKey(name string) (input.KeyType, error) {
	k, ok := input.ParseKey(name)
	if !ok {
		return input.NoKey, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return k, nil
}

// parseButton defaults to the left button
func parseButton(name string) (input.MouseButton, error) {
	if name == "" {
		return input.MouseLeft, nil
	}
	b, ok := input.ParseButton(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
	}
	return b, nil
}
