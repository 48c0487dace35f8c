package actions

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a script with one action per line:
//
//	# comment
//	tap Return
//	chord Ctrl+Alt+Delete
//	click right
//	moveto 960 540
//	wheel down
//	wait 250
//	run notepad.exe
//
// Errors carry the 1-based line number.
func Parse(script string) ([]Action, error) {
	var actions []Action
	scanner := bufio.NewScanner(strings.NewReader(script))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		a, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		actions = append(actions, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return actions, nil
}

func parseLine(text string) (Action, error) {
	op, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)
	a := Action{Op: Op(strings.ToLower(op))}
	args := strings.Fields(rest)

	switch a.Op {
	case OpPress, OpRelease, OpTap:
		if len(args) != 1 {
			return a, fmt.Errorf("%w: %s takes one key", ErrBadArgument, a.Op)
		}
		a.Key = args[0]
	case OpChord:
		a.Keys = SplitChord(rest)
	case OpMouseDown, OpMouseUp, OpClick:
		if len(args) > 1 {
			return a, fmt.Errorf("%w: %s takes at most one button", ErrBadArgument, a.Op)
		}
		if len(args) == 1 {
			a.Button = args[0]
		}
	case OpMove, OpMoveTo:
		if len(args) != 2 {
			return a, fmt.Errorf("%w: %s takes x and y", ErrBadArgument, a.Op)
		}
		var err error
		if a.X, err = strconv.Atoi(args[0]); err != nil {
			return a, fmt.Errorf("%w: x %q", ErrBadArgument, args[0])
		}
		if a.Y, err = strconv.Atoi(args[1]); err != nil {
			return a, fmt.Errorf("%w: y %q", ErrBadArgument, args[1])
		}
	case OpWheel:
		if len(args) != 1 {
			return a, fmt.Errorf("%w: wheel takes up or down", ErrBadArgument)
		}
		a.Direction = strings.ToLower(args[0])
	case OpWait:
		if len(args) != 1 {
			return a, fmt.Errorf("%w: wait takes milliseconds", ErrBadArgument)
		}
		ms, err := strconv.Atoi(args[0])
		if err != nil {
			return a, fmt.Errorf("%w: wait %q", ErrBadArgument, args[0])
		}
		a.Ms = ms
	case OpRun:
		a.Command = rest
	default:
		return a, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
	return a, nil
}

// SplitChord splits a chord like "Ctrl+Alt+Delete" into key names.
func SplitChord(chord string) []string {
	var keys []string
	for _, p := range strings.Split(chord, "+") {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}

// Format writes actions back as a script.
func Format(actions []Action) string {
	var b strings.Builder
	for _, a := range actions {
		b.WriteString(a.String())
		b.WriteByte('\n')
	}
	return b.String()
}
