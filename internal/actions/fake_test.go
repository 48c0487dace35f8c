package actions

import (
	"fmt"
	"time"

	"fakeinput/internal/input"
)

// recorder implements Input and System by logging every call
type recorder struct {
	calls  []string
	runErr error
}

func (r *recorder) add(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) PressKey(k input.KeyType)          { r.add("press %s", k) }
func (r *recorder) ReleaseKey(k input.KeyType)        { r.add("release %s", k) }
func (r *recorder) PressButton(b input.MouseButton)   { r.add("down %s", b) }
func (r *recorder) ReleaseButton(b input.MouseButton) { r.add("up %s", b) }
func (r *recorder) Move(dx, dy int)                   { r.add("move %d %d", dx, dy) }
func (r *recorder) MoveTo(x, y int)                   { r.add("moveto %d %d", x, y) }
func (r *recorder) WheelUp()                          { r.add("wheel up") }
func (r *recorder) WheelDown()                        { r.add("wheel down") }
func (r *recorder) Wait(d time.Duration)              { r.add("wait %v", d) }

func (r *recorder) Run(command string) error {
	r.add("run %s", command)
	return r.runErr
}
