package actions

import "errors"

var (
	ErrUnknownOp     = errors.New("unknown action")
	ErrUnknownKey    = errors.New("unknown key")
	ErrUnknownButton = errors.New("unknown mouse button")
	ErrBadArgument   = errors.New("invalid argument")
)
