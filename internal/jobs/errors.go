package jobs

import "errors"

var (
	ErrNotFound = errors.New("job not found")
	ErrNotReady = errors.New("result not ready")
	ErrTerminal = errors.New("job already in a terminal state")
)
