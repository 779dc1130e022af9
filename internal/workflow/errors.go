package workflow

import "errors"

var (
	// ErrUnknownWorkflow is returned when starting an id that is not registered.
	ErrUnknownWorkflow = errors.New("workflow not found")

	// ErrNoActiveWorkflow is returned when input arrives while idle.
	ErrNoActiveWorkflow = errors.New("no active workflow")
)
