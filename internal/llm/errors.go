package llm

import "errors"

var (
	// ErrUnavailable indicates the LLM server is unreachable.
	ErrUnavailable = errors.New("llm server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response was empty or not in the
	// expected shape.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrNotConfigured indicates a provider is missing required settings,
	// such as an API key.
	ErrNotConfigured = errors.New("llm provider not configured")
)
