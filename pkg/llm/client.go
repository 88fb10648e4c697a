package llm

import (
	"context"
	"errors"
)

// ErrProvider marks transport or timeout failures talking to the LLM
// provider. Calls are not retried here; a failed cycle waits for the next
// scheduled trigger.
var ErrProvider = errors.New("llm provider error")

const (
	maxOutputTokens = 1024
	temperature     = 0.2
)

// Provider is one LLM backend. Complete sends a single system+user
// exchange and returns the raw text answer.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
	ModelName() string
}
