// Package llm is the boundary to the external text-generation service. The
// core hands a Provider a system and a user instruction and gets raw text
// back; everything about transport lives here.
package llm

import (
	"context"
	"errors"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

// ErrModelUnavailable marks a failure caused by the requested model not
// existing or not being served. Callers may retry once with another model.
var ErrModelUnavailable = errors.New("model unavailable")

// IsModelUnavailable reports whether err is, or wraps, ErrModelUnavailable.
func IsModelUnavailable(err error) bool {
	return errors.Is(err, ErrModelUnavailable)
}
