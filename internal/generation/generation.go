// Package generation is the boundary to the external text-generation
// provider. A single request produces a single completion; failures are
// reported once and never retried.
package generation

import (
	"context"
	"errors"
	"fmt"
)

// Fallbacks used when a request leaves a parameter unset.
const (
	DefaultModel       = "gemini-2.0-flash"
	DefaultTemperature = float32(1)
)

var (
	// ErrInvalidInput is returned for a request without a prompt.
	ErrInvalidInput = errors.New("generation: invalid input")
	// ErrEmptyResponse is returned when the provider answered with no text.
	ErrEmptyResponse = errors.New("generation: empty response from provider")
)

// ProviderError wraps a transport or provider failure, timeouts included.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("generation: provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Request is one completion request. Zero values fall back to defaults.
type Request struct {
	OriginPrompt string   `json:"originPrompt"`
	Model        string   `json:"model,omitempty"`
	SystemPrompt string   `json:"systemPrompt,omitempty"`
	Temperature  *float32 `json:"temperature,omitempty"`
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Result is the wire shape of a generation answer. Exactly one field is set.
type Result struct {
	Data  *string `json:"data"`
	Error *string `json:"error"`
}

// Invoke runs req through g and folds the outcome into a Result.
func Invoke(ctx context.Context, g Generator, req Request) Result {
	return ResultOf(g.Generate(ctx, req))
}

// ResultOf folds a Generate outcome into a Result. Empty text counts as
// ErrEmptyResponse.
func ResultOf(text string, err error) Result {
	if err == nil && text == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		msg := err.Error()
		return Result{Error: &msg}
	}
	return Result{Data: &text}
}

// Temperature returns a pointer to t, for building requests.
func Temperature(t float32) *float32 { return &t }
