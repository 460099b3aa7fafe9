package ai

import "errors"

// Error taxonomy for the AI pipeline. Handlers map these to HTTP status
// codes: missing input is client-correctable (4xx); exhaustion and bad
// model output are "try again" conditions (5xx).
var (
	// ErrAllProvidersExhausted means every configured provider in the
	// fallback chain failed or was unavailable for this call.
	ErrAllProvidersExhausted = errors.New("all AI providers failed")

	// ErrInvalidModelOutput means a model responded but its output could
	// not be extracted into the required shape.
	ErrInvalidModelOutput = errors.New("AI returned invalid output")

	// ErrMissingInput means a required conversation, tone, or text was
	// absent. Validated before any provider call to avoid wasted cost.
	ErrMissingInput = errors.New("missing required input")
)
