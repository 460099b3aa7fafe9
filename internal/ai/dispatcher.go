package ai

import (
	"context"
	"log"
	"time"
)

// defaultAttemptTimeout bounds a single provider call. A timed-out
// provider counts as a failure for that call and the chain moves on.
const defaultAttemptTimeout = 60 * time.Second

// Dispatcher walks an ordered fallback chain, one attempt per entry, and
// returns the first successful response. Priority order itself is the
// retry strategy: there is no per-entry retry, no backoff, and no
// reordering, so identical inputs explore providers in the same order
// run to run. Calls are strictly sequential to avoid paying multiple
// providers for one answer.
type Dispatcher struct {
	registry       *Registry
	textPriority   []ModelRef
	visionPriority []ModelRef
	attemptTimeout time.Duration
}

// NewDispatcher creates a Dispatcher over the given registry and priority
// lists. The lists are treated as immutable after construction.
func NewDispatcher(registry *Registry, textPriority, visionPriority []ModelRef) *Dispatcher {
	return &Dispatcher{
		registry:       registry,
		textPriority:   textPriority,
		visionPriority: visionPriority,
		attemptTimeout: defaultAttemptTimeout,
	}
}

// DispatchResult carries the first successful response plus which catalog
// entry produced it.
type DispatchResult struct {
	Text     string
	Provider string
	Model    string
}

// Dispatch tries each entry of the text priority list in order and returns
// the first success. Returns ErrAllProvidersExhausted if every entry
// failed or was unavailable.
func (d *Dispatcher) Dispatch(ctx context.Context, systemPrompt, userMessage string, opts GenerateOptions) (*DispatchResult, error) {
	return d.run(ctx, d.textPriority, func(ctx context.Context, p Provider, model string) (string, error) {
		return p.Generate(ctx, model, systemPrompt, userMessage, opts)
	})
}

// DispatchVision is Dispatch over the vision priority list, with an image
// payload alongside the prompt.
func (d *Dispatcher) DispatchVision(ctx context.Context, prompt string, image ImagePayload, opts GenerateOptions) (*DispatchResult, error) {
	return d.run(ctx, d.visionPriority, func(ctx context.Context, p Provider, model string) (string, error) {
		return p.GenerateVision(ctx, model, prompt, image, opts)
	})
}

func (d *Dispatcher) run(ctx context.Context, priority []ModelRef, call func(context.Context, Provider, string) (string, error)) (*DispatchResult, error) {
	for _, ref := range priority {
		provider, ok := d.registry.Get(ref.Provider)
		if !ok {
			// Missing credentials disable the provider at startup; a skip
			// is not a distinct diagnostic, both collapse to exhaustion.
			log.Printf("[Dispatcher] Provider %s not configured, skipping %s/%s", ref.Provider, ref.Provider, ref.Model)
			continue
		}

		log.Printf("[Dispatcher] Attempting %s/%s", ref.Provider, ref.Model)

		attemptCtx, cancel := context.WithTimeout(ctx, d.attemptTimeout)
		text, err := call(attemptCtx, provider, ref.Model)
		cancel()

		if err != nil {
			// Provider-level failures are never exposed individually to
			// the caller, only the aggregate exhaustion error.
			log.Printf("[Dispatcher] %s/%s failed: %v", ref.Provider, ref.Model, err)
			continue
		}

		log.Printf("[Dispatcher] %s/%s succeeded (%d bytes)", ref.Provider, ref.Model, len(text))
		return &DispatchResult{
			Text:     text,
			Provider: ref.Provider,
			Model:    ref.Model,
		}, nil
	}

	return nil, ErrAllProvidersExhausted
}
