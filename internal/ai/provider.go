package ai

import (
	"context"
	"log"
)

// Provider identifiers. The same model id could in principle appear under
// two providers, so catalog identity is always the (provider, model) pair.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// GenerateOptions carry per-call sampling parameters.
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
}

// ImagePayload is a pre-processed image handed to a vision-capable model.
// The dispatcher assumes downscaling/re-encoding already happened and does
// not re-compress.
type ImagePayload struct {
	Data     []byte
	MIMEType string
}

// Provider is the capability interface all AI backends must implement.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Generate sends a system prompt and user message to the given model
	// and returns the raw response text.
	Generate(ctx context.Context, model, systemPrompt, userMessage string, opts GenerateOptions) (string, error)

	// GenerateVision sends a prompt plus an image to a vision-capable
	// model and returns the raw response text.
	GenerateVision(ctx context.Context, model, prompt string, image ImagePayload, opts GenerateOptions) (string, error)
}

// ModelRef is one ordered catalog entry in a fallback chain.
type ModelRef struct {
	Provider string
	Model    string
}

// Default fallback chains. Order is priority order; the dispatcher never
// reorders these at runtime.
var (
	DefaultTextPriority = []ModelRef{
		{Provider: ProviderGemini, Model: "gemini-2.5-flash"},
		{Provider: ProviderGemini, Model: "gemini-2.5-flash-lite"},
		{Provider: ProviderGroq, Model: "llama-3.1-70b-versatile"},
		{Provider: ProviderGroq, Model: "llama-3.1-8b-instant"},
	}

	DefaultVisionPriority = []ModelRef{
		{Provider: ProviderGemini, Model: "gemini-2.5-flash"},
		{Provider: ProviderGemini, Model: "gemini-2.5-flash-lite"},
		{Provider: ProviderGroq, Model: "llama-3.2-90b-vision-preview"},
		{Provider: ProviderGroq, Model: "meta-llama/llama-4-scout-17b-16e-instruct"},
	}
)

// Registry holds the mapping between provider identifiers and their
// configured Provider instances. Providers without credentials are simply
// never registered; the dispatcher treats a missing entry as a skip.
// The registry is populated once at startup and read-only afterwards.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a configured provider to the registry.
func (r *Registry) Register(providerID string, p Provider) {
	if _, exists := r.providers[providerID]; exists {
		log.Printf("WARN [ProviderRegistry] Provider '%s' is already registered. Overwriting.", providerID)
	}
	r.providers[providerID] = p
	log.Printf("[ProviderRegistry] Registered provider: %s", providerID)
}

// Get retrieves a provider by identifier. The second return value is false
// when the provider was never configured.
func (r *Registry) Get(providerID string) (Provider, bool) {
	p, ok := r.providers[providerID]
	return p, ok
}
