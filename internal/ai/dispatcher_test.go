package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider fails for models listed in failing and succeeds otherwise,
// recording every attempted call.
type fakeProvider struct {
	mu      sync.Mutex
	name    string
	failing map[string]bool
	calls   []string
}

func newFakeProvider(name string, failing ...string) *fakeProvider {
	f := &fakeProvider{name: name, failing: make(map[string]bool)}
	for _, m := range failing {
		f.failing[m] = true
	}
	return f
}

func (f *fakeProvider) Generate(_ context.Context, model, _, _ string, _ GenerateOptions) (string, error) {
	return f.respond(model)
}

func (f *fakeProvider) GenerateVision(_ context.Context, model, _ string, _ ImagePayload, _ GenerateOptions) (string, error) {
	return f.respond(model)
}

func (f *fakeProvider) respond(model string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, model)
	f.mu.Unlock()
	if f.failing[model] {
		return "", errors.New("simulated provider failure")
	}
	return fmt.Sprintf("response from %s/%s", f.name, model), nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestDispatch_FirstProviderSucceeds(t *testing.T) {
	alpha := newFakeProvider("alpha")
	beta := newFakeProvider("beta")

	registry := NewRegistry()
	registry.Register("alpha", alpha)
	registry.Register("beta", beta)

	priority := []ModelRef{
		{Provider: "alpha", Model: "a-1"},
		{Provider: "beta", Model: "b-1"},
	}
	d := NewDispatcher(registry, priority, nil)

	result, err := d.Dispatch(context.Background(), "system", "user", GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "alpha", result.Provider)
	assert.Equal(t, "a-1", result.Model)
	assert.Equal(t, 1, alpha.callCount())
	assert.Equal(t, 0, beta.callCount(), "dispatch must stop at first success")
}

func TestDispatch_FallsThroughFailuresInOrder(t *testing.T) {
	alpha := newFakeProvider("alpha", "a-1", "a-2")
	beta := newFakeProvider("beta")

	registry := NewRegistry()
	registry.Register("alpha", alpha)
	registry.Register("beta", beta)

	priority := []ModelRef{
		{Provider: "alpha", Model: "a-1"},
		{Provider: "alpha", Model: "a-2"},
		{Provider: "beta", Model: "b-1"},
		{Provider: "beta", Model: "b-2"},
	}
	d := NewDispatcher(registry, priority, nil)

	result, err := d.Dispatch(context.Background(), "system", "user", GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "beta", result.Provider)
	assert.Equal(t, "b-1", result.Model)
	// Exactly k+1 attempts: the two failures plus the one success.
	assert.Equal(t, []string{"a-1", "a-2"}, alpha.calls)
	assert.Equal(t, []string{"b-1"}, beta.calls)
}

func TestDispatch_AllProvidersFail(t *testing.T) {
	alpha := newFakeProvider("alpha", "a-1")
	beta := newFakeProvider("beta", "b-1")

	registry := NewRegistry()
	registry.Register("alpha", alpha)
	registry.Register("beta", beta)

	priority := []ModelRef{
		{Provider: "alpha", Model: "a-1"},
		{Provider: "beta", Model: "b-1"},
	}
	d := NewDispatcher(registry, priority, nil)

	_, err := d.Dispatch(context.Background(), "system", "user", GenerateOptions{})

	assert.ErrorIs(t, err, ErrAllProvidersExhausted)
	assert.Equal(t, 1, alpha.callCount(), "exactly one attempt per entry")
	assert.Equal(t, 1, beta.callCount(), "exactly one attempt per entry")
}

func TestDispatch_UnconfiguredProviderIsSkipped(t *testing.T) {
	beta := newFakeProvider("beta")

	registry := NewRegistry()
	registry.Register("beta", beta)
	// "alpha" never registered: simulates missing credentials

	priority := []ModelRef{
		{Provider: "alpha", Model: "a-1"},
		{Provider: "beta", Model: "b-1"},
	}
	d := NewDispatcher(registry, priority, nil)

	result, err := d.Dispatch(context.Background(), "system", "user", GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "beta", result.Provider)
}

func TestDispatch_NothingConfigured(t *testing.T) {
	d := NewDispatcher(NewRegistry(), []ModelRef{{Provider: "alpha", Model: "a-1"}}, nil)

	_, err := d.Dispatch(context.Background(), "system", "user", GenerateOptions{})

	assert.ErrorIs(t, err, ErrAllProvidersExhausted)
}

func TestDispatch_DeterministicOrderAcrossRuns(t *testing.T) {
	priority := []ModelRef{
		{Provider: "alpha", Model: "a-1"},
		{Provider: "alpha", Model: "a-2"},
		{Provider: "alpha", Model: "a-3"},
	}

	for run := 0; run < 3; run++ {
		alpha := newFakeProvider("alpha", "a-1", "a-2", "a-3")
		registry := NewRegistry()
		registry.Register("alpha", alpha)
		d := NewDispatcher(registry, priority, nil)

		_, err := d.Dispatch(context.Background(), "system", "user", GenerateOptions{})

		assert.ErrorIs(t, err, ErrAllProvidersExhausted)
		assert.Equal(t, []string{"a-1", "a-2", "a-3"}, alpha.calls, "attempt order must be stable run to run")
	}
}

func TestDispatchVision_UsesVisionPriorityList(t *testing.T) {
	alpha := newFakeProvider("alpha")

	registry := NewRegistry()
	registry.Register("alpha", alpha)

	textPriority := []ModelRef{{Provider: "alpha", Model: "text-model"}}
	visionPriority := []ModelRef{{Provider: "alpha", Model: "vision-model"}}
	d := NewDispatcher(registry, textPriority, visionPriority)

	image := ImagePayload{Data: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"}
	result, err := d.DispatchVision(context.Background(), "prompt", image, GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "vision-model", result.Model)
	assert.Equal(t, []string{"vision-model"}, alpha.calls)
}
