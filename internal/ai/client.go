package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Both vendors expose OpenAI-compatible chat completion endpoints, so a
// single client implementation covers them with different base URLs.
const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
)

// OpenAICompatClient is a Provider backed by an OpenAI-compatible API.
type OpenAICompatClient struct {
	client *openai.Client
	name   string
}

var _ Provider = (*OpenAICompatClient)(nil)

// NewGroqClient creates a Provider for the Groq API.
func NewGroqClient(apiKey string) *OpenAICompatClient {
	return newCompatClient(ProviderGroq, apiKey, groqBaseURL)
}

// NewGeminiClient creates a Provider for the Gemini API via its
// OpenAI-compatible endpoint.
func NewGeminiClient(apiKey string) *OpenAICompatClient {
	return newCompatClient(ProviderGemini, apiKey, geminiBaseURL)
}

func newCompatClient(name, apiKey, baseURL string) *OpenAICompatClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &OpenAICompatClient{
		client: openai.NewClientWithConfig(cfg),
		name:   name,
	}
}

// Generate sends a system prompt and user message and returns the response text.
func (c *OpenAICompatClient) Generate(ctx context.Context, model, systemPrompt, userMessage string, opts GenerateOptions) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s chat completion: no response choices", c.name)
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateVision sends a prompt plus an inline image and returns the response text.
func (c *OpenAICompatClient) GenerateVision(ctx context.Context, model, prompt string, image ImagePayload, opts GenerateOptions) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", image.MIMEType, base64.StdEncoding.EncodeToString(image.Data))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s vision completion: %w", c.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s vision completion: no response choices", c.name)
	}

	return resp.Choices[0].Message.Content, nil
}
