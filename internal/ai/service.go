package ai

import (
	"context"
	"fmt"
	"log"

	"rizzlet-backend/internal/models"
)

const defaultReplyCount = 3

// Service runs the AI pipeline: prompt building, fallback dispatch, and
// response parsing. Quota gating happens in the layer above. All state is
// request-scoped except the dispatcher, which is read-only after startup.
type Service struct {
	dispatcher *Dispatcher
}

// NewService creates the AI pipeline service.
func NewService(dispatcher *Dispatcher) *Service {
	return &Service{dispatcher: dispatcher}
}

// GenerateReplies generates reply suggestions from a structured
// conversation.
func (s *Service) GenerateReplies(ctx context.Context, req models.GenerateReplyRequest) (*models.GenerateReplyResponse, error) {
	if req.Conversation == nil || len(req.Conversation.Messages) == 0 {
		return nil, fmt.Errorf("%w: conversation is required", ErrMissingInput)
	}
	tone, err := ParseTone(req.Tone)
	if err != nil {
		return nil, err
	}
	count := req.Count
	if count <= 0 {
		count = defaultReplyCount
	}

	systemPrompt := ReplyGenerationPrompt(tone, req.Conversation)
	userMessage := FormatConversation(req.Conversation)

	// Higher temperature for diverse replies.
	result, err := s.dispatcher.Dispatch(ctx, systemPrompt, userMessage, GenerateOptions{
		Temperature: 0.8,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, err
	}

	replies := ParseReplyOptions(result.Text, tone, count)
	log.Printf("[AIService] GenerateReplies: %d replies via %s/%s", len(replies), result.Provider, result.Model)

	return &models.GenerateReplyResponse{
		Replies: replies,
		ContextAnalysis: models.ContextAnalysis{
			EngagementLevel: "medium",
			RecommendedTone: string(tone),
			Notes:           fmt.Sprintf("Generated by %s/%s", result.Provider, result.Model),
		},
	}, nil
}

// ParseAndGenerateReplies parses a raw conversation export and generates
// replies in a single batched provider call, roughly halving cost versus
// separate parse and generate calls.
func (s *Service) ParseAndGenerateReplies(ctx context.Context, req models.GenerateReplyRequest) (*models.GenerateReplyResponse, error) {
	if req.ConversationText == "" {
		return nil, fmt.Errorf("%w: conversation_text is required", ErrMissingInput)
	}
	tone, err := ParseTone(req.Tone)
	if err != nil {
		return nil, err
	}
	count := req.Count
	if count <= 0 {
		count = defaultReplyCount
	}

	// Raw text carries no reliable last-sender signal before parsing, so
	// the batched path always uses the response framing. Callers that
	// already know the last sender (the vision pipeline) go through
	// GenerateReplies with a structured conversation instead.
	prompt := BatchedParseAndReplyPrompt(req.ConversationText, tone, false, req.UserIdentifier)

	result, err := s.dispatcher.Dispatch(ctx, "You are a helpful AI assistant.", prompt, GenerateOptions{
		Temperature: 0.7,
		MaxTokens:   800,
	})
	if err != nil {
		return nil, err
	}

	replies, parsedMessages, err := ParseBatchedResponse(result.Text, tone, count)
	if err != nil {
		// JSON-path failures surface to the caller; silent repair here
		// would fabricate conversation content.
		return nil, err
	}

	log.Printf("[AIService] ParseAndGenerateReplies: parsed %d messages, %d replies via %s/%s",
		len(parsedMessages), len(replies), result.Provider, result.Model)

	return &models.GenerateReplyResponse{
		Replies: replies,
		ContextAnalysis: models.ContextAnalysis{
			EngagementLevel: "medium",
			RecommendedTone: string(tone),
			Notes: fmt.Sprintf("Batched operation by %s/%s. Parsed %d messages.",
				result.Provider, result.Model, len(parsedMessages)),
		},
	}, nil
}

// AnalyzeConversation asks a model for engagement and tone insights.
// Non-JSON responses degrade to a text-only analysis rather than failing.
func (s *Service) AnalyzeConversation(ctx context.Context, conversation *models.Conversation) (map[string]any, error) {
	if conversation == nil || len(conversation.Messages) == 0 {
		return nil, fmt.Errorf("%w: conversation is required", ErrMissingInput)
	}

	systemPrompt := ContextAnalysisPrompt()
	userMessage := FormatConversationForAnalysis(conversation)

	// Lower temperature for more factual analysis.
	result, err := s.dispatcher.Dispatch(ctx, systemPrompt, userMessage, GenerateOptions{
		Temperature: 0.3,
		MaxTokens:   400,
	})
	if err != nil {
		return nil, err
	}

	var analysis map[string]any
	if err := ExtractJSONObject(result.Text, &analysis); err != nil {
		log.Printf("[AIService] AnalyzeConversation: response was not JSON, using text format")
		return map[string]any{
			"engagement_level": "medium",
			"notes":            result.Text,
		}, nil
	}

	return analysis, nil
}

// GenerateStarters generates conversation openers for a platform/profile.
func (s *Service) GenerateStarters(ctx context.Context, platform, profileInfo string, tone Tone) ([]models.ReplyOption, error) {
	systemPrompt := ConversationStarterPrompt(platform, profileInfo, tone)

	result, err := s.dispatcher.Dispatch(ctx, systemPrompt, "Generate the 5 conversation starters now.", GenerateOptions{
		Temperature: 0.9,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, err
	}

	starters := ParseReplyOptions(result.Text, tone, 5)
	log.Printf("[AIService] GenerateStarters: %d starters via %s/%s", len(starters), result.Provider, result.Model)
	return starters, nil
}

// ExtractConversationFromImage runs the vision extraction path over an
// already-downscaled screenshot and returns the structured conversation.
func (s *Service) ExtractConversationFromImage(ctx context.Context, image ImagePayload) (*VisionExtraction, error) {
	if len(image.Data) == 0 {
		return nil, fmt.Errorf("%w: image payload is empty", ErrMissingInput)
	}

	result, err := s.dispatcher.DispatchVision(ctx, VisionOCRPrompt(), image, GenerateOptions{
		Temperature: 0.2,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}

	extraction, err := ParseVisionResponse(result.Text)
	if err != nil {
		return nil, err
	}

	log.Printf("[AIService] ExtractConversationFromImage: %d messages, platform=%s via %s/%s",
		len(extraction.Messages), extraction.Platform, result.Provider, result.Model)
	return extraction, nil
}
