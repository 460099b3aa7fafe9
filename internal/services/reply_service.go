package services

import (
	"context"
	"fmt"

	"rizzlet-backend/internal/ai"
	"rizzlet-backend/internal/models"
	"rizzlet-backend/internal/usage"
	"rizzlet-backend/internal/vision"

	"github.com/google/uuid"
)

// ReplyService orchestrates the AI pipeline for one request: quota
// pre-check, pipeline invocation, then best-effort usage recording.
// Usage is only recorded after a successful generation; its own failure
// never propagates to the caller.
type ReplyService struct {
	ai    *ai.Service
	usage *usage.Service
}

// NewReplyService creates a new ReplyService.
func NewReplyService(aiSvc *ai.Service, usageSvc *usage.Service) *ReplyService {
	return &ReplyService{
		ai:    aiSvc,
		usage: usageSvc,
	}
}

// GenerateReplies produces reply suggestions. Structured conversations use
// the direct generation path; raw text uses the batched parse+reply path.
func (s *ReplyService) GenerateReplies(ctx context.Context, userID uuid.UUID, req models.GenerateReplyRequest) (*models.GenerateReplyResponse, error) {
	if err := s.usage.CheckQuota(ctx, userID); err != nil {
		return nil, err
	}

	var (
		resp *models.GenerateReplyResponse
		err  error
	)
	if req.ConversationText != "" {
		resp, err = s.ai.ParseAndGenerateReplies(ctx, req)
	} else {
		resp, err = s.ai.GenerateReplies(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	s.usage.TrackUsage(ctx, userID, models.RequestTypeReplyGeneration, 0)
	return resp, nil
}

// AnalyzeConversation returns engagement/tone insights for a conversation.
func (s *ReplyService) AnalyzeConversation(ctx context.Context, userID uuid.UUID, conversation *models.Conversation) (map[string]any, error) {
	if err := s.usage.CheckQuota(ctx, userID); err != nil {
		return nil, err
	}

	analysis, err := s.ai.AnalyzeConversation(ctx, conversation)
	if err != nil {
		return nil, err
	}

	s.usage.TrackUsage(ctx, userID, models.RequestTypeConversationAnalysis, 0)
	return analysis, nil
}

// GenerateStarters produces conversation openers.
func (s *ReplyService) GenerateStarters(ctx context.Context, userID uuid.UUID, req models.StarterRequest) (*models.StarterResponse, error) {
	if err := s.usage.CheckQuota(ctx, userID); err != nil {
		return nil, err
	}

	toneStr := req.Tone
	if toneStr == "" {
		toneStr = string(ai.TonePlayful)
	}
	tone, err := ai.ParseTone(toneStr)
	if err != nil {
		return nil, err
	}

	starters, err := s.ai.GenerateStarters(ctx, req.Platform, req.ProfileInfo, tone)
	if err != nil {
		return nil, err
	}

	s.usage.TrackUsage(ctx, userID, models.RequestTypeConversationStarter, 0)
	return &models.StarterResponse{Starters: starters}, nil
}

// ExtractConversation runs the vision extraction path: downscale the
// screenshot, dispatch it to the vision fallback chain, and validate the
// structured result. The derived LastMessageWasUser flag lets the client
// pick reply-vs-follow-up framing downstream.
func (s *ReplyService) ExtractConversation(ctx context.Context, userID uuid.UUID, imageData []byte) (*models.OCRExtractResponse, error) {
	if err := s.usage.CheckQuota(ctx, userID); err != nil {
		return nil, err
	}

	scaled, mimeType, err := vision.Downscale(imageData, vision.MaxDimension, vision.JPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMissingInput, err)
	}

	extraction, err := s.ai.ExtractConversationFromImage(ctx, ai.ImagePayload{
		Data:     scaled,
		MIMEType: mimeType,
	})
	if err != nil {
		return nil, err
	}

	conversation := models.Conversation{Messages: extraction.Messages}

	s.usage.TrackUsage(ctx, userID, models.RequestTypeOCR, 0)
	return &models.OCRExtractResponse{
		Platform:           extraction.Platform,
		Messages:           extraction.Messages,
		Confidence:         extraction.Confidence,
		MessageCount:       len(extraction.Messages),
		LastMessageWasUser: conversation.LastMessageWasUser(),
	}, nil
}
