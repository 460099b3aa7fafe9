// Package usage implements the quota gate: rolling daily/monthly usage
// windows checked before each AI pipeline invocation, and best-effort
// usage recording afterwards.
package usage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rizzlet-backend/internal/models"
	"rizzlet-backend/internal/store"

	"github.com/google/uuid"
)

// ErrQuotaExceeded is returned when a rolling usage window is at or over
// its configured limit.
var ErrQuotaExceeded = errors.New("usage limit exceeded")

const (
	dailyWindow   = 24 * time.Hour
	monthlyWindow = 30 * 24 * time.Hour
)

// Service checks and records per-user usage against configured limits.
type Service struct {
	store        store.Store
	dailyLimit   int
	monthlyLimit int
	now          func() time.Time
}

// NewService creates a usage service with the given limits.
func NewService(s store.Store, dailyLimit, monthlyLimit int) *Service {
	return &Service{
		store:        s,
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
		now:          time.Now,
	}
}

// CheckQuota returns ErrQuotaExceeded when the user's trailing-24h count
// has reached the daily limit or the trailing-30d count has reached the
// monthly limit. Daily is checked first. The check and a concurrent
// record from another in-flight request are not serialized; a user racing
// two requests near the limit may exceed it by one, which is acceptable
// for a soft quota.
func (s *Service) CheckQuota(ctx context.Context, userID uuid.UUID) error {
	now := s.now()

	daily, err := s.store.GetUsageTotalsSince(ctx, userID, now.Add(-dailyWindow))
	if err != nil {
		return fmt.Errorf("failed to check daily usage: %w", err)
	}
	if daily.Count >= s.dailyLimit {
		return fmt.Errorf("%w: daily limit of %d requests reached", ErrQuotaExceeded, s.dailyLimit)
	}

	monthly, err := s.store.GetUsageTotalsSince(ctx, userID, now.Add(-monthlyWindow))
	if err != nil {
		return fmt.Errorf("failed to check monthly usage: %w", err)
	}
	if monthly.Count >= s.monthlyLimit {
		return fmt.Errorf("%w: monthly limit of %d requests reached", ErrQuotaExceeded, s.monthlyLimit)
	}

	return nil
}

// TrackUsage appends one usage record. Tracking is best-effort: a storage
// fault is logged and swallowed so it can never abort a caller whose AI
// generation already completed.
func (s *Service) TrackUsage(ctx context.Context, userID uuid.UUID, requestType models.RequestType, tokensUsed int) {
	err := s.store.CreateUsageRecord(ctx, store.CreateUsageRecordParams{
		ID:          uuid.New(),
		UserID:      userID,
		RequestType: requestType,
		TokensUsed:  tokensUsed,
	})
	if err != nil {
		log.Printf("WARN [UsageService] Failed to track usage for user %s (%s): %v", userID, requestType, err)
	}
}

// GetUserUsage aggregates the user's usage for the stats endpoint.
func (s *Service) GetUserUsage(ctx context.Context, userID uuid.UUID) (*models.UsageStatsResponse, error) {
	now := s.now()

	daily, err := s.store.GetUsageTotalsSince(ctx, userID, now.Add(-dailyWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily usage: %w", err)
	}

	monthly, err := s.store.GetUsageTotalsSince(ctx, userID, now.Add(-monthlyWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly usage: %w", err)
	}

	byType, err := s.store.GetUsageByTypeSince(ctx, userID, now.Add(-monthlyWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to get usage by type: %w", err)
	}

	stats := &models.UsageStatsResponse{
		Daily: models.UsageWindow{
			Count:  daily.Count,
			Tokens: daily.Tokens,
			Limit:  s.dailyLimit,
		},
		Monthly: models.UsageWindow{
			Count:  monthly.Count,
			Tokens: monthly.Tokens,
			Limit:  s.monthlyLimit,
		},
		ByType: make([]models.UsageByType, 0, len(byType)),
	}
	for _, tc := range byType {
		stats.ByType = append(stats.ByType, models.UsageByType{
			RequestType: tc.RequestType,
			Count:       tc.Count,
		})
	}

	return stats, nil
}
