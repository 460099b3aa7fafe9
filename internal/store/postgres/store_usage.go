package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	db_models "rizzlet-backend/internal/models"
	"rizzlet-backend/internal/store"

	"github.com/google/uuid"
)

// CreateUsageRecord appends one usage record. Usage rows are append-only.
func (s *PostgresStore) CreateUsageRecord(ctx context.Context, arg store.CreateUsageRecordParams) error {
	query := `
		INSERT INTO usage_records (id, user_id, request_type, tokens_used)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.Exec(ctx, query,
		arg.ID,
		arg.UserID,
		string(arg.RequestType),
		arg.TokensUsed,
	)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateUsageRecord: Failed to insert record for user %s: %v", arg.UserID, err)
		return fmt.Errorf("database error creating usage record: %w", err)
	}

	return nil
}

// GetUsageTotalsSince returns the record count and token sum for a user
// over the window starting at `since`.
func (s *PostgresStore) GetUsageTotalsSince(ctx context.Context, userID uuid.UUID, since time.Time) (store.WindowTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(tokens_used), 0)
		FROM usage_records
		WHERE user_id = $1 AND created_at >= $2`

	var totals store.WindowTotals
	err := s.db.QueryRow(ctx, query, userID, since).Scan(&totals.Count, &totals.Tokens)
	if err != nil {
		log.Printf("ERROR [PostgresStore] GetUsageTotalsSince: Failed to query totals for user %s: %v", userID, err)
		return store.WindowTotals{}, fmt.Errorf("database error fetching usage totals: %w", err)
	}

	return totals, nil
}

// GetUsageByTypeSince returns per-request-type counts for a user over the
// window starting at `since`.
func (s *PostgresStore) GetUsageByTypeSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]store.TypeCount, error) {
	query := `
		SELECT request_type, COUNT(*)
		FROM usage_records
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY request_type
		ORDER BY request_type`

	rows, err := s.db.Query(ctx, query, userID, since)
	if err != nil {
		log.Printf("ERROR [PostgresStore] GetUsageByTypeSince: Failed to query for user %s: %v", userID, err)
		return nil, fmt.Errorf("database error fetching usage by type: %w", err)
	}
	defer rows.Close()

	counts := []store.TypeCount{}
	for rows.Next() {
		var tc store.TypeCount
		var requestType string
		if err := rows.Scan(&requestType, &tc.Count); err != nil {
			return nil, fmt.Errorf("database error scanning usage by type: %w", err)
		}
		tc.RequestType = db_models.RequestType(requestType)
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating usage by type: %w", err)
	}

	return counts, nil
}
