package store

import (
	"context"
	"errors"
	"time"

	db_models "rizzlet-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// CreateUsageRecordParams contains parameters for appending a usage record.
type CreateUsageRecordParams struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	RequestType db_models.RequestType
	TokensUsed  int
}

// WindowTotals aggregates usage records over one rolling window.
type WindowTotals struct {
	Count  int
	Tokens int
}

// TypeCount is a per-request-type record count.
type TypeCount struct {
	RequestType db_models.RequestType
	Count       int
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// User operations
	GetUserByEmail(ctx context.Context, email string) (*db_models.User, error)
	CreateUser(ctx context.Context, user *db_models.User) error

	// Usage operations. Usage records are append-only; there are no
	// update or delete operations.
	CreateUsageRecord(ctx context.Context, arg CreateUsageRecordParams) error
	GetUsageTotalsSince(ctx context.Context, userID uuid.UUID, since time.Time) (WindowTotals, error)
	GetUsageByTypeSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]TypeCount, error)
}
