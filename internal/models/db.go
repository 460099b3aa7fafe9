package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the database.
type User struct {
	ID             uuid.UUID `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// RequestType classifies a usage record by the kind of AI operation performed.
type RequestType string

const (
	RequestTypeReplyGeneration      RequestType = "reply_generation"
	RequestTypeConversationAnalysis RequestType = "conversation_analysis"
	RequestTypeOCR                  RequestType = "ocr"
	RequestTypeConversationStarter  RequestType = "conversation_starter"
)

// UsageRecord is one append-only usage fact. Records are never mutated or
// deleted; quota checks aggregate them over rolling time windows.
type UsageRecord struct {
	ID          uuid.UUID   `db:"id"`
	UserID      uuid.UUID   `db:"user_id"`
	RequestType RequestType `db:"request_type"`
	TokensUsed  int         `db:"tokens_used"`
	CreatedAt   time.Time   `db:"created_at"`
}
