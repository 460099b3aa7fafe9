package models

import (
	"github.com/google/uuid"
)

// --- Auth DTOs ---

// SignupRequest defines the expected body for the signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the expected body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse defines the user information returned by the API.
// Avoid returning sensitive info like HashedPassword.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Conversation model ---

// Sender identifies which side of the conversation a message came from.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderOther Sender = "other"
)

// Message is a single chat message. Ordering within a Conversation is
// chronological and significant: the last message determines whether
// generated replies are responses or follow-ups.
type Message struct {
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Conversation is an ordered sequence of messages, immutable for the
// duration of one pipeline invocation.
type Conversation struct {
	Messages []Message `json:"messages"`
	Platform string    `json:"platform,omitempty"`
}

// LastMessageWasUser reports whether the most recent message in the
// conversation was sent by the user. False for an empty conversation.
func (c Conversation) LastMessageWasUser() bool {
	if len(c.Messages) == 0 {
		return false
	}
	return c.Messages[len(c.Messages)-1].Sender == SenderUser
}

// --- Reply generation DTOs ---

// GenerateReplyRequest is the body for POST /v1/replies/generate.
// Either Conversation (structured) or ConversationText (raw export for the
// batched parse+reply path) must be present.
type GenerateReplyRequest struct {
	Conversation     *Conversation `json:"conversation,omitempty"`
	ConversationText string        `json:"conversation_text,omitempty"`
	UserIdentifier   string        `json:"user_identifier,omitempty"`
	Tone             string        `json:"tone"`
	Count            int           `json:"count,omitempty"` // default 3
}

// ReplyOption is one generated suggestion. Confidence is a provenance
// signal assigned by the parser, not a model estimate.
type ReplyOption struct {
	Text       string  `json:"text"`
	Tone       string  `json:"tone"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// ContextAnalysis summarizes the conversation for the client.
type ContextAnalysis struct {
	EngagementLevel string `json:"engagement_level"`
	RecommendedTone string `json:"recommended_tone"`
	Notes           string `json:"notes"`
}

// GenerateReplyResponse is the result of a reply-generation pipeline call.
type GenerateReplyResponse struct {
	Replies         []ReplyOption   `json:"replies"`
	ContextAnalysis ContextAnalysis `json:"context_analysis"`
}

// --- Conversation starter DTOs ---

// StarterRequest is the body for POST /v1/replies/starters.
type StarterRequest struct {
	Platform    string `json:"platform,omitempty"`
	ProfileInfo string `json:"profile_info,omitempty"`
	Tone        string `json:"tone,omitempty"`
}

// StarterResponse carries generated conversation openers.
type StarterResponse struct {
	Starters []ReplyOption `json:"starters"`
}

// --- Analysis DTOs ---

// AnalyzeRequest is the body for POST /v1/replies/analyze.
type AnalyzeRequest struct {
	Conversation *Conversation `json:"conversation"`
}

// --- Vision OCR DTOs ---

// OCRExtractResponse is produced by the vision extraction path.
// LastMessageWasUser lets the client decide reply-vs-follow-up framing
// without re-deriving it.
type OCRExtractResponse struct {
	Platform           string    `json:"platform"`
	Messages           []Message `json:"messages"`
	Confidence         float64   `json:"confidence"`
	MessageCount       int       `json:"message_count"`
	LastMessageWasUser bool      `json:"last_message_was_user"`
}

// --- Usage DTOs ---

// UsageWindow aggregates usage over one rolling window.
type UsageWindow struct {
	Count  int `json:"count"`
	Tokens int `json:"tokens"`
	Limit  int `json:"limit"`
}

// UsageByType is a per-request-type count over the monthly window.
type UsageByType struct {
	RequestType RequestType `json:"request_type"`
	Count       int         `json:"count"`
}

// UsageStatsResponse is returned by GET /v1/usage/stats.
type UsageStatsResponse struct {
	Daily   UsageWindow   `json:"daily"`
	Monthly UsageWindow   `json:"monthly"`
	ByType  []UsageByType `json:"by_type"`
}
