package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"rizzlet-backend/internal/ai"
	"rizzlet-backend/internal/auth"
	api_models "rizzlet-backend/internal/models"
	"rizzlet-backend/internal/services"
	"rizzlet-backend/internal/usage"
	"rizzlet-backend/pkg/httputil"
)

type ReplyHandlers struct {
	replyService *services.ReplyService
}

func NewReplyHandlers(replySvc *services.ReplyService) *ReplyHandlers {
	return &ReplyHandlers{
		replyService: replySvc,
	}
}

// respondPipelineError maps AI pipeline errors to HTTP status codes.
// Quota and input errors are client-correctable; exhaustion and invalid
// model output are "try again" server-side conditions.
func respondPipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usage.ErrQuotaExceeded):
		httputil.RespondError(w, http.StatusTooManyRequests, err.Error()) // 429
	case errors.Is(err, ai.ErrMissingInput):
		httputil.RespondError(w, http.StatusBadRequest, err.Error()) // 400
	case errors.Is(err, ai.ErrInvalidModelOutput):
		httputil.RespondError(w, http.StatusBadGateway, "AI returned invalid output. Please try again.") // 502
	case errors.Is(err, ai.ErrAllProvidersExhausted):
		httputil.RespondError(w, http.StatusBadGateway, "All AI providers are unavailable. Please try again.") // 502
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "Request failed due to an internal error") // 500
	}
}

// HandleGenerateReplies handles the POST /v1/replies/generate request.
// Accepts either a structured conversation or raw conversation_text.
func (h *ReplyHandlers) HandleGenerateReplies(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req api_models.GenerateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Conversation == nil && req.ConversationText == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Either conversation or conversation_text is required")
		return
	}
	if req.Tone == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Tone is required")
		return
	}

	resp, err := h.replyService.GenerateReplies(r.Context(), userID, req)
	if err != nil {
		log.Printf("GenerateReplies handler failed for user %s: %v", userID, err)
		respondPipelineError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleAnalyzeConversation handles the POST /v1/replies/analyze request.
func (h *ReplyHandlers) HandleAnalyzeConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req api_models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Conversation == nil || len(req.Conversation.Messages) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "Conversation is required")
		return
	}

	analysis, err := h.replyService.AnalyzeConversation(r.Context(), userID, req.Conversation)
	if err != nil {
		log.Printf("AnalyzeConversation handler failed for user %s: %v", userID, err)
		respondPipelineError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, analysis)
}

// HandleGenerateStarters handles the POST /v1/replies/starters request.
func (h *ReplyHandlers) HandleGenerateStarters(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req api_models.StarterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.replyService.GenerateStarters(r.Context(), userID, req)
	if err != nil {
		log.Printf("GenerateStarters handler failed for user %s: %v", userID, err)
		respondPipelineError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
