package handlers

import (
	"log"
	"net/http"

	"rizzlet-backend/internal/auth"
	"rizzlet-backend/internal/usage"
	"rizzlet-backend/pkg/httputil"
)

type UsageHandlers struct {
	usageService *usage.Service
}

func NewUsageHandlers(usageSvc *usage.Service) *UsageHandlers {
	return &UsageHandlers{
		usageService: usageSvc,
	}
}

// HandleGetStats handles the GET /v1/usage/stats request.
func (h *UsageHandlers) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.usageService.GetUserUsage(r.Context(), userID)
	if err != nil {
		log.Printf("GetStats handler failed for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get usage stats")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
