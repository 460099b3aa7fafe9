package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"rizzlet-backend/internal/auth"
	"rizzlet-backend/internal/services"
	"rizzlet-backend/pkg/httputil"
)

// maxUploadSize bounds screenshot uploads (10MB).
const maxUploadSize = 10 << 20

type OCRHandlers struct {
	replyService *services.ReplyService
}

func NewOCRHandlers(replySvc *services.ReplyService) *OCRHandlers {
	return &OCRHandlers{
		replyService: replySvc,
	}
}

// HandleExtract handles the POST /v1/ocr/extract request. It accepts a
// multipart form with an "image" file and returns the structured
// conversation extracted by the vision pipeline.
func (h *OCRHandlers) HandleExtract(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart form or file too large (max 10MB)")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		httputil.RespondError(w, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		log.Printf("OCR handler failed to read upload for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusBadRequest, "Failed to read image file")
		return
	}

	log.Printf("[OCRHandler] Upload received: name=%s size=%.2fKB user=%s",
		header.Filename, float64(header.Size)/1024, userID)

	resp, err := h.replyService.ExtractConversation(r.Context(), userID, imageData)
	if err != nil {
		log.Printf("ExtractConversation handler failed for user %s: %v", userID, err)
		respondPipelineError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
