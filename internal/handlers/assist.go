package handlers

import (
	"log"
	"net/http"
	"time"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

// AssistHandler answers single questions with the server's own key. Unlike
// the chat endpoint it degrades to canned text instead of reporting most
// provider failures.
type AssistHandler struct {
	gemini completer
	apiKey string
	now    func() time.Time
}

func NewAssistHandler(gemini completer, apiKey string) *AssistHandler {
	return &AssistHandler{
		gemini: gemini,
		apiKey: apiKey,
		now:    time.Now,
	}
}

func (h *AssistHandler) Assist(w http.ResponseWriter, r *http.Request) {
	var req models.AssistRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := services.ValidateAssist(&req); err != nil {
		writeFailure(w, validationMessage(err))
		return
	}

	if h.apiKey == "" {
		log.Println("⚠️  Using fallback response (no Gemini API key)")
		h.writeFallback(w, req.Message)
		return
	}

	text, err := h.gemini.Generate(r.Context(), h.apiKey, services.BuildAssistPrompt(req.Message), services.ChatGeneration)
	if err != nil {
		category := services.ClassifyError(err)
		logProviderError(r, "Assistant", category, err)

		switch category {
		case services.ErrInvalidAPIKey:
			writeFailure(w, "Invalid or missing Gemini API key. Please check your .env file")
		case services.ErrQuotaExceeded:
			writeFailure(w, "API quota exceeded. Please check your Gemini API usage.")
		default:
			h.writeFallback(w, req.Message)
		}
		return
	}

	writeSuccess(w, models.AssistData{
		Response:  text,
		Timestamp: timestamp(h.now),
	})
}

func (h *AssistHandler) writeFallback(w http.ResponseWriter, message string) {
	writeSuccess(w, models.AssistData{
		Response:  services.FallbackResponse(message),
		Fallback:  true,
		Timestamp: timestamp(h.now),
	})
}
