package handlers

import (
	"net/http"
	"time"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

type ChatHandler struct {
	gemini completer
	now    func() time.Time
}

func NewChatHandler(gemini completer) *ChatHandler {
	return &ChatHandler{
		gemini: gemini,
		now:    time.Now,
	}
}

// TestKey checks a key by issuing one trivial generation call.
func (h *ChatHandler) TestKey(w http.ResponseWriter, r *http.Request) {
	var req models.KeyTestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := services.ValidateKeyTest(&req); err != nil {
		writeFailure(w, validationMessage(err))
		return
	}

	if _, err := h.gemini.Generate(r.Context(), req.APIKey, "Hello", nil); err != nil {
		logProviderError(r, "API key test", services.ClassifyError(err), err)
		writeFailure(w, "Invalid API key or API service unavailable")
		return
	}

	writeJSON(w, models.APIResponse{Success: true, Message: "API key is valid"})
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := services.ValidateChat(&req); err != nil {
		writeFailure(w, validationMessage(err))
		return
	}

	prompt := services.BuildChatPrompt(req.History, req.Message)

	text, err := h.gemini.Generate(r.Context(), req.APIKey, prompt, services.ChatGeneration)
	if err != nil {
		category := services.ClassifyError(err)
		logProviderError(r, "Chat endpoint", category, err)
		writeFailure(w, category.Message())
		return
	}

	writeSuccess(w, models.ChatData{
		Response:  services.CleanChatReply(text),
		Timestamp: timestamp(h.now),
	})
}
