package handlers

import (
	"net/http"
	"time"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

type PortfolioHandler struct {
	gemini completer
	now    func() time.Time
}

func NewPortfolioHandler(gemini completer) *PortfolioHandler {
	return &PortfolioHandler{
		gemini: gemini,
		now:    time.Now,
	}
}

func (h *PortfolioHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.PortfolioRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := services.ValidatePortfolio(&req); err != nil {
		writeFailure(w, validationMessage(err))
		return
	}

	prompt := services.BuildPortfolioPrompt(req.Requirements, req.Style)

	// nil: provider defaults, not the chat token cap.
	text, err := h.gemini.Generate(r.Context(), req.APIKey, prompt, nil)
	if err != nil {
		category := services.ClassifyError(err)
		logProviderError(r, "Portfolio generation", category, err)
		if category == services.ErrUnknown {
			writeFailure(w, "Failed to generate portfolio")
			return
		}
		writeFailure(w, category.Message())
		return
	}

	writeSuccess(w, models.PortfolioData{
		HTML:        services.ExtractHTML(text),
		Style:       req.Style,
		GeneratedAt: timestamp(h.now),
	})
}
