package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

const maxBodyBytes = 1 << 20

// completer is the slice of the Gemini service the handlers need.
type completer interface {
	Generate(ctx context.Context, apiKey, prompt string, cfg *services.GenerationConfig) (string, error)
}

// Shared helpers

// writeJSON always answers 200; callers signal failure through Success.
func writeJSON(w http.ResponseWriter, data models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, models.APIResponse{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, message string) {
	writeJSON(w, models.APIResponse{Success: false, Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFailure(w, "Invalid request body")
		return false
	}
	return true
}

// validationMessage returns the caller-facing text for a validation failure.
func validationMessage(err error) string {
	var mf *services.MissingFieldError
	if errors.As(err, &mf) {
		return mf.Message
	}
	return "Invalid request"
}

func logProviderError(r *http.Request, endpoint string, category services.ErrorCategory, err error) {
	log.Printf("[%s] %s error (%s): %v", middleware.GetRequestID(r.Context()), endpoint, category, err)
}

func timestamp(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return models.Timestamp(now())
}
