package handlers

import (
	"net/http"
	"time"

	"portfolio-backend/internal/models"
)

// Health reports liveness only; it never depends on key configuration.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.APIResponse{
		Success:   true,
		Message:   "Portfolio Generator API is running",
		Timestamp: timestamp(time.Now),
	})
}
