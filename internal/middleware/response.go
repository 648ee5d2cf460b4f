package middleware

import (
	"encoding/json"
	"net/http"

	"portfolio-backend/internal/models"
)

// writeFailure answers with the API envelope. Application failures keep
// status 200.
func writeFailure(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.APIResponse{
		Success: false,
		Message: message,
	})
}
