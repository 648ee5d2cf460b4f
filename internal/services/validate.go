package services

import (
	"strings"

	"portfolio-backend/internal/models"
)

func ValidateKeyTest(req *models.KeyTestRequest) error {
	return requireAPIKey(req.APIKey)
}

// ValidateChat checks the key before the message, matching the order errors
// are reported to the frontend.
func ValidateChat(req *models.ChatRequest) error {
	if err := requireAPIKey(req.APIKey); err != nil {
		return err
	}
	if strings.TrimSpace(req.Message) == "" {
		return &MissingFieldError{Field: "message", Message: "Message is required"}
	}
	return nil
}

// ValidatePortfolio also fills in the default style.
func ValidatePortfolio(req *models.PortfolioRequest) error {
	if err := requireAPIKey(req.APIKey); err != nil {
		return err
	}
	if strings.TrimSpace(req.Style) == "" {
		req.Style = models.DefaultPortfolioStyle
	}
	return nil
}

func ValidateAssist(req *models.AssistRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return &MissingFieldError{Field: "message", Message: "Message is required"}
	}
	return nil
}

func requireAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return &MissingFieldError{Field: "apiKey", Message: "API key is required"}
	}
	return nil
}
