package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
)

type ErrorCategory int

const (
	ErrUnknown ErrorCategory = iota
	ErrInvalidAPIKey
	ErrQuotaExceeded
	ErrRateLimited
	ErrServiceUnavailable
)

func (c ErrorCategory) String() string {
	switch c {
	case ErrInvalidAPIKey:
		return "invalid_api_key"
	case ErrQuotaExceeded:
		return "quota_exceeded"
	case ErrRateLimited:
		return "rate_limited"
	case ErrServiceUnavailable:
		return "service_unavailable"
	default:
		return "unknown"
	}
}

// Message is the user-facing text for the category.
func (c ErrorCategory) Message() string {
	switch c {
	case ErrInvalidAPIKey:
		return "Invalid API key. Please check your Gemini API key."
	case ErrQuotaExceeded:
		return "API quota exceeded. Please check your Gemini API usage limits."
	case ErrRateLimited:
		return "Rate limit exceeded. Please try again in a moment."
	case ErrServiceUnavailable:
		return "AI service temporarily unavailable. Please try again later."
	default:
		return "Failed to get response from AI service"
	}
}

type MissingFieldError struct {
	Field   string
	Message string
}

func (e *MissingFieldError) Error() string { return e.Message }

// ProviderError wraps a failed completion call. The cause stays reachable
// through errors.As so typed provider details survive.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return fmt.Sprintf("Gemini API error: %v", e.Err) }

func (e *ProviderError) Unwrap() error { return e.Err }

// ClassifyError maps a provider failure to a category. Checks run in a fixed
// order and the first match wins, so a quota message mentioning "500" is
// still a quota error.
func ClassifyError(err error) ErrorCategory {
	if err == nil {
		return ErrUnknown
	}

	msg := err.Error()
	reason, status := providerDetails(err)

	switch {
	case strings.Contains(reason, "API_KEY") || strings.Contains(msg, "API_KEY"):
		return ErrInvalidAPIKey
	case strings.Contains(msg, "quota"):
		return ErrQuotaExceeded
	case strings.Contains(msg, "rate_limit") || status == http.StatusTooManyRequests:
		return ErrRateLimited
	case strings.Contains(msg, "503") || strings.Contains(msg, "500") || isServerStatus(status):
		return ErrServiceUnavailable
	}
	return ErrUnknown
}

// providerDetails digs the machine-readable reason and HTTP status out of the
// error chain when the client library exposes them.
func providerDetails(err error) (reason string, status int) {
	var ae *apierror.APIError
	if errors.As(err, &ae) {
		reason = ae.Reason()
		status = ae.HTTPCode()
	}

	var ge *googleapi.Error
	if errors.As(err, &ge) {
		if status <= 0 {
			status = ge.Code
		}
		if reason == "" {
			for _, item := range ge.Errors {
				if item.Reason != "" {
					reason = item.Reason
					break
				}
			}
		}
	}

	return reason, status
}

func isServerStatus(status int) bool {
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
