package models

import "time"

// ISOTimestamp matches the millisecond UTC form browsers produce.
const ISOTimestamp = "2006-01-02T15:04:05.000Z07:00"

// APIResponse is the envelope for every endpoint. Success is the only failure
// signal; the HTTP status stays 200.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

func Timestamp(t time.Time) string {
	return t.UTC().Format(ISOTimestamp)
}
