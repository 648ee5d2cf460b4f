package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

type stubCompleter struct {
	reply string
	err   error

	calls      int
	lastKey    string
	lastPrompt string
	lastCfg    *services.GenerationConfig
}

func (s *stubCompleter) Generate(ctx context.Context, apiKey, prompt string, cfg *services.GenerationConfig) (string, error) {
	s.calls++
	s.lastKey = apiKey
	s.lastPrompt = prompt
	s.lastCfg = cfg
	return s.reply, s.err
}

var fixedNow = func() time.Time { return time.Date(2026, 2, 16, 10, 0, 0, 0, time.UTC) }

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

func serve(t *testing.T, h http.HandlerFunc, method, path, body string) envelope {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var resp envelope
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

// ─── Chat Handler Tests ───

func TestChatHandler_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing api key", `{"message":"hi"}`, "API key is required"},
		{"empty api key", `{"message":"hi","apiKey":""}`, "API key is required"},
		{"missing message", `{"apiKey":"k"}`, "Message is required"},
		{"empty body", `{}`, "API key is required"},
		{"malformed body", `{"apiKey":`, "Invalid request body"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubCompleter{reply: "unused"}
			h := &ChatHandler{gemini: stub, now: fixedNow}

			resp := serve(t, h.Chat, http.MethodPost, "/api/chat", tc.body)

			if resp.Success {
				t.Fatalf("expected success=false")
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message %q, got %q", tc.message, resp.Message)
			}
			if stub.calls != 0 {
				t.Fatalf("completion client must not be called, got %d calls", stub.calls)
			}
		})
	}
}

func TestChatHandler_Success(t *testing.T) {
	stub := &stubCompleter{reply: "Assistant: Lead with your strongest project.\n"}
	h := &ChatHandler{gemini: stub, now: fixedNow}

	body := `{"message":"How should I order my projects?","apiKey":"key-123","chatHistory":[` +
		`{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`
	resp := serve(t, h.Chat, http.MethodPost, "/api/chat", body)

	if !resp.Success {
		t.Fatalf("expected success, got message %q", resp.Message)
	}

	var data models.ChatData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Response != "Lead with your strongest project." {
		t.Errorf("expected cleaned reply, got %q", data.Response)
	}
	if data.Timestamp != "2026-02-16T10:00:00.000Z" {
		t.Errorf("unexpected timestamp %q", data.Timestamp)
	}

	if stub.lastKey != "key-123" {
		t.Errorf("expected caller key to be used, got %q", stub.lastKey)
	}
	if stub.lastCfg != services.ChatGeneration {
		t.Errorf("expected chat generation settings")
	}
	if !strings.Contains(stub.lastPrompt, "User: hi\nAssistant: hello\nUser: How should I order my projects?\nAssistant: ") {
		t.Errorf("history not rendered into prompt: %q", stub.lastPrompt)
	}
}

func TestChatHandler_ProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid key", errors.New("API_KEY_INVALID"), services.ErrInvalidAPIKey.Message()},
		{"quota", errors.New("quota exceeded"), services.ErrQuotaExceeded.Message()},
		{"rate limit", errors.New("rate_limit"), services.ErrRateLimited.Message()},
		{"unavailable", errors.New("503 Service Unavailable"), services.ErrServiceUnavailable.Message()},
		{"unknown", errors.New("dial tcp: i/o timeout"), services.ErrUnknown.Message()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubCompleter{err: &services.ProviderError{Err: tc.err}}
			h := &ChatHandler{gemini: stub, now: fixedNow}

			resp := serve(t, h.Chat, http.MethodPost, "/api/chat", `{"message":"hi","apiKey":"k"}`)

			if resp.Success {
				t.Fatal("expected success=false")
			}
			if resp.Message != tc.want {
				t.Errorf("Expected message %q, got %q", tc.want, resp.Message)
			}
			if strings.Contains(resp.Message, "Gemini API error") {
				t.Errorf("raw provider error leaked to caller: %q", resp.Message)
			}
		})
	}
}

// ─── Key Test Handler Tests ───

func TestChatHandler_TestKey(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		stub := &stubCompleter{}
		h := &ChatHandler{gemini: stub, now: fixedNow}

		resp := serve(t, h.TestKey, http.MethodPost, "/api/test-key", `{}`)
		if resp.Success || resp.Message != "API key is required" {
			t.Fatalf("unexpected response %+v", resp)
		}
		if stub.calls != 0 {
			t.Fatal("completion client must not be called without a key")
		}
	})

	t.Run("valid key", func(t *testing.T) {
		stub := &stubCompleter{reply: "Hi!"}
		h := &ChatHandler{gemini: stub, now: fixedNow}

		resp := serve(t, h.TestKey, http.MethodPost, "/api/test-key", `{"apiKey":"good"}`)
		if !resp.Success || resp.Message != "API key is valid" {
			t.Fatalf("unexpected response %+v", resp)
		}
		if stub.lastPrompt != "Hello" || stub.lastCfg != nil {
			t.Fatalf("expected a trivial prompt with provider defaults")
		}
	})

	t.Run("rejected key", func(t *testing.T) {
		stub := &stubCompleter{err: errors.New("API_KEY_INVALID")}
		h := &ChatHandler{gemini: stub, now: fixedNow}

		resp := serve(t, h.TestKey, http.MethodPost, "/api/test-key", `{"apiKey":"bad"}`)
		if resp.Success || resp.Message != "Invalid API key or API service unavailable" {
			t.Fatalf("unexpected response %+v", resp)
		}
	})
}

// ─── Portfolio Handler Tests ───

func TestPortfolioHandler_Generate(t *testing.T) {
	stub := &stubCompleter{reply: "Here is your site:\n```html\n<html><body>Jane</body></html>\n```\nGood luck!"}
	h := &PortfolioHandler{gemini: stub, now: fixedNow}

	resp := serve(t, h.Generate, http.MethodPost, "/api/generate-portfolio", `{"apiKey":"k","requirements":"Jane, designer"}`)
	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Message)
	}

	var data models.PortfolioData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.HTML != "<html><body>Jane</body></html>" {
		t.Errorf("unexpected html %q", data.HTML)
	}
	if data.Style != "modern" {
		t.Errorf("expected default style, got %q", data.Style)
	}
	if data.GeneratedAt != "2026-02-16T10:00:00.000Z" {
		t.Errorf("unexpected generatedAt %q", data.GeneratedAt)
	}
	if !strings.Contains(stub.lastPrompt, "Jane, designer") || !strings.Contains(stub.lastPrompt, "Style: modern") {
		t.Errorf("prompt missing requirements or style: %q", stub.lastPrompt)
	}
}

func TestPortfolioHandler_Failures(t *testing.T) {
	stub := &stubCompleter{}
	h := &PortfolioHandler{gemini: stub, now: fixedNow}

	resp := serve(t, h.Generate, http.MethodPost, "/api/generate-portfolio", `{"requirements":"x"}`)
	if resp.Success || resp.Message != "API key is required" || stub.calls != 0 {
		t.Fatalf("expected missing key failure without a provider call, got %+v", resp)
	}

	stub.err = errors.New("socket closed")
	resp = serve(t, h.Generate, http.MethodPost, "/api/generate-portfolio", `{"apiKey":"k"}`)
	if resp.Success || resp.Message != "Failed to generate portfolio" {
		t.Fatalf("unexpected response %+v", resp)
	}

	stub.err = errors.New("quota exceeded")
	resp = serve(t, h.Generate, http.MethodPost, "/api/generate-portfolio", `{"apiKey":"k"}`)
	if resp.Success || resp.Message != services.ErrQuotaExceeded.Message() {
		t.Fatalf("unexpected response %+v", resp)
	}
}

// ─── Assist Handler Tests ───

func TestAssistHandler_NoKeyFallsBack(t *testing.T) {
	stub := &stubCompleter{}
	h := &AssistHandler{gemini: stub, now: fixedNow}

	resp := serve(t, h.Assist, http.MethodPost, "/api/assist", `{"message":"Tell me about your SKILLSET"}`)
	if !resp.Success {
		t.Fatalf("expected fallback success, got %q", resp.Message)
	}

	var data models.AssistData
	json.Unmarshal(resp.Data, &data)
	if !data.Fallback || data.Response != services.FallbackResponse("skill") {
		t.Fatalf("expected skills fallback, got %+v", data)
	}
	if stub.calls != 0 {
		t.Fatal("completion client must not be called without a configured key")
	}
}

func TestAssistHandler_ProviderOutcomes(t *testing.T) {
	tests := []struct {
		name         string
		reply        string
		err          error
		wantSuccess  bool
		wantFallback bool
	}{
		{"answer", "Use a hero section.", nil, true, false},
		{"invalid key is reported", "", errors.New("API_KEY_INVALID"), false, false},
		{"quota is reported", "", errors.New("quota"), false, false},
		{"other errors fall back", "", errors.New("503"), true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubCompleter{reply: tc.reply, err: tc.err}
			h := &AssistHandler{gemini: stub, apiKey: "server-key", now: fixedNow}

			resp := serve(t, h.Assist, http.MethodPost, "/api/assist", `{"message":"landing page tips"}`)
			if resp.Success != tc.wantSuccess {
				t.Fatalf("expected success=%v, got %+v", tc.wantSuccess, resp)
			}
			if stub.lastKey != "server-key" {
				t.Fatalf("expected server key to be used, got %q", stub.lastKey)
			}
			if !tc.wantSuccess {
				return
			}

			var data models.AssistData
			json.Unmarshal(resp.Data, &data)
			if data.Fallback != tc.wantFallback {
				t.Fatalf("expected fallback=%v, got %+v", tc.wantFallback, data)
			}
			if !tc.wantFallback && data.Response != tc.reply {
				t.Fatalf("expected model reply, got %q", data.Response)
			}
		})
	}
}

// ─── Health Handler Tests ───

func TestHealth(t *testing.T) {
	resp := serve(t, Health, http.MethodGet, "/api/health", "")

	if !resp.Success {
		t.Fatal("expected health to report success")
	}
	ts, err := time.Parse(time.RFC3339, resp.Timestamp)
	if err != nil {
		t.Fatalf("expected ISO timestamp, got %q: %v", resp.Timestamp, err)
	}
	if time.Since(ts) > time.Minute || time.Since(ts) < -time.Minute {
		t.Fatalf("expected a current timestamp, got %s", ts)
	}
}
