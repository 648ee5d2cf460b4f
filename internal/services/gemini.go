package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenerationConfig holds sampling parameters. A nil config leaves the
// provider defaults in place.
type GenerationConfig struct {
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
}

// ChatGeneration is used for conversational replies. Not user-configurable.
var ChatGeneration = &GenerationConfig{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 1024,
}

func (c *GenerationConfig) apply(model *genai.GenerativeModel) {
	if c == nil {
		return
	}
	model.SetTemperature(c.Temperature)
	model.SetTopK(c.TopK)
	model.SetTopP(c.TopP)
	model.SetMaxOutputTokens(c.MaxOutputTokens)
}

// GeminiService issues one GenerateContent call per request. Keys belong to
// the caller, so a client is opened per call instead of held for the process.
type GeminiService struct {
	modelName string
	rateChan  chan struct{} // Token bucket; nil means unbounded
}

func NewGeminiService(modelName string, concurrentReqs int) *GeminiService {
	s := &GeminiService{modelName: modelName}

	if concurrentReqs > 0 {
		s.rateChan = make(chan struct{}, concurrentReqs)
		for i := 0; i < concurrentReqs; i++ {
			s.rateChan <- struct{}{}
		}
	}

	return s
}

func (s *GeminiService) ModelName() string {
	return s.modelName
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	if s.rateChan == nil {
		return nil
	}
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *GeminiService) releaseRate() {
	if s.rateChan == nil {
		return
	}
	s.rateChan <- struct{}{}
}

// Generate sends prompt to the model using apiKey and returns the text of the
// response. Any provider failure comes back as *ProviderError.
func (s *GeminiService) Generate(ctx context.Context, apiKey, prompt string, cfg *GenerationConfig) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", &ProviderError{Err: fmt.Errorf("failed to create Gemini client: %w", err)}
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	cfg.apply(model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &ProviderError{Err: err}
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
