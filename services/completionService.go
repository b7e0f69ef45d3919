package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const (
	completionModel        = "gpt-3.5-turbo"
	completionSystemPrompt = "You are a learning assistant. Answer briefly and clearly."
	completionMaxTokens    = 500
	completionTemperature  = 0.7
)

// ErrCompletionUnavailable is returned when no API key was configured at
// startup. The server still boots in that state; only completion calls fail.
var ErrCompletionUnavailable = errors.New("completion service is not configured, set OPENAI_API_KEY")

// CompletionService wraps a single chat-completion call against a fixed model
// with fixed sampling parameters.
type CompletionService struct {
	llm llms.Model
}

func NewCompletionService(apiKey string) (*CompletionService, error) {
	if apiKey == "" {
		return &CompletionService{}, nil
	}

	llm, err := openai.New(
		openai.WithModel(completionModel),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	return &CompletionService{llm: llm}, nil
}

// NewCompletionServiceWithModel injects an already constructed model. Used by
// tests to substitute a fake.
func NewCompletionServiceWithModel(llm llms.Model) *CompletionService {
	return &CompletionService{llm: llm}
}

// Complete sends one prompt, optionally prefixed with a context block, and
// returns the first choice's content with surrounding whitespace removed.
func (s *CompletionService) Complete(ctx context.Context, prompt, contextBlock string) (string, error) {
	if s.llm == nil {
		return "", ErrCompletionUnavailable
	}

	fullPrompt := prompt
	if contextBlock != "" {
		fullPrompt = contextBlock + "\n\n" + prompt
	}

	messageHistory := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, completionSystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, fullPrompt),
	}

	log.Printf("[INFO] Calling LLM for completion")
	resp, err := s.llm.GenerateContent(ctx, messageHistory,
		llms.WithMaxTokens(completionMaxTokens),
		llms.WithTemperature(completionTemperature))
	if err != nil {
		log.Printf("[ERROR] Failed to generate completion: %v", err)
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		log.Printf("[ERROR] No choices in completion response")
		return "", fmt.Errorf("no choices in completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
