package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

// fakeLLM is a canned llms.Model used to test completion-dependent paths
// without a network call.
type fakeLLM struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.prompts = append(f.prompts, text.Text)
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestCompleteTrimsResponse(t *testing.T) {
	llm := &fakeLLM{response: "  an answer \n"}
	service := NewCompletionServiceWithModel(llm)

	answer, err := service.Complete(context.Background(), "a question", "")
	if err != nil {
		t.Fatalf("Complete() returned error: %v", err)
	}
	if answer != "an answer" {
		t.Errorf("Complete() = %q, expected trimmed %q", answer, "an answer")
	}
}

func TestCompletePrependsContext(t *testing.T) {
	llm := &fakeLLM{response: "ok"}
	service := NewCompletionServiceWithModel(llm)

	if _, err := service.Complete(context.Background(), "the question", "the context"); err != nil {
		t.Fatalf("Complete() returned error: %v", err)
	}

	var found bool
	for _, prompt := range llm.prompts {
		if strings.HasPrefix(prompt, "the context\n\nthe question") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a prompt prefixed with the context block, got %v", llm.prompts)
	}
}

func TestCompletePropagatesError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("rate limited")}
	service := NewCompletionServiceWithModel(llm)

	if _, err := service.Complete(context.Background(), "q", ""); err == nil {
		t.Fatal("Complete() expected error, got nil")
	}
}

func TestCompleteWithoutAPIKey(t *testing.T) {
	service, err := NewCompletionService("")
	if err != nil {
		t.Fatalf("NewCompletionService(\"\") returned error: %v", err)
	}

	_, err = service.Complete(context.Background(), "q", "")
	if !errors.Is(err, ErrCompletionUnavailable) {
		t.Errorf("Complete() error = %v, expected ErrCompletionUnavailable", err)
	}
}
