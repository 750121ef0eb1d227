package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/manasmitra/backend/internal/config"
)

// CompletionClient is the slice of the OpenAI-compatible API the service
// uses, kept narrow so tests can substitute a fake.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service invokes the completion engine and returns its raw textual
// output. It performs no validation of that output; the reply parser
// owns the structured contract.
type Service struct {
	client CompletionClient
	cfg    config.AIConfig
}

// NewService creates a completion service against the configured
// OpenAI-compatible endpoint.
func NewService(cfg config.AIConfig) (*Service, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("completion API key is missing")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Service{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}, nil
}

// NewServiceWithClient injects a custom completion client.
func NewServiceWithClient(client CompletionClient, cfg config.AIConfig) *Service {
	return &Service{client: client, cfg: cfg}
}

// Complete sends the assembled message sequence and returns the model's
// raw text. A single shot: transport or upstream errors propagate with
// no retry.
func (s *Service) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.Timeout)*time.Second)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:    s.cfg.Model,
		Messages: messages,
	}
	if s.cfg.Temperature != nil {
		req.Temperature = *s.cfg.Temperature
	}
	if s.cfg.MaxTokens != nil {
		req.MaxTokens = *s.cfg.MaxTokens
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	log.Printf("[ai] completion received, length=%d", len(content))
	return content, nil
}
