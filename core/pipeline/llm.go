package pipeline

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// CompleterConfig holds the settings for a remote completion provider
type CompleterConfig struct {
	APIKey      string
	BaseURL     string // empty uses the provider default
	Model       string
	MaxTokens   int     // 0 uses the model default
	Temperature float32 // 0 keeps answers deterministic for grading
}

// NewOpenAICompleter creates a completion function backed by the OpenAI chat
// completions API
func NewOpenAICompleter(cfg CompleterConfig) CompleteFunc {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	return func(ctx context.Context, prompt string) (*CompleteResult, error) {
		req := openai.ChatCompletionRequest{
			Model: cfg.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}

		resp, err := client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("create chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("empty completion response for model %s", cfg.Model)
		}

		return &CompleteResult{
			Text:             resp.Choices[0].Message.Content,
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		}, nil
	}
}

// NewGeminiCompleter creates a completion function backed by Gemini's
// OpenAI-compatible chat endpoint
func NewGeminiCompleter(cfg CompleterConfig) CompleteFunc {
	if cfg.BaseURL == "" {
		cfg.BaseURL = GeminiOpenAIBaseURL
	}
	return NewOpenAICompleter(cfg)
}
