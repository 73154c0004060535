package pipeline

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// GeminiOpenAIBaseURL is Gemini's OpenAI-compatible API endpoint
const GeminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// EmbedderConfig holds the settings for a remote embedding provider
type EmbedderConfig struct {
	APIKey     string
	BaseURL    string // empty uses the provider default
	Model      string
	Dimensions int // requested output width; 0 uses the model default
}

// NewOpenAIEmbedder creates an embedder backed by the OpenAI embeddings API.
// The returned vector width is determined by the model (and the optional
// Dimensions override) and selects the store shard downstream.
func NewOpenAIEmbedder(cfg EmbedderConfig) EmbedFunc {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	return func(ctx context.Context, text string) (*EmbedResult, error) {
		req := openai.EmbeddingRequest{
			Input:          []string{text},
			Model:          openai.EmbeddingModel(cfg.Model),
			EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		}
		if cfg.Dimensions > 0 {
			req.Dimensions = cfg.Dimensions
		}

		resp, err := client.CreateEmbeddings(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("create embeddings: %w", err)
		}
		if len(resp.Data) == 0 {
			return nil, fmt.Errorf("empty embedding response for model %s", cfg.Model)
		}

		return &EmbedResult{
			Embedding: resp.Data[0].Embedding,
			Tokens:    resp.Usage.TotalTokens,
		}, nil
	}
}

// NewGeminiEmbedder creates an embedder backed by Gemini's OpenAI-compatible
// embeddings endpoint
func NewGeminiEmbedder(cfg EmbedderConfig) EmbedFunc {
	if cfg.BaseURL == "" {
		cfg.BaseURL = GeminiOpenAIBaseURL
	}
	return NewOpenAIEmbedder(cfg)
}
