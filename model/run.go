package model

import (
	"time"

	"github.com/google/uuid"
)

// BenchmarkRecord is the outcome of evaluating one query under one
// combination of strategy, embedding model and LLM.
type BenchmarkRecord struct {
	ID       int       `json:"id"`
	SuiteRID uuid.UUID `json:"suite_rid"`

	Strategy   string `json:"strategy"`
	EmbedModel string `json:"embed_model"`
	LLMModel   string `json:"llm_model"`
	QueryText  string `json:"query_text"`
	Category   string `json:"category,omitempty"`

	// Latency per pipeline stage
	EmbedLatency     time.Duration `json:"embed_latency"`
	RetrievalLatency time.Duration `json:"retrieval_latency"`
	LLMLatency       time.Duration `json:"llm_latency"`

	// Token usage
	EmbedTokens      int `json:"embed_tokens"`
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`

	CostUSD float64 `json:"cost_usd"`

	// Answer quality
	MatchedKeywords  int     `json:"matched_keywords"`
	ExpectedKeywords int     `json:"expected_keywords"`
	ScorePercent     float64 `json:"score_percent"`

	// Set when the combination failed; failed records are excluded
	// from aggregate statistics
	Error string `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Failed reports whether the record belongs to a failed evaluation
func (r *BenchmarkRecord) Failed() bool {
	return r.Error != ""
}
