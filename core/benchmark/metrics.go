package benchmark

import (
	"time"

	"github.com/trevadelman/rag-explorer/model"
)

// Pricing holds per-model token prices in USD per one million tokens.
// Models missing from the table cost 0, so totals stay additive when a
// provider's pricing is unknown.
type Pricing struct {
	EmbedPerMTokens      map[string]float64
	PromptPerMTokens     map[string]float64
	CompletionPerMTokens map[string]float64
}

// DefaultPricing returns the price table for the supported models
func DefaultPricing() *Pricing {
	return &Pricing{
		EmbedPerMTokens: map[string]float64{
			"text-embedding-3-small": 0.02,
			"text-embedding-3-large": 0.13,
			"gemini-embedding-001":   0.15,
		},
		PromptPerMTokens: map[string]float64{
			"gpt-4o-mini":      0.15,
			"gpt-4o":           2.50,
			"gemini-2.0-flash": 0.10,
		},
		CompletionPerMTokens: map[string]float64{
			"gpt-4o-mini":      0.60,
			"gpt-4o":           10.00,
			"gemini-2.0-flash": 0.40,
		},
	}
}

// Cost computes the USD cost of one record from its token counts
func (p *Pricing) Cost(record *model.BenchmarkRecord) float64 {
	const million = 1_000_000.0

	cost := float64(record.EmbedTokens) / million * p.EmbedPerMTokens[record.EmbedModel]
	cost += float64(record.PromptTokens) / million * p.PromptPerMTokens[record.LLMModel]
	cost += float64(record.CompletionTokens) / million * p.CompletionPerMTokens[record.LLMModel]

	return cost
}

// Percent converts a matched/expected keyword pair into a percentage.
// An empty expected list has no defined percentage and yields 0.
func Percent(matched int, expected int) float64 {
	if expected == 0 {
		return 0
	}
	return float64(matched) / float64(expected) * 100
}

// CombinationStats aggregates the successful records of one combination
type CombinationStats struct {
	Strategy   string `json:"strategy"`
	EmbedModel string `json:"embed_model"`
	LLMModel   string `json:"llm_model"`

	Queries int `json:"queries"`
	Failed  int `json:"failed"`

	MeanScorePercent     float64       `json:"mean_score_percent"`
	MeanEmbedLatency     time.Duration `json:"mean_embed_latency"`
	MeanRetrievalLatency time.Duration `json:"mean_retrieval_latency"`
	MeanLLMLatency       time.Duration `json:"mean_llm_latency"`
	TotalCostUSD         float64       `json:"total_cost_usd"`
}

// Aggregate groups records by combination and computes per-combination
// means and cost totals. Failed records are counted but excluded from
// means and costs.
func Aggregate(records []*model.BenchmarkRecord) []*CombinationStats {
	type key struct {
		strategy   string
		embedModel string
		llmModel   string
	}

	grouped := make(map[key]*CombinationStats)
	var order []key

	for _, record := range records {
		k := key{record.Strategy, record.EmbedModel, record.LLMModel}
		stats, exists := grouped[k]
		if !exists {
			stats = &CombinationStats{
				Strategy:   record.Strategy,
				EmbedModel: record.EmbedModel,
				LLMModel:   record.LLMModel,
			}
			grouped[k] = stats
			order = append(order, k)
		}

		if record.Failed() {
			stats.Failed++
			continue
		}

		stats.Queries++
		stats.MeanScorePercent += record.ScorePercent
		stats.MeanEmbedLatency += record.EmbedLatency
		stats.MeanRetrievalLatency += record.RetrievalLatency
		stats.MeanLLMLatency += record.LLMLatency
		stats.TotalCostUSD += record.CostUSD
	}

	results := make([]*CombinationStats, 0, len(order))
	for _, k := range order {
		stats := grouped[k]
		if stats.Queries > 0 {
			n := float64(stats.Queries)
			stats.MeanScorePercent /= n
			stats.MeanEmbedLatency = time.Duration(float64(stats.MeanEmbedLatency) / n)
			stats.MeanRetrievalLatency = time.Duration(float64(stats.MeanRetrievalLatency) / n)
			stats.MeanLLMLatency = time.Duration(float64(stats.MeanLLMLatency) / n)
		}
		results = append(results, stats)
	}

	return results
}
