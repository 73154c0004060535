package model

// SearchConfig represents configuration for a retrieval query.
//
// The weights are intentionally not validated to sum to 1. Callers may pass
// any combination as a tuning knob; the strategies use them as-is, so a
// mis-specified sum changes the score scale, not the relative ordering of
// documents scored by a single signal.
type SearchConfig struct {
	// Number of results to return after fusion
	TopK int `json:"top_k"`

	// Ranking weights
	VectorWeight    float64 `json:"vector_weight"`    // Weight for cosine similarity
	LexicalWeight   float64 `json:"lexical_weight"`   // Weight for lexical rank
	RelevanceWeight float64 `json:"relevance_weight"` // Weight for field-weighted relevance rank
}

// DefaultHybridConfig returns the default weighting for the hybrid strategy
// (vector + lexical fusion).
func DefaultHybridConfig() SearchConfig {
	return SearchConfig{
		TopK:          5,
		VectorWeight:  0.7,
		LexicalWeight: 0.3,
	}
}

// DefaultCombinedConfig returns the default weighting for the combined
// strategy (vector + lexical + field-weighted relevance fusion).
func DefaultCombinedConfig() SearchConfig {
	return SearchConfig{
		TopK:            5,
		VectorWeight:    0.5,
		LexicalWeight:   0.3,
		RelevanceWeight: 0.2,
	}
}
