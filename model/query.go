package model

import (
	"encoding/json"
	"os"
)

// SearchQuery carries all inputs of one retrieval call.
// Dimension selects the shard and must match the width of Embedding.
type SearchQuery struct {
	Embedding   []float32   `json:"embedding"`
	Text        string      `json:"text"`
	ContentType ContentType `json:"content_type"`
	Dimension   int         `json:"dimension"`
}

// BenchmarkQuery is a test query with the keywords an answer is graded
// against. Immutable once issued.
type BenchmarkQuery struct {
	Text             string   `json:"text"`
	ExpectedKeywords []string `json:"expected_keywords,omitempty"`
	Category         string   `json:"category,omitempty"`
}

// LoadBenchmarkQueries reads a JSON array of benchmark queries from a file
func LoadBenchmarkQueries(filePath string) ([]BenchmarkQuery, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var queries []BenchmarkQuery
	if err := json.Unmarshal(content, &queries); err != nil {
		return nil, err
	}

	return queries, nil
}
