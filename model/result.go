package model

// RetrievalMethod names the strategy that produced a result
type RetrievalMethod string

const (
	RetrievalMethodVector   RetrievalMethod = "vector"
	RetrievalMethodHybrid   RetrievalMethod = "hybrid"
	RetrievalMethodCombined RetrievalMethod = "combined"
)

// SearchResult represents a document retrieved by a query.
// It exists only for the duration of one retrieval call and the downstream
// context-assembly step.
//
// Score is the final ranking value. For the vector strategy it equals
// VectorScore; for the fusion strategies it is a weighted sum of the branch
// scores, and the combined strategy's phrase boost may push it above 1.
type SearchResult struct {
	Document        *Document       `json:"document"`
	Score           float64         `json:"score"`
	VectorScore     float64         `json:"vector_score"`
	LexicalScore    float64         `json:"lexical_score,omitempty"`
	RelevanceScore  float64         `json:"relevance_score,omitempty"`
	PhraseBoosted   bool            `json:"phrase_boosted,omitempty"`
	RetrievalMethod RetrievalMethod `json:"retrieval_method"`
}
