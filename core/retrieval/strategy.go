package retrieval

import (
	"context"
	"fmt"

	"github.com/trevadelman/rag-explorer/core/pipeline"
	"github.com/trevadelman/rag-explorer/helper"
	"github.com/trevadelman/rag-explorer/model"
)

// Strategy defines a retrieval strategy.
// A store error aborts the whole search call; there are no partial results.
// Strategies hold no resources of their own; all of them share the facade's
// pooled connection, whose lifecycle is owned by Explorer.Close.
type Strategy interface {
	Search(ctx context.Context, query *model.SearchQuery, config *model.SearchConfig) ([]*model.SearchResult, error)
	Name() string
}

// NewStrategy creates the strategy registered under the given name.
// Known names: "vector", "hybrid", "combined".
func NewStrategy(name string, engine *Engine) (Strategy, error) {
	switch name {
	case "vector":
		return NewVectorStrategy(engine), nil
	case "hybrid":
		return NewHybridStrategy(engine), nil
	case "combined":
		return NewCombinedStrategy(engine), nil
	default:
		return nil, helper.NewError("create strategy", fmt.Errorf("unknown strategy %q (known: vector, hybrid, combined)", name))
	}
}

// validateQuery checks the shard width before any store query is attempted
func validateQuery(query *model.SearchQuery) error {
	if err := model.ValidDimension(query.Dimension); err != nil {
		return helper.NewError("validate query", err)
	}
	if len(query.Embedding) != query.Dimension {
		return helper.NewError("validate query", fmt.Errorf("embedding width %d does not match query dimension %d", len(query.Embedding), query.Dimension))
	}
	return nil
}

// VectorStrategy performs pure vector similarity search
type VectorStrategy struct {
	engine *Engine
}

// NewVectorStrategy creates a new vector-only strategy
func NewVectorStrategy(engine *Engine) *VectorStrategy {
	return &VectorStrategy{engine: engine}
}

// Name returns the strategy key
func (s *VectorStrategy) Name() string {
	return "vector"
}

// Search returns the topK nearest documents by cosine similarity
// (1 - cosine distance), ordered descending
func (s *VectorStrategy) Search(ctx context.Context, query *model.SearchQuery, config *model.SearchConfig) ([]*model.SearchResult, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	documents, err := s.engine.vectorBranch(query, config.TopK)
	if err != nil {
		return nil, err
	}

	results := make([]*model.SearchResult, len(documents))
	for i, doc := range documents {
		results[i] = &model.SearchResult{
			Document:        doc,
			Score:           doc.Similarity,
			VectorScore:     doc.Similarity,
			RetrievalMethod: model.RetrievalMethodVector,
		}
	}

	return results, nil
}

// HybridStrategy fuses vector similarity with lexical rank
type HybridStrategy struct {
	engine *Engine
}

// NewHybridStrategy creates a new hybrid strategy
func NewHybridStrategy(engine *Engine) *HybridStrategy {
	return &HybridStrategy{engine: engine}
}

// Name returns the strategy key
func (s *HybridStrategy) Name() string {
	return "hybrid"
}

// Search over-fetches 2*topK candidates from the vector and lexical branches,
// outer-joins them by document id and ranks by the weighted score sum.
// With no extractable keywords the lexical branch is skipped and results
// degrade to vector-only ranking scaled by the vector weight.
func (s *HybridStrategy) Search(ctx context.Context, query *model.SearchQuery, config *model.SearchConfig) ([]*model.SearchResult, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	overFetch := 2 * config.TopK

	vectorDocs, err := s.engine.vectorBranch(query, overFetch)
	if err != nil {
		return nil, err
	}

	fused := make(map[int]*fusedDocument)
	joinVector(fused, vectorDocs)

	pattern := pipeline.SearchPattern(pipeline.ExtractKeywords(query.Text))
	if pattern != "" {
		lexicalDocs, err := s.engine.lexicalBranch(query, pattern, overFetch)
		if err != nil {
			return nil, err
		}
		joinLexical(fused, lexicalDocs)
	}

	results := fuseResults(fused, config, model.RetrievalMethodHybrid, "")

	return sortAndTruncate(results, config.TopK), nil
}

// CombinedStrategy fuses vector similarity, lexical rank and field-weighted
// relevance rank, with a phrase boost for literal query matches.
//
// Three independent signals reduce single-signal blind spots: vector search
// misses exact technical terms, lexical search misses paraphrases, and the
// field-weighted rank rewards matches in authoritative fields like a type's
// formal name.
type CombinedStrategy struct {
	engine *Engine
}

// NewCombinedStrategy creates a new combined strategy
func NewCombinedStrategy(engine *Engine) *CombinedStrategy {
	return &CombinedStrategy{engine: engine}
}

// Name returns the strategy key
func (s *CombinedStrategy) Name() string {
	return "combined"
}

// Search over-fetches 3*topK candidates from each of the three branches,
// outer-joins them in two stages by document id, ranks by the weighted score
// sum and multiplies by 1.2 where the document content contains the query
// text as a case-insensitive substring. Boosted scores may exceed 1.
func (s *CombinedStrategy) Search(ctx context.Context, query *model.SearchQuery, config *model.SearchConfig) ([]*model.SearchResult, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	overFetch := 3 * config.TopK

	vectorDocs, err := s.engine.vectorBranch(query, overFetch)
	if err != nil {
		return nil, err
	}

	// First stage: vector + lexical
	fused := make(map[int]*fusedDocument)
	joinVector(fused, vectorDocs)

	pattern := pipeline.SearchPattern(pipeline.ExtractKeywords(query.Text))
	if pattern != "" {
		lexicalDocs, err := s.engine.lexicalBranch(query, pattern, overFetch)
		if err != nil {
			return nil, err
		}
		joinLexical(fused, lexicalDocs)
	}

	// Second stage: join the relevance branch onto the intermediate set
	relevanceDocs, err := s.engine.relevanceBranch(query, overFetch)
	if err != nil {
		return nil, err
	}
	joinRelevance(fused, relevanceDocs)

	results := fuseResults(fused, config, model.RetrievalMethodCombined, query.Text)

	return sortAndTruncate(results, config.TopK), nil
}
