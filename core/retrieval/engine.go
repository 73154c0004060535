package retrieval

import (
	"github.com/trevadelman/rag-explorer/model"
)

// DocumentSearcher defines the store queries the engine needs.
// Implemented by database.DocumentsDBHandler; tests use an in-memory fake.
type DocumentSearcher interface {
	SelectDocumentsBySimilarity(embedding []float32, contentType model.ContentType, limit int) ([]*model.Document, error)
	SelectDocumentsByLexicalRank(dimension int, pattern string, contentType model.ContentType, limit int) ([]*model.Document, error)
	SelectDocumentsByFieldRank(dimension int, query string, contentType model.ContentType, limit int) ([]*model.Document, error)
}

// Engine issues the branch queries the strategies fuse.
// It holds no state beyond the store handle; the read path never mutates
// store state, so concurrent searches against the same shard are safe.
type Engine struct {
	documents DocumentSearcher
}

// NewEngine creates a new retrieval engine
func NewEngine(documents DocumentSearcher) *Engine {
	return &Engine{
		documents: documents,
	}
}

// vectorBranch runs the cosine-similarity query
func (e *Engine) vectorBranch(query *model.SearchQuery, limit int) ([]*model.Document, error) {
	return e.documents.SelectDocumentsBySimilarity(query.Embedding, query.ContentType, limit)
}

// lexicalBranch runs the OR-pattern lexical-rank query
func (e *Engine) lexicalBranch(query *model.SearchQuery, pattern string, limit int) ([]*model.Document, error) {
	return e.documents.SelectDocumentsByLexicalRank(query.Dimension, pattern, query.ContentType, limit)
}

// relevanceBranch runs the field-weighted relevance-rank query on the plain
// query text (not the OR pattern)
func (e *Engine) relevanceBranch(query *model.SearchQuery, limit int) ([]*model.Document, error) {
	return e.documents.SelectDocumentsByFieldRank(query.Dimension, query.Text, query.ContentType, limit)
}
