package model

import (
	"fmt"
	"time"
)

// ContentType categorizes the source material of a document chunk.
type ContentType string

const (
	ContentTypeSpec  ContentType = "spec"  // structured specification content
	ContentTypeProse ContentType = "prose" // free-form prose
	ContentTypeDocs  ContentType = "docs"  // reference documentation
)

// SupportedDimensions lists the embedding widths the store is sharded by.
// Each width corresponds to one shard table; a document belongs to exactly
// one shard, determined by the width of its embedding vector.
var SupportedDimensions = []int{768, 1536, 3072}

// ValidDimension checks that the given embedding width maps to a shard.
// It must be called before any store query is attempted.
func ValidDimension(dim int) error {
	for _, d := range SupportedDimensions {
		if d == dim {
			return nil
		}
	}
	return fmt.Errorf("unsupported embedding dimension %d (supported: %v)", dim, SupportedDimensions)
}

// Document represents an embedded content chunk in one shard of the store.
// Documents are created during ingestion and are read-only during retrieval.
type Document struct {
	ID          int         `json:"id"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	Metadata    Metadata    `json:"metadata,omitempty"`
	TypeName    string      `json:"type_name,omitempty"`
	LibraryName string      `json:"library_name,omitempty"`
	Embedding   []float32   `json:"embedding,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	// Per-branch scores, populated by the store queries
	Similarity    float64 `json:"similarity,omitempty"`
	LexicalRank   float64 `json:"lexical_rank,omitempty"`
	RelevanceRank float64 `json:"relevance_rank,omitempty"`
}

// Dimension returns the embedding width of the document, which determines
// its shard.
func (d *Document) Dimension() int {
	return len(d.Embedding)
}
