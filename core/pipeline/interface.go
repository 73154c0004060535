package pipeline

import (
	"context"

	"github.com/trevadelman/rag-explorer/model"
)

// ChunkFunc is a function that splits text into ingestion chunks
type ChunkFunc func(text string) ([]string, error)

// EmbedResult carries the embedding vector and the token usage of the call
type EmbedResult struct {
	Embedding []float32
	Tokens    int
}

// EmbedFunc is a function that generates an embedding for text
type EmbedFunc func(ctx context.Context, text string) (*EmbedResult, error)

// CompleteResult carries the generated text and the token usage of the call
type CompleteResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// CompleteFunc is a function that generates a completion for a prompt
type CompleteFunc func(ctx context.Context, prompt string) (*CompleteResult, error)

// Pipeline combines chunking and embedding for document ingestion
type Pipeline struct {
	Chunker  ChunkFunc
	Embedder EmbedFunc
}

// NewPipeline creates a new ingestion pipeline
func NewPipeline(chunker ChunkFunc, embedder EmbedFunc) *Pipeline {
	return &Pipeline{
		Chunker:  chunker,
		Embedder: embedder,
	}
}

// Process splits content into chunks and embeds each one, returning
// documents ready for insertion into the store
func (p *Pipeline) Process(ctx context.Context, content string, contentType model.ContentType, typeName string, libraryName string) ([]*model.Document, error) {
	chunks, err := p.Chunker(content)
	if err != nil {
		return nil, err
	}

	documents := make([]*model.Document, 0, len(chunks))
	for i, chunk := range chunks {
		result, err := p.Embedder(ctx, chunk)
		if err != nil {
			return nil, err
		}

		documents = append(documents, &model.Document{
			Content:     chunk,
			ContentType: contentType,
			TypeName:    typeName,
			LibraryName: libraryName,
			Metadata:    model.Metadata{"chunk_index": i},
			Embedding:   result.Embedding,
		})
	}

	return documents, nil
}
