package ragexplorer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/trevadelman/rag-explorer/core/pipeline"
	"github.com/trevadelman/rag-explorer/core/retrieval"
	"github.com/trevadelman/rag-explorer/database"
	"github.com/trevadelman/rag-explorer/helper"
	"github.com/trevadelman/rag-explorer/model"
	loadSql "github.com/trevadelman/rag-explorer/sql"
)

// Explorer provides a unified interface to the document store, the
// retrieval strategies and the benchmark run history
type Explorer struct {
	DB        *helper.Database
	Documents *database.DocumentsDBHandler
	Runs      *database.RunsDBHandler
	Pipeline  *pipeline.Pipeline // Optional ingestion pipeline
	Engine    *retrieval.Engine
	// Logging
	log *slog.Logger
}

// NewExplorer creates a new Explorer instance with all handlers initialized
func NewExplorer(config *helper.DatabaseConfiguration) (*Explorer, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("ragexplorer", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	documents, err := database.NewDocumentsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create documents handler", err)
	}

	runs, err := database.NewRunsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create runs handler", err)
	}

	engine := retrieval.NewEngine(documents)

	return &Explorer{
		DB:        db,
		Documents: documents,
		Runs:      runs,
		Engine:    engine,
		log:       logger,
	}, nil
}

// Close closes the database connection
func (e *Explorer) Close() error {
	if e.DB != nil && e.DB.Instance != nil {
		return e.DB.Instance.Close()
	}
	return nil
}

// SetPipeline sets the ingestion pipeline for document processing
func (e *Explorer) SetPipeline(pipeline *pipeline.Pipeline) {
	e.Pipeline = pipeline
}

// ProcessAndInsertDocument chunks and embeds the given content and inserts
// the resulting documents into the shard matching the embedder's width.
// Returns the number of documents inserted and any error encountered.
func (e *Explorer) ProcessAndInsertDocument(ctx context.Context, content string, contentType model.ContentType, typeName string, libraryName string) (int, error) {
	if e.Pipeline == nil {
		return 0, helper.NewError("process document", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}
	if content == "" {
		return 0, helper.NewError("process document", fmt.Errorf("document content is empty"))
	}

	documents, err := e.Pipeline.Process(ctx, content, contentType, typeName, libraryName)
	if err != nil {
		return 0, helper.NewError("process chunks", err)
	}

	for i, doc := range documents {
		if err := e.Documents.InsertDocument(doc); err != nil {
			return i, helper.NewError(fmt.Sprintf("insert document %d", i), err)
		}
	}

	e.log.Info("Inserted documents", slog.Int("num_documents", len(documents)), slog.String("type_name", typeName))

	return len(documents), nil
}

// Search runs the named retrieval strategy ("vector", "hybrid" or
// "combined") over the shard matching the embedder's width
func (e *Explorer) Search(ctx context.Context, strategyName string, queryText string, contentType model.ContentType, config *model.SearchConfig) ([]*model.SearchResult, error) {
	if e.Pipeline == nil || e.Pipeline.Embedder == nil {
		return nil, helper.NewError("search", fmt.Errorf("pipeline with embedder not set, use SetPipeline() first"))
	}

	strategy, err := retrieval.NewStrategy(strategyName, e.Engine)
	if err != nil {
		return nil, err
	}

	embedded, err := e.Pipeline.Embedder(ctx, queryText)
	if err != nil {
		return nil, helper.NewError("generate embedding", err)
	}

	query := &model.SearchQuery{
		Embedding:   embedded.Embedding,
		Text:        queryText,
		ContentType: contentType,
		Dimension:   len(embedded.Embedding),
	}

	return strategy.Search(ctx, query, config)
}

// VectorSearch performs pure vector similarity search
func (e *Explorer) VectorSearch(ctx context.Context, queryText string, contentType model.ContentType, config *model.SearchConfig) ([]*model.SearchResult, error) {
	return e.Search(ctx, "vector", queryText, contentType, config)
}

// HybridSearch fuses vector similarity with lexical rank
func (e *Explorer) HybridSearch(ctx context.Context, queryText string, contentType model.ContentType, config *model.SearchConfig) ([]*model.SearchResult, error) {
	return e.Search(ctx, "hybrid", queryText, contentType, config)
}

// CombinedSearch fuses vector, lexical and field-weighted relevance signals
func (e *Explorer) CombinedSearch(ctx context.Context, queryText string, contentType model.ContentType, config *model.SearchConfig) ([]*model.SearchResult, error) {
	return e.Search(ctx, "combined", queryText, contentType, config)
}
