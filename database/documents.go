package database

import (
	"context"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/trevadelman/rag-explorer/helper"
	"github.com/trevadelman/rag-explorer/model"
	loadSql "github.com/trevadelman/rag-explorer/sql"
)

// DocumentsDBHandlerFunctions defines the interface for document store operations.
type DocumentsDBHandlerFunctions interface {
	InsertDocument(doc *model.Document) error
	SelectDocumentsBySimilarity(embedding []float32, contentType model.ContentType, limit int) ([]*model.Document, error)
	SelectDocumentsByLexicalRank(dimension int, pattern string, contentType model.ContentType, limit int) ([]*model.Document, error)
	SelectDocumentsByFieldRank(dimension int, query string, contentType model.ContentType, limit int) ([]*model.Document, error)
	CountDocuments(dimension int, contentType *model.ContentType) (int64, error)
	DeleteDocuments(dimension int) error
}

// DocumentsDBHandler handles the dimension-sharded document store.
// Each supported embedding width has its own shard table; every method
// validates the width before touching the store.
type DocumentsDBHandler struct {
	db *helper.Database
}

// NewDocumentsDBHandler creates a new documents database handler.
// It loads the document-store SQL functions and creates the shard tables for
// all supported embedding dimensions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewDocumentsDBHandler(db *helper.Database, force bool) (*DocumentsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	documentsDbHandler := &DocumentsDBHandler{
		db: db,
	}

	err := loadSql.LoadDocumentsSql(documentsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load documents sql", err)
	}

	err = documentsDbHandler.CreateTables()
	if err != nil {
		return nil, helper.NewError("create tables", err)
	}

	db.Logger.Info("Initialized DocumentsDBHandler")

	return documentsDbHandler, nil
}

// CreateTables creates one shard table per supported embedding dimension.
// Existing tables are left untouched.
func (h *DocumentsDBHandler) CreateTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, dim := range model.SupportedDimensions {
		_, err := h.db.Instance.ExecContext(ctx, `SELECT init_documents($1);`, dim)
		if err != nil {
			return helper.NewError(fmt.Sprintf("initialize documents shard %d", dim), err)
		}
	}

	h.db.Logger.Info("Checked/created document shard tables")

	return nil
}

// InsertDocument inserts a document into the shard matching its embedding width
func (h *DocumentsDBHandler) InsertDocument(doc *model.Document) error {
	dim := doc.Dimension()
	if err := model.ValidDimension(dim); err != nil {
		return helper.NewError("validate dimension", err)
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_document($1, $2, $3, $4, $5, $6, $7)`,
		dim,
		doc.Content,
		string(doc.ContentType),
		doc.Metadata,
		doc.TypeName,
		doc.LibraryName,
		pgvector.NewVector(doc.Embedding),
	)

	var contentType string
	err := row.Scan(
		&doc.ID,
		&doc.Content,
		&contentType,
		&doc.Metadata,
		&doc.TypeName,
		&doc.LibraryName,
		&doc.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}
	doc.ContentType = model.ContentType(contentType)

	return nil
}

// SelectDocumentsBySimilarity retrieves the nearest neighbors of the query
// vector within the shard matching its width, filtered by content type and
// ordered by descending similarity (1 - cosine distance)
func (h *DocumentsDBHandler) SelectDocumentsBySimilarity(embedding []float32, contentType model.ContentType, limit int) ([]*model.Document, error) {
	dim := len(embedding)
	if err := model.ValidDimension(dim); err != nil {
		return nil, helper.NewError("validate dimension", err)
	}

	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_documents_by_similarity($1, $2, $3, $4)`,
		dim,
		pgvector.NewVector(embedding),
		string(contentType),
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var documents []*model.Document
	for rows.Next() {
		doc := &model.Document{}

		var contentTypeStr string
		err := rows.Scan(
			&doc.ID,
			&doc.Content,
			&contentTypeStr,
			&doc.Metadata,
			&doc.TypeName,
			&doc.LibraryName,
			&doc.CreatedAt,
			&doc.Similarity,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		doc.ContentType = model.ContentType(contentTypeStr)

		documents = append(documents, doc)
	}

	return documents, nil
}

// SelectDocumentsByLexicalRank retrieves rank-scored matches for an OR-style
// tsquery pattern over the document body within one shard
func (h *DocumentsDBHandler) SelectDocumentsByLexicalRank(dimension int, pattern string, contentType model.ContentType, limit int) ([]*model.Document, error) {
	if err := model.ValidDimension(dimension); err != nil {
		return nil, helper.NewError("validate dimension", err)
	}

	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_documents_by_lexical_rank($1, $2, $3, $4)`,
		dimension,
		pattern,
		string(contentType),
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var documents []*model.Document
	for rows.Next() {
		doc := &model.Document{}

		var contentTypeStr string
		err := rows.Scan(
			&doc.ID,
			&doc.Content,
			&contentTypeStr,
			&doc.Metadata,
			&doc.TypeName,
			&doc.LibraryName,
			&doc.CreatedAt,
			&doc.LexicalRank,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		doc.ContentType = model.ContentType(contentTypeStr)

		documents = append(documents, doc)
	}

	return documents, nil
}

// SelectDocumentsByFieldRank retrieves rank-scored matches for a plain
// natural-language query over the field-weighted tsvector (type name A,
// library name B, body D) within one shard
func (h *DocumentsDBHandler) SelectDocumentsByFieldRank(dimension int, query string, contentType model.ContentType, limit int) ([]*model.Document, error) {
	if err := model.ValidDimension(dimension); err != nil {
		return nil, helper.NewError("validate dimension", err)
	}

	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_documents_by_field_rank($1, $2, $3, $4)`,
		dimension,
		query,
		string(contentType),
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var documents []*model.Document
	for rows.Next() {
		doc := &model.Document{}

		var contentTypeStr string
		err := rows.Scan(
			&doc.ID,
			&doc.Content,
			&contentTypeStr,
			&doc.Metadata,
			&doc.TypeName,
			&doc.LibraryName,
			&doc.CreatedAt,
			&doc.RelevanceRank,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		doc.ContentType = model.ContentType(contentTypeStr)

		documents = append(documents, doc)
	}

	return documents, nil
}

// CountDocuments returns the number of documents in a shard, optionally
// filtered by content type
func (h *DocumentsDBHandler) CountDocuments(dimension int, contentType *model.ContentType) (int64, error) {
	if err := model.ValidDimension(dimension); err != nil {
		return 0, helper.NewError("validate dimension", err)
	}

	var contentTypeArg interface{}
	if contentType != nil {
		contentTypeArg = string(*contentType)
	}

	var count int64
	err := h.db.Instance.QueryRow(
		`SELECT count_documents($1, $2)`,
		dimension,
		contentTypeArg,
	).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

// DeleteDocuments removes all documents from a shard
func (h *DocumentsDBHandler) DeleteDocuments(dimension int) error {
	if err := model.ValidDimension(dimension); err != nil {
		return helper.NewError("validate dimension", err)
	}

	_, err := h.db.Instance.Exec(
		`SELECT delete_documents($1)`,
		dimension,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
