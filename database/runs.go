package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trevadelman/rag-explorer/helper"
	"github.com/trevadelman/rag-explorer/model"
	loadSql "github.com/trevadelman/rag-explorer/sql"
)

// RunsDBHandlerFunctions defines the interface for benchmark run persistence.
type RunsDBHandlerFunctions interface {
	InsertRun(record *model.BenchmarkRecord) error
	SelectRunsBySuite(suiteRID uuid.UUID) ([]*model.BenchmarkRecord, error)
}

// RunsDBHandler persists benchmark records so aggregate queries survive a run
type RunsDBHandler struct {
	db *helper.Database
}

// NewRunsDBHandler creates a new runs database handler.
// If force is true, it will reload the SQL functions even if they already exist.
func NewRunsDBHandler(db *helper.Database, force bool) (*RunsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	runsDbHandler := &RunsDBHandler{
		db: db,
	}

	err := loadSql.LoadRunsSql(runsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load runs sql", err)
	}

	_, err = runsDbHandler.db.Instance.Exec(`SELECT init_runs();`)
	if err != nil {
		return nil, helper.NewError("initialize runs table", err)
	}

	db.Logger.Info("Initialized RunsDBHandler")

	return runsDbHandler, nil
}

// InsertRun persists one benchmark record
func (h *RunsDBHandler) InsertRun(record *model.BenchmarkRecord) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_run($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		record.SuiteRID,
		record.Strategy,
		record.EmbedModel,
		record.LLMModel,
		record.QueryText,
		record.Category,
		record.EmbedLatency.Milliseconds(),
		record.RetrievalLatency.Milliseconds(),
		record.LLMLatency.Milliseconds(),
		record.EmbedTokens,
		record.PromptTokens,
		record.CompletionTokens,
		record.CostUSD,
		record.MatchedKeywords,
		record.ExpectedKeywords,
		record.ScorePercent,
		record.Error,
	)

	err := row.Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectRunsBySuite retrieves all records of one benchmark suite
func (h *RunsDBHandler) SelectRunsBySuite(suiteRID uuid.UUID) ([]*model.BenchmarkRecord, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_runs_by_suite($1)`,
		suiteRID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var records []*model.BenchmarkRecord
	for rows.Next() {
		record := &model.BenchmarkRecord{}

		var embedMs, retrievalMs, llmMs int64
		err := rows.Scan(
			&record.ID,
			&record.SuiteRID,
			&record.Strategy,
			&record.EmbedModel,
			&record.LLMModel,
			&record.QueryText,
			&record.Category,
			&embedMs,
			&retrievalMs,
			&llmMs,
			&record.EmbedTokens,
			&record.PromptTokens,
			&record.CompletionTokens,
			&record.CostUSD,
			&record.MatchedKeywords,
			&record.ExpectedKeywords,
			&record.ScorePercent,
			&record.Error,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		record.EmbedLatency = time.Duration(embedMs) * time.Millisecond
		record.RetrievalLatency = time.Duration(retrievalMs) * time.Millisecond
		record.LLMLatency = time.Duration(llmMs) * time.Millisecond

		records = append(records, record)
	}

	return records, nil
}
