// Package benchmark drives the evaluation cross-product: for every
// combination of retrieval strategy, embedding model and LLM it runs all
// benchmark queries, grades the answers and collects latency, token and
// cost metrics.
package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trevadelman/rag-explorer/core/grading"
	"github.com/trevadelman/rag-explorer/core/pipeline"
	"github.com/trevadelman/rag-explorer/core/retrieval"
	"github.com/trevadelman/rag-explorer/helper"
	"github.com/trevadelman/rag-explorer/model"
)

// Combination names one cell of the evaluation cross-product
type Combination struct {
	Strategy   retrieval.Strategy
	EmbedModel string
	Embedder   pipeline.EmbedFunc
	Dimension  int
	LLMModel   string
	Completer  pipeline.CompleteFunc
}

// RunRecorder persists records as they are produced.
// Implemented by database.RunsDBHandler; a nil recorder disables persistence.
type RunRecorder interface {
	InsertRun(record *model.BenchmarkRecord) error
}

// Runner executes benchmark suites sequentially.
// Queries run one at a time so per-stage latencies are not distorted by
// contention on the embedding and completion APIs.
type Runner struct {
	searchConfig model.SearchConfig
	contentType  model.ContentType
	grader       *grading.Grader
	pricing      *Pricing
	recorder     RunRecorder
	logger       *slog.Logger
}

// NewRunner creates a benchmark runner. recorder may be nil.
func NewRunner(searchConfig model.SearchConfig, contentType model.ContentType, recorder RunRecorder, logger *slog.Logger) *Runner {
	return &Runner{
		searchConfig: searchConfig,
		contentType:  contentType,
		grader:       grading.NewGrader(),
		pricing:      DefaultPricing(),
		recorder:     recorder,
		logger:       logger,
	}
}

// Run evaluates every query under every combination and returns all records.
// A failed query produces a record with its error set and the suite
// continues; failed records are excluded from aggregates but kept in the
// result so the report can show them.
func (r *Runner) Run(ctx context.Context, combinations []Combination, queries []model.BenchmarkQuery) ([]*model.BenchmarkRecord, error) {
	if len(combinations) == 0 {
		return nil, helper.NewError("run benchmark", fmt.Errorf("no combinations to evaluate"))
	}

	suiteRID := uuid.New()
	r.logger.Info("Starting benchmark suite", "suite_rid", suiteRID, "combinations", len(combinations), "queries", len(queries))

	var records []*model.BenchmarkRecord
	for _, combination := range combinations {
		r.logger.Info("Evaluating combination",
			"strategy", combination.Strategy.Name(),
			"embed_model", combination.EmbedModel,
			"llm_model", combination.LLMModel,
		)

		for _, query := range queries {
			record := r.evaluate(ctx, suiteRID, combination, query)
			if record.Failed() {
				r.logger.Warn("Query evaluation failed", "query", query.Text, "error", record.Error)
			}

			if r.recorder != nil {
				if err := r.recorder.InsertRun(record); err != nil {
					return nil, helper.NewError("persist record", err)
				}
			}
			records = append(records, record)
		}
	}

	return records, nil
}

// evaluate runs one query under one combination: embed, search, complete,
// grade. Stage errors land in the record instead of aborting the suite.
func (r *Runner) evaluate(ctx context.Context, suiteRID uuid.UUID, combination Combination, query model.BenchmarkQuery) *model.BenchmarkRecord {
	record := &model.BenchmarkRecord{
		SuiteRID:         suiteRID,
		Strategy:         combination.Strategy.Name(),
		EmbedModel:       combination.EmbedModel,
		LLMModel:         combination.LLMModel,
		QueryText:        query.Text,
		Category:         query.Category,
		ExpectedKeywords: len(query.ExpectedKeywords),
		CreatedAt:        time.Now(),
	}

	embedStart := time.Now()
	embedded, err := combination.Embedder(ctx, query.Text)
	record.EmbedLatency = time.Since(embedStart)
	if err != nil {
		record.Error = helper.NewError("embed query", err).Error()
		return record
	}
	record.EmbedTokens = embedded.Tokens

	searchQuery := &model.SearchQuery{
		Embedding:   embedded.Embedding,
		Text:        query.Text,
		ContentType: r.contentType,
		Dimension:   combination.Dimension,
	}

	retrievalStart := time.Now()
	results, err := combination.Strategy.Search(ctx, searchQuery, &r.searchConfig)
	record.RetrievalLatency = time.Since(retrievalStart)
	if err != nil {
		record.Error = helper.NewError("search", err).Error()
		return record
	}

	prompt := buildPrompt(query.Text, results)

	llmStart := time.Now()
	completion, err := combination.Completer(ctx, prompt)
	record.LLMLatency = time.Since(llmStart)
	if err != nil {
		record.Error = helper.NewError("complete", err).Error()
		return record
	}
	record.PromptTokens = completion.PromptTokens
	record.CompletionTokens = completion.CompletionTokens

	record.MatchedKeywords = r.grader.Score(completion.Text, query.ExpectedKeywords)
	record.ScorePercent = Percent(record.MatchedKeywords, record.ExpectedKeywords)
	record.CostUSD = r.pricing.Cost(record)

	return record
}

// buildPrompt assembles the retrieved documents into a grounded context
// prompt
func buildPrompt(queryText string, results []*model.SearchResult) string {
	var builder strings.Builder

	builder.WriteString("Answer the question using only the context below.\n")
	builder.WriteString("If the context does not contain the answer, say so.\n\n")
	builder.WriteString("Context:\n")
	for i, result := range results {
		builder.WriteString(fmt.Sprintf("[%d] %s\n", i+1, result.Document.Content))
	}
	builder.WriteString("\nQuestion: ")
	builder.WriteString(queryText)

	return builder.String()
}
