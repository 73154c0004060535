package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trevadelman/rag-explorer/model"
)

func TestRunsDBHandler(t *testing.T) {
	db := initDB(t)
	handler, err := NewRunsDBHandler(db, true)
	require.NoError(t, err)

	suiteRID := uuid.New()

	t.Run("Insert run assigns id and timestamp", func(t *testing.T) {
		record := &model.BenchmarkRecord{
			SuiteRID:         suiteRID,
			Strategy:         "combined",
			EmbedModel:       "text-embedding-3-small",
			LLMModel:         "gpt-4o-mini",
			QueryText:        "What unit does the pressure sensor report?",
			Category:         "factual",
			EmbedLatency:     120 * time.Millisecond,
			RetrievalLatency: 35 * time.Millisecond,
			LLMLatency:       900 * time.Millisecond,
			EmbedTokens:      12,
			PromptTokens:     840,
			CompletionTokens: 60,
			CostUSD:          0.000162,
			MatchedKeywords:  2,
			ExpectedKeywords: 3,
			ScorePercent:     66.67,
		}

		err := handler.InsertRun(record)

		require.NoError(t, err)
		assert.NotZero(t, record.ID)
		assert.False(t, record.CreatedAt.IsZero())
	})

	t.Run("Select runs by suite returns persisted records", func(t *testing.T) {
		failed := &model.BenchmarkRecord{
			SuiteRID:   suiteRID,
			Strategy:   "vector",
			EmbedModel: "embedding-001",
			LLMModel:   "gemini-2.0-flash",
			QueryText:  "q",
			Error:      "store query failed",
		}
		require.NoError(t, handler.InsertRun(failed))

		records, err := handler.SelectRunsBySuite(suiteRID)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "combined", records[0].Strategy)
		assert.Equal(t, 120*time.Millisecond, records[0].EmbedLatency)
		assert.False(t, records[0].Failed())
		assert.True(t, records[1].Failed())
	})

	t.Run("Unknown suite returns empty result", func(t *testing.T) {
		records, err := handler.SelectRunsBySuite(uuid.New())

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
