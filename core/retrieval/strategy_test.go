package retrieval

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trevadelman/rag-explorer/model"
)

// fakeSearcher is an in-memory DocumentSearcher used to test the fusion
// logic without a live store
type fakeSearcher struct {
	vector    []*model.Document
	lexical   []*model.Document
	relevance []*model.Document

	err error

	lexicalCalled   bool
	relevanceCalled bool
	lastPattern     string
}

func (f *fakeSearcher) SelectDocumentsBySimilarity(embedding []float32, contentType model.ContentType, limit int) ([]*model.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return truncateDocs(f.vector, limit), nil
}

func (f *fakeSearcher) SelectDocumentsByLexicalRank(dimension int, pattern string, contentType model.ContentType, limit int) ([]*model.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lexicalCalled = true
	f.lastPattern = pattern
	return truncateDocs(f.lexical, limit), nil
}

func (f *fakeSearcher) SelectDocumentsByFieldRank(dimension int, query string, contentType model.ContentType, limit int) ([]*model.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.relevanceCalled = true
	return truncateDocs(f.relevance, limit), nil
}

func truncateDocs(documents []*model.Document, limit int) []*model.Document {
	if limit > 0 && len(documents) > limit {
		return documents[:limit]
	}
	return documents
}

func vectorDoc(id int, content string, similarity float64) *model.Document {
	return &model.Document{ID: id, Content: content, Similarity: similarity}
}

func lexicalDoc(id int, content string, rank float64) *model.Document {
	return &model.Document{ID: id, Content: content, LexicalRank: rank}
}

func relevanceDoc(id int, content string, rank float64) *model.Document {
	return &model.Document{ID: id, Content: content, RelevanceRank: rank}
}

func testQuery(text string) *model.SearchQuery {
	return &model.SearchQuery{
		Embedding:   make([]float32, 768),
		Text:        text,
		ContentType: model.ContentTypeSpec,
		Dimension:   768,
	}
}

func TestNewStrategy(t *testing.T) {
	engine := NewEngine(&fakeSearcher{})

	t.Run("Known strategy names resolve", func(t *testing.T) {
		for _, name := range []string{"vector", "hybrid", "combined"} {
			strategy, err := NewStrategy(name, engine)
			require.NoError(t, err)
			assert.Equal(t, name, strategy.Name())
		}
	})

	t.Run("Unknown strategy name fails", func(t *testing.T) {
		strategy, err := NewStrategy("graph", engine)

		assert.Error(t, err)
		assert.Nil(t, strategy)
	})
}

func TestVectorStrategySearch(t *testing.T) {
	ctx := context.Background()

	t.Run("Results keep the store's descending similarity order", func(t *testing.T) {
		searcher := &fakeSearcher{vector: []*model.Document{
			vectorDoc(1, "best", 0.95),
			vectorDoc(2, "good", 0.80),
			vectorDoc(3, "fair", 0.60),
		}}
		strategy := NewVectorStrategy(NewEngine(searcher))

		results, err := strategy.Search(ctx, testQuery("query"), &model.SearchConfig{TopK: 3})

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, 0.95, results[0].Score)
		assert.Equal(t, results[0].Score, results[0].VectorScore)
		assert.Equal(t, model.RetrievalMethodVector, results[0].RetrievalMethod)
	})

	t.Run("Result length never exceeds topK", func(t *testing.T) {
		searcher := &fakeSearcher{vector: []*model.Document{
			vectorDoc(1, "a", 0.9),
			vectorDoc(2, "b", 0.8),
			vectorDoc(3, "c", 0.7),
		}}
		strategy := NewVectorStrategy(NewEngine(searcher))

		results, err := strategy.Search(ctx, testQuery("query"), &model.SearchConfig{TopK: 2})

		require.NoError(t, err)
		assert.LessOrEqual(t, len(results), 2)
	})

	t.Run("Unsupported dimension fails before the store is queried", func(t *testing.T) {
		strategy := NewVectorStrategy(NewEngine(&fakeSearcher{}))
		query := &model.SearchQuery{Embedding: make([]float32, 999), Dimension: 999}

		results, err := strategy.Search(ctx, query, &model.SearchConfig{TopK: 5})

		assert.Error(t, err)
		assert.Nil(t, results)
	})

	t.Run("Embedding width mismatch fails", func(t *testing.T) {
		strategy := NewVectorStrategy(NewEngine(&fakeSearcher{}))
		query := &model.SearchQuery{Embedding: make([]float32, 768), Dimension: 1536}

		_, err := strategy.Search(ctx, query, &model.SearchConfig{TopK: 5})

		assert.Error(t, err)
	})

	t.Run("Store error aborts the search", func(t *testing.T) {
		searcher := &fakeSearcher{err: fmt.Errorf("connection refused")}
		strategy := NewVectorStrategy(NewEngine(searcher))

		results, err := strategy.Search(ctx, testQuery("query"), &model.SearchConfig{TopK: 5})

		assert.Error(t, err)
		assert.Nil(t, results)
	})

	t.Run("Empty store yields empty result, not an error", func(t *testing.T) {
		strategy := NewVectorStrategy(NewEngine(&fakeSearcher{}))

		results, err := strategy.Search(ctx, testQuery("query"), &model.SearchConfig{TopK: 5})

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestHybridStrategySearch(t *testing.T) {
	ctx := context.Background()

	t.Run("Combined score weighs both branches", func(t *testing.T) {
		searcher := &fakeSearcher{
			vector:  []*model.Document{vectorDoc(1, "shared", 0.8)},
			lexical: []*model.Document{lexicalDoc(1, "shared", 0.5)},
		}
		strategy := NewHybridStrategy(NewEngine(searcher))
		config := &model.SearchConfig{TopK: 5, VectorWeight: 0.7, LexicalWeight: 0.3}

		results, err := strategy.Search(ctx, testQuery("shared terms"), config)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.InDelta(t, 0.8*0.7+0.5*0.3, results[0].Score, 1e-12)
		assert.Equal(t, model.RetrievalMethodHybrid, results[0].RetrievalMethod)
	})

	t.Run("Document in one branch only participates with the other score zero", func(t *testing.T) {
		searcher := &fakeSearcher{
			vector:  []*model.Document{vectorDoc(1, "vector only", 0.9)},
			lexical: []*model.Document{lexicalDoc(2, "lexical only", 0.8)},
		}
		strategy := NewHybridStrategy(NewEngine(searcher))
		config := &model.SearchConfig{TopK: 5, VectorWeight: 0.7, LexicalWeight: 0.3}

		results, err := strategy.Search(ctx, testQuery("some terms"), config)

		require.NoError(t, err)
		require.Len(t, results, 2)
		// 0.9*0.7 = 0.63 beats 0.8*0.3 = 0.24
		assert.Equal(t, 1, results[0].Document.ID)
		assert.Equal(t, 2, results[1].Document.ID)
		assert.InDelta(t, 0.24, results[1].Score, 1e-12)
	})

	t.Run("Zero lexical weight reproduces vector-only ranking scaled by the vector weight", func(t *testing.T) {
		vector := []*model.Document{
			vectorDoc(1, "first", 0.9),
			vectorDoc(2, "second", 0.7),
			vectorDoc(3, "third", 0.5),
		}
		searcher := &fakeSearcher{
			vector:  vector,
			lexical: []*model.Document{lexicalDoc(3, "third", 0.99)},
		}
		strategy := NewHybridStrategy(NewEngine(searcher))
		config := &model.SearchConfig{TopK: 3, VectorWeight: 0.7, LexicalWeight: 0}

		results, err := strategy.Search(ctx, testQuery("some terms"), config)

		require.NoError(t, err)
		require.Len(t, results, 3)
		for i, doc := range vector {
			assert.Equal(t, doc.ID, results[i].Document.ID)
			assert.InDelta(t, doc.Similarity*0.7, results[i].Score, 1e-12)
		}
	})

	t.Run("Stop-word-only query skips the lexical branch", func(t *testing.T) {
		searcher := &fakeSearcher{
			vector: []*model.Document{vectorDoc(1, "doc", 0.9)},
		}
		strategy := NewHybridStrategy(NewEngine(searcher))
		config := &model.SearchConfig{TopK: 5, VectorWeight: 0.7, LexicalWeight: 0.3}

		results, err := strategy.Search(ctx, testQuery("is at an on"), config)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, searcher.lexicalCalled, "lexical branch should not run without keywords")
		assert.InDelta(t, 0.9*0.7, results[0].Score, 1e-12)
	})

	t.Run("Lexical branch receives the OR pattern", func(t *testing.T) {
		searcher := &fakeSearcher{
			vector: []*model.Document{vectorDoc(1, "doc", 0.9)},
		}
		strategy := NewHybridStrategy(NewEngine(searcher))
		config := model.DefaultHybridConfig()

		_, err := strategy.Search(ctx, testQuery("The pressure sensor"), &config)

		require.NoError(t, err)
		assert.True(t, searcher.lexicalCalled)
		assert.Equal(t, "pressure | sensor", searcher.lastPattern)
	})

	t.Run("Store error aborts the search", func(t *testing.T) {
		searcher := &fakeSearcher{err: fmt.Errorf("connection refused")}
		strategy := NewHybridStrategy(NewEngine(searcher))
		config := model.DefaultHybridConfig()

		_, err := strategy.Search(ctx, testQuery("query"), &config)

		assert.Error(t, err)
	})
}

func TestCombinedStrategySearch(t *testing.T) {
	ctx := context.Background()

	t.Run("Three-signal weighted sum", func(t *testing.T) {
		searcher := &fakeSearcher{
			vector:    []*model.Document{vectorDoc(1, "shared document", 0.8)},
			lexical:   []*model.Document{lexicalDoc(1, "shared document", 0.5)},
			relevance: []*model.Document{relevanceDoc(1, "shared document", 0.25)},
		}
		strategy := NewCombinedStrategy(NewEngine(searcher))
		config := &model.SearchConfig{TopK: 5, VectorWeight: 0.5, LexicalWeight: 0.3, RelevanceWeight: 0.2}

		results, err := strategy.Search(ctx, testQuery("query terms"), config)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.InDelta(t, 0.8*0.5+0.5*0.3+0.25*0.2, results[0].Score, 1e-12)
		assert.True(t, searcher.relevanceCalled)
		assert.Equal(t, model.RetrievalMethodCombined, results[0].RetrievalMethod)
	})

	t.Run("Phrase match multiplies the score by exactly 1.2", func(t *testing.T) {
		withPhrase := vectorDoc(1, "The Co2Sensor type calibrates automatically.", 0.8)
		withoutPhrase := vectorDoc(2, "Unrelated content.", 0.8)
		searcher := &fakeSearcher{vector: []*model.Document{withPhrase, withoutPhrase}}
		strategy := NewCombinedStrategy(NewEngine(searcher))
		config := &model.SearchConfig{TopK: 5, VectorWeight: 0.5, LexicalWeight: 0.3, RelevanceWeight: 0.2}

		results, err := strategy.Search(ctx, testQuery("Co2Sensor"), config)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 1, results[0].Document.ID)
		assert.InDelta(t, 0.8*0.5*1.2, results[0].Score, 1e-12)
		assert.True(t, results[0].PhraseBoosted)
		assert.InDelta(t, 0.8*0.5, results[1].Score, 1e-12)
		assert.False(t, results[1].PhraseBoosted)
	})

	t.Run("Results are cut to topK after fusion", func(t *testing.T) {
		searcher := &fakeSearcher{
			vector: []*model.Document{
				vectorDoc(1, "a", 0.9),
				vectorDoc(2, "b", 0.8),
			},
			relevance: []*model.Document{
				relevanceDoc(3, "c", 0.7),
				relevanceDoc(4, "d", 0.6),
			},
		}
		strategy := NewCombinedStrategy(NewEngine(searcher))
		config := &model.SearchConfig{TopK: 2, VectorWeight: 0.5, LexicalWeight: 0.3, RelevanceWeight: 0.2}

		results, err := strategy.Search(ctx, testQuery("query terms"), config)

		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("Store error aborts the search with no partial results", func(t *testing.T) {
		searcher := &fakeSearcher{err: fmt.Errorf("connection refused")}
		strategy := NewCombinedStrategy(NewEngine(searcher))
		config := &model.SearchConfig{TopK: 5, VectorWeight: 0.5, LexicalWeight: 0.3, RelevanceWeight: 0.2}

		results, err := strategy.Search(ctx, testQuery("query"), config)

		assert.Error(t, err)
		assert.Nil(t, results)
	})
}
