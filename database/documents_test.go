package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trevadelman/rag-explorer/model"
)

func TestNewDocumentsDBHandler(t *testing.T) {
	db := initDB(t)

	t.Run("Create documents handler", func(t *testing.T) {
		handler, err := NewDocumentsDBHandler(db, true)

		require.NoError(t, err)
		require.NotNil(t, handler)
	})

	t.Run("Nil database fails", func(t *testing.T) {
		handler, err := NewDocumentsDBHandler(nil, false)

		assert.Error(t, err)
		assert.Nil(t, handler)
	})
}

func TestInsertDocument(t *testing.T) {
	db := initDB(t)
	handler, err := NewDocumentsDBHandler(db, true)
	require.NoError(t, err)

	t.Run("Insert document into 768 shard", func(t *testing.T) {
		doc := &model.Document{
			Content:     "The Co2Sensor measures carbon dioxide concentration in ppm.",
			ContentType: model.ContentTypeSpec,
			TypeName:    "Co2Sensor",
			LibraryName: "sensors",
			Metadata:    model.Metadata{"source": "spec"},
			Embedding:   testEmbedding(768, 0),
		}

		err := handler.InsertDocument(doc)

		require.NoError(t, err)
		assert.NotZero(t, doc.ID)
		assert.False(t, doc.CreatedAt.IsZero())
	})

	t.Run("Insert document with unsupported dimension fails", func(t *testing.T) {
		doc := &model.Document{
			Content:     "Wrong width",
			ContentType: model.ContentTypeSpec,
			Embedding:   make([]float32, 384),
		}

		err := handler.InsertDocument(doc)

		assert.Error(t, err)
	})

	// Cleanup
	require.NoError(t, handler.DeleteDocuments(768))
}

func TestSelectDocumentsBySimilarity(t *testing.T) {
	db := initDB(t)
	handler, err := NewDocumentsDBHandler(db, true)
	require.NoError(t, err)

	docA := &model.Document{
		Content:     "Temperature sensor specification",
		ContentType: model.ContentTypeSpec,
		TypeName:    "TemperatureSensor",
		Embedding:   testEmbedding(768, 0),
	}
	docB := &model.Document{
		Content:     "Pressure sensor specification",
		ContentType: model.ContentTypeSpec,
		TypeName:    "PressureSensor",
		Embedding:   testEmbedding(768, 1),
	}
	docProse := &model.Document{
		Content:     "An essay about sensors",
		ContentType: model.ContentTypeProse,
		Embedding:   testEmbedding(768, 0),
	}
	require.NoError(t, handler.InsertDocument(docA))
	require.NoError(t, handler.InsertDocument(docB))
	require.NoError(t, handler.InsertDocument(docProse))

	t.Run("Exact query vector returns the document first with similarity 1", func(t *testing.T) {
		results, err := handler.SelectDocumentsBySimilarity(docA.Embedding, model.ContentTypeSpec, 10)

		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, docA.ID, results[0].ID)
		assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
	})

	t.Run("Results are ordered by descending similarity", func(t *testing.T) {
		results, err := handler.SelectDocumentsBySimilarity(docA.Embedding, model.ContentTypeSpec, 10)

		require.NoError(t, err)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
		}
	})

	t.Run("Content type filter excludes other types", func(t *testing.T) {
		results, err := handler.SelectDocumentsBySimilarity(docA.Embedding, model.ContentTypeSpec, 10)

		require.NoError(t, err)
		for _, result := range results {
			assert.Equal(t, model.ContentTypeSpec, result.ContentType)
		}
	})

	t.Run("Limit caps the result length", func(t *testing.T) {
		results, err := handler.SelectDocumentsBySimilarity(docA.Embedding, model.ContentTypeSpec, 1)

		require.NoError(t, err)
		assert.LessOrEqual(t, len(results), 1)
	})

	t.Run("Unsupported dimension fails before querying", func(t *testing.T) {
		results, err := handler.SelectDocumentsBySimilarity(make([]float32, 100), model.ContentTypeSpec, 10)

		assert.Error(t, err)
		assert.Nil(t, results)
	})

	t.Run("Empty shard returns empty result", func(t *testing.T) {
		results, err := handler.SelectDocumentsBySimilarity(testEmbedding(1536, 0), model.ContentTypeSpec, 10)

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	// Cleanup
	require.NoError(t, handler.DeleteDocuments(768))
}

func TestSelectDocumentsByLexicalRank(t *testing.T) {
	db := initDB(t)
	handler, err := NewDocumentsDBHandler(db, true)
	require.NoError(t, err)

	doc := &model.Document{
		Content:     "The pressure sensor reports values in pascal.",
		ContentType: model.ContentTypeDocs,
		Embedding:   testEmbedding(768, 2),
	}
	require.NoError(t, handler.InsertDocument(doc))

	t.Run("Matching term returns a ranked document", func(t *testing.T) {
		results, err := handler.SelectDocumentsByLexicalRank(768, "pressure | voltage", model.ContentTypeDocs, 10)

		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, doc.ID, results[0].ID)
		assert.Greater(t, results[0].LexicalRank, 0.0)
	})

	t.Run("Non-matching pattern returns empty result", func(t *testing.T) {
		results, err := handler.SelectDocumentsByLexicalRank(768, "voltage", model.ContentTypeDocs, 10)

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Unsupported dimension fails", func(t *testing.T) {
		_, err := handler.SelectDocumentsByLexicalRank(100, "pressure", model.ContentTypeDocs, 10)

		assert.Error(t, err)
	})

	// Cleanup
	require.NoError(t, handler.DeleteDocuments(768))
}

func TestSelectDocumentsByFieldRank(t *testing.T) {
	db := initDB(t)
	handler, err := NewDocumentsDBHandler(db, true)
	require.NoError(t, err)

	named := &model.Document{
		Content:     "Generic description without the term.",
		ContentType: model.ContentTypeSpec,
		TypeName:    "Co2Sensor",
		LibraryName: "airquality",
		Embedding:   testEmbedding(768, 3),
	}
	body := &model.Document{
		Content:     "The co2sensor is described here in the body only.",
		ContentType: model.ContentTypeSpec,
		Embedding:   testEmbedding(768, 4),
	}
	require.NoError(t, handler.InsertDocument(named))
	require.NoError(t, handler.InsertDocument(body))

	t.Run("Type name match outranks body match", func(t *testing.T) {
		results, err := handler.SelectDocumentsByFieldRank(768, "co2sensor", model.ContentTypeSpec, 10)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, named.ID, results[0].ID, "document matched on type_name should rank first")
		assert.Greater(t, results[0].RelevanceRank, results[1].RelevanceRank)
	})

	// Cleanup
	require.NoError(t, handler.DeleteDocuments(768))
}

func TestCountDocuments(t *testing.T) {
	db := initDB(t)
	handler, err := NewDocumentsDBHandler(db, true)
	require.NoError(t, err)

	doc := &model.Document{
		Content:     "Counted document",
		ContentType: model.ContentTypeProse,
		Embedding:   testEmbedding(1536, 0),
	}
	require.NoError(t, handler.InsertDocument(doc))

	t.Run("Count all documents in shard", func(t *testing.T) {
		count, err := handler.CountDocuments(1536, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Count filtered by content type", func(t *testing.T) {
		contentType := model.ContentTypeSpec
		count, err := handler.CountDocuments(1536, &contentType)

		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	// Cleanup
	require.NoError(t, handler.DeleteDocuments(1536))
}
