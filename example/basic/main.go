package main

import (
	"context"
	"fmt"
	"log"

	ragexplorer "github.com/trevadelman/rag-explorer"
	"github.com/trevadelman/rag-explorer/core/pipeline"
	"github.com/trevadelman/rag-explorer/helper"
	"github.com/trevadelman/rag-explorer/model"
)

const sampleContent = `The Co2Sensor measures carbon dioxide concentration in parts per million.

It exposes a calibrate method that must be called after power-up and before
the first reading. Calibration takes roughly twenty seconds in clean air.

Readings are reported over I2C at address 0x62. The sensor supports a
measurement interval between two and sixty seconds.`

// fakeEmbedder stands in for a real provider so the example runs without an
// API key. It hashes words into a fixed-width vector.
func fakeEmbedder(dimension int) pipeline.EmbedFunc {
	return func(ctx context.Context, text string) (*pipeline.EmbedResult, error) {
		embedding := make([]float32, dimension)
		for i, r := range text {
			embedding[(i*31+int(r))%dimension] += 1
		}
		return &pipeline.EmbedResult{Embedding: embedding, Tokens: len(text) / 4}, nil
	}
}

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Name:     "ragexplorer",
		User:     "ragexplorer",
		Password: "ragexplorer",
	}

	explorer, err := ragexplorer.NewExplorer(dbConfig)
	if err != nil {
		log.Fatalf("Failed to create explorer: %v", err)
	}
	defer explorer.Close()

	// Paragraph chunking with a fake embedder writing into the 768 shard
	explorer.SetPipeline(pipeline.NewPipeline(pipeline.ParagraphChunker(), fakeEmbedder(768)))

	fmt.Println("Ingesting document...")
	numDocs, err := explorer.ProcessAndInsertDocument(
		context.Background(),
		sampleContent,
		model.ContentTypeSpec,
		"Co2Sensor",
		"airquality",
	)
	if err != nil {
		log.Fatalf("Failed to process and insert document: %v", err)
	}
	fmt.Printf("Inserted %d documents\n", numDocs)

	queryText := "How do I calibrate the co2sensor?"
	fmt.Printf("\nQuerying: %s\n", queryText)

	config := model.DefaultCombinedConfig()
	results, err := explorer.CombinedSearch(context.Background(), queryText, model.ContentTypeSpec, &config)
	if err != nil {
		log.Fatalf("Failed to search: %v", err)
	}

	fmt.Printf("\nFound %d results:\n", len(results))
	for i, result := range results {
		fmt.Printf("\n--- Result %d ---\n", i+1)
		fmt.Printf("Score: %.4f (vector %.4f, lexical %.4f, relevance %.4f)\n",
			result.Score, result.VectorScore, result.LexicalScore, result.RelevanceScore)
		fmt.Printf("Content: %s\n", result.Document.Content)
		fmt.Printf("Method: %s\n", result.RetrievalMethod)
	}

	fmt.Println("\nBasic example completed successfully!")
}
