// Command ragexplorer runs a retrieval benchmark suite over a populated
// document store and writes a JSON report.
//
// Configuration comes from the environment (loaded from .env when present):
// DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD for the store and
// OPENAI_API_KEY / GEMINI_API_KEY for the model providers.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	ragexplorer "github.com/trevadelman/rag-explorer"
	"github.com/trevadelman/rag-explorer/core/benchmark"
	"github.com/trevadelman/rag-explorer/core/pipeline"
	"github.com/trevadelman/rag-explorer/core/retrieval"
	"github.com/trevadelman/rag-explorer/helper"
	"github.com/trevadelman/rag-explorer/model"
)

// presetCombination names one cell of the cross-product before the API
// clients are constructed
type presetCombination struct {
	strategy   string
	embedModel string
	provider   string
	dimension  int
	llmModel   string
}

// quickPreset exercises every strategy against one cheap model pair
var quickPreset = []presetCombination{
	{"vector", "text-embedding-3-small", "openai", 1536, "gpt-4o-mini"},
	{"hybrid", "text-embedding-3-small", "openai", 1536, "gpt-4o-mini"},
	{"combined", "text-embedding-3-small", "openai", 1536, "gpt-4o-mini"},
}

// fullPreset crosses all strategies with all supported embedding widths
var fullPreset = []presetCombination{
	{"vector", "gemini-embedding-001", "gemini", 768, "gemini-2.0-flash"},
	{"vector", "text-embedding-3-small", "openai", 1536, "gpt-4o-mini"},
	{"vector", "text-embedding-3-large", "openai", 3072, "gpt-4o-mini"},
	{"hybrid", "gemini-embedding-001", "gemini", 768, "gemini-2.0-flash"},
	{"hybrid", "text-embedding-3-small", "openai", 1536, "gpt-4o-mini"},
	{"hybrid", "text-embedding-3-large", "openai", 3072, "gpt-4o-mini"},
	{"combined", "gemini-embedding-001", "gemini", 768, "gemini-2.0-flash"},
	{"combined", "text-embedding-3-small", "openai", 1536, "gpt-4o-mini"},
	{"combined", "text-embedding-3-large", "openai", 3072, "gpt-4o-mini"},
}

func main() {
	preset := flag.String("preset", "quick", "combination preset: quick or full")
	queriesPath := flag.String("queries", "queries.json", "path to the benchmark query file")
	outPath := flag.String("out", "report.json", "path for the JSON report")
	topK := flag.Int("top-k", 5, "number of results per retrieval call")
	contentType := flag.String("content-type", string(model.ContentTypeSpec), "content type to search: spec, prose or docs")
	flag.Parse()

	// Missing .env is fine when the variables come from the environment
	_ = godotenv.Load()

	var presets []presetCombination
	switch *preset {
	case "quick":
		presets = quickPreset
	case "full":
		presets = fullPreset
	default:
		log.Fatalf("unknown preset %q (known: quick, full)", *preset)
	}

	dbConfig, err := helper.NewDatabaseConfiguration()
	if err != nil {
		log.Fatalf("failed to load database configuration: %v", err)
	}

	explorer, err := ragexplorer.NewExplorer(dbConfig)
	if err != nil {
		log.Fatalf("failed to create explorer: %v", err)
	}
	defer explorer.Close()

	queries, err := model.LoadBenchmarkQueries(*queriesPath)
	if err != nil {
		log.Fatalf("failed to load benchmark queries: %v", err)
	}

	combinations, err := buildCombinations(presets, explorer.Engine)
	if err != nil {
		log.Fatalf("failed to build combinations: %v", err)
	}

	searchConfig := model.DefaultCombinedConfig()
	searchConfig.TopK = *topK

	runner := benchmark.NewRunner(searchConfig, model.ContentType(*contentType), explorer.Runs, explorer.DB.Logger)
	records, err := runner.Run(context.Background(), combinations, queries)
	if err != nil {
		log.Fatalf("benchmark run failed: %v", err)
	}

	report := benchmark.NewReport(records)
	if err := report.WriteJSON(*outPath); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	report.PrintSummary()
}

// buildCombinations turns presets into runnable combinations by constructing
// the strategies and API clients
func buildCombinations(presets []presetCombination, engine *retrieval.Engine) ([]benchmark.Combination, error) {
	combinations := make([]benchmark.Combination, 0, len(presets))
	for _, p := range presets {
		strategy, err := retrieval.NewStrategy(p.strategy, engine)
		if err != nil {
			return nil, err
		}

		var embedder pipeline.EmbedFunc
		var completer pipeline.CompleteFunc
		switch p.provider {
		case "openai":
			embedder = pipeline.NewOpenAIEmbedder(pipeline.EmbedderConfig{
				APIKey:     os.Getenv("OPENAI_API_KEY"),
				Model:      p.embedModel,
				Dimensions: p.dimension,
			})
			completer = pipeline.NewOpenAICompleter(pipeline.CompleterConfig{
				APIKey: os.Getenv("OPENAI_API_KEY"),
				Model:  p.llmModel,
			})
		case "gemini":
			embedder = pipeline.NewGeminiEmbedder(pipeline.EmbedderConfig{
				APIKey:     os.Getenv("GEMINI_API_KEY"),
				Model:      p.embedModel,
				Dimensions: p.dimension,
			})
			completer = pipeline.NewGeminiCompleter(pipeline.CompleterConfig{
				APIKey: os.Getenv("GEMINI_API_KEY"),
				Model:  p.llmModel,
			})
		}

		combinations = append(combinations, benchmark.Combination{
			Strategy:   strategy,
			EmbedModel: p.embedModel,
			Embedder:   embedder,
			Dimension:  p.dimension,
			LLMModel:   p.llmModel,
			Completer:  completer,
		})
	}

	return combinations, nil
}
