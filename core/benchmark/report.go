package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/trevadelman/rag-explorer/helper"
	"github.com/trevadelman/rag-explorer/model"
)

// Report bundles the raw records with their per-combination aggregates
type Report struct {
	Records      []*model.BenchmarkRecord `json:"records"`
	Combinations []*CombinationStats      `json:"combinations"`
}

// NewReport aggregates records into a report
func NewReport(records []*model.BenchmarkRecord) *Report {
	return &Report{
		Records:      records,
		Combinations: Aggregate(records),
	}
}

// WriteJSON writes the full report to a file
func (r *Report) WriteJSON(filePath string) error {
	content, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return helper.NewError("marshal report", err)
	}

	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		return helper.NewError("write report", err)
	}

	return nil
}

// PrintSummary prints a per-combination summary table to stdout
func (r *Report) PrintSummary() {
	header := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	header.Println("Benchmark summary")
	fmt.Printf("%-10s %-26s %-18s %8s %10s %10s %10s\n",
		"strategy", "embed model", "llm model", "score", "retrieval", "llm", "cost")

	for _, stats := range r.Combinations {
		line := fmt.Sprintf("%-10s %-26s %-18s %7.1f%% %10s %10s %9.4f$",
			stats.Strategy,
			stats.EmbedModel,
			stats.LLMModel,
			stats.MeanScorePercent,
			stats.MeanRetrievalLatency.Round(time.Millisecond),
			stats.MeanLLMLatency.Round(time.Millisecond),
			stats.TotalCostUSD,
		)
		if stats.Failed > 0 {
			bad.Printf("%s (%d failed)\n", line, stats.Failed)
			continue
		}
		good.Println(line)
	}
}
