package pipeline

import (
	"fmt"
	"strings"
)

// OverlapChunker creates a chunker that splits text into fixed-size chunks
// with a character overlap between consecutive chunks. Splitting happens on
// rune boundaries so multi-byte characters are never cut.
func OverlapChunker(chunkSize int, overlap int) ChunkFunc {
	return func(text string) ([]string, error) {
		if chunkSize <= 0 {
			return nil, fmt.Errorf("chunk size must be positive")
		}
		if overlap < 0 || overlap >= chunkSize {
			return nil, fmt.Errorf("overlap must be in [0, chunk size)")
		}

		if strings.TrimSpace(text) == "" {
			return []string{}, nil
		}

		runes := []rune(text)
		step := chunkSize - overlap

		var chunks []string
		for start := 0; start < len(runes); start += step {
			end := start + chunkSize
			if end > len(runes) {
				end = len(runes)
			}

			chunk := strings.TrimSpace(string(runes[start:end]))
			if chunk != "" {
				chunks = append(chunks, chunk)
			}

			if end == len(runes) {
				break
			}
		}

		return chunks, nil
	}
}

// ParagraphChunker creates a chunker that splits text on blank lines
func ParagraphChunker() ChunkFunc {
	return func(text string) ([]string, error) {
		if strings.TrimSpace(text) == "" {
			return []string{}, nil
		}

		paragraphs := strings.Split(text, "\n\n")

		var chunks []string
		for _, paragraph := range paragraphs {
			paragraph = strings.TrimSpace(paragraph)
			if paragraph != "" {
				chunks = append(chunks, paragraph)
			}
		}

		return chunks, nil
	}
}
