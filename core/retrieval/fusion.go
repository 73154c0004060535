package retrieval

import (
	"sort"
	"strings"

	"github.com/trevadelman/rag-explorer/model"
)

// phraseBoostFactor is the multiplicative bonus applied when a document's
// content contains the original query text as a case-insensitive substring.
// Boosted scores may exceed 1; nothing clamps them.
const phraseBoostFactor = 1.2

// fusedDocument accumulates the branch scores of one document during the
// outer joins. A branch that did not return the document leaves its score
// at zero.
type fusedDocument struct {
	document  *model.Document
	vector    float64
	lexical   float64
	relevance float64
}

// joinVector seeds or updates the fusion map with vector-branch results
func joinVector(fused map[int]*fusedDocument, documents []*model.Document) {
	for _, doc := range documents {
		if existing, exists := fused[doc.ID]; exists {
			existing.vector = doc.Similarity
			continue
		}
		fused[doc.ID] = &fusedDocument{document: doc, vector: doc.Similarity}
	}
}

// joinLexical outer-joins lexical-branch results by document id
func joinLexical(fused map[int]*fusedDocument, documents []*model.Document) {
	for _, doc := range documents {
		if existing, exists := fused[doc.ID]; exists {
			existing.lexical = doc.LexicalRank
			continue
		}
		fused[doc.ID] = &fusedDocument{document: doc, lexical: doc.LexicalRank}
	}
}

// joinRelevance outer-joins relevance-branch results by document id
func joinRelevance(fused map[int]*fusedDocument, documents []*model.Document) {
	for _, doc := range documents {
		if existing, exists := fused[doc.ID]; exists {
			existing.relevance = doc.RelevanceRank
			continue
		}
		fused[doc.ID] = &fusedDocument{document: doc, relevance: doc.RelevanceRank}
	}
}

// fuseResults computes the weighted sum for every joined document and
// optionally applies the phrase boost for the given query text. Pass an
// empty queryText to disable boosting (hybrid strategy).
func fuseResults(fused map[int]*fusedDocument, config *model.SearchConfig, method model.RetrievalMethod, queryText string) []*model.SearchResult {
	queryLower := strings.ToLower(queryText)

	results := make([]*model.SearchResult, 0, len(fused))
	for _, fd := range fused {
		score := fd.vector*config.VectorWeight +
			fd.lexical*config.LexicalWeight +
			fd.relevance*config.RelevanceWeight

		boosted := false
		if queryLower != "" && strings.Contains(strings.ToLower(fd.document.Content), queryLower) {
			score *= phraseBoostFactor
			boosted = true
		}

		results = append(results, &model.SearchResult{
			Document:        fd.document,
			Score:           score,
			VectorScore:     fd.vector,
			LexicalScore:    fd.lexical,
			RelevanceScore:  fd.relevance,
			PhraseBoosted:   boosted,
			RetrievalMethod: method,
		})
	}

	return results
}

// sortAndTruncate orders results by descending score and cuts to topK.
// Ties break on ascending document id so rankings are deterministic.
func sortAndTruncate(results []*model.SearchResult, topK int) []*model.SearchResult {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	return results
}
