package matching

import "gamewatch/internal/textutil"

// tokenScorer scores candidates with Jaccard overlap of whitespace token
// sets. It has no failure modes and no external state, which is what makes
// it a safe degraded fallback for the vector strategy.
type tokenScorer struct{}

func (tokenScorer) name() string { return "jaccard" }

func (tokenScorer) score(search string, candidates []string) ([]float64, error) {
	searchTokens := splitTokens(search)
	scores := make([]float64, len(candidates))
	for i, candidate := range candidates {
		scores[i] = textutil.JaccardSimilarity(searchTokens, splitTokens(candidate))
	}
	return scores, nil
}
