package matching

import (
	"errors"

	"gamewatch/internal/textutil"
)

// maxVocabularyTerms bounds the vector space per call. Storefront result
// pages rarely produce more than a few dozen terms; the cap guards against
// pathological inputs.
const maxVocabularyTerms = 1000

// errDegenerateVocabulary reports that the vector space collapsed: either
// the search title or every candidate produced no usable terms.
var errDegenerateVocabulary = errors.New("matching: degenerate vocabulary")

// vectorScorer scores candidates with TF-IDF weighted cosine similarity.
// The vector space is rebuilt per call from the candidate corpus; document
// frequencies come from the candidates alone, so terms shared across many
// listings (storefront boilerplate) are down-weighted while the search
// title is treated as a query against that space.
type vectorScorer struct {
	maxTerms int
}

func newVectorScorer() *vectorScorer {
	return &vectorScorer{maxTerms: maxVocabularyTerms}
}

func (s *vectorScorer) name() string { return "tfidf" }

// score returns one cosine similarity per candidate. Inputs must already be
// normalized and non-empty. Candidates whose terms are all stopwords score
// zero; if no candidate contributes terms, or the search title itself has
// none, scoring fails so the caller can fall back to token overlap.
func (s *vectorScorer) score(search string, candidates []string) ([]float64, error) {
	searchFP := textutil.NewFingerprint(vectorTerms(search))
	if searchFP == nil {
		return nil, errDegenerateVocabulary
	}

	corpus := textutil.NewCorpus()
	candidateFPs := make([]*textutil.Fingerprint, len(candidates))
	for i, candidate := range candidates {
		fp := textutil.NewFingerprint(vectorTerms(candidate))
		candidateFPs[i] = fp
		corpus.Add(fp)
	}
	if corpus.Size() == 0 {
		return nil, errDegenerateVocabulary
	}

	vocab := corpus.Vocabulary(s.maxTerms)
	idf := corpus.IDF()
	searchVec := searchFP.WithIDF(idf)

	scores := make([]float64, len(candidates))
	for i, fp := range candidateFPs {
		candidateVec := fp.Restrict(vocab).WithIDF(idf)
		scores[i] = textutil.CosineSimilarity(searchVec, candidateVec)
	}
	return scores, nil
}
