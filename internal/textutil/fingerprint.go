package textutil

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Fingerprint represents a term-frequency vector for text similarity comparison.
type Fingerprint struct {
	terms map[string]float64
	norm  float64
}

// Tokenize splits text into lowercase alphanumeric tokens. Single-character
// tokens are kept; game titles lean on short tokens ("3", "hd") for identity.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	raw := tokenSplitPattern.Split(lowered, -1)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// NewFingerprint creates a fingerprint from the provided terms.
// Returns nil if no terms are supplied.
func NewFingerprint(terms []string) *Fingerprint {
	if len(terms) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{
		terms: counts,
		norm:  math.Sqrt(norm),
	}
}

// TermCount returns the number of unique terms in the fingerprint.
func (f *Fingerprint) TermCount() int {
	if f == nil {
		return 0
	}
	return len(f.terms)
}

// WithIDF returns a new Fingerprint with TF-IDF weights applied.
// Each term's count is multiplied by its IDF weight. The norm is recomputed.
// Terms absent from the IDF map retain their original weight.
func (f *Fingerprint) WithIDF(idf map[string]float64) *Fingerprint {
	if f == nil || len(idf) == 0 {
		return f
	}
	weighted := make(map[string]float64, len(f.terms))
	var norm float64
	for term, count := range f.terms {
		w := count
		if idfVal, ok := idf[term]; ok {
			w *= idfVal
		}
		if w == 0 {
			continue
		}
		weighted[term] = w
		norm += w * w
	}
	if len(weighted) == 0 {
		return nil
	}
	return &Fingerprint{
		terms: weighted,
		norm:  math.Sqrt(norm),
	}
}

// Restrict returns a new Fingerprint containing only terms present in vocab.
// Returns nil when no terms survive.
func (f *Fingerprint) Restrict(vocab map[string]struct{}) *Fingerprint {
	if f == nil || vocab == nil {
		return f
	}
	kept := make(map[string]float64, len(f.terms))
	var norm float64
	for term, count := range f.terms {
		if _, ok := vocab[term]; !ok {
			continue
		}
		kept[term] = count
		norm += count * count
	}
	if len(kept) == 0 {
		return nil
	}
	return &Fingerprint{terms: kept, norm: math.Sqrt(norm)}
}

// Corpus collects document frequency statistics for IDF computation.
type Corpus struct {
	docCount int
	docFreq  map[string]int
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{docFreq: make(map[string]int)}
}

// Add registers a fingerprint's unique terms in the corpus.
func (c *Corpus) Add(fp *Fingerprint) {
	if c == nil || fp == nil {
		return
	}
	c.docCount++
	for term := range fp.terms {
		c.docFreq[term]++
	}
}

// Size returns the number of documents registered in the corpus.
func (c *Corpus) Size() int {
	if c == nil {
		return 0
	}
	return c.docCount
}

// IDF computes smoothed inverse document frequency weights:
// log((N+1)/(1+df)) + 1 for each term. The +1 keeps terms that appear in
// every document from collapsing to zero weight, which matters for tiny
// corpora of two or three titles.
func (c *Corpus) IDF() map[string]float64 {
	if c == nil || c.docCount == 0 {
		return nil
	}
	idf := make(map[string]float64, len(c.docFreq))
	n := float64(c.docCount)
	for term, df := range c.docFreq {
		idf[term] = math.Log((n+1)/(1+float64(df))) + 1
	}
	return idf
}

// Vocabulary returns the max most frequent terms by document frequency.
// Ties are broken lexicographically for deterministic output. A max of 0 or
// less returns every term.
func (c *Corpus) Vocabulary(max int) map[string]struct{} {
	if c == nil || len(c.docFreq) == 0 {
		return nil
	}
	terms := make([]string, 0, len(c.docFreq))
	for term := range c.docFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if c.docFreq[terms[i]] != c.docFreq[terms[j]] {
			return c.docFreq[terms[i]] > c.docFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if max > 0 && len(terms) > max {
		terms = terms[:max]
	}
	vocab := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		vocab[term] = struct{}{}
	}
	return vocab
}
