package matching

// DefaultThreshold is the minimum vector-strategy score required to accept
// a candidate as the same game.
const DefaultThreshold = 0.6

// DefaultFallbackThreshold is the minimum token-overlap score required when
// the Jaccard strategy scores a call. Tuned independently of
// DefaultThreshold.
const DefaultFallbackThreshold = 0.3

// scorer is one interchangeable scoring strategy. Inputs are normalized,
// non-empty titles; the result holds one score in [0,1] per candidate.
type scorer interface {
	name() string
	score(search string, candidates []string) ([]float64, error)
}

// Match is the outcome of a matching call: the selected candidate index in
// the caller's original candidate slice, or -1 when no candidate clears the
// active threshold. Score always carries the best similarity seen, even on
// rejection, so callers can log match quality.
type Match struct {
	Index int
	Score float64

	strategy string
}

// Found reports whether a candidate was selected.
func (m Match) Found() bool { return m.Index >= 0 }

// Strategy returns the name of the strategy that produced the scores.
func (m Match) Strategy() string { return m.strategy }

// noMatch is the zero outcome for degenerate input.
var noMatch = Match{Index: -1}

// Matcher selects the storefront candidate most likely to denote the same
// game as a catalog title. Configuration is fixed at construction; calls
// are independent and safe to issue concurrently.
type Matcher struct {
	threshold         float64
	fallbackThreshold float64
	vectorMode        bool
	probed            bool
	vector            scorer
	token             scorer
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold overrides the vector-strategy acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.threshold = threshold
	}
}

// WithFallbackThreshold overrides the token-overlap acceptance threshold.
func WithFallbackThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.fallbackThreshold = threshold
	}
}

// WithVectorMode forces the vector strategy on or off, bypassing the
// construction-time probe. Tests use this to exercise the fallback path
// deterministically.
func WithVectorMode(enabled bool) Option {
	return func(m *Matcher) {
		m.vectorMode = enabled
		m.probed = true
	}
}

// NewMatcher constructs a matcher. The vector strategy is probed once with
// a throwaway scoring call; if the probe fails the matcher stays in token
// overlap mode for its lifetime. The flag never changes afterward.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		threshold:         DefaultThreshold,
		fallbackThreshold: DefaultFallbackThreshold,
		vector:            newVectorScorer(),
		token:             tokenScorer{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if !m.probed {
		_, err := m.vector.score("probe title", []string{"probe title"})
		m.vectorMode = err == nil
	}
	return m
}

// FindBestMatch normalizes the search title and every candidate, scores the
// survivors with the active strategy, and returns the best candidate when
// its score clears the strategy's threshold. Candidates that normalize to
// the empty string are excluded from scoring but keep their position: a
// returned index always refers to the caller's original slice. Empty input
// on either side yields no match with a zero score. A vector-strategy
// failure falls back to token overlap for this call only.
func (m *Matcher) FindBestMatch(search string, candidates []string) Match {
	normalizedSearch := Normalize(search)
	if normalizedSearch == "" || len(candidates) == 0 {
		return noMatch
	}

	indices := make([]int, 0, len(candidates))
	normalized := make([]string, 0, len(candidates))
	for i, candidate := range candidates {
		if n := Normalize(candidate); n != "" {
			indices = append(indices, i)
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return noMatch
	}

	scores, threshold, strategy := m.scoreAll(normalizedSearch, normalized)

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	result := Match{Index: -1, Score: scores[best], strategy: strategy}
	if scores[best] >= threshold {
		result.Index = indices[best]
	}
	return result
}

// VectorMode reports whether the vector strategy is active.
func (m *Matcher) VectorMode() bool { return m.vectorMode }

// Threshold returns the acceptance threshold of the active strategy.
func (m *Matcher) Threshold() float64 {
	if m.vectorMode {
		return m.threshold
	}
	return m.fallbackThreshold
}

func (m *Matcher) scoreAll(search string, candidates []string) ([]float64, float64, string) {
	if m.vectorMode {
		if scores, err := m.vector.score(search, candidates); err == nil {
			return scores, m.threshold, m.vector.name()
		}
	}
	scores, _ := m.token.score(search, candidates)
	return scores, m.fallbackThreshold, m.token.name()
}
