package matching

import (
	"math"
	"testing"
)

func TestFindBestMatchAcceptsEditionVariant(t *testing.T) {
	m := NewMatcher()
	candidates := []string{"Cyberpunk 2077 Ultimate Edition", "Totally Different Game"}

	match := m.FindBestMatch("Cyberpunk 2077", candidates)
	if !match.Found() {
		t.Fatalf("expected a match, got score %v", match.Score)
	}
	if match.Index != 0 {
		t.Errorf("Index = %d, want 0", match.Index)
	}
	if match.Score < DefaultThreshold {
		t.Errorf("Score = %v, want >= %v", match.Score, DefaultThreshold)
	}
}

func TestFindBestMatchAcceptsRomanNumeralVariant(t *testing.T) {
	m := NewMatcher()

	match := m.FindBestMatch("The Witcher 3", []string{"The Witcher III Wild Hunt"})
	if !match.Found() {
		t.Fatalf("expected a match, got score %v", match.Score)
	}
	if match.Index != 0 {
		t.Errorf("Index = %d, want 0", match.Index)
	}
}

func TestFindBestMatchRejectsSequel(t *testing.T) {
	m := NewMatcher()

	match := m.FindBestMatch("FIFA 23", []string{"FIFA 24"})
	if match.Found() {
		t.Fatalf("expected rejection, got index %d score %v", match.Index, match.Score)
	}
	if match.Score <= 0 || match.Score >= DefaultThreshold {
		t.Errorf("Score = %v, want in (0, %v)", match.Score, DefaultThreshold)
	}
}

func TestFindBestMatchEmptyInputs(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name       string
		search     string
		candidates []string
	}{
		{"empty candidates", "Grand Theft Auto V", nil},
		{"empty search", "", []string{"Anything"}},
		{"both empty", "", nil},
		{"search normalizes to empty", "Deluxe Edition", []string{"Anything"}},
		{"all candidates normalize to empty", "Portal 2", []string{"Deluxe Edition", "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := m.FindBestMatch(tt.search, tt.candidates)
			if match.Found() {
				t.Errorf("expected no match, got index %d", match.Index)
			}
			if match.Score != 0 {
				t.Errorf("Score = %v, want 0", match.Score)
			}
		})
	}
}

func TestFindBestMatchIndexFidelity(t *testing.T) {
	m := NewMatcher()

	// The first two candidates are excluded from scoring; the returned index
	// must still point into the original slice.
	candidates := []string{"", "Deluxe Edition", "Portal 2", "Half-Life 2"}
	match := m.FindBestMatch("Portal 2", candidates)
	if !match.Found() {
		t.Fatalf("expected a match, got score %v", match.Score)
	}
	if match.Index != 2 {
		t.Errorf("Index = %d, want 2 (original slice position)", match.Index)
	}
}

func TestFindBestMatchEmptyCandidateNeverSelected(t *testing.T) {
	m := NewMatcher()

	match := m.FindBestMatch("Cyberpunk 2077", []string{"", "Cyberpunk 2077"})
	if !match.Found() {
		t.Fatalf("expected a match, got score %v", match.Score)
	}
	if match.Index != 1 {
		t.Errorf("Index = %d, want 1", match.Index)
	}
}

func TestFindBestMatchTieBreaksEarliestIndex(t *testing.T) {
	m := NewMatcher()

	match := m.FindBestMatch("Portal 2", []string{"Portal 2", "Portal 2 Steam"})
	if !match.Found() {
		t.Fatal("expected a match")
	}
	if match.Index != 0 {
		t.Errorf("Index = %d, want 0 (first of tied candidates)", match.Index)
	}
}

func TestThresholdMonotonicity(t *testing.T) {
	search := "FIFA 23"
	candidates := []string{"FIFA 24"}

	loose := NewMatcher(WithThreshold(0.2)).FindBestMatch(search, candidates)
	strict := NewMatcher(WithThreshold(0.9)).FindBestMatch(search, candidates)

	if !loose.Found() {
		t.Error("expected acceptance at loose threshold")
	}
	if strict.Found() {
		t.Error("expected rejection at strict threshold")
	}
	if math.Abs(loose.Score-strict.Score) > 1e-12 {
		t.Errorf("score depends on threshold: %v vs %v", loose.Score, strict.Score)
	}
}

func TestVectorModeEnabledByDefault(t *testing.T) {
	m := NewMatcher()
	if !m.VectorMode() {
		t.Error("expected vector mode after successful probe")
	}
	if m.Threshold() != DefaultThreshold {
		t.Errorf("Threshold() = %v, want %v", m.Threshold(), DefaultThreshold)
	}
}

func TestFallbackModeDeterministic(t *testing.T) {
	m := NewMatcher(WithVectorMode(false))
	if m.VectorMode() {
		t.Fatal("expected vector mode disabled")
	}
	if m.Threshold() != DefaultFallbackThreshold {
		t.Errorf("Threshold() = %v, want %v", m.Threshold(), DefaultFallbackThreshold)
	}

	search := "The Witcher 3"
	candidates := []string{"The Witcher III Wild Hunt", "Witcher Card Game"}

	first := m.FindBestMatch(search, candidates)
	second := m.FindBestMatch(search, candidates)
	if first != second {
		t.Errorf("fallback scoring not reproducible: %+v vs %+v", first, second)
	}
	if first.Strategy() != "jaccard" {
		t.Errorf("Strategy() = %q, want jaccard", first.Strategy())
	}
}

func TestFallbackAcceptsExactTokenEquality(t *testing.T) {
	m := NewMatcher(WithVectorMode(false), WithFallbackThreshold(1.0))

	match := m.FindBestMatch("Hollow Knight", []string{"Hollow Knight (PC)"})
	if !match.Found() {
		t.Fatalf("expected acceptance, got score %v", match.Score)
	}
	if match.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0 for identical token sets", match.Score)
	}
}

func TestDegenerateVocabularyFallsBackPerCall(t *testing.T) {
	m := NewMatcher()
	if !m.VectorMode() {
		t.Fatal("expected vector mode")
	}

	// Every term is a stopword, so the vector space collapses and this call
	// must be scored by token overlap instead of failing.
	degenerate := m.FindBestMatch("Of The", []string{"Of The"})
	if !degenerate.Found() {
		t.Fatalf("expected fallback acceptance, got score %v", degenerate.Score)
	}
	if degenerate.Strategy() != "jaccard" {
		t.Errorf("Strategy() = %q, want jaccard", degenerate.Strategy())
	}

	// Vector mode stays enabled for subsequent calls.
	if !m.VectorMode() {
		t.Error("vector mode was disabled by a per-call fallback")
	}
	next := m.FindBestMatch("Cyberpunk 2077", []string{"Cyberpunk 2077"})
	if next.Strategy() != "tfidf" {
		t.Errorf("Strategy() = %q, want tfidf", next.Strategy())
	}
}

func TestRomanNumeralFolding(t *testing.T) {
	m := NewMatcher()

	match := m.FindBestMatch("Grand Theft Auto V", []string{"Grand Theft Auto 5"})
	if !match.Found() {
		t.Fatalf("expected a match, got score %v", match.Score)
	}
	if match.Score < 0.99 {
		t.Errorf("Score = %v, want ~1.0 after numeral folding", match.Score)
	}
}

func TestSplitTokensPreservesBareIAndX(t *testing.T) {
	tokens := splitTokens("mega man x part i ii")
	want := []string{"mega", "man", "x", "part", "i", "2"}
	if len(tokens) != len(want) {
		t.Fatalf("splitTokens() = %v, want %v", tokens, want)
	}
	for i := range tokens {
		if tokens[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, tokens[i], want[i])
		}
	}
}
