package matching

import "strings"

// romanNumerals maps whole-token roman numerals to arabic digits. Bare "i"
// and "x" are left alone: they are too often real title words (Mega Man X).
var romanNumerals = map[string]string{
	"ii":   "2",
	"iii":  "3",
	"iv":   "4",
	"v":    "5",
	"vi":   "6",
	"vii":  "7",
	"viii": "8",
	"ix":   "9",
	"xi":   "11",
	"xii":  "12",
	"xiii": "13",
	"xiv":  "14",
	"xv":   "15",
	"xvi":  "16",
}

// stopwords are dropped from vector-strategy terms. Kept short: titles are
// brief and aggressive removal destroys signal.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "as": {}, "at": {}, "by": {},
	"for": {}, "from": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "or": {}, "the": {}, "to": {}, "with": {},
}

// splitTokens breaks a normalized title into tokens with roman numerals
// folded to digits. Input must already be in Normalize output form.
func splitTokens(normalized string) []string {
	fields := strings.Fields(normalized)
	for i, field := range fields {
		if digit, ok := romanNumerals[field]; ok {
			fields[i] = digit
		}
	}
	return fields
}

// vectorTerms builds the term list for the TF-IDF strategy: stopword-free
// unigrams plus adjacent bigrams over the remaining sequence.
func vectorTerms(normalized string) []string {
	tokens := splitTokens(normalized)
	kept := tokens[:0]
	for _, token := range tokens {
		if _, ok := stopwords[token]; ok {
			continue
		}
		kept = append(kept, token)
	}
	terms := make([]string, 0, len(kept)*2)
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}
