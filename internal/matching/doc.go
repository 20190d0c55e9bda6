// Package matching decides whether a storefront listing denotes the same
// game as a catalog title.
//
// Raw titles pass through Normalize, which strips edition, platform, and
// year noise into a lowercase comparison form. The Matcher then scores a
// search title against candidate titles with one of two strategies: a
// TF-IDF cosine scorer over unigrams and bigrams (primary) or a Jaccard
// token-overlap scorer (fallback). The vector strategy is resolved once at
// construction; a per-call degenerate vocabulary falls back to token
// overlap for that call only.
//
// The matcher is pure and safe for concurrent use: all state is fixed at
// construction and every call builds its own transient vector space.
package matching
