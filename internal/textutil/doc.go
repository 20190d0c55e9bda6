// Package textutil provides text processing utilities for fingerprinting and
// similarity scoring.
//
// The primary use cases are:
//   - Creating term-frequency fingerprints from token streams
//   - Computing cosine similarity between fingerprints, optionally weighted
//     by inverse document frequency collected from a Corpus
//   - Computing Jaccard set similarity between token slices
//
// Fingerprints hold pre-computed vector norms so repeated comparisons stay
// cheap. Tokenization lowercases text and splits on non-alphanumeric runs.
package textutil
