// Package pipeline orchestrates the gamewatch stages: catalog sync, price
// enrichment, and maintenance. A lock file keeps concurrent runs from
// stepping on each other, and every run carries a session identifier
// through its logs.
package pipeline
