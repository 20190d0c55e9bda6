package testsupport

import (
	"context"
	"testing"

	"gamewatch/internal/config"
	"gamewatch/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// SeedGames inserts catalog entries for tests.
func SeedGames(t testing.TB, st *store.Store, games ...store.Game) {
	t.Helper()

	if err := st.UpsertGames(context.Background(), games); err != nil {
		t.Fatalf("store.UpsertGames: %v", err)
	}
}
