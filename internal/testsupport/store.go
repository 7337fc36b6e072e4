package testsupport

import (
	"testing"

	"minutes/internal/config"
	"minutes/internal/store"
)

// MustOpenStore opens a store against the supplied config and closes it when
// the test finishes.
func MustOpenStore(t *testing.T, cfg *config.Config) *store.Store {
	t.Helper()
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st
}
