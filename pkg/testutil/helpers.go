// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/pkg/comparison"
	"github.com/iwvelando/fincalc/pkg/rates"
)

// FindEntry finds a comparison entry by name in the ranking.
// Returns a pointer to the entry if found, nil otherwise.
func FindEntry(ranking comparison.Ranking, name string) *comparison.Entry {
	for i := range ranking.Entries {
		if ranking.Entries[i].Name == name {
			return &ranking.Entries[i]
		}
	}
	return nil
}

// Table returns the rate table built from the default policy, failing the
// test if it does not build.
func Table(t testing.TB) *rates.Table {
	t.Helper()
	table, err := config.Default().Table()
	if err != nil {
		t.Fatalf("default rate table: %v", err)
	}
	return table
}
