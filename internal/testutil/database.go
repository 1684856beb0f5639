// Package testutil provides fixtures shared by the true-revenue tests: a
// fluent transaction ledger and a migrated in-memory audit store.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/Veraticus/true-revenue/internal/storage"
)

// TestDB wraps an in-memory store for a single test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       testing.TB
}

// SetupTestDB creates a new in-memory test database seeded with patterns.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		model.LearnedPattern{NormalizedDescription: "owner transfer", Category: model.CategoryExcluded, Confidence: 100},
//	)
func SetupTestDB(t testing.TB, patterns ...model.LearnedPattern) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for i := range patterns {
		p := patterns[i]
		if p.Source == "" {
			p.Source = model.SourceLearned
		}
		if p.Occurrences == 0 {
			p.Occurrences = 1
		}
		if err := store.SaveLearnedPattern(ctx, &p); err != nil {
			t.Fatalf("failed to seed learned pattern %q: %v", p.NormalizedDescription, err)
		}
	}

	return &TestDB{Storage: store, t: t}
}

// MustDecisions returns every stored decision or fails the test.
func (db *TestDB) MustDecisions() []model.Decision {
	db.t.Helper()
	decisions, err := db.Storage.ListDecisions(context.Background(), storage.DecisionFilter{})
	if err != nil {
		db.t.Fatalf("failed to list decisions: %v", err)
	}
	return decisions
}

// MustAnalyses returns every stored analysis or fails the test.
func (db *TestDB) MustAnalyses() []model.Analysis {
	db.t.Helper()
	analyses, err := db.Storage.ListAnalyses(context.Background(), 0)
	if err != nil {
		db.t.Fatalf("failed to list analyses: %v", err)
	}
	return analyses
}
