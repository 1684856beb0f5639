package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStorage opens a migrated in-memory store closed at cleanup.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	for _, table := range []string{"analyses", "decisions", "learned_patterns"} {
		var n int
		err := store.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestNewSQLiteStorageOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "audit.db")

	store, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	assert.Equal(t, path, store.Path())

	a := &model.Analysis{Source: "march.ofx"}
	require.NoError(t, store.SaveAnalysis(ctx, a))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	got, err := reopened.GetAnalysis(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "march.ofx", got.Source)
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage(" ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestAnalyses(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	base := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	first := &model.Analysis{
		CreatedAt: base,
		Source:    "jan.json",
		Industry:  "retail",
		Summary: model.RevenueSummary{
			TrueRevenue:  decimal.RequireFromString("45000.50"),
			RevenueRatio: decimal.RequireFromString("81.25"),
			Counts:       model.CategoryCounts{Total: 12, Revenue: 10, Excluded: 2},
		},
		Months: []model.MonthlyBucket{
			{MonthKey: "2024-01", TrueRevenue: decimal.RequireFromString("45000.50"), CalendarDays: 31},
		},
		Transactions: 12,
	}
	second := &model.Analysis{CreatedAt: base.Add(time.Hour), Source: "feb.json"}

	require.NoError(t, store.SaveAnalysis(ctx, first))
	require.NoError(t, store.SaveAnalysis(ctx, second))
	require.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := store.GetAnalysis(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "retail", got.Industry)
	assert.True(t, got.Summary.TrueRevenue.Equal(decimal.RequireFromString("45000.50")))
	assert.Equal(t, 10, got.Summary.Counts.Revenue)
	require.Len(t, got.Months, 1)
	assert.Equal(t, "2024-01", got.Months[0].MonthKey)
	assert.True(t, got.CreatedAt.Equal(base))

	list, err := store.ListAnalyses(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	list, err = store.ListAnalyses(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = store.GetAnalysis(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDecisions(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	analysis := &model.Analysis{Source: "statement.ofx"}
	require.NoError(t, store.SaveAnalysis(ctx, analysis))

	risk := 85
	funded := &model.Decision{
		AnalysisID: analysis.ID,
		Request: model.UnderwritingRequest{
			MonthlyTrueRevenue: decimal.RequireFromString("200000"),
			RequestedAmount:    decimal.RequireFromString("50000"),
			RiskScore:          &risk,
			Position:           1,
		},
		Result: model.Funded(model.StatusApproved, &model.Offer{
			FundingAmount: decimal.RequireFromString("50000.00"),
			FactorRate:    decimal.RequireFromString("1.1"),
			TermMonths:    6,
		}, "APPROVED"),
	}
	declined := &model.Decision{
		CreatedAt: time.Now().UTC().Add(time.Minute),
		Request:   model.UnderwritingRequest{Position: 5},
		Result:    model.Declined(model.DeclineTooManyPositions, "too many"),
	}
	require.NoError(t, store.SaveDecision(ctx, funded))
	require.NoError(t, store.SaveDecision(ctx, declined))

	got, err := store.GetDecision(ctx, funded.ID)
	require.NoError(t, err)
	assert.Equal(t, analysis.ID, got.AnalysisID)
	require.NotNil(t, got.Request.RiskScore)
	assert.Equal(t, 85, *got.Request.RiskScore)
	require.NotNil(t, got.Result.Offer)
	assert.True(t, got.Result.Offer.FundingAmount.Equal(decimal.RequireFromString("50000")))
	assert.Equal(t, model.StatusApproved, got.Result.Status)

	tests := []struct {
		name    string
		filter  DecisionFilter
		wantIDs []string
	}{
		{"all newest first", DecisionFilter{}, []string{declined.ID, funded.ID}},
		{"by status", DecisionFilter{Status: model.StatusDeclined}, []string{declined.ID}},
		{"by analysis", DecisionFilter{AnalysisID: analysis.ID}, []string{funded.ID}},
		{"limit", DecisionFilter{Limit: 1}, []string{declined.ID}},
		{"no match", DecisionFilter{Status: model.StatusApprovedReduced}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := store.ListDecisions(ctx, tt.filter)
			require.NoError(t, err)
			var ids []string
			for _, d := range list {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	_, err = store.GetDecision(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLearnedPatterns(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	p := &model.LearnedPattern{
		NormalizedDescription: "acme wholesale settlement #REF#",
		OriginalDescription:   "ACME WHOLESALE SETTLEMENT 558812",
		Category:              model.CategoryRevenue,
		Source:                model.SourceLearned,
		Confidence:            50,
		Occurrences:           1,
	}
	require.NoError(t, store.SaveLearnedPattern(ctx, p))
	require.NotZero(t, p.ID)
	firstID := p.ID

	p.Occurrences = 2
	p.Confidence = 60
	p.UpdatedAt = time.Time{}
	require.NoError(t, store.SaveLearnedPattern(ctx, p))
	assert.Equal(t, firstID, p.ID)

	got, err := store.LearnedPattern(ctx, "acme wholesale settlement #REF#")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Occurrences)
	assert.Equal(t, 60, got.Confidence)
	assert.Equal(t, "ACME WHOLESALE SETTLEMENT 558812", got.OriginalDescription)
	assert.False(t, got.ManualOverride)

	manual := &model.LearnedPattern{
		NormalizedDescription: "owner transfer",
		Category:              model.CategoryExcluded,
		Source:                model.SourceManual,
		Confidence:            100,
		Occurrences:           1,
		ManualOverride:        true,
	}
	require.NoError(t, store.SaveLearnedPattern(ctx, manual))

	all, err := store.LearnedPatterns(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, firstID, all[0].ID)
	assert.True(t, all[1].ManualOverride)

	_, err = store.LearnedPattern(ctx, "unknown")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.DeleteLearnedPattern(ctx, manual.ID))
	assert.ErrorIs(t, store.DeleteLearnedPattern(ctx, manual.ID), common.ErrNotFound)
}

func TestSaveLearnedPatternValidation(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	tests := []struct {
		pattern *model.LearnedPattern
		name    string
	}{
		{name: "nil", pattern: nil},
		{name: "empty description", pattern: &model.LearnedPattern{Category: model.CategoryRevenue}},
		{name: "unknown category", pattern: &model.LearnedPattern{NormalizedDescription: "x", Category: "refund"}},
		{name: "confidence out of range", pattern: &model.LearnedPattern{NormalizedDescription: "x", Category: model.CategoryRevenue, Confidence: 101}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.SaveLearnedPattern(ctx, tt.pattern))
		})
	}
}
