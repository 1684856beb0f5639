package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/google/uuid"
)

// SaveAnalysis stores an analysis, assigning an ID and timestamp when unset.
func (s *SQLiteStorage) SaveAnalysis(ctx context.Context, a *model.Analysis) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("%w: analysis", ErrNilParameter)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, source, industry, true_revenue, revenue_ratio, transaction_count, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Source, a.Industry,
		a.Summary.TrueRevenue.StringFixed(2), a.Summary.RevenueRatio.StringFixed(2),
		a.Transactions, string(payload), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis returns the analysis with id, or an error wrapping
// common.ErrNotFound.
func (s *SQLiteStorage) GetAnalysis(ctx context.Context, id string) (*model.Analysis, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM analyses WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return decodeAnalysis(payload)
}

// ListAnalyses returns up to limit analyses, newest first. A limit of zero
// or less returns all of them.
func (s *SQLiteStorage) ListAnalyses(ctx context.Context, limit int) ([]model.Analysis, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM analyses
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var analyses []model.Analysis
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		a, err := decodeAnalysis(payload)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}

func decodeAnalysis(payload string) (*model.Analysis, error) {
	var a model.Analysis
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return &a, nil
}

// sqlLimit maps a non-positive limit to SQLite's "no limit".
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
