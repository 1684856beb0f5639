package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
)

const learnedPatternColumns = `id, normalized_description, original_description, category, source,
	confidence, occurrences, manual_override, created_at, updated_at`

// LearnedPatterns returns every learned pattern, most used first.
func (s *SQLiteStorage) LearnedPatterns(ctx context.Context) ([]model.LearnedPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+learnedPatternColumns+`
		FROM learned_patterns
		ORDER BY occurrences DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query learned patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []model.LearnedPattern
	for rows.Next() {
		p, err := scanLearnedPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, *p)
	}
	return patterns, rows.Err()
}

// LearnedPattern returns the pattern stored under a normalized description,
// or common.ErrNotFound.
func (s *SQLiteStorage) LearnedPattern(ctx context.Context, normalized string) (*model.LearnedPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(normalized, "normalized"); err != nil {
		return nil, err
	}
	return learnedPatternByDescription(ctx, s.db, normalized)
}

func learnedPatternByDescription(ctx context.Context, q queryable, normalized string) (*model.LearnedPattern, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+learnedPatternColumns+`
		FROM learned_patterns
		WHERE normalized_description = ?
	`, normalized)
	p, err := scanLearnedPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return p, err
}

// SaveLearnedPattern inserts a pattern or replaces the one stored under the
// same normalized description. The stored ID is written back to p.
func (s *SQLiteStorage) SaveLearnedPattern(ctx context.Context, p *model.LearnedPattern) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLearnedPattern(p); err != nil {
		return err
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO learned_patterns (normalized_description, original_description, category, source,
				confidence, occurrences, manual_override, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(normalized_description) DO UPDATE SET
				category = excluded.category,
				source = excluded.source,
				confidence = excluded.confidence,
				occurrences = excluded.occurrences,
				manual_override = excluded.manual_override,
				updated_at = excluded.updated_at
		`, p.NormalizedDescription, p.OriginalDescription, string(p.Category), string(p.Source),
			p.Confidence, p.Occurrences, p.ManualOverride, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to save learned pattern: %w", err)
		}

		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM learned_patterns WHERE normalized_description = ?`,
			p.NormalizedDescription).Scan(&p.ID); err != nil {
			return fmt.Errorf("failed to read learned pattern id: %w", err)
		}
		return nil
	})
}

// DeleteLearnedPattern removes the pattern with id.
func (s *SQLiteStorage) DeleteLearnedPattern(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM learned_patterns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete learned pattern: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("learned pattern %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanLearnedPattern(row scanner) (*model.LearnedPattern, error) {
	var (
		p        model.LearnedPattern
		original sql.NullString
		category string
		source   string
	)
	err := row.Scan(&p.ID, &p.NormalizedDescription, &original, &category, &source,
		&p.Confidence, &p.Occurrences, &p.ManualOverride, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan learned pattern: %w", err)
	}
	p.OriginalDescription = original.String
	p.Category = model.Category(category)
	p.Source = model.Source(source)
	return &p, nil
}
