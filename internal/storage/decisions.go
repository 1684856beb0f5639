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

// SaveDecision stores an underwriting decision, assigning an ID and
// timestamp when unset.
func (s *SQLiteStorage) SaveDecision(ctx context.Context, d *model.Decision) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("%w: decision", ErrNilParameter)
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	request, err := json.Marshal(d.Request)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	result, err := json.Marshal(d.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	var funding sql.NullString
	if d.Result.Offer != nil {
		funding = sql.NullString{String: d.Result.Offer.FundingAmount.StringFixed(2), Valid: true}
	}
	var analysisID sql.NullString
	if d.AnalysisID != "" {
		analysisID = sql.NullString{String: d.AnalysisID, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO decisions (id, analysis_id, status, decline_reason, funding_amount, request, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, analysisID, string(d.Result.Status), string(d.Result.DeclineReason),
		funding, string(request), string(result), d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}
	return nil
}

// GetDecision returns the decision with id, or an error wrapping
// common.ErrNotFound.
func (s *SQLiteStorage) GetDecision(ctx context.Context, id string) (*model.Decision, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, analysis_id, request, result, created_at
		FROM decisions WHERE id = ?
	`, id)
	d, err := scanDecision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("decision %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// DecisionFilter narrows ListDecisions.
type DecisionFilter struct {
	Status     model.DecisionStatus
	AnalysisID string
	Limit      int
}

// ListDecisions returns decisions matching filter, newest first.
func (s *SQLiteStorage) ListDecisions(ctx context.Context, filter DecisionFilter) ([]model.Decision, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, analysis_id, request, result, created_at
		FROM decisions
		WHERE (? = '' OR status = ?) AND (? = '' OR analysis_id = ?)
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, string(filter.Status), string(filter.Status), filter.AnalysisID, filter.AnalysisID, sqlLimit(filter.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var decisions []model.Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, *d)
	}
	return decisions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDecision(row scanner) (*model.Decision, error) {
	var (
		d          model.Decision
		analysisID sql.NullString
		request    string
		result     string
	)
	if err := row.Scan(&d.ID, &analysisID, &request, &result, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan decision: %w", err)
	}
	d.AnalysisID = analysisID.String

	if err := json.Unmarshal([]byte(request), &d.Request); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	if err := json.Unmarshal([]byte(result), &d.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &d, nil
}
