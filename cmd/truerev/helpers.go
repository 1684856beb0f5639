package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/engine"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/Veraticus/true-revenue/internal/pattern"
	"github.com/Veraticus/true-revenue/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// openStorage opens the configured database and applies pending migrations.
func (a *app) openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(a.cfg.Database.Path)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// newEngine builds the engine. With a store, learned patterns are loaded
// when learning is enabled and results are recorded when record is set.
func (a *app) newEngine(ctx context.Context, store *storage.SQLiteStorage, record bool) (*engine.Engine, error) {
	var opts []engine.Option
	if store != nil && a.cfg.Learning.Enabled {
		patterns, err := store.LearnedPatterns(ctx)
		if err != nil {
			return nil, err
		}
		matcher := pattern.NewMatcher(a.cfg.Learning, patterns)
		if matcher.Len() > 0 {
			opts = append(opts, engine.WithLearnedPatterns(matcher))
		}
	}
	if store != nil && record {
		opts = append(opts, engine.WithRecorder(store))
	}
	return engine.New(a.cfg, opts...)
}

// loadAnalysis fetches a stored analysis for commands that derive their
// inputs from one.
func (a *app) loadAnalysis(ctx context.Context, store *storage.SQLiteStorage, id string) (*model.Analysis, error) {
	analysis, err := store.GetAnalysis(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("No stored analysis %q. Run 'truerev revenue --save' first", id), err)
	}
	return analysis, err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return decimal.Zero, err
	}
	raw = strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(raw))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, common.NewUserError(fmt.Sprintf("--%s must be a number, got %q", name, raw), err)
	}
	return d, nil
}

// requestFlags registers a flag for every underwriting request field.
func requestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("monthly-revenue", "", "monthly True Revenue")
	f.String("requested", "", "requested funding amount")
	f.String("existing-daily", "", "existing daily advance payments")
	f.String("factor", "", "desired factor rate")
	f.Int("position", 0, "position of the new advance (1 = first)")
	f.Int("credit-score", 0, "owner credit score")
	f.Int("time-in-business", 0, "time in business in months")
	f.Int("risk-score", 0, "risk score 0-100, higher is safer")
	f.Int("term", 0, "desired term in months")
	f.String("industry", "", "merchant industry")
	f.String("volatility", "", "revenue volatility (low, medium, high)")
	f.String("from-analysis", "", "fill revenue, positions and volatility from a stored analysis")
}

// requestFromFlags builds a request from the flags requestFlags registered.
// Optional fields are only set when their flag was given.
func requestFromFlags(cmd *cobra.Command) (model.UnderwritingRequest, error) {
	var req model.UnderwritingRequest
	var err error
	f := cmd.Flags()

	if req.MonthlyTrueRevenue, err = decimalFlag(cmd, "monthly-revenue"); err != nil {
		return req, err
	}
	if req.RequestedAmount, err = decimalFlag(cmd, "requested"); err != nil {
		return req, err
	}
	if req.ExistingDailyPayment, err = decimalFlag(cmd, "existing-daily"); err != nil {
		return req, err
	}
	if f.Changed("factor") {
		factor, err := decimalFlag(cmd, "factor")
		if err != nil {
			return req, err
		}
		req.FactorRate = &factor
	}
	if f.Changed("risk-score") {
		score, _ := f.GetInt("risk-score")
		req.RiskScore = &score
	}
	req.Position, _ = f.GetInt("position")
	req.CreditScore, _ = f.GetInt("credit-score")
	req.TimeInBusinessMonths, _ = f.GetInt("time-in-business")
	req.TermMonths, _ = f.GetInt("term")
	req.Industry, _ = f.GetString("industry")

	volatility, _ := f.GetString("volatility")
	if volatility != "" {
		req.VolatilityLevel = model.VolatilityLevel(strings.ToLower(volatility))
		if !req.VolatilityLevel.IsValid() {
			return req, common.NewUserError(fmt.Sprintf("--volatility must be low, medium or high, got %q", volatility), nil)
		}
	}
	return req, nil
}

// resolveRequest reads the request flags and, with --from-analysis, fills
// the unset revenue fields from the stored analysis. store may be nil when
// --from-analysis is not given.
func (a *app) resolveRequest(cmd *cobra.Command, store *storage.SQLiteStorage) (model.UnderwritingRequest, string, error) {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return req, "", err
	}
	analysisID, _ := cmd.Flags().GetString("from-analysis")
	if analysisID == "" {
		return req, "", nil
	}
	analysis, err := a.loadAnalysis(cmd.Context(), store, analysisID)
	if err != nil {
		return req, "", err
	}
	return engine.RequestFromAnalysis(analysis, req), analysis.ID, nil
}
