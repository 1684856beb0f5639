// Package engine wires classification, aggregation, position detection and
// underwriting into the operations the CLI exposes.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/true-revenue/internal/classification"
	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/Veraticus/true-revenue/internal/position"
	"github.com/Veraticus/true-revenue/internal/revenue"
	"github.com/Veraticus/true-revenue/internal/underwriting"
	"github.com/shopspring/decimal"
)

// Engine is the True Revenue and offer engine. It holds only immutable
// tables and is safe for concurrent use.
type Engine struct {
	recorder   Recorder
	classifier *classification.Classifier
	aggregator *revenue.Aggregator
	detector   *position.Detector
	calculator *underwriting.Calculator
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	learned  classification.LearnedPatterns
	recorder Recorder
}

// WithLearnedPatterns consults learned patterns before the rule tables.
func WithLearnedPatterns(learned classification.LearnedPatterns) Option {
	return func(o *options) {
		o.learned = learned
	}
}

// WithRecorder stores every analysis and decision the engine produces.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// New builds every component from cfg. Invalid configuration is reported
// as a *common.ConfigError.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, common.NewConfigError("config", "%w", common.ErrMissingConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rules, err := classification.NewRuleSet(cfg.Classification)
	if err != nil {
		return nil, fmt.Errorf("failed to compile classification rules: %w", err)
	}
	var classifierOpts []classification.Option
	if o.learned != nil {
		classifierOpts = append(classifierOpts, classification.WithLearnedPatterns(o.learned))
	}

	aggregator, err := revenue.NewAggregator(cfg)
	if err != nil {
		return nil, err
	}
	detector, err := position.NewDetector(cfg)
	if err != nil {
		return nil, err
	}
	calculator, err := underwriting.NewCalculator(cfg)
	if err != nil {
		return nil, err
	}

	return &Engine{
		recorder:   o.recorder,
		classifier: classification.NewClassifier(rules, classifierOpts...),
		aggregator: aggregator,
		detector:   detector,
		calculator: calculator,
		now:        time.Now,
	}, nil
}

// Classifier returns the transaction classifier.
func (e *Engine) Classifier() *classification.Classifier {
	return e.classifier
}

// Calculator returns the offer calculator.
func (e *Engine) Calculator() *underwriting.Calculator {
	return e.calculator
}

// Analyze classifies txns and computes every True Revenue figure for a
// business in industry. Malformed records are skipped and listed in
// Analysis.Skipped; only context cancellation is an error.
func (e *Engine) Analyze(ctx context.Context, txns []model.Transaction, industry string, opts ...classification.BatchOption) (*model.Analysis, error) {
	batch, err := e.classifier.ClassifyBatch(ctx, txns, industry, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to classify transactions: %w", err)
	}

	months, monthErrs := e.aggregator.MonthlyBreakdown(batch.Classified)
	positions, positionErrs := e.detector.Detect(txns)

	a := &model.Analysis{
		CreatedAt:    e.now().UTC(),
		Industry:     industry,
		Summary:      e.aggregator.Summarize(batch.Classified),
		Months:       months,
		Volatility:   e.aggregator.Volatility(months),
		Positions:    positions,
		Reasons:      revenue.SummarizeByReason(batch.Classified),
		Transactions: len(txns),
	}
	for _, errs := range [][]*common.DataError{batch.Errors, monthErrs, positionErrs} {
		for _, de := range errs {
			a.Skipped = append(a.Skipped, de.Error())
		}
	}

	common.LogDebug("Analyzed statement", common.Fields{
		"transactions": len(txns),
		"credits":      len(batch.Classified),
		"skipped":      len(a.Skipped),
		"true_revenue": a.Summary.TrueRevenue.String(),
		"months":       len(months),
	})
	return a, nil
}

// AnalyzeAndRecord runs Analyze and stores the result when a recorder is
// configured. source names where the transactions came from.
func (e *Engine) AnalyzeAndRecord(ctx context.Context, txns []model.Transaction, industry, source string, opts ...classification.BatchOption) (*model.Analysis, error) {
	a, err := e.Analyze(ctx, txns, industry, opts...)
	if err != nil {
		return nil, err
	}
	a.Source = source
	if e.recorder != nil {
		if err := e.recorder.SaveAnalysis(ctx, a); err != nil {
			return nil, fmt.Errorf("failed to save analysis: %w", err)
		}
	}
	return a, nil
}

// DetectPositions scans debits for known funders.
func (e *Engine) DetectPositions(txns []model.Transaction) (model.PositionInfo, []*common.DataError) {
	return e.detector.Detect(txns)
}

// CheckCapacity reports withhold headroom without pricing an offer.
func (e *Engine) CheckCapacity(monthly, existingDaily decimal.Decimal, industry string) model.CapacitySnapshot {
	return e.calculator.CheckCapacity(monthly, existingDaily, industry)
}

// CalculateOffer prices req.
func (e *Engine) CalculateOffer(req model.UnderwritingRequest) model.DecisionResult {
	return e.calculator.CalculateOffer(req)
}

// Decide prices req and stores the decision when a recorder is configured.
// analysisID links the decision to a stored analysis and may be empty.
func (e *Engine) Decide(ctx context.Context, req model.UnderwritingRequest, analysisID string) (*model.Decision, error) {
	d := &model.Decision{
		CreatedAt:  e.now().UTC(),
		AnalysisID: analysisID,
		Request:    req,
		Result:     e.calculator.CalculateOffer(req),
	}
	if e.recorder != nil {
		if err := e.recorder.SaveDecision(ctx, d); err != nil {
			return nil, fmt.Errorf("failed to save decision: %w", err)
		}
	}
	return d, nil
}

// CalculateScenarios prices every named override of base.
func (e *Engine) CalculateScenarios(ctx context.Context, base model.UnderwritingRequest, scenarios map[string]model.RequestOverride) (map[string]model.DecisionResult, error) {
	return e.calculator.CalculateScenarios(ctx, base, scenarios)
}

// ValidateOfferTerms checks externally supplied terms against the bounds.
func (e *Engine) ValidateOfferTerms(terms model.OfferTerms) model.ValidationResult {
	return e.calculator.ValidateOfferTerms(terms)
}
