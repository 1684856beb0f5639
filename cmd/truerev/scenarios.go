package main

import (
	"fmt"

	"github.com/Veraticus/true-revenue/internal/cli"
	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/config"
	"github.com/Veraticus/true-revenue/internal/engine"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scenarioRequest is a request or override as written in a scenario file.
// Unset fields keep the base value.
type scenarioRequest struct {
	MonthlyTrueRevenue   *float64 `mapstructure:"monthly_true_revenue"`
	RequestedAmount      *float64 `mapstructure:"requested_amount"`
	ExistingDailyPayment *float64 `mapstructure:"existing_daily_payment"`
	FactorRate           *float64 `mapstructure:"factor_rate"`
	Position             *int     `mapstructure:"position"`
	CreditScore          *int     `mapstructure:"credit_score"`
	TimeInBusinessMonths *int     `mapstructure:"time_in_business_months"`
	RiskScore            *int     `mapstructure:"risk_score"`
	TermMonths           *int     `mapstructure:"term_months"`
	Industry             *string  `mapstructure:"industry"`
	VolatilityLevel      *string  `mapstructure:"volatility_level"`
}

// scenarioFile is a base request plus named overrides.
type scenarioFile struct {
	Scenarios map[string]scenarioRequest `mapstructure:"scenarios"`
	Base      scenarioRequest            `mapstructure:"base"`
}

func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func (s scenarioRequest) override() (model.RequestOverride, error) {
	o := model.RequestOverride{
		MonthlyTrueRevenue:   decimalPtr(s.MonthlyTrueRevenue),
		RequestedAmount:      decimalPtr(s.RequestedAmount),
		ExistingDailyPayment: decimalPtr(s.ExistingDailyPayment),
		FactorRate:           decimalPtr(s.FactorRate),
		Position:             s.Position,
		CreditScore:          s.CreditScore,
		TimeInBusinessMonths: s.TimeInBusinessMonths,
		RiskScore:            s.RiskScore,
		TermMonths:           s.TermMonths,
		Industry:             s.Industry,
	}
	if s.VolatilityLevel != nil {
		level := model.VolatilityLevel(*s.VolatilityLevel)
		if !level.IsValid() {
			return o, fmt.Errorf("unknown volatility level %q", *s.VolatilityLevel)
		}
		o.VolatilityLevel = &level
	}
	return o, nil
}

// loadScenarioFile reads a YAML, JSON or TOML scenario file.
func loadScenarioFile(path string) (model.UnderwritingRequest, map[string]model.RequestOverride, error) {
	v := viper.New()
	v.SetConfigFile(config.ExpandPath(path))
	if err := v.ReadInConfig(); err != nil {
		return model.UnderwritingRequest{}, nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var file scenarioFile
	if err := v.Unmarshal(&file); err != nil {
		return model.UnderwritingRequest{}, nil, fmt.Errorf("failed to decode scenario file: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return model.UnderwritingRequest{}, nil, fmt.Errorf("scenario file %s defines no scenarios", path)
	}

	baseOverride, err := file.Base.override()
	if err != nil {
		return model.UnderwritingRequest{}, nil, fmt.Errorf("base: %w", err)
	}
	overrides := make(map[string]model.RequestOverride, len(file.Scenarios))
	for name, s := range file.Scenarios {
		o, err := s.override()
		if err != nil {
			return model.UnderwritingRequest{}, nil, fmt.Errorf("scenario %s: %w", name, err)
		}
		overrides[name] = o
	}
	return baseOverride.Apply(model.UnderwritingRequest{}), overrides, nil
}

func scenariosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios <file>",
		Short: "Compare offers across what-if scenarios",
		Long: `Price a base request under each named scenario in a YAML file. Scenario
fields replace the matching base fields; everything else is inherited.

Example file:
  base:
    monthly_true_revenue: 50000
    requested_amount: 40000
    credit_score: 700
    time_in_business_months: 36
    risk_score: 75
  scenarios:
    as_requested:
      term_months: 6
    shorter_term:
      term_months: 4
    second_position:
      position: 2
      existing_daily_payment: 300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScenarios(cmd, args[0])
		},
	}

	cmd.Flags().String("from-analysis", "", "fill base revenue, positions and volatility from a stored analysis")
	cmd.Flags().Bool("json", false, "print results as JSON")

	return cmd
}

func (a *app) runScenarios(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	asJSON, _ := cmd.Flags().GetBool("json")
	analysisID, _ := cmd.Flags().GetString("from-analysis")

	base, overrides, err := loadScenarioFile(path)
	if err != nil {
		return common.NewUserError("Invalid scenario file", err)
	}

	if analysisID != "" {
		store, err := a.openStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		analysis, err := a.loadAnalysis(ctx, store, analysisID)
		if err != nil {
			return err
		}
		base = engine.RequestFromAnalysis(analysis, base)
	}

	eng, err := a.newEngine(ctx, nil, false)
	if err != nil {
		return err
	}
	results, err := eng.CalculateScenarios(ctx, base, overrides)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), results)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatTitle(fmt.Sprintf("%d scenarios", len(results)))+"\n"+cli.RenderScenarios(results))
	return err
}
