package main

import (
	"fmt"

	"github.com/Veraticus/true-revenue/internal/cli"
	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/engine"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/spf13/cobra"
)

func capacityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show remaining withhold capacity",
		Long: `Report how much of a merchant's daily True Revenue is already withheld by
existing advances and how much daily payment room remains under the cap.

Examples:
  truerev capacity --monthly-revenue 50000 --existing-daily 250
  truerev capacity --from-analysis 3f6c2a9e-...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCapacity(cmd)
		},
	}

	cmd.Flags().String("monthly-revenue", "", "monthly True Revenue")
	cmd.Flags().String("existing-daily", "", "existing daily advance payments")
	cmd.Flags().String("industry", "", "merchant industry")
	cmd.Flags().String("from-analysis", "", "take revenue and positions from a stored analysis")
	cmd.Flags().Bool("json", false, "print the snapshot as JSON")

	return cmd
}

func (a *app) runCapacity(cmd *cobra.Command) error {
	ctx := cmd.Context()
	asJSON, _ := cmd.Flags().GetBool("json")
	analysisID, _ := cmd.Flags().GetString("from-analysis")
	industry, _ := cmd.Flags().GetString("industry")

	monthly, err := decimalFlag(cmd, "monthly-revenue")
	if err != nil {
		return err
	}
	existing, err := decimalFlag(cmd, "existing-daily")
	if err != nil {
		return err
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
		req := engine.RequestFromAnalysis(analysis, model.UnderwritingRequest{
			MonthlyTrueRevenue:   monthly,
			ExistingDailyPayment: existing,
			Industry:             industry,
		})
		monthly, existing, industry = req.MonthlyTrueRevenue, req.ExistingDailyPayment, req.Industry
	}
	if !monthly.IsPositive() {
		return common.NewUserError("--monthly-revenue or --from-analysis is required", nil)
	}

	eng, err := a.newEngine(ctx, nil, false)
	if err != nil {
		return err
	}
	snapshot := eng.CheckCapacity(monthly, existing, industry)

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), snapshot)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCapacity(snapshot))
	return err
}
