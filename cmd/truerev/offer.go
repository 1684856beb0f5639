package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/true-revenue/internal/cli"
	"github.com/Veraticus/true-revenue/internal/storage"
	"github.com/spf13/cobra"
)

func offerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offer",
		Short: "Price a cash-advance offer",
		Long: `Check withhold capacity, price the request by risk tier, credit band,
stacking position and volatility, and build an offer whose total withhold
stays under the cap. Declines are reported with their reason.

Examples:
  truerev offer --monthly-revenue 50000 --requested 40000 --credit-score 700 \
    --time-in-business 36 --risk-score 75

  # Use revenue, positions and volatility from a saved analysis
  truerev offer --from-analysis 3f6c2a9e-... --requested 40000 --save`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runOffer(cmd)
		},
	}

	requestFlags(cmd)
	cmd.Flags().Bool("save", false, "store the decision")
	cmd.Flags().Bool("show-math", false, "show every calculation step")
	cmd.Flags().Bool("json", false, "print the decision as JSON")

	return cmd
}

func (a *app) runOffer(cmd *cobra.Command) error {
	ctx := cmd.Context()
	save, _ := cmd.Flags().GetBool("save")
	showMath, _ := cmd.Flags().GetBool("show-math")
	asJSON, _ := cmd.Flags().GetBool("json")
	analysisID, _ := cmd.Flags().GetString("from-analysis")

	var store *storage.SQLiteStorage
	if save || analysisID != "" {
		var err error
		store, err = a.openStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	req, linkedID, err := a.resolveRequest(cmd, store)
	if err != nil {
		return err
	}

	eng, err := a.newEngine(ctx, store, save)
	if err != nil {
		return err
	}
	decision, err := eng.Decide(ctx, req, linkedID)
	if err != nil {
		return err
	}
	if save {
		slog.Info("Saved decision", "id", decision.ID, "status", decision.Result.Status)
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), decision)
	}
	out := cli.RenderDecision(decision.Result, showMath)
	if save {
		out += "\n\n" + cli.FormatSuccess("Saved decision "+decision.ID)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
