package main

import (
	"fmt"

	"github.com/Veraticus/true-revenue/internal/cli"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/Veraticus/true-revenue/internal/storage"
	"github.com/spf13/cobra"
)

func historyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List stored decisions and analyses",
		Long: `List saved underwriting decisions, newest first, or show one decision in
full when its ID is given. With --analyses, list saved analyses instead.

Examples:
  truerev history --status declined
  truerev history --analysis 3f6c2a9e-...
  truerev history --analyses
  truerev history 9b1e77c0-... --show-math`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistory(cmd, args)
		},
	}

	cmd.Flags().String("status", "", "only decisions with this status (approved, approved_reduced, declined)")
	cmd.Flags().String("analysis", "", "only decisions priced from this analysis")
	cmd.Flags().Int("limit", 20, "maximum entries (0 for all)")
	cmd.Flags().Bool("analyses", false, "list stored analyses instead of decisions")
	cmd.Flags().Bool("show-math", false, "show every calculation step of a single decision")
	cmd.Flags().Bool("json", false, "print as JSON")

	return cmd
}

func (a *app) runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetString("status")
	analysisID, _ := cmd.Flags().GetString("analysis")
	limit, _ := cmd.Flags().GetInt("limit")
	analyses, _ := cmd.Flags().GetBool("analyses")
	showMath, _ := cmd.Flags().GetBool("show-math")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var out any
	var rendered string
	switch {
	case len(args) == 1:
		decision, err := store.GetDecision(ctx, args[0])
		if err != nil {
			return err
		}
		out = decision
		rendered = cli.SubtitleStyle.Render(fmt.Sprintf("Decision %s (%s)", decision.ID, decision.CreatedAt.Local().Format("2006-01-02 15:04"))) +
			"\n" + cli.RenderDecision(decision.Result, showMath)
	case analyses:
		list, err := store.ListAnalyses(ctx, limit)
		if err != nil {
			return err
		}
		out = list
		rendered = cli.RenderAnalyses(list)
	default:
		list, err := store.ListDecisions(ctx, storage.DecisionFilter{
			Status:     model.DecisionStatus(status),
			AnalysisID: analysisID,
			Limit:      limit,
		})
		if err != nil {
			return err
		}
		out = list
		rendered = cli.RenderDecisions(list)
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
