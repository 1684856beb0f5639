package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Veraticus/true-revenue/internal/classification"
	"github.com/Veraticus/true-revenue/internal/cli"
	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/importer"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/Veraticus/true-revenue/internal/storage"
	"github.com/spf13/cobra"
)

// progressThreshold is the credit count above which a progress bar is shown.
const progressThreshold = 500

func revenueCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revenue [files...]",
		Short: "Calculate True Revenue from bank statements",
		Long: `Classify every credit in one or more OFX, QFX or JSON statements as
revenue, excluded or needs review, then report True Revenue by month,
revenue volatility and existing advance positions.

Examples:
  # Analyze one statement
  truerev revenue ~/Downloads/checking_jan.qfx

  # Analyze three months for a restaurant and keep the result
  truerev revenue --industry restaurant --save statements/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRevenue(cmd, args)
		},
	}

	cmd.Flags().String("industry", "", "merchant industry for industry revenue rules")
	cmd.Flags().Bool("save", false, "store the analysis for later offers")
	cmd.Flags().Bool("json", false, "print the analysis as JSON")
	cmd.Flags().Bool("no-progress", false, "never show a progress bar")
	cmd.Flags().Int("workers", 0, "classification workers (default: number of CPUs)")

	return cmd
}

func (a *app) runRevenue(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	industry, _ := cmd.Flags().GetString("industry")
	save, _ := cmd.Flags().GetBool("save")
	asJSON, _ := cmd.Flags().GetBool("json")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	workers, _ := cmd.Flags().GetInt("workers")

	files, err := importer.ExpandPaths(args)
	if err != nil {
		return common.NewUserError("Could not find statements", err)
	}

	res, err := importer.New().Import(ctx, files...)
	if err != nil {
		return err
	}
	if len(res.Transactions) == 0 {
		return common.NewUserError("No transactions found in "+strings.Join(files, ", "), nil)
	}
	slog.Info("Imported statements",
		"files", len(res.Files),
		"transactions", len(res.Transactions),
		"rejected", len(res.Errors))

	var store *storage.SQLiteStorage
	if save || a.cfg.Learning.Enabled {
		store, err = a.openStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	eng, err := a.newEngine(ctx, store, false)
	if err != nil {
		return err
	}

	opts := []classification.BatchOption{classification.WithWorkers(workers)}
	var progress *cli.Progress
	if !noProgress && !asJSON && countCredits(res.Transactions) > progressThreshold {
		progress = cli.NewProgress(cmd.ErrOrStderr(), countCredits(res.Transactions), "Classifying credits...")
		opts = append(opts, classification.WithProgress(progress.Update))
	}

	analysis, err := eng.Analyze(ctx, res.Transactions, industry, opts...)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return err
	}
	analysis.Source = sourceName(files)
	for _, de := range res.Errors {
		analysis.Skipped = append(analysis.Skipped, de.Error())
	}
	if save {
		if err := store.SaveAnalysis(ctx, analysis); err != nil {
			return err
		}
		slog.Info("Saved analysis", "id", analysis.ID)
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), analysis)
	}
	return renderRevenue(cmd.OutOrStdout(), res, analysis, save)
}

func renderRevenue(w io.Writer, res *importer.Result, analysis *model.Analysis, saved bool) error {
	lines := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		line := fmt.Sprintf("%s: %d transactions", filepath.Base(f.Path), f.Found)
		if f.Duplicates > 0 {
			line += fmt.Sprintf(" (%d duplicates skipped)", f.Duplicates)
		}
		lines = append(lines, line)
	}

	out := cli.RenderBox("Imported Statements", strings.Join(lines, "\n")) + "\n\n" + cli.RenderAnalysis(analysis)
	if saved {
		out += "\n\n" + cli.FormatSuccess("Saved analysis "+analysis.ID) +
			"\n" + cli.FormatInfo("Price an offer with: truerev offer --from-analysis "+analysis.ID+" --requested <amount>")
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func countCredits(txns []model.Transaction) int {
	n := 0
	for _, txn := range txns {
		if txn.IsCredit() {
			n++
		}
	}
	return n
}

func sourceName(files []string) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return strings.Join(names, ", ")
}
