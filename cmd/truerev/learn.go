package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/true-revenue/internal/cli"
	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/Veraticus/true-revenue/internal/pattern"
	"github.com/spf13/cobra"
)

func learnCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn [description]",
		Short: "Teach or list learned classification patterns",
		Long: `Record how a credit description should be classified. Manual patterns are
pinned at full confidence and take precedence over the rule tables on later
analyses.

Examples:
  truerev learn "ZELLE FROM ACME HOLDINGS 0412" --category excluded
  truerev learn --list
  truerev learn --delete 7`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLearn(cmd, args)
		},
	}

	cmd.Flags().String("category", "", "category: revenue, excluded or needs_review")
	cmd.Flags().Bool("list", false, "list learned patterns")
	cmd.Flags().Int64("delete", 0, "delete the learned pattern with this ID")

	return cmd
}

func (a *app) runLearn(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	category, _ := cmd.Flags().GetString("category")
	list, _ := cmd.Flags().GetBool("list")
	deleteID, _ := cmd.Flags().GetInt64("delete")

	store, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	w := cmd.OutOrStdout()
	switch {
	case list:
		patterns, err := store.LearnedPatterns(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, cli.RenderPatterns(patterns))
		return err
	case deleteID != 0:
		if err := store.DeleteLearnedPattern(ctx, deleteID); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Deleted learned pattern %d", deleteID)))
		return err
	case len(args) == 0:
		return common.NewUserError("Give a description to learn, or use --list or --delete", nil)
	}

	cat := model.Category(strings.ToLower(category))
	if !cat.IsValid() {
		return common.NewUserError(fmt.Sprintf("--category must be revenue, excluded or needs_review, got %q", category), nil)
	}

	learned, err := pattern.NewLearner(store, a.cfg.Learning).Learn(ctx, args[0], cat, true)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Learned %q as %s (confidence %d)",
		learned.NormalizedDescription, learned.Category, learned.Confidence)))
	return err
}
