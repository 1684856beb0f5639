package main

import (
	"fmt"

	"github.com/Veraticus/true-revenue/internal/cli"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/spf13/cobra"
)

func validateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check offer terms against the configured bounds",
		Long: `Validate externally prepared offer terms. Every violated bound is
reported, not only the first. The command fails when the terms are invalid.

Example:
  truerev validate --funding 40000 --factor 1.35 --term 6 --daily 409.09 --holdback 0.10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runValidate(cmd)
		},
	}

	cmd.Flags().String("funding", "", "funding amount")
	cmd.Flags().String("factor", "", "factor rate")
	cmd.Flags().String("daily", "", "daily payment")
	cmd.Flags().String("holdback", "", "holdback as a fraction, e.g. 0.10")
	cmd.Flags().Int("term", 0, "term in months")
	cmd.Flags().Bool("json", false, "print the result as JSON")

	return cmd
}

func (a *app) runValidate(cmd *cobra.Command) error {
	var terms model.OfferTerms
	var err error
	if terms.FundingAmount, err = decimalFlag(cmd, "funding"); err != nil {
		return err
	}
	if terms.FactorRate, err = decimalFlag(cmd, "factor"); err != nil {
		return err
	}
	if terms.DailyPayment, err = decimalFlag(cmd, "daily"); err != nil {
		return err
	}
	if terms.HoldbackPercentage, err = decimalFlag(cmd, "holdback"); err != nil {
		return err
	}
	terms.TermMonths, _ = cmd.Flags().GetInt("term")
	asJSON, _ := cmd.Flags().GetBool("json")

	eng, err := a.newEngine(cmd.Context(), nil, false)
	if err != nil {
		return err
	}
	result := eng.ValidateOfferTerms(terms)

	if asJSON {
		err = writeJSON(cmd.OutOrStdout(), result)
	} else {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderValidation(result))
	}
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("offer terms failed %d check(s)", len(result.Errors))
	}
	return nil
}
