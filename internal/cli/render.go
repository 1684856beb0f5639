package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// maxAuditItems caps the excluded and needs-review lines listed per month.
const maxAuditItems = 5

func percent(d decimal.Decimal, places int32) string {
	return d.StringFixed(places) + "%"
}

// fraction renders a 0-1 value as a percentage.
func fraction(d decimal.Decimal) string {
	return percent(d.Mul(decimal.NewFromInt(100)), 1)
}

// table renders rows under an underlined header, padding every column to
// its widest cell.
func table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = TableCellStyle.Render(cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " ")
	}

	lines := []string{TableHeaderStyle.Render(line(header))}
	for _, row := range rows {
		lines = append(lines, line(row))
	}
	return strings.Join(lines, "\n")
}

func keyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = fmt.Sprintf("%-*s  %s", width+1, p[0]+":", p[1])
	}
	return strings.Join(lines, "\n")
}

// RenderAnalysis renders the full True Revenue report for an analysis.
func RenderAnalysis(a *model.Analysis) string {
	if a == nil {
		return FormatError("No analysis available")
	}

	sections := []string{RenderBox("True Revenue Summary", RenderSummary(a))}
	if len(a.Months) > 0 {
		sections = append(sections, SubtitleStyle.Render("Monthly Breakdown")+"\n"+RenderMonths(a.Months))
	}
	if len(a.Reasons) > 0 {
		sections = append(sections, SubtitleStyle.Render("Classification")+"\n"+RenderReasons(a.Reasons))
	}
	sections = append(sections,
		SubtitleStyle.Render("Volatility")+"\n"+RenderVolatility(a.Volatility),
		SubtitleStyle.Render("Existing Positions")+"\n"+RenderPositions(a.Positions),
	)
	if len(a.Skipped) > 0 {
		skipped := make([]string, len(a.Skipped))
		for i, s := range a.Skipped {
			skipped[i] = FormatWarning(s)
		}
		sections = append(sections, SubtitleStyle.Render(fmt.Sprintf("Skipped Records (%d)", len(a.Skipped)))+"\n"+strings.Join(skipped, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

// RenderSummary renders the headline totals of an analysis.
func RenderSummary(a *model.Analysis) string {
	s := a.Summary
	pairs := [][2]string{}
	if a.ID != "" {
		pairs = append(pairs, [2]string{"Analysis", a.ID})
	}
	if a.Source != "" {
		pairs = append(pairs, [2]string{"Source", a.Source})
	}
	if a.Industry != "" {
		pairs = append(pairs, [2]string{"Industry", a.Industry})
	}
	pairs = append(pairs,
		[2]string{"Transactions", fmt.Sprintf("%d (%d credits)", a.Transactions, s.Counts.Total)},
		[2]string{"Total credits", common.FormatMoney(s.TotalCredits)},
		[2]string{"True Revenue", SuccessStyle.Render(common.FormatMoney(s.TrueRevenue))},
		[2]string{"Excluded", fmt.Sprintf("%s (%d)", common.FormatMoney(s.ExcludedAmount), s.Counts.Excluded)},
		[2]string{"Needs review", fmt.Sprintf("%s (%d)", common.FormatMoney(s.NeedsReviewAmount), s.Counts.NeedsReview)},
		[2]string{"Revenue ratio", percent(s.RevenueRatio, 2)},
	)
	return keyValues(pairs)
}

// RenderMonths renders one row per month followed by the largest
// non-revenue items of each month.
func RenderMonths(months []model.MonthlyBucket) string {
	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, []string{
			m.MonthName,
			common.FormatMoney(m.TrueRevenue),
			common.FormatMoney(m.Excluded),
			common.FormatMoney(m.NeedsReview),
			common.FormatMoney(m.DailyTrueRevenue),
			percent(m.RevenueRatio, 1),
			fmt.Sprint(m.TransactionCount),
		})
	}
	out := table([]string{"Month", "True Revenue", "Excluded", "Review", "Daily", "Ratio", "Credits"}, rows)

	var audit []string
	for _, m := range months {
		items := append(append([]model.LineItem{}, m.ExcludedItems...), m.NeedsReviewItems...)
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Amount.GreaterThan(items[j].Amount)
		})
		audit = append(audit, BoldStyle.Render(m.MonthName))
		for _, item := range items[:min(len(items), maxAuditItems)] {
			audit = append(audit, fmt.Sprintf("  %s  %-12s %s %s",
				item.Date.Format("01/02"),
				common.FormatMoney(item.Amount),
				item.Description,
				SubtleStyle.Render("("+item.Reason+")")))
		}
		if extra := len(items) - maxAuditItems; extra > 0 {
			audit = append(audit, SubtleStyle.Render(fmt.Sprintf("  ... and %d more", extra)))
		}
	}
	if len(audit) > 0 {
		out += "\n\n" + strings.Join(audit, "\n")
	}
	return out
}

func categoryStyle(c model.Category) lipgloss.Style {
	switch c {
	case model.CategoryRevenue:
		return SuccessStyle
	case model.CategoryExcluded:
		return ErrorStyle
	default:
		return WarningStyle
	}
}

// RenderReasons renders the per-reason classification summary.
func RenderReasons(reasons []model.ReasonSummary) string {
	rows := make([][]string, 0, len(reasons))
	for _, r := range reasons {
		rows = append(rows, []string{
			categoryStyle(r.Category).Render(string(r.Category)),
			r.Reason,
			string(r.Source),
			fmt.Sprint(r.Count),
			common.FormatMoney(r.Total),
		})
	}
	return table([]string{"Category", "Reason", "Source", "Count", "Total"}, rows)
}

// RenderVolatility renders month-over-month stability metrics.
func RenderVolatility(v model.VolatilityMetrics) string {
	if !v.HasData {
		return SubtleStyle.Render("Not enough months to measure volatility.")
	}

	level := string(v.Level)
	switch v.Level {
	case model.VolatilityLow:
		level = SuccessStyle.Render(level)
	case model.VolatilityMedium:
		level = WarningStyle.Render(level)
	case model.VolatilityHigh:
		level = ErrorStyle.Render(level)
	}

	return keyValues([][2]string{
		{"Level", level},
		{"Months", fmt.Sprint(v.MonthsAnalyzed)},
		{"Average", common.FormatMoney(v.Mean)},
		{"Range", common.FormatMoney(v.Min) + " - " + common.FormatMoney(v.Max)},
		{"Std deviation", common.FormatMoney(v.StdDev)},
		{"Coefficient", v.CoefficientOfVariation.StringFixed(3)},
		{"Trend", fmt.Sprintf("%s (%s/month, %s)", v.Trend, common.FormatMoney(v.MonthlyChange), percent(v.TrendPercentage, 1))},
	})
}

// RenderPositions renders detected funder obligations.
func RenderPositions(p model.PositionInfo) string {
	if p.ActivePositions == 0 {
		return SuccessStyle.Render(SuccessIcon + " No existing positions detected")
	}

	rows := make([][]string, 0, len(p.Funders))
	for _, f := range p.Funders {
		rows = append(rows, []string{
			f.Funder,
			fmt.Sprint(f.PaymentCount),
			common.FormatMoney(f.AveragePayment),
			common.FormatMoney(f.EstimatedDailyPayment),
			common.FormatMoney(f.EstimatedMonthlyPayment),
			f.FirstSeen.Format("2006-01-02") + " - " + f.LastSeen.Format("2006-01-02"),
		})
	}
	return table([]string{"Funder", "Payments", "Average", "Daily", "Monthly", "Seen"}, rows) + "\n" +
		keyValues([][2]string{
			{"Active positions", fmt.Sprint(p.ActivePositions)},
			{"Total daily", common.FormatMoney(p.TotalDailyPayment)},
			{"Total monthly", common.FormatMoney(p.TotalMonthlyPayment)},
		})
}

// RenderCapacity renders a withhold capacity snapshot.
func RenderCapacity(s model.CapacitySnapshot) string {
	status := SuccessStyle.Render(SuccessIcon + " Can take a new position")
	if s.AtCapacity {
		status = ErrorStyle.Render(ErrorIcon + " At maximum withhold capacity")
	}
	return RenderBox("Withhold Capacity", keyValues([][2]string{
		{"Monthly True Revenue", common.FormatMoney(s.MonthlyTrueRevenue)},
		{"Daily True Revenue", common.FormatMoney(s.DailyTrueRevenue)},
		{"Max withhold", percent(s.MaxWithholdPercent, 1)},
		{"Max daily payment", common.FormatMoney(s.MaxDailyPayment)},
		{"Existing daily", fmt.Sprintf("%s (%s)", common.FormatMoney(s.ExistingDailyPayment), percent(s.CurrentWithholdPercent, 1))},
		{"Remaining daily", fmt.Sprintf("%s (%s)", common.FormatMoney(s.RemainingDailyCapacity), percent(s.RemainingWithholdPercent, 1))},
	})+"\n"+status)
}

// RenderDecision renders an underwriting outcome. With showMath the
// step-by-step calculation is included.
func RenderDecision(r model.DecisionResult, showMath bool) string {
	var header string
	switch r.Status {
	case model.StatusApproved:
		header = FormatSuccess("APPROVED")
	case model.StatusApprovedReduced:
		header = FormatWarning("APPROVED (REDUCED)")
	default:
		header = FormatError("DECLINED " + string(r.DeclineReason))
	}

	sections := []string{header, r.Explanation}
	if r.Offer != nil {
		sections = append(sections, RenderBox("Offer", renderOffer(r.Offer)))
	}
	if r.Pricing != nil {
		sections = append(sections, SubtitleStyle.Render("Pricing")+"\n"+renderPricing(r.Pricing))
	}
	if len(r.Warnings) > 0 {
		warnings := make([]string, len(r.Warnings))
		for i, w := range r.Warnings {
			warnings[i] = FormatWarning(w)
		}
		sections = append(sections, strings.Join(warnings, "\n"))
	}
	if showMath && r.Offer != nil && len(r.Offer.MathBreakdown) > 0 {
		sections = append(sections, SubtitleStyle.Render("Calculation")+"\n"+RenderMath(r.Offer.MathBreakdown))
	}
	return strings.Join(sections, "\n\n")
}

func renderOffer(o *model.Offer) string {
	wb := o.WithholdBreakdown
	return keyValues([][2]string{
		{"Funding", SuccessStyle.Render(common.FormatMoney(o.FundingAmount))},
		{"Factor rate", o.FactorRate.StringFixed(2)},
		{"Payback", common.FormatMoney(o.PaybackAmount)},
		{"Term", fmt.Sprintf("%d months (%d business days)", o.TermMonths, o.TermBusinessDays)},
		{"Daily payment", common.FormatMoney(o.DailyPayment)},
		{"Weekly payment", common.FormatMoney(o.WeeklyPayment)},
		{"Monthly payment", common.FormatMoney(o.MonthlyPayment)},
		{"Holdback", fraction(o.HoldbackPercentage)},
		{"Cost of capital", fmt.Sprintf("%s (%s)", common.FormatMoney(o.CostOfCapital), percent(o.CostPercentage, 1))},
		{"Position", fmt.Sprint(o.Position)},
		{"New withhold", percent(wb.NewWithholdPercent, 1)},
		{"Total withhold", percent(wb.TotalWithholdPercent, 1)},
		{"Remaining after", fmt.Sprintf("%s/day (%s)", common.FormatMoney(wb.RemainingCapacityAfter), percent(wb.RemainingPercentAfter, 1))},
	})
}

func renderPricing(p *model.Pricing) string {
	out := keyValues([][2]string{
		{"Tier", fmt.Sprintf("%s (%s)", p.TierName, p.TierID)},
		{"Credit band", p.CreditBand},
		{"Factor", fmt.Sprintf("%s base, %s applied, %s max", p.BaseFactorRate.StringFixed(2), p.FactorRate.StringFixed(2), p.MaxFactorRate.StringFixed(2))},
		{"Approval", fraction(p.ApprovalPercentage)},
		{"Max term", fmt.Sprintf("%d months", p.MaxTermMonths)},
	})

	var adjs []string
	for _, group := range [][]model.Adjustment{p.FactorAdjustments, p.TermAdjustments, p.ApprovalAdjustments} {
		for _, a := range group {
			adjs = append(adjs, fmt.Sprintf("  %s %s: %s", a.Type, a.Value.String(), SubtleStyle.Render(a.Description)))
		}
	}
	if len(adjs) > 0 {
		out += "\n" + strings.Join(adjs, "\n")
	}
	return out
}

// RenderMath renders each calculation step with its formula and values.
func RenderMath(steps []model.MathStep) string {
	lines := make([]string, 0, len(steps)*3)
	for i, step := range steps {
		lines = append(lines, BoldStyle.Render(fmt.Sprintf("%d. %s", i+1, step.Step)))
		if step.Formula != "" {
			lines = append(lines, SubtleStyle.Render("   "+step.Formula))
		}
		for _, v := range step.Values {
			lines = append(lines, fmt.Sprintf("   %s = %s", v.Name, v.Value.String()))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderValidation renders the outcome of validating offer terms.
func RenderValidation(v model.ValidationResult) string {
	if v.Valid {
		return FormatSuccess("Offer terms are valid")
	}
	lines := []string{FormatError(fmt.Sprintf("Offer terms have %d problem(s)", len(v.Errors)))}
	for _, e := range v.Errors {
		lines = append(lines, "  - "+e)
	}
	return strings.Join(lines, "\n")
}

// RenderScenarios renders named scenario outcomes sorted by name.
func RenderScenarios(results map[string]model.DecisionResult) string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		r := results[name]
		row := []string{name, statusLabel(r), "-", "-", "-", "-"}
		if r.Offer != nil {
			row[2] = common.FormatMoney(r.Offer.FundingAmount)
			row[3] = r.Offer.FactorRate.StringFixed(2)
			row[4] = common.FormatMoney(r.Offer.DailyPayment)
			row[5] = fmt.Sprint(r.Offer.TermMonths)
		}
		rows = append(rows, row)
	}
	return table([]string{"Scenario", "Status", "Funding", "Factor", "Daily", "Term"}, rows)
}

func statusLabel(r model.DecisionResult) string {
	switch r.Status {
	case model.StatusApproved:
		return SuccessStyle.Render(string(r.Status))
	case model.StatusApprovedReduced:
		return WarningStyle.Render(string(r.Status))
	default:
		return ErrorStyle.Render(string(r.DeclineReason))
	}
}

// RenderDecisions renders stored decisions, newest first as given.
func RenderDecisions(decisions []model.Decision) string {
	if len(decisions) == 0 {
		return SubtleStyle.Render("No decisions recorded.")
	}
	rows := make([][]string, 0, len(decisions))
	for _, d := range decisions {
		funding := "-"
		if d.Result.Offer != nil {
			funding = common.FormatMoney(d.Result.Offer.FundingAmount)
		}
		analysis := d.AnalysisID
		if analysis == "" {
			analysis = "-"
		}
		rows = append(rows, []string{
			d.CreatedAt.Local().Format("2006-01-02 15:04"),
			d.ID,
			statusLabel(d.Result),
			common.FormatMoney(d.Request.RequestedAmount),
			funding,
			analysis,
		})
	}
	return table([]string{"Created", "ID", "Status", "Requested", "Funded", "Analysis"}, rows)
}

// RenderAnalyses renders stored analyses, newest first as given.
func RenderAnalyses(analyses []model.Analysis) string {
	if len(analyses) == 0 {
		return SubtleStyle.Render("No analyses recorded.")
	}
	rows := make([][]string, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, []string{
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
			a.ID,
			a.Source,
			common.FormatMoney(a.Summary.TrueRevenue),
			percent(a.Summary.RevenueRatio, 1),
			fmt.Sprint(a.Transactions),
		})
	}
	return table([]string{"Created", "ID", "Source", "True Revenue", "Ratio", "Transactions"}, rows)
}

// RenderPatterns renders learned classification patterns.
func RenderPatterns(patterns []model.LearnedPattern) string {
	if len(patterns) == 0 {
		return SubtleStyle.Render("No learned patterns.")
	}
	rows := make([][]string, 0, len(patterns))
	for _, p := range patterns {
		override := ""
		if p.ManualOverride {
			override = CheckIcon
		}
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			p.NormalizedDescription,
			categoryStyle(p.Category).Render(string(p.Category)),
			fmt.Sprint(p.Confidence),
			fmt.Sprint(p.Occurrences),
			override,
		})
	}
	return table([]string{"ID", "Pattern", "Category", "Confidence", "Seen", "Manual"}, rows)
}
