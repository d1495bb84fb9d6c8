package variance

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/finsight-cli/internal/utils"
)

func budgetInsights(res BudgetResult) []string {
	out := []string{}
	t := res.Totals
	if len(res.Periods) == 0 {
		return append(out, fmt.Sprintf("No rows had a parseable date in column %s", res.Metadata.DateColumn))
	}
	out = append(out, fmt.Sprintf("Actuals of %s against a budget of %s give a variance of %s (%s)",
		utils.FormatAmount(t.Actual), utils.FormatAmount(t.Budget),
		utils.FormatAmount(t.Variance), utils.FormatSignedPercent(t.VariancePercentage)))

	switch t.Performance {
	case AboveBudget:
		out = append(out, "Overall performance is above budget")
	case BelowBudget:
		out = append(out, "Overall performance is below budget")
	default:
		out = append(out, fmt.Sprintf("Overall performance is on target (within %.0f%% of budget)", OnTargetBand))
	}

	if n := len(res.Periods); n > 1 {
		out = append(out, fmt.Sprintf("%d of %d periods were favorable", t.FavorablePeriods, n))
		if r := t.LargestFavorable; r != nil {
			out = append(out, fmt.Sprintf("Largest favorable variance: %s in %s (%s)",
				utils.FormatAmount(r.Variance), r.Period, utils.FormatSignedPercent(r.VariancePercentage)))
		}
		if r := t.LargestUnfavorable; r != nil {
			out = append(out, fmt.Sprintf("Largest unfavorable variance: %s in %s (%s)",
				utils.FormatAmount(r.Variance), r.Period, utils.FormatSignedPercent(r.VariancePercentage)))
		}
	}
	if res.Metadata.InvalidCells > 0 {
		out = append(out, fmt.Sprintf("%d non-numeric cells were counted as zero", res.Metadata.InvalidCells))
	}
	if res.Metadata.SkippedRows > 0 {
		out = append(out, fmt.Sprintf("%d rows with unparseable dates were excluded", res.Metadata.SkippedRows))
	}
	return out
}

func budgetRecommendations(res BudgetResult) []string {
	out := []string{}
	t := res.Totals
	if len(res.Periods) == 0 {
		return append(out, "Check the date column format; no periods could be built")
	}
	if math.Abs(t.VariancePercentage) > 10 {
		out = append(out, "Revisit the budget baseline; overall variance exceeds 10%")
	}
	if t.UnfavorablePeriods > t.FavorablePeriods {
		out = append(out, "Review forecasting assumptions; most periods fell short of budget")
	}
	if r := t.LargestUnfavorable; r != nil && len(res.Periods) > 1 {
		out = append(out, fmt.Sprintf("Investigate the shortfall in %s", r.Period))
	}
	if len(out) == 0 {
		out = append(out, "Budget tracking is on course; continue monitoring each period")
	}
	return out
}

func periodInsights(res PeriodResult) []string {
	out := []string{}
	t := res.Totals
	n := len(res.Periods)
	if n == 0 {
		return append(out, fmt.Sprintf("No rows had a parseable date in column %s", res.Metadata.DateColumn))
	}
	if n == 1 {
		return append(out, fmt.Sprintf("Only one period (%s) is available; no comparison is possible", res.Periods[0].Period))
	}
	dir := "grew"
	if t.TotalChange < 0 {
		dir = "declined"
	}
	if t.FirstValue != 0 {
		out = append(out, fmt.Sprintf("Value %s from %s to %s (%s) across %d periods",
			dir, utils.FormatAmount(t.FirstValue), utils.FormatAmount(t.LastValue),
			utils.FormatSignedPercent(t.GrowthRate), n))
	} else {
		out = append(out, fmt.Sprintf("Value %s from %s to %s across %d periods",
			dir, utils.FormatAmount(t.FirstValue), utils.FormatAmount(t.LastValue), n))
	}
	out = append(out, fmt.Sprintf("%d increases and %d decreases period over period", t.Increases, t.Decreases))
	out = append(out, fmt.Sprintf("Average change per period: %s", utils.FormatAmount(t.AverageChange)))
	if r := t.LargestIncrease; r != nil {
		out = append(out, fmt.Sprintf("Largest increase: %s in %s (%s)",
			utils.FormatAmount(r.Variance), r.Period, utils.FormatSignedPercent(r.VariancePercentage)))
	}
	if r := t.LargestDecrease; r != nil {
		out = append(out, fmt.Sprintf("Largest decrease: %s in %s (%s)",
			utils.FormatAmount(r.Variance), r.Period, utils.FormatSignedPercent(r.VariancePercentage)))
	}
	if res.Metadata.SkippedRows > 0 {
		out = append(out, fmt.Sprintf("%d rows with unparseable dates were excluded", res.Metadata.SkippedRows))
	}
	return out
}

func periodRecommendations(res PeriodResult) []string {
	out := []string{}
	t := res.Totals
	if len(res.Periods) < 2 {
		return append(out, "Provide data spanning at least two periods for a comparison")
	}
	if t.Decreases > t.Increases {
		out = append(out, "Most periods declined; investigate the drivers behind the downward movement")
	}
	if r := t.LargestDecrease; r != nil && r.VariancePercentage <= -20 {
		out = append(out, fmt.Sprintf("Examine %s, where value fell by more than 20%%", r.Period))
	}
	if len(out) == 0 {
		out = append(out, "Momentum is positive; sustain the factors behind recent growth")
	}
	return out
}
