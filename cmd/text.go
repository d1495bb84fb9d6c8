package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/KaramelBytes/finsight-cli/internal/contribution"
	"github.com/KaramelBytes/finsight-cli/internal/outlier"
	"github.com/KaramelBytes/finsight-cli/internal/trend"
	"github.com/KaramelBytes/finsight-cli/internal/utils"
	"github.com/KaramelBytes/finsight-cli/internal/variance"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func bullets(w io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, l := range lines {
		fmt.Fprintf(w, "  - %s\n", l)
	}
}

func failed(w io.Writer, msg string) {
	fmt.Fprintf(w, "✗ Analysis failed: %s\n", msg)
}

func renderContribution(w io.Writer, res contribution.Result) {
	if !res.Success {
		failed(w, res.ErrorMessage)
		return
	}
	m, s := res.Metadata, res.Summary
	fmt.Fprintf(w, "Contribution of %s by %s (%d of %d rows, quality %s)\n",
		m.ValueColumn, m.CategoryColumn, m.AnalyzedRows, m.TotalRows, m.DataQuality)
	tw := table(w)
	fmt.Fprintln(tw, "RANK\tCATEGORY\tVALUE\tSHARE\tCUMULATIVE\tSIGNIFICANCE")
	for _, it := range res.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", it.Rank, it.Category, utils.FormatAmount(it.Value),
			utils.FormatPercent(it.ContributionPercent), utils.FormatPercent(it.CumulativePercent), it.Significance)
		for _, sub := range it.Subcategories {
			fmt.Fprintf(tw, "\t  %s\t%s\t%s\t\t\n", sub.Subcategory, utils.FormatAmount(sub.Value),
				utils.FormatPercent(sub.ContributionPercent))
		}
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal %s across %d categories; top 3 hold %s; diversity %.2f\n",
		utils.FormatAmount(s.TotalValue), s.CategoryCount, utils.FormatPercent(s.ConcentrationRatio), s.DiversityIndex)
	if tp := res.TimePeriod; tp != nil {
		fmt.Fprintf(w, "\nBy %s:\n", tp.PeriodType)
		tw = table(w)
		fmt.Fprintln(tw, "PERIOD\tTOTAL\tTOP\tSHARE")
		for _, p := range tp.Periods {
			top, share := "-", ""
			if p.TopContributor != nil {
				top, share = p.TopContributor.Category, utils.FormatPercent(p.TopContributor.ContributionPercent)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Period, utils.FormatAmount(p.Total), top, share)
		}
		tw.Flush()
		bullets(w, "Period comparisons", tp.PeriodComparisons)
		bullets(w, "Seasonal patterns", tp.SeasonalPatterns)
	}
	bullets(w, "Insights", res.Insights)
	bullets(w, "Recommendations", res.Recommendations)
}

func renderBudget(w io.Writer, res variance.BudgetResult) {
	if !res.Success {
		failed(w, res.ErrorMessage)
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "PERIOD\tBUDGET\tACTUAL\tVARIANCE\tVARIANCE %\tSTATUS")
	for _, p := range res.Periods {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.Period, utils.FormatAmount(p.Budget), utils.FormatAmount(p.Actual),
			utils.FormatAmount(p.Variance), utils.FormatSignedPercent(p.VariancePercentage), p.Status)
	}
	t := res.Totals
	fmt.Fprintf(tw, "TOTAL\t%s\t%s\t%s\t%s\t%s\n", utils.FormatAmount(t.Budget), utils.FormatAmount(t.Actual),
		utils.FormatAmount(t.Variance), utils.FormatSignedPercent(t.VariancePercentage), t.Performance)
	tw.Flush()
	bullets(w, "Insights", res.Insights)
	bullets(w, "Recommendations", res.Recommendations)
}

func renderPeriod(w io.Writer, res variance.PeriodResult) {
	if !res.Success {
		failed(w, res.ErrorMessage)
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "PERIOD\tVALUE\tCHANGE\tCHANGE %\tSTATUS")
	for _, p := range res.Periods {
		change, pct := "-", "-"
		if p.Variance != nil {
			change = utils.FormatAmount(*p.Variance)
		}
		if p.VariancePercentage != nil {
			pct = utils.FormatSignedPercent(*p.VariancePercentage)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Period, utils.FormatAmount(p.Value), change, pct, p.Status)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nGrowth %s from %s to %s\n", utils.FormatSignedPercent(res.Totals.GrowthRate),
		utils.FormatAmount(res.Totals.FirstValue), utils.FormatAmount(res.Totals.LastValue))
	bullets(w, "Insights", res.Insights)
	bullets(w, "Recommendations", res.Recommendations)
}

func renderTrend(w io.Writer, res *trend.Result) {
	s := res.Summary
	fmt.Fprintf(w, "%s moving average, window %d: %s trend, %s momentum, score %.0f (%s)\n",
		res.TrendType, res.WindowSize, s.OverallTrend, s.Momentum, s.TrendScore, s.Health)
	tw := table(w)
	fmt.Fprintln(tw, "PERIOD\tVALUE\tMOVING AVG\tCHANGE %\tDIRECTION\tSTRENGTH")
	for _, p := range res.Points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.Period, utils.FormatAmount(p.Value), utils.FormatAmount(p.MovingAverage),
			utils.FormatSignedPercent(p.PercentChange), p.Direction, p.Strength)
	}
	tw.Flush()
	for _, c := range res.Categories {
		fmt.Fprintf(w, "  %s: %s, score %.0f (%s)\n", c.Category, c.Summary.OverallTrend, c.Summary.TrendScore, c.Summary.Health)
	}
	bullets(w, "Insights", res.Insights)
	bullets(w, "Recommendations", res.Recommendations)
}

func renderOutliers(w io.Writer, res outlier.Result) {
	if !res.Success {
		failed(w, res.ErrorMessage)
		return
	}
	st := res.Statistics
	fmt.Fprintf(w, "%d of %d points flagged (%s risk); normal range %s to %s\n", res.Summary.OutlierCount,
		res.Summary.TotalPoints, res.Summary.RiskLevel, utils.FormatAmount(st.LowerBound), utils.FormatAmount(st.UpperBound))
	if len(res.Outliers) > 0 {
		tw := table(w)
		fmt.Fprintln(tw, "DATE\tLABEL\tVALUE\tDEVIATION\tSIDE\tSEVERITY")
		for _, o := range res.Outliers {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", o.Date, o.Label, utils.FormatAmount(o.Value),
				utils.FormatSignedPercent(o.DeviationPercent), o.Type, o.Severity)
		}
		tw.Flush()
	}
	bullets(w, "Insights", res.Insights)
	bullets(w, "Recommendations", res.Recommendations)
}

func renderReport(w io.Writer, rep runReport) {
	fmt.Fprintf(w, "Run %s: %d file(s), %d card(s)\n", rep.RunID, len(rep.Files), len(rep.Cards))
	for _, c := range rep.Cards {
		fmt.Fprintf(w, "\n== %s ==\n", c.Title)
		switch r := c.Result.(type) {
		case contribution.Result:
			renderContribution(w, r)
		case variance.BudgetResult:
			renderBudget(w, r)
		case *trend.Result:
			renderTrend(w, r)
		case outlier.Result:
			renderOutliers(w, r)
		case failedResult:
			failed(w, r.ErrorMessage)
		}
	}
}
