package outlier

import (
	"fmt"

	"github.com/KaramelBytes/finsight-cli/internal/utils"
)

func insights(res Result) []string {
	s := res.Summary
	st := res.Statistics
	out := []string{}
	if s.OutlierCount == 0 {
		out = append(out, fmt.Sprintf("No outliers detected across %d data points", s.TotalPoints))
	} else {
		out = append(out, fmt.Sprintf("%d outliers detected across %d data points (%.1f%%)",
			s.OutlierCount, s.TotalPoints, s.OutlierRatio))
		out = append(out, fmt.Sprintf("%d above and %d below the mean", s.UpperCount, s.LowerCount))
		top := res.Outliers[0]
		where := top.Date
		if top.Label != "" {
			where = top.Label + " on " + top.Date
		}
		out = append(out, fmt.Sprintf("Largest deviation: %s at %s (%s from the mean, %s)",
			utils.FormatAmount(top.Value), where, utils.FormatSignedPercent(top.DeviationPercent), top.Severity))
		if s.ExtremeCount > 0 {
			out = append(out, fmt.Sprintf("%d extreme outliers need immediate review", s.ExtremeCount))
		}
	}
	out = append(out, fmt.Sprintf("Normal range is %s to %s (mean %s, median %s)",
		utils.FormatAmount(st.LowerBound), utils.FormatAmount(st.UpperBound),
		utils.FormatAmount(st.Mean), utils.FormatAmount(st.Median)))
	if res.DroppedRows > 0 {
		out = append(out, fmt.Sprintf("%d rows were dropped during preprocessing", res.DroppedRows))
	}
	return out
}

func recommendations(res Result) []string {
	s := res.Summary
	out := []string{}
	switch s.RiskLevel {
	case "critical":
		out = append(out, "Outlier rate is critical; audit data entry and the underlying process before relying on this series")
	case "high":
		out = append(out, "Investigate the flagged periods and confirm whether they reflect real events or errors")
	case "medium":
		out = append(out, "Review the flagged points and document known causes")
	default:
		out = append(out, "Data looks consistent; keep monitoring with the current thresholds")
	}
	if s.ExtremeCount > 0 {
		out = append(out, "Verify extreme values against source records")
	}
	if s.UpperCount > 0 && s.LowerCount == 0 {
		out = append(out, "All outliers are spikes above normal; check for one-off events or double counting")
	}
	if s.LowerCount > 0 && s.UpperCount == 0 {
		out = append(out, "All outliers are drops below normal; check for missing or delayed entries")
	}
	return out
}
