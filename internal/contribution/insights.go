package contribution

import (
	"fmt"

	"github.com/KaramelBytes/finsight-cli/internal/utils"
)

func insights(res Result, byShare []Item, p Params) []string {
	s := res.Summary
	out := []string{}
	if s.CategoryCount == 0 {
		return append(out, "No rows had both a category and a numeric value")
	}
	if s.TotalValue == 0 {
		return append(out, "Total value is zero, so no category contributes a share")
	}

	top := byShare[0]
	out = append(out, fmt.Sprintf("%s is the largest contributor with %.1f%% of total value (%s)",
		top.Category, top.ContributionPercent, utils.FormatAmount(top.Value)))

	switch {
	case s.CategoryCount <= 3:
		out = append(out, fmt.Sprintf("All value is held by %d categories", s.CategoryCount))
	case s.ConcentrationRatio >= 80:
		out = append(out, fmt.Sprintf("High concentration: the top 3 categories account for %.1f%% of total value", s.ConcentrationRatio))
	case s.ConcentrationRatio >= 50:
		out = append(out, fmt.Sprintf("Moderate concentration: the top 3 categories account for %.1f%% of total value", s.ConcentrationRatio))
	default:
		out = append(out, fmt.Sprintf("Low concentration: the top 3 categories account for %.1f%% of total value", s.ConcentrationRatio))
	}

	switch {
	case s.DiversityIndex >= 0.7:
		out = append(out, fmt.Sprintf("Diversity index %.2f indicates a well-diversified distribution", s.DiversityIndex))
	case s.DiversityIndex >= 0.4:
		out = append(out, fmt.Sprintf("Diversity index %.2f indicates a moderately diversified distribution", s.DiversityIndex))
	default:
		out = append(out, fmt.Sprintf("Diversity index %.2f indicates a concentrated distribution", s.DiversityIndex))
	}

	if s.CategoryCount > 1 {
		out = append(out, fmt.Sprintf("%d of %d categories (%.0f%%) generate %.0f%% of total value",
			s.ParetoCategoryCount, s.CategoryCount,
			float64(s.ParetoCategoryCount)/float64(s.CategoryCount)*100, ParetoShare))
	}

	var majors int
	for _, it := range byShare {
		if it.Significance == Major {
			majors++
		}
	}
	if majors > 0 {
		out = append(out, fmt.Sprintf("%d major contributors hold at least 20%% each", majors))
	}
	if s.BelowMinimumCount > 0 {
		out = append(out, fmt.Sprintf("%d categories contribute less than %.1f%% each", s.BelowMinimumCount, p.MinimumContribution))
	}
	if res.Metadata.OthersGrouped {
		last := res.Items[len(res.Items)-1]
		out = append(out, fmt.Sprintf("%s together contribute %.1f%%", last.Category, last.ContributionPercent))
	}
	return out
}

func recommendations(res Result, p Params) []string {
	s := res.Summary
	out := []string{}
	if s.CategoryCount == 0 || s.TotalValue == 0 {
		return out
	}
	if s.CategoryCount > 3 && s.ConcentrationRatio >= 80 {
		out = append(out, fmt.Sprintf("Reduce dependency on the top categories; a shortfall in %s alone would affect %.1f%% of value",
			s.TopContributor, s.TopContribution))
	}
	if s.CategoryCount > 1 && s.DiversityIndex < 0.4 {
		out = append(out, "Grow underrepresented categories to balance the mix")
	}
	if s.BelowMinimumCount > 0 {
		out = append(out, fmt.Sprintf("Review the %d categories below %.1f%% for consolidation", s.BelowMinimumCount, p.MinimumContribution))
	}
	if res.Metadata.OthersGrouped {
		out = append(out, "Drill into the categories grouped under Others to find emerging contributors")
	}
	if res.TimePeriod != nil {
		for _, ct := range res.TimePeriod.CategoryTrends {
			if ct.Trend == Decreasing && ct.Category == s.TopContributor {
				out = append(out, fmt.Sprintf("Investigate the declining share of %s, the largest contributor", ct.Category))
			}
		}
	}
	if len(out) == 0 {
		out = append(out, "Maintain the current category mix and monitor shifts in share")
	}
	return out
}
