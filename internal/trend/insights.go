package trend

import (
	"fmt"

	"github.com/KaramelBytes/finsight-cli/internal/utils"
)

func insights(res *Result) []string {
	s := res.Summary
	out := []string{}
	switch s.OverallTrend {
	case Upward, Downward:
		out = append(out, fmt.Sprintf("Overall trend is %s across %d analyzed periods (%.0f%% consistency)",
			s.OverallTrend, s.AnalyzedPoints, s.TrendConsistency))
	case Flat:
		out = append(out, fmt.Sprintf("Values are stable around their %d-period moving average", res.WindowSize))
	default:
		out = append(out, "No single direction dominates; the trend is mixed")
	}
	out = append(out, fmt.Sprintf("Average period-over-period growth is %s", utils.FormatSignedPercent(s.AverageGrowthRate)))

	switch {
	case s.Volatility > 20:
		out = append(out, fmt.Sprintf("High volatility: percent changes vary by %.1f points", s.Volatility))
	case s.Volatility > 10:
		out = append(out, fmt.Sprintf("Moderate volatility: percent changes vary by %.1f points", s.Volatility))
	default:
		out = append(out, fmt.Sprintf("Low volatility: percent changes vary by %.1f points", s.Volatility))
	}
	if s.Momentum != Steady {
		out = append(out, fmt.Sprintf("Momentum is %s over the most recent periods", s.Momentum))
	}
	if n := len(res.Points); n > 0 {
		last := res.Points[n-1]
		out = append(out, fmt.Sprintf("Latest period %s is %s against its moving average (%s, %s)",
			last.Period, utils.FormatSignedPercent(last.PercentChange), last.Direction, last.Strength))
	}
	out = append(out, fmt.Sprintf("Trend score %.0f/100 (%s)", s.TrendScore, s.Health))

	if len(res.Categories) >= 2 {
		best, worst := res.Categories[0], res.Categories[0]
		for _, c := range res.Categories[1:] {
			if c.Summary.TrendScore > best.Summary.TrendScore {
				best = c
			}
			if c.Summary.TrendScore < worst.Summary.TrendScore {
				worst = c
			}
		}
		if best.Category != worst.Category {
			out = append(out, fmt.Sprintf("%s has the strongest trend (score %.0f); %s the weakest (score %.0f)",
				best.Category, best.Summary.TrendScore, worst.Category, worst.Summary.TrendScore))
		}
	}
	return out
}

func recommendations(res *Result) []string {
	s := res.Summary
	out := []string{}
	switch s.Health {
	case "excellent":
		out = append(out, "Performance is strong; sustain the current strategy")
	case "good":
		out = append(out, "Trend is healthy; look for ways to improve consistency")
	case "fair":
		out = append(out, "Trend is uneven; review drivers of the weaker periods")
	default:
		out = append(out, "Trend needs attention; investigate the causes of decline")
	}
	if s.Volatility > 20 {
		out = append(out, "Reduce volatility by smoothing demand or spreading activity over periods")
	}
	if s.OverallTrend == Upward && s.Momentum == Decelerating {
		out = append(out, "Growth is slowing; act before the trend reverses")
	}
	if s.OverallTrend == Downward && s.Momentum == Accelerating {
		out = append(out, "Decline is easing; reinforce the measures behind the recovery")
	}
	return out
}
