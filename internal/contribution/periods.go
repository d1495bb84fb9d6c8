package contribution

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/period"
	"github.com/KaramelBytes/finsight-cli/internal/stats"
	"github.com/KaramelBytes/finsight-cli/internal/utils"
)

const (
	volatileStdDev = 50.0
	stableSlope    = 0.1
)

// analyzePeriods recomputes contributions inside each calendar bucket and
// classifies every category's share trajectory. categories fixes the order of
// CategoryTrends.
func analyzePeriods(ds *dataset.Dataset, p Params, categories []string) (*TimePeriodResult, *period.Range) {
	typ := p.TimePeriod.PeriodType
	buckets, undated := period.Group(ds, p.TimePeriod.DateColumn, typ)
	out := &TimePeriodResult{
		PeriodType:        typ,
		DateColumn:        p.TimePeriod.DateColumn,
		UndatedRows:       undated,
		Periods:           make([]PeriodBreakdown, 0, len(buckets)),
		CategoryTrends:    make([]CategoryTrend, 0, len(categories)),
		PeriodComparisons: []string{},
		SeasonalPatterns:  []string{},
	}

	flat := p
	flat.SubcategoryColumn = ""
	shares := make([]map[string]float64, len(buckets))
	for i, b := range buckets {
		recs := make([]dataset.Record, len(b.Rows))
		for j, r := range b.Rows {
			recs[j] = ds.Records[r]
		}
		groups, _, _ := aggregate(recs, flat)
		out.Periods = append(out.Periods, breakdown(b, groups, p.Scope))
		shares[i] = map[string]float64{}
		for _, it := range out.Periods[i].Items {
			shares[i][it.Category] = it.ContributionPercent
		}
	}

	for _, cat := range categories {
		series := make([]float64, len(buckets))
		for i := range buckets {
			series[i] = shares[i][cat]
		}
		out.CategoryTrends = append(out.CategoryTrends, classifyTrend(cat, series))
	}
	out.PeriodComparisons = comparePeriods(out)
	out.SeasonalPatterns = seasonalPatterns(out)

	first, last, ok := period.Span(buckets)
	if !ok {
		return out, nil
	}
	return out, period.NewRange(first, last)
}

func breakdown(b period.Bucket, groups []*group, scope Scope) PeriodBreakdown {
	var total float64
	for _, g := range groups {
		total += g.value(scope)
	}
	items := make([]PeriodItem, len(groups))
	for i, g := range groups {
		v := g.value(scope)
		items[i] = PeriodItem{Category: g.name, Value: v, ContributionPercent: percentOf(v, total)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value > items[j].Value
		}
		return items[i].Category < items[j].Category
	})
	for i := range items {
		items[i].Rank = i + 1
	}
	pb := PeriodBreakdown{
		Period:   b.Key,
		Start:    b.Start.Format("2006-01-02"),
		Total:    total,
		RowCount: len(b.Rows),
		Items:    items,
	}
	if len(items) > 0 {
		top, bottom := items[0], items[len(items)-1]
		pb.TopContributor = &top
		pb.BottomContributor = &bottom
	}
	return pb
}

func classifyTrend(cat string, series []float64) CategoryTrend {
	ct := CategoryTrend{
		Category:            cat,
		Trend:               Stable,
		AverageContribution: stats.Mean(series),
		Contributions:       series,
	}
	if len(series) < 2 {
		return ct
	}
	ct.StdDev = stats.StdDev(series)
	ct.Slope = stats.Slope(series)
	switch {
	case ct.StdDev > volatileStdDev:
		ct.Trend = Volatile
	case math.Abs(ct.Slope) < stableSlope:
		ct.Trend = Stable
	case ct.Slope > 0:
		ct.Trend = Increasing
	default:
		ct.Trend = Decreasing
	}
	return ct
}

// comparePeriods contrasts the first and last period.
func comparePeriods(tp *TimePeriodResult) []string {
	out := []string{}
	n := len(tp.Periods)
	if n < 2 {
		return out
	}
	first, last := tp.Periods[0], tp.Periods[n-1]
	if first.Total != 0 {
		change := (last.Total - first.Total) / math.Abs(first.Total) * 100
		out = append(out, fmt.Sprintf("Total value moved from %s in %s to %s in %s (%s)",
			utils.FormatAmount(first.Total), first.Period, utils.FormatAmount(last.Total), last.Period,
			utils.FormatSignedPercent(change)))
	} else {
		out = append(out, fmt.Sprintf("Total value moved from %s in %s to %s in %s",
			utils.FormatAmount(first.Total), first.Period, utils.FormatAmount(last.Total), last.Period))
	}

	var gainer, loser *CategoryTrend
	var gain, loss float64
	for i := range tp.CategoryTrends {
		ct := &tp.CategoryTrends[i]
		d := ct.Contributions[n-1] - ct.Contributions[0]
		if d > gain {
			gain, gainer = d, ct
		}
		if d < loss {
			loss, loser = d, ct
		}
	}
	if gainer != nil {
		out = append(out, fmt.Sprintf("%s gained %.1f percentage points of share between %s and %s",
			gainer.Category, gain, first.Period, last.Period))
	}
	if loser != nil {
		out = append(out, fmt.Sprintf("%s lost %.1f percentage points of share between %s and %s",
			loser.Category, -loss, first.Period, last.Period))
	}

	if first.TopContributor != nil && last.TopContributor != nil {
		same := true
		for _, pb := range tp.Periods {
			if pb.TopContributor == nil || pb.TopContributor.Category != first.TopContributor.Category {
				same = false
				break
			}
		}
		if same {
			out = append(out, fmt.Sprintf("%s was the top contributor in every period", first.TopContributor.Category))
		} else if first.TopContributor.Category != last.TopContributor.Category {
			out = append(out, fmt.Sprintf("Top contributor changed from %s in %s to %s in %s",
				first.TopContributor.Category, first.Period, last.TopContributor.Category, last.Period))
		}
	}

	var inc, dec int
	var volatile []string
	for _, ct := range tp.CategoryTrends {
		switch ct.Trend {
		case Increasing:
			inc++
		case Decreasing:
			dec++
		case Volatile:
			volatile = append(volatile, ct.Category)
		}
	}
	if inc+dec > 0 {
		out = append(out, fmt.Sprintf("%d categories are gaining share and %d are losing share", inc, dec))
	}
	if len(volatile) > 0 {
		out = append(out, "Volatile share across periods: "+strings.Join(volatile, ", "))
	}
	return out
}

// seasonalPatterns reports peak and trough periods against the average period
// total and, when the data spans several years, the strongest and weakest
// season (quarter or month of year).
func seasonalPatterns(tp *TimePeriodResult) []string {
	out := []string{}
	if len(tp.Periods) < 2 {
		return out
	}
	totals := make([]float64, len(tp.Periods))
	for i, pb := range tp.Periods {
		totals[i] = pb.Total
	}
	avg := stats.Mean(totals)
	if avg == 0 {
		return out
	}
	peak, trough := 0, 0
	for i, v := range totals {
		if v > totals[peak] {
			peak = i
		}
		if v < totals[trough] {
			trough = i
		}
	}
	out = append(out,
		fmt.Sprintf("Peak period %s was %.1f%% above the average period total",
			tp.Periods[peak].Period, (totals[peak]-avg)/math.Abs(avg)*100),
		fmt.Sprintf("Lowest period %s was %.1f%% below the average period total",
			tp.Periods[trough].Period, (avg-totals[trough])/math.Abs(avg)*100),
	)

	var seasons []string
	bySeason := map[string][]float64{}
	for i, pb := range tp.Periods {
		_, s, ok := strings.Cut(pb.Period, "-")
		if !ok {
			continue
		}
		if _, seen := bySeason[s]; !seen {
			seasons = append(seasons, s)
		}
		bySeason[s] = append(bySeason[s], totals[i])
	}
	repeated := false
	for _, s := range seasons {
		if len(bySeason[s]) > 1 {
			repeated = true
			break
		}
	}
	if !repeated || len(seasons) < 2 {
		return out
	}
	best, worst := seasons[0], seasons[0]
	for _, s := range seasons {
		if stats.Mean(bySeason[s]) > stats.Mean(bySeason[best]) {
			best = s
		}
		if stats.Mean(bySeason[s]) < stats.Mean(bySeason[worst]) {
			worst = s
		}
	}
	unit := string(tp.PeriodType)
	out = append(out,
		fmt.Sprintf("%s is the strongest %s on average across years", best, unit),
		fmt.Sprintf("%s is the weakest %s on average across years", worst, unit),
	)
	return out
}
