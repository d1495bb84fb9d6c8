// Package variance compares budget against actual per calendar period, and a
// single measure against its own previous period.
package variance

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/period"
	"github.com/KaramelBytes/finsight-cli/internal/quality"
	"github.com/KaramelBytes/finsight-cli/internal/validate"
)

// AnalyzeBudget sums budget and actual per period and reports the variance
// actual - budget. Without a date column every row falls into AllData.
func AnalyzeBudget(ds *dataset.Dataset, p BudgetParams) BudgetResult {
	res := BudgetResult{
		Metadata:        newMetadata(ds, p.DateColumn, p.PeriodType),
		Periods:         []BudgetPeriod{},
		Insights:        []string{},
		Recommendations: []string{},
	}
	if msg := check(ds, p, p.BudgetColumn, p.ActualColumn, p.DateColumn); msg != "" {
		res.ErrorMessage = msg
		return res
	}

	buckets, skipped, span := bucketize(ds, p.DateColumn, res.Metadata.PeriodType)
	res.Metadata.SkippedRows = skipped
	res.Metadata.DateRange = span
	res.Metadata.PeriodCount = len(buckets)

	t := &res.Totals
	for _, b := range buckets {
		budget, bi := sumColumn(ds, b.rows, p.BudgetColumn)
		actual, ai := sumColumn(ds, b.rows, p.ActualColumn)
		res.Metadata.InvalidCells += bi + ai
		res.Metadata.ValidRows += len(b.rows)

		bp := BudgetPeriod{
			Period:   b.key,
			Start:    b.startLabel(),
			Budget:   budget,
			Actual:   actual,
			Variance: actual - budget,
			RowCount: len(b.rows),
		}
		bp.VariancePercentage = percent(bp.Variance, budget)
		bp.Status = budgetStatus(bp.Variance)
		res.Periods = append(res.Periods, bp)

		t.Budget += budget
		t.Actual += actual
		if bp.Status == Favorable {
			t.FavorablePeriods++
		} else {
			t.UnfavorablePeriods++
		}
		if bp.Variance > 0 && (t.LargestFavorable == nil || bp.Variance > t.LargestFavorable.Variance) {
			t.LargestFavorable = &PeriodRef{Period: bp.Period, Variance: bp.Variance, VariancePercentage: bp.VariancePercentage}
		}
		if bp.Variance < 0 && (t.LargestUnfavorable == nil || bp.Variance < t.LargestUnfavorable.Variance) {
			t.LargestUnfavorable = &PeriodRef{Period: bp.Period, Variance: bp.Variance, VariancePercentage: bp.VariancePercentage}
		}
	}
	t.Variance = t.Actual - t.Budget
	t.VariancePercentage = percent(t.Variance, t.Budget)
	t.Status = budgetStatus(t.Variance)
	t.Performance = performanceOf(t.VariancePercentage)

	res.Metadata.DataQuality = grade(res.Metadata, 2, p.DateColumn != "")
	res.Insights = budgetInsights(res)
	res.Recommendations = budgetRecommendations(res)
	res.Success = true
	logDone("budget", res.Metadata)
	return res
}

// AnalyzePeriod compares each period's total of ValueColumn with the period
// before it. Periods are chronological regardless of row order.
func AnalyzePeriod(ds *dataset.Dataset, p PeriodParams) PeriodResult {
	res := PeriodResult{
		Metadata:        newMetadata(ds, p.DateColumn, p.PeriodType),
		Periods:         []ValuePeriod{},
		Insights:        []string{},
		Recommendations: []string{},
	}
	if msg := check(ds, p, p.ValueColumn, p.DateColumn); msg != "" {
		res.ErrorMessage = msg
		return res
	}

	buckets, skipped, span := bucketize(ds, p.DateColumn, res.Metadata.PeriodType)
	res.Metadata.SkippedRows = skipped
	res.Metadata.DateRange = span
	res.Metadata.PeriodCount = len(buckets)

	t := &res.Totals
	var sumChange float64
	for i, b := range buckets {
		v, inv := sumColumn(ds, b.rows, p.ValueColumn)
		res.Metadata.InvalidCells += inv
		res.Metadata.ValidRows += len(b.rows)

		vp := ValuePeriod{
			Period:   b.key,
			Start:    b.startLabel(),
			Value:    v,
			Status:   Baseline,
			RowCount: len(b.rows),
		}
		if i > 0 {
			prev := res.Periods[i-1].Value
			d := v - prev
			pc := percent(d, prev)
			vp.PreviousValue, vp.Variance, vp.VariancePercentage = &prev, &d, &pc
			vp.Status = changeStatus(d)
			sumChange += d
			switch {
			case d > 0:
				t.Increases++
				if t.LargestIncrease == nil || d > t.LargestIncrease.Variance {
					t.LargestIncrease = &PeriodRef{Period: vp.Period, Variance: d, VariancePercentage: pc}
				}
			case d < 0:
				t.Decreases++
				if t.LargestDecrease == nil || d < t.LargestDecrease.Variance {
					t.LargestDecrease = &PeriodRef{Period: vp.Period, Variance: d, VariancePercentage: pc}
				}
			}
		}
		res.Periods = append(res.Periods, vp)
	}

	if first, last, ok := endpoints(buckets); ok {
		t.FirstValue = res.Periods[first].Value
		t.LastValue = res.Periods[last].Value
		t.TotalChange = t.LastValue - t.FirstValue
		t.GrowthRate = percent(t.TotalChange, t.FirstValue)
	}
	if n := len(res.Periods); n > 1 {
		t.AverageChange = sumChange / float64(n-1)
	}

	res.Metadata.DataQuality = grade(res.Metadata, 1, true)
	res.Insights = periodInsights(res)
	res.Recommendations = periodRecommendations(res)
	res.Success = true
	logDone("period", res.Metadata)
	return res
}

func newMetadata(ds *dataset.Dataset, dateCol, periodType string) Metadata {
	md := Metadata{TotalRows: ds.Len(), DateColumn: dateCol, DataQuality: quality.Poor}
	if dateCol != "" {
		md.PeriodType = resolveType(periodType)
	}
	return md
}

// check returns a failure message, or "" when p and ds are usable.
func check(ds *dataset.Dataset, p any, cols ...string) string {
	if err := validate.Struct(p); err != nil {
		return err.Error()
	}
	if ds.Len() == 0 {
		return "No data available for analysis"
	}
	if missing := ds.Missing(cols...); len(missing) > 0 {
		return "Missing required columns: " + strings.Join(missing, ", ")
	}
	return ""
}

func resolveType(s string) period.Type {
	if s == "" {
		return DefaultPeriodType
	}
	t, err := period.ParseType(s)
	if err != nil {
		return DefaultPeriodType
	}
	return t
}

type bucket struct {
	key   string
	start time.Time
	dated bool
	rows  []int
}

func (b bucket) startLabel() string {
	if !b.dated {
		return ""
	}
	return b.start.Format("2006-01-02")
}

// bucketize groups rows by dateCol, or into a single AllData bucket when
// dateCol is empty. skipped counts rows whose date does not parse.
func bucketize(ds *dataset.Dataset, dateCol string, typ period.Type) (out []bucket, skipped int, span *period.Range) {
	if dateCol == "" {
		rows := make([]int, ds.Len())
		for i := range rows {
			rows[i] = i
		}
		return []bucket{{key: AllData, rows: rows}}, 0, nil
	}
	groups, skipped := period.Group(ds, dateCol, typ)
	out = make([]bucket, len(groups))
	for i, g := range groups {
		out[i] = bucket{key: g.Key, start: g.Start, dated: true, rows: g.Rows}
	}
	if first, last, ok := period.Span(groups); ok {
		span = period.NewRange(first, last)
	}
	if skipped > 0 {
		log.Warn().Str("component", "variance").Str("column", dateCol).Int("skipped", skipped).
			Msg("rows with unparseable dates were skipped")
	}
	return out, skipped, span
}

// endpoints returns the indices of the earliest and latest bucket by start.
func endpoints(buckets []bucket) (first, last int, ok bool) {
	if len(buckets) == 0 {
		return 0, 0, false
	}
	for i, b := range buckets {
		if b.start.Before(buckets[first].start) {
			first = i
		}
		if b.start.After(buckets[last].start) {
			last = i
		}
	}
	return first, last, true
}

// sumColumn adds the numeric cells of col; other cells count as 0 and are
// reported in invalid.
func sumColumn(ds *dataset.Dataset, rows []int, col string) (sum float64, invalid int) {
	for _, r := range rows {
		f, ok := ds.Records[r].Get(col).Float()
		if !ok {
			invalid++
			continue
		}
		sum += f
	}
	return sum, invalid
}

func percent(v, base float64) float64 {
	if base == 0 {
		return 0
	}
	return v / base * 100
}

func budgetStatus(v float64) Status {
	if v >= 0 {
		return Favorable
	}
	return Unfavorable
}

func changeStatus(d float64) Status {
	switch {
	case d > 0:
		return Increase
	case d < 0:
		return Decrease
	}
	return Unchanged
}

func performanceOf(pct float64) Performance {
	switch {
	case pct > OnTargetBand:
		return AboveBudget
	case pct < -OnTargetBand:
		return BelowBudget
	}
	return OnTarget
}

// grade rates populated measure cells over all rows; undated rows count as
// unpopulated. Without a date column the row count stands in for the
// group count.
func grade(md Metadata, measures int, dated bool) quality.Grade {
	cells := md.TotalRows * measures
	populated := md.ValidRows*measures - md.InvalidCells
	groups := md.PeriodCount
	if !dated {
		groups = md.ValidRows
	}
	return quality.Assess(quality.Ratio(populated, cells), groups)
}

func logDone(kind string, md Metadata) {
	log.Debug().Str("component", "variance").Str("kind", kind).
		Int("rows", md.ValidRows).
		Int("periods", md.PeriodCount).
		Msg("variance analysis complete")
}
