// Package outlier flags unusual points in an actual, budget or variance
// series using z-scores, the interquartile range, or both.
package outlier

import (
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/period"
	"github.com/KaramelBytes/finsight-cli/internal/stats"
	"github.com/KaramelBytes/finsight-cli/internal/validate"
)

type point struct {
	index int
	date  string
	label string
	value float64
}

// Detect runs outlier detection over rows. It never fails loudly: invalid
// parameters and empty input produce Success=false with zeroed statistics.
func Detect(rows []Row, p Params) Result {
	p = p.withDefaults()
	res := newResult(p, len(rows))
	if err := validate.Struct(p); err != nil {
		return res.fail(err.Error())
	}

	pts := preprocess(rows, p.Target)
	res.DroppedRows = len(rows) - len(pts)
	if res.DroppedRows > 0 {
		log.Warn().Str("component", "outlier").Int("dropped", res.DroppedRows).
			Msg("rows without a usable date or value were dropped")
	}
	if len(pts) == 0 {
		return res.fail("No valid data points after preprocessing")
	}

	values := make([]float64, len(pts))
	for i, pt := range pts {
		values[i] = pt.value
	}
	sorted := stats.Sorted(values)
	st := describe(values, sorted, p.IQRMultiplier)
	res.Statistics = st

	for _, pt := range pts {
		o, flagged := evaluate(pt, st, sorted, p)
		pp := PlotPoint{Index: pt.index, Date: pt.date, Value: pt.value, IsOutlier: flagged}
		res.Plot.Points = append(res.Plot.Points, pp)
		if flagged {
			res.Outliers = append(res.Outliers, o)
			res.Plot.Outliers = append(res.Plot.Outliers, pp)
		}
	}
	sort.SliceStable(res.Outliers, func(i, j int) bool {
		a, b := math.Abs(res.Outliers[i].Deviation), math.Abs(res.Outliers[j].Deviation)
		if a != b {
			return a > b
		}
		return res.Outliers[i].Index < res.Outliers[j].Index
	})
	res.Plot.Mean, res.Plot.LowerBound, res.Plot.UpperBound = st.Mean, st.LowerBound, st.UpperBound

	res.Summary = summarize(res.Outliers, len(pts))
	res.Insights = insights(res)
	res.Recommendations = recommendations(res)
	res.Success = true

	log.Debug().Str("component", "outlier").
		Int("points", len(pts)).
		Int("outliers", len(res.Outliers)).
		Str("method", string(p.Method)).
		Msg("outlier detection complete")
	return res
}

func newResult(p Params, inputRows int) Result {
	return Result{
		Method:          p.Method,
		Target:          p.Target,
		Threshold:       p.Threshold,
		IQRMultiplier:   p.IQRMultiplier,
		InputRows:       inputRows,
		Outliers:        []Outlier{},
		Plot:            Plot{Points: []PlotPoint{}, Outliers: []PlotPoint{}},
		Insights:        []string{},
		Recommendations: []string{},
	}
}

func (r Result) fail(msg string) Result {
	r.Success = false
	r.ErrorMessage = msg
	r.Statistics = Statistics{}
	r.Summary = Summary{}
	log.Debug().Str("component", "outlier").Str("reason", msg).Msg("outlier detection rejected")
	return r
}

// preprocess drops rows with a non-numeric actual or unparseable date and,
// for budget and variance targets, rows without a numeric budget.
func preprocess(rows []Row, target Target) []point {
	out := make([]point, 0, len(rows))
	for i, r := range rows {
		actual, ok := r.Actual.Float()
		if !ok {
			continue
		}
		t, ok := period.ParseDate(r.Date)
		if !ok {
			continue
		}
		v := actual
		if target != TargetActual {
			budget, ok := r.Budget.Float()
			if !ok {
				continue
			}
			if target == TargetBudget {
				v = budget
			} else {
				v = actual - budget
			}
		}
		out = append(out, point{index: i, date: t.Format("2006-01-02"), label: r.Label, value: v})
	}
	return out
}

// describe computes summary statistics. Quartiles are taken at
// sorted[floor(n/4)] and sorted[floor(3n/4)].
func describe(values, sorted []float64, multiplier float64) Statistics {
	n := len(sorted)
	st := Statistics{
		Count:  n,
		Mean:   stats.Mean(values),
		Median: stats.Median(values),
		StdDev: stats.StdDev(values),
		Min:    sorted[0],
		Max:    sorted[n-1],
		Q1:     sorted[int(math.Floor(float64(n)*0.25))],
		Q3:     sorted[int(math.Floor(float64(n)*0.75))],
	}
	st.IQR = st.Q3 - st.Q1
	st.LowerBound = st.Q1 - multiplier*st.IQR
	st.UpperBound = st.Q3 + multiplier*st.IQR
	return st
}

func evaluate(pt point, st Statistics, sorted []float64, p Params) (Outlier, bool) {
	var z *float64
	if st.StdDev != 0 {
		zv := (pt.value - st.Mean) / st.StdDev
		z = &zv
	}
	var by []Method
	if p.usesZScore() && z != nil && math.Abs(*z) > p.Threshold {
		by = append(by, MethodZScore)
	}
	byIQR := p.usesIQR() && (pt.value < st.LowerBound || pt.value > st.UpperBound)
	if byIQR {
		by = append(by, MethodIQR)
	}
	if len(by) == 0 {
		return Outlier{}, false
	}

	sev := Mild
	if p.usesZScore() && z != nil {
		sev = worse(sev, zSeverity(math.Abs(*z)))
	}
	if byIQR {
		sev = worse(sev, iqrSeverity(pt.value, st))
	}
	side := Lower
	if pt.value > st.Mean {
		side = Upper
	}
	dev := pt.value - st.Mean
	var devPct float64
	if st.Mean != 0 {
		devPct = dev / math.Abs(st.Mean) * 100
	}
	return Outlier{
		Index:            pt.index,
		Date:             pt.date,
		Label:            pt.label,
		Value:            pt.value,
		ZScore:           z,
		Type:             side,
		Severity:         sev,
		PercentileRank:   percentileRank(sorted, pt.value),
		Deviation:        dev,
		DeviationPercent: devPct,
		FlaggedBy:        by,
	}, true
}

func zSeverity(absZ float64) Severity {
	switch {
	case absZ > 3:
		return Extreme
	case absZ > 2.5:
		return Moderate
	}
	return Mild
}

// iqrSeverity grades by distance past the quartiles: beyond 3·IQR is
// extreme, beyond 2·IQR moderate.
func iqrSeverity(v float64, st Statistics) Severity {
	switch {
	case v < st.Q1-3*st.IQR || v > st.Q3+3*st.IQR:
		return Extreme
	case v < st.Q1-2*st.IQR || v > st.Q3+2*st.IQR:
		return Moderate
	}
	return Mild
}

func worse(a, b Severity) Severity {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// percentileRank is the share of values strictly below v, times 100.
func percentileRank(sorted []float64, v float64) float64 {
	below := sort.SearchFloat64s(sorted, v)
	return float64(below) / float64(len(sorted)) * 100
}

func summarize(outliers []Outlier, total int) Summary {
	s := Summary{TotalPoints: total, OutlierCount: len(outliers)}
	if total > 0 {
		s.OutlierRatio = float64(len(outliers)) / float64(total) * 100
	}
	for _, o := range outliers {
		if o.Type == Upper {
			s.UpperCount++
		} else {
			s.LowerCount++
		}
		switch o.Severity {
		case Extreme:
			s.ExtremeCount++
		case Moderate:
			s.ModerateCount++
		default:
			s.MildCount++
		}
	}
	switch {
	case s.OutlierRatio < 2:
		s.RiskLevel, s.DataQuality = "low", "excellent"
	case s.OutlierRatio < 5:
		s.RiskLevel, s.DataQuality = "medium", "good"
	case s.OutlierRatio < 10:
		s.RiskLevel, s.DataQuality = "high", "fair"
	default:
		s.RiskLevel, s.DataQuality = "critical", "poor"
	}
	return s
}

// Columns maps dataset columns onto Row fields. Date and Actual are required.
type Columns struct {
	Date     string
	Actual   string
	Budget   string
	Forecast string
	Label    string
}

// DetectDataset builds rows from ds and runs Detect.
func DetectDataset(ds *dataset.Dataset, cols Columns, p Params) Result {
	if cols.Date == "" || cols.Actual == "" {
		return newResult(p.withDefaults(), ds.Len()).fail("Date and actual columns are required")
	}
	if missing := ds.Missing(cols.Date, cols.Actual, cols.Budget, cols.Forecast, cols.Label); len(missing) > 0 {
		return newResult(p.withDefaults(), ds.Len()).fail("Missing required columns: " + strings.Join(missing, ", "))
	}
	rows := make([]Row, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		rec := ds.Records[i]
		rows[i] = Row{
			Date:     rec.Get(cols.Date),
			Actual:   rec.Get(cols.Actual),
			Budget:   optional(rec, cols.Budget),
			Forecast: optional(rec, cols.Forecast),
		}
		if cols.Label != "" {
			rows[i].Label = strings.TrimSpace(rec.Get(cols.Label).String())
		}
	}
	return Detect(rows, p)
}

func optional(rec dataset.Record, col string) dataset.Value {
	if col == "" {
		return dataset.Absent()
	}
	return rec.Get(col)
}
