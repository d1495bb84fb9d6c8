// Package trend detects direction and momentum in a period series using
// simple or exponential moving averages.
package trend

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/KaramelBytes/finsight-cli/internal/stats"
	"github.com/KaramelBytes/finsight-cli/internal/validate"
)

// Analyze sorts series by period label and computes moving averages over a
// trailing window. When the series carries two or more categories, the
// overall series is the per-period sum and each category is analyzed on its
// own as well.
//
// Analyze fails with ErrNoData, ErrWindowSize or ErrNonNumeric (wrapped) on
// contract violations; series is never modified.
func Analyze(series []Point, p Params) (*Result, error) {
	if p.TrendType == "" {
		p.TrendType = Simple
	}
	if err := validate.Struct(p); err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}
	if p.WindowSize < 2 || p.WindowSize > len(series) {
		return nil, fmt.Errorf("%w: %d (need 2..%d)", ErrWindowSize, p.WindowSize, len(series))
	}

	sorted := make([]Point, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Period < sorted[j].Period })

	labels := make([]string, len(sorted))
	values := make([]float64, len(sorted))
	var categories []string
	seen := map[string]bool{}
	for i, pt := range sorted {
		f, ok := pt.Value.Float()
		if !ok {
			return nil, fmt.Errorf("%w: period %q", ErrNonNumeric, pt.Period)
		}
		labels[i], values[i] = pt.Period, f
		if pt.Category != "" && !seen[pt.Category] {
			seen[pt.Category] = true
			categories = append(categories, pt.Category)
		}
	}

	res := &Result{WindowSize: p.WindowSize, TrendType: p.TrendType}
	if len(categories) >= 2 {
		labels, values = sumByPeriod(labels, values)
		if p.WindowSize > len(values) {
			return nil, fmt.Errorf("%w: %d (need 2..%d periods)", ErrWindowSize, p.WindowSize, len(values))
		}
		sort.Strings(categories)
		for _, cat := range categories {
			cl, cv := filterCategory(sorted, cat)
			if len(cv) < p.WindowSize {
				continue
			}
			pts := movingAverages(cl, cv, p)
			res.Categories = append(res.Categories, CategoryTrend{
				Category: cat,
				Points:   pts,
				Summary:  summarize(cl, cv, pts),
			})
		}
	}

	res.Points = movingAverages(labels, values, p)
	res.Summary = summarize(labels, values, res.Points)
	res.Insights = insights(res)
	res.Recommendations = recommendations(res)

	log.Debug().Str("component", "trend").
		Int("points", len(series)).
		Int("window", p.WindowSize).
		Str("type", string(p.TrendType)).
		Msg("trend analysis complete")
	return res, nil
}

// sumByPeriod collapses already sorted labels into per-label totals.
func sumByPeriod(labels []string, values []float64) ([]string, []float64) {
	var ol []string
	var ov []float64
	for i, l := range labels {
		if n := len(ol); n > 0 && ol[n-1] == l {
			ov[n-1] += values[i]
			continue
		}
		ol = append(ol, l)
		ov = append(ov, values[i])
	}
	return ol, ov
}

func filterCategory(sorted []Point, cat string) (labels []string, values []float64) {
	for _, pt := range sorted {
		if pt.Category != cat {
			continue
		}
		f, _ := pt.Value.Float()
		labels = append(labels, pt.Period)
		values = append(values, f)
	}
	return labels, values
}

func movingAverages(labels []string, values []float64, p Params) []TrendPoint {
	w := p.WindowSize
	out := make([]TrendPoint, 0, len(values)-w+1)
	for i := w - 1; i < len(values); i++ {
		window := values[i-w+1 : i+1]
		var ma float64
		if p.TrendType == Exponential {
			ma = ema(window)
		} else {
			ma = stats.Mean(window)
		}
		var pc float64
		if ma != 0 {
			pc = (values[i] - ma) / ma * 100
		}
		out = append(out, TrendPoint{
			Period:        labels[i],
			Value:         values[i],
			MovingAverage: ma,
			PercentChange: pc,
			Direction:     directionOf(pc),
			Strength:      strengthOf(pc),
		})
	}
	return out
}

// ema is seeded at the window's first value with alpha = 2/(w+1).
func ema(window []float64) float64 {
	alpha := 2 / float64(len(window)+1)
	e := window[0]
	for _, v := range window[1:] {
		e = alpha*v + (1-alpha)*e
	}
	return e
}

func directionOf(pc float64) Direction {
	switch {
	case math.Abs(pc) < StableThreshold:
		return Flat
	case pc > 0:
		return Upward
	default:
		return Downward
	}
}

func strengthOf(pc float64) Strength {
	a := math.Abs(pc)
	switch {
	case a < 5:
		return Weak
	case a < 15:
		return Moderate
	default:
		return Strong
	}
}

func summarize(labels []string, values []float64, pts []TrendPoint) Summary {
	s := Summary{
		DataPoints:     len(values),
		AnalyzedPoints: len(pts),
		Momentum:       Steady,
		OverallTrend:   Mixed,
	}
	if len(labels) > 0 {
		s.FirstPeriod, s.LastPeriod = labels[0], labels[len(labels)-1]
	}
	pcs := make([]float64, len(pts))
	for i, pt := range pts {
		pcs[i] = pt.PercentChange
		switch pt.Direction {
		case Upward:
			s.UpwardPoints++
		case Downward:
			s.DownwardPoints++
		default:
			s.StablePoints++
		}
	}
	s.OverallTrend, s.TrendConsistency = vote(s.UpwardPoints, s.DownwardPoints, s.StablePoints)
	s.AverageGrowthRate = growthRate(values)
	s.Volatility = stats.StdDev(pcs)
	s.Momentum = momentumOf(pcs)
	s.TrendScore = score(s)
	s.Health = healthOf(s.TrendScore)
	return s
}

// vote returns the majority direction and its share of points; ties for the
// lead are mixed.
func vote(up, down, flat int) (Direction, float64) {
	total := up + down + flat
	if total == 0 {
		return Mixed, 0
	}
	best := max(up, down, flat)
	share := float64(best) / float64(total) * 100
	leaders := 0
	for _, c := range []int{up, down, flat} {
		if c == best {
			leaders++
		}
	}
	if leaders > 1 {
		return Mixed, share
	}
	switch best {
	case up:
		return Upward, share
	case down:
		return Downward, share
	default:
		return Flat, share
	}
}

// growthRate is the mean period-over-period percent change of the raw
// values, skipping steps from zero.
func growthRate(values []float64) float64 {
	var rates []float64
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		rates = append(rates, (values[i]-values[i-1])/math.Abs(values[i-1])*100)
	}
	return stats.Mean(rates)
}

// momentumOf looks at the last three deltas of the percent-change series.
func momentumOf(pcs []float64) Momentum {
	var deltas []float64
	for i := 1; i < len(pcs); i++ {
		deltas = append(deltas, pcs[i]-pcs[i-1])
	}
	if len(deltas) < 2 {
		return Steady
	}
	if len(deltas) > 3 {
		deltas = deltas[len(deltas)-3:]
	}
	up, down := true, true
	for _, d := range deltas {
		if d <= 0 {
			up = false
		}
		if d >= 0 {
			down = false
		}
	}
	switch {
	case up:
		return Accelerating
	case down:
		return Decelerating
	}
	return Steady
}

func score(s Summary) float64 {
	sc := 50.0
	switch s.OverallTrend {
	case Upward:
		sc += 20 + 0.3*(s.TrendConsistency-50)
	case Downward:
		sc -= 20 + 0.3*(s.TrendConsistency-50)
	}
	sc -= math.Min(s.Volatility, 20)
	switch s.Momentum {
	case Accelerating:
		sc += 10
	case Decelerating:
		sc -= 10
	}
	return math.Max(0, math.Min(100, sc))
}

func healthOf(score float64) string {
	switch {
	case score >= 75:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	default:
		return "poor"
	}
}
