package trend

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/period"
)

func series(vals ...float64) []Point {
	out := make([]Point, len(vals))
	for i, v := range vals {
		out[i] = Point{Period: fmt.Sprintf("2024-%02d", i+1), Value: dataset.Number(v)}
	}
	return out
}

func TestStrictlyIncreasingIsUpward(t *testing.T) {
	res, err := Analyze(series(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), Params{WindowSize: 3, TrendType: Simple})
	require.NoError(t, err)
	assert.Equal(t, Upward, res.Summary.OverallTrend)
	assert.Greater(t, res.Summary.TrendScore, 50.0)
	assert.Equal(t, 100.0, res.Summary.TrendConsistency)
	assert.Len(t, res.Points, 8)
	assert.Equal(t, "2024-03", res.Points[0].Period)
	assert.Equal(t, 10, res.Summary.DataPoints)
}

func TestStrictlyDecreasingIsDownward(t *testing.T) {
	res, err := Analyze(series(10, 9, 8, 7, 6, 5, 4, 3, 2, 1), Params{WindowSize: 3})
	require.NoError(t, err)
	assert.Equal(t, Downward, res.Summary.OverallTrend)
	assert.Less(t, res.Summary.TrendScore, 50.0)
	assert.GreaterOrEqual(t, res.Summary.TrendScore, 0.0)
	assert.Equal(t, "poor", res.Summary.Health)
}

func TestMovingAverages(t *testing.T) {
	res, err := Analyze(series(10, 20, 30), Params{WindowSize: 3})
	require.NoError(t, err)
	require.Len(t, res.Points, 1)
	assert.InDelta(t, 20, res.Points[0].MovingAverage, 1e-9)
	assert.InDelta(t, 50, res.Points[0].PercentChange, 1e-9)
	assert.Equal(t, Strong, res.Points[0].Strength)

	res, err = Analyze(series(10, 20, 30), Params{WindowSize: 3, TrendType: Exponential})
	require.NoError(t, err)
	// alpha = 0.5: 10 -> 15 -> 22.5
	assert.InDelta(t, 22.5, res.Points[0].MovingAverage, 1e-9)
	assert.InDelta(t, 100.0/3, res.Points[0].PercentChange, 1e-9)
}

func TestDirectionAndStrength(t *testing.T) {
	assert.Equal(t, Flat, directionOf(1.99))
	assert.Equal(t, Flat, directionOf(-1.99))
	assert.Equal(t, Upward, directionOf(StableThreshold))
	assert.Equal(t, Downward, directionOf(-2.5))
	assert.Equal(t, Weak, strengthOf(4.9))
	assert.Equal(t, Moderate, strengthOf(-5))
	assert.Equal(t, Strong, strengthOf(15))
}

func TestZeroMovingAverage(t *testing.T) {
	res, err := Analyze(series(0, 0, 0), Params{WindowSize: 2})
	require.NoError(t, err)
	for _, pt := range res.Points {
		assert.Equal(t, 0.0, pt.PercentChange)
		assert.Equal(t, Flat, pt.Direction)
	}
	assert.Equal(t, Flat, res.Summary.OverallTrend)
	assert.Equal(t, 50.0, res.Summary.TrendScore)
	assert.Equal(t, "fair", res.Summary.Health)
}

func TestSortsByPeriodLabel(t *testing.T) {
	pts := []Point{
		{Period: "2024-03", Value: dataset.Number(30)},
		{Period: "2024-01", Value: dataset.Number(10)},
		{Period: "2024-02", Value: dataset.Number(20)},
	}
	res, err := Analyze(pts, Params{WindowSize: 2})
	require.NoError(t, err)
	assert.Equal(t, "2024-02", res.Points[0].Period)
	assert.Equal(t, "2024-03", res.Points[1].Period)
	assert.Equal(t, "2024-03", pts[0].Period, "input is not reordered")
	assert.Equal(t, "2024-01", res.Summary.FirstPeriod)
}

func TestErrors(t *testing.T) {
	_, err := Analyze(nil, Params{WindowSize: 2})
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Analyze(series(1, 2, 3), Params{WindowSize: 1})
	assert.ErrorIs(t, err, ErrWindowSize)

	_, err = Analyze(series(1, 2, 3), Params{WindowSize: 4})
	assert.ErrorIs(t, err, ErrWindowSize)

	pts := series(1, 2, 3)
	pts[1].Value = dataset.Text("n/a")
	_, err = Analyze(pts, Params{WindowSize: 2})
	assert.ErrorIs(t, err, ErrNonNumeric)
	assert.Contains(t, err.Error(), "2024-02")

	_, err = Analyze(series(1, 2, 3), Params{WindowSize: 2, TrendType: "weighted"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trendType")
}

func TestMomentum(t *testing.T) {
	assert.Equal(t, Accelerating, momentumOf([]float64{0, 1, 3, 6}))
	assert.Equal(t, Decelerating, momentumOf([]float64{9, 5, 4, 3}))
	assert.Equal(t, Steady, momentumOf([]float64{1, 3, 2, 4}))
	assert.Equal(t, Steady, momentumOf([]float64{1, 2}), "a single delta is not enough")
	// Only the last three deltas count.
	assert.Equal(t, Accelerating, momentumOf([]float64{50, 0, 1, 2, 3}))
}

func TestVote(t *testing.T) {
	d, c := vote(3, 1, 0)
	assert.Equal(t, Upward, d)
	assert.Equal(t, 75.0, c)

	d, c = vote(2, 2, 1)
	assert.Equal(t, Mixed, d)
	assert.Equal(t, 40.0, c)

	d, _ = vote(0, 0, 0)
	assert.Equal(t, Mixed, d)
}

func TestScoreClamped(t *testing.T) {
	hi := score(Summary{OverallTrend: Upward, TrendConsistency: 100, Momentum: Accelerating})
	assert.Equal(t, 95.0, hi)
	lo := score(Summary{OverallTrend: Downward, TrendConsistency: 100, Volatility: 80, Momentum: Decelerating})
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, "excellent", healthOf(hi))
	assert.Equal(t, "good", healthOf(60))
}

func TestCategoryTrends(t *testing.T) {
	var pts []Point
	a := []float64{10, 20, 30, 40}
	b := []float64{40, 30, 20, 10}
	for i := range a {
		label := fmt.Sprintf("2024-%02d", i+1)
		pts = append(pts,
			Point{Period: label, Value: dataset.Number(b[i]), Category: "B"},
			Point{Period: label, Value: dataset.Number(a[i]), Category: "A"},
		)
	}
	res, err := Analyze(pts, Params{WindowSize: 2})
	require.NoError(t, err)
	assert.Len(t, res.Points, 3, "overall series is summed per period")
	assert.Equal(t, Flat, res.Summary.OverallTrend)
	require.Len(t, res.Categories, 2)
	assert.Equal(t, "A", res.Categories[0].Category)
	assert.Equal(t, Upward, res.Categories[0].Summary.OverallTrend)
	assert.Equal(t, Downward, res.Categories[1].Summary.OverallTrend)

	_, err = Analyze(pts, Params{WindowSize: 5})
	assert.ErrorIs(t, err, ErrWindowSize, "window larger than the number of periods")
}

func TestSeriesFromDataset(t *testing.T) {
	d := func(m time.Month, day int) dataset.Value {
		return dataset.Date(time.Date(2024, m, day, 0, 0, 0, 0, time.UTC))
	}
	ds := dataset.New([]string{"date", "sales", "region"},
		dataset.Record{"date": d(1, 5), "sales": dataset.Number(10), "region": dataset.Text("A")},
		dataset.Record{"date": d(2, 1), "sales": dataset.Number(7), "region": dataset.Text("B")},
		dataset.Record{"date": d(1, 20), "sales": dataset.Number(5), "region": dataset.Text("A")},
		dataset.Record{"date": dataset.Text("bad"), "sales": dataset.Number(1), "region": dataset.Text("A")},
		dataset.Record{"date": d(2, 3), "sales": dataset.Text("x"), "region": dataset.Text("A")},
	)
	pts, err := SeriesFromDataset(ds, SeriesColumns{Date: "date", Value: "sales", Category: "region"}, period.Month)
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, Point{Period: "2024-01", Value: dataset.Number(15), Category: "A"}, pts[0])
	assert.Equal(t, Point{Period: "2024-02", Value: dataset.Number(7), Category: "B"}, pts[1])

	q, err := SeriesFromDataset(ds, SeriesColumns{Date: "date", Value: "sales"}, period.Quarter)
	require.NoError(t, err)
	require.Len(t, q, 1)
	assert.Equal(t, "2024-Q1", q[0].Period)

	_, err = SeriesFromDataset(ds, SeriesColumns{Date: "date", Value: "revenue"}, period.Month)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revenue")
}
