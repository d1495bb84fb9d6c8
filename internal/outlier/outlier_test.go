package outlier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
)

func actuals(vals ...float64) []Row {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]Row, len(vals))
	for i, v := range vals {
		rows[i] = Row{Date: dataset.Date(base.AddDate(0, 0, i)), Actual: dataset.Number(v)}
	}
	return rows
}

func TestIQRExample(t *testing.T) {
	res := Detect(actuals(10, 12, 11, 13, 9, 100), Params{Method: MethodIQR})
	require.True(t, res.Success, res.ErrorMessage)

	st := res.Statistics
	assert.Equal(t, 10.0, st.Q1)
	assert.Equal(t, 13.0, st.Q3)
	assert.Equal(t, 3.0, st.IQR)
	assert.Equal(t, 5.5, st.LowerBound)
	assert.Equal(t, 17.5, st.UpperBound)
	assert.Equal(t, 11.5, st.Median)

	require.Len(t, res.Outliers, 1)
	o := res.Outliers[0]
	assert.Equal(t, 100.0, o.Value)
	assert.Equal(t, Upper, o.Type)
	assert.Equal(t, Extreme, o.Severity)
	assert.Equal(t, []Method{MethodIQR}, o.FlaggedBy)
	assert.Equal(t, "2024-01-06", o.Date)
	assert.Equal(t, 5, o.Index)
	assert.InDelta(t, 500.0/6, o.PercentileRank, 1e-9)

	assert.Len(t, res.Plot.Points, 6)
	assert.Len(t, res.Plot.Outliers, 1)
	assert.Equal(t, st.UpperBound, res.Plot.UpperBound)
}

func TestIQRNoOutliers(t *testing.T) {
	res := Detect(actuals(10, 12, 11, 13, 9), Params{Method: MethodIQR})
	require.True(t, res.Success)
	assert.Empty(t, res.Outliers)
	assert.Equal(t, "low", res.Summary.RiskLevel)
	assert.Equal(t, "excellent", res.Summary.DataQuality)
}

func TestBoundsProperty(t *testing.T) {
	vals := []float64{3, 50, 4, 5, 6, 5, 4, -40, 5, 6, 7, 5, 4, 30}
	res := Detect(actuals(vals...), Params{Method: MethodIQR, IQRMultiplier: 1})
	require.True(t, res.Success)
	st := res.Statistics
	assert.Equal(t, st.Q1-st.IQR, st.LowerBound)
	assert.Equal(t, st.Q3+st.IQR, st.UpperBound)

	flagged := map[int]bool{}
	for _, o := range res.Outliers {
		flagged[o.Index] = true
	}
	for i, v := range vals {
		if v < st.LowerBound || v > st.UpperBound {
			assert.True(t, flagged[i], "value %v at %d is outside the bounds", v, i)
		}
	}
}

func TestZScoreSeverity(t *testing.T) {
	vals := make([]float64, 0, 21)
	for i := 0; i < 20; i++ {
		vals = append(vals, 10)
	}
	vals = append(vals, 100)
	res := Detect(actuals(vals...), Params{Method: MethodZScore})
	require.True(t, res.Success)
	require.Len(t, res.Outliers, 1)
	o := res.Outliers[0]
	require.NotNil(t, o.ZScore)
	assert.Greater(t, *o.ZScore, 3.0)
	assert.Equal(t, Extreme, o.Severity)
	assert.Equal(t, []Method{MethodZScore}, o.FlaggedBy)
}

func TestZeroStdDev(t *testing.T) {
	res := Detect(actuals(5, 5, 5, 5), Params{Method: MethodZScore})
	require.True(t, res.Success)
	assert.Empty(t, res.Outliers)
	assert.Equal(t, 0.0, res.Statistics.StdDev)
}

func TestSeverityTiers(t *testing.T) {
	assert.Equal(t, Mild, zSeverity(2.5))
	assert.Equal(t, Moderate, zSeverity(2.6))
	assert.Equal(t, Extreme, zSeverity(3.1))

	st := Statistics{Q1: 10, Q3: 20, IQR: 10}
	assert.Equal(t, Mild, iqrSeverity(36, st))
	assert.Equal(t, Moderate, iqrSeverity(41, st))
	assert.Equal(t, Extreme, iqrSeverity(-21, st))
	assert.Equal(t, Extreme, worse(Moderate, Extreme))
	assert.Equal(t, Moderate, worse(Moderate, Mild))
}

func TestSortedByDeviation(t *testing.T) {
	vals := []float64{10, 11, 10, 12, 11, 10, 11, 12, 10, -30, 11, 10, 80}
	res := Detect(actuals(vals...), Params{Method: MethodIQR})
	require.True(t, res.Success)
	require.Len(t, res.Outliers, 2)
	assert.Equal(t, 80.0, res.Outliers[0].Value)
	assert.Equal(t, -30.0, res.Outliers[1].Value)
	assert.Equal(t, Lower, res.Outliers[1].Type)
	assert.Equal(t, 1, res.Summary.UpperCount)
	assert.Equal(t, 1, res.Summary.LowerCount)
}

func TestPreprocessing(t *testing.T) {
	rows := actuals(100, 200, 300, 400)
	rows[0].Budget = dataset.Number(90)
	rows[1].Budget = dataset.Number(150)
	rows[2].Budget = dataset.Text("tbd")
	rows[3].Budget = dataset.Number(420)
	rows = append(rows,
		Row{Date: dataset.Text("whenever"), Actual: dataset.Number(1), Budget: dataset.Number(1)},
		Row{Date: dataset.Text("2024-02-01"), Actual: dataset.Text("?"), Budget: dataset.Number(1)},
	)

	res := Detect(rows, Params{Target: TargetVariance})
	require.True(t, res.Success)
	assert.Equal(t, 6, res.InputRows)
	assert.Equal(t, 3, res.DroppedRows)
	assert.Equal(t, 3, res.Statistics.Count)
	assert.Equal(t, -20.0, res.Statistics.Min)
	assert.Equal(t, 50.0, res.Statistics.Max)

	res = Detect(rows, Params{})
	assert.Equal(t, 2, res.DroppedRows, "budget is not needed for the actual target")
	assert.Equal(t, MethodBoth, res.Method)
	assert.Equal(t, DefaultThreshold, res.Threshold)
	assert.Equal(t, DefaultIQRMultiplier, res.IQRMultiplier)
}

func TestEmptyAfterPreprocessing(t *testing.T) {
	rows := []Row{{Date: dataset.Text("x"), Actual: dataset.Number(1)}}
	res := Detect(rows, Params{})
	assert.False(t, res.Success)
	assert.Equal(t, "No valid data points after preprocessing", res.ErrorMessage)
	assert.Equal(t, Statistics{}, res.Statistics)
	assert.NotNil(t, res.Outliers)

	res = Detect(nil, Params{})
	assert.False(t, res.Success)
}

func TestInvalidParams(t *testing.T) {
	res := Detect(actuals(1, 2, 3), Params{Method: "mad"})
	assert.False(t, res.Success)
	assert.Contains(t, res.ErrorMessage, `field "method" must be one of`)

	res = Detect(actuals(1, 2, 3), Params{Threshold: -1})
	assert.False(t, res.Success)
	assert.Contains(t, res.ErrorMessage, "threshold")
}

func TestRiskTiers(t *testing.T) {
	mk := func(n int) []Outlier { return make([]Outlier, n) }
	assert.Equal(t, "low", summarize(mk(1), 100).RiskLevel)
	assert.Equal(t, "medium", summarize(mk(2), 100).RiskLevel)
	assert.Equal(t, "high", summarize(mk(5), 100).RiskLevel)
	assert.Equal(t, "critical", summarize(mk(10), 100).RiskLevel)
	assert.Equal(t, "poor", summarize(mk(10), 100).DataQuality)
}

func TestDetectDataset(t *testing.T) {
	ds := dataset.New([]string{"Date", "Actuals", "Budget", "Product"})
	for i, v := range []float64{10, 11, 12, 10, 11, 12, 11, 90} {
		product := "Desk"
		if v == 90 {
			product = "Chair"
		}
		ds.Records = append(ds.Records, dataset.Record{
			"Date":    dataset.Text(time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")),
			"Actuals": dataset.Number(v),
			"Budget":  dataset.Number(11),
			"Product": dataset.Text(product),
		})
	}
	res := DetectDataset(ds, Columns{Date: "Date", Actual: "Actuals", Budget: "Budget", Label: "Product"}, Params{Method: MethodIQR})
	require.True(t, res.Success, res.ErrorMessage)
	require.Len(t, res.Outliers, 1)
	assert.Equal(t, "Chair", res.Outliers[0].Label)
	assert.Equal(t, "2024-01-08", res.Outliers[0].Date)

	res = DetectDataset(ds, Columns{Date: "Date", Actual: "Revenue"}, Params{})
	assert.False(t, res.Success)
	assert.Equal(t, "Missing required columns: Revenue", res.ErrorMessage)
	assert.Equal(t, 8, res.InputRows)
}
