package outlier

import "github.com/KaramelBytes/finsight-cli/internal/dataset"

type Method string

const (
	MethodIQR    Method = "iqr"
	MethodZScore Method = "zscore"
	MethodBoth   Method = "both"
)

// Target selects the series under test.
type Target string

const (
	TargetActual   Target = "actual"
	TargetBudget   Target = "budget"
	TargetVariance Target = "variance"
)

type Side string

const (
	Upper Side = "upper"
	Lower Side = "lower"
)

type Severity string

const (
	Mild     Severity = "mild"
	Moderate Severity = "moderate"
	Extreme  Severity = "extreme"
)

func (s Severity) rank() int {
	switch s {
	case Extreme:
		return 2
	case Moderate:
		return 1
	}
	return 0
}

const (
	DefaultThreshold     = 2.0
	DefaultIQRMultiplier = 1.5
)

// Row is one observation. Budget and Forecast may be absent.
type Row struct {
	Date     dataset.Value `json:"date"`
	Actual   dataset.Value `json:"actual"`
	Budget   dataset.Value `json:"budget"`
	Forecast dataset.Value `json:"forecast"`
	Label    string        `json:"label,omitempty"`
}

// Params configures Detect. Zero values take the defaults: both methods,
// actual target, z threshold 2 and IQR multiplier 1.5.
type Params struct {
	Method        Method  `json:"method" validate:"omitempty,oneof=iqr zscore both"`
	Target        Target  `json:"analysisTarget" validate:"omitempty,oneof=actual budget variance"`
	Threshold     float64 `json:"threshold" validate:"gte=0"`
	IQRMultiplier float64 `json:"iqrMultiplier" validate:"gte=0"`
}

func (p Params) withDefaults() Params {
	if p.Method == "" {
		p.Method = MethodBoth
	}
	if p.Target == "" {
		p.Target = TargetActual
	}
	if p.Threshold == 0 {
		p.Threshold = DefaultThreshold
	}
	if p.IQRMultiplier == 0 {
		p.IQRMultiplier = DefaultIQRMultiplier
	}
	return p
}

func (p Params) usesZScore() bool { return p.Method == MethodZScore || p.Method == MethodBoth }
func (p Params) usesIQR() bool    { return p.Method == MethodIQR || p.Method == MethodBoth }

type Statistics struct {
	Count      int     `json:"count"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	StdDev     float64 `json:"stdDev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Q1         float64 `json:"q1"`
	Q3         float64 `json:"q3"`
	IQR        float64 `json:"iqr"`
	LowerBound float64 `json:"lowerBound"`
	UpperBound float64 `json:"upperBound"`
}

// Outlier is one flagged point. ZScore is nil when the standard deviation is 0.
type Outlier struct {
	Index            int      `json:"index"`
	Date             string   `json:"date"`
	Label            string   `json:"label,omitempty"`
	Value            float64  `json:"value"`
	ZScore           *float64 `json:"zScore"`
	Type             Side     `json:"type"`
	Severity         Severity `json:"severity"`
	PercentileRank   float64  `json:"percentileRank"`
	Deviation        float64  `json:"deviation"`
	DeviationPercent float64  `json:"deviationPercent"`
	FlaggedBy        []Method `json:"flaggedBy"`
}

type Summary struct {
	TotalPoints   int     `json:"totalPoints"`
	OutlierCount  int     `json:"outlierCount"`
	OutlierRatio  float64 `json:"outlierRatio"`
	UpperCount    int     `json:"upperCount"`
	LowerCount    int     `json:"lowerCount"`
	ExtremeCount  int     `json:"extremeCount"`
	ModerateCount int     `json:"moderateCount"`
	MildCount     int     `json:"mildCount"`
	RiskLevel     string  `json:"riskLevel"`
	DataQuality   string  `json:"dataQuality"`
}

type PlotPoint struct {
	Index     int     `json:"index"`
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	IsOutlier bool    `json:"isOutlier"`
}

// Plot is a chart-ready view of the series.
type Plot struct {
	Points     []PlotPoint `json:"points"`
	Outliers   []PlotPoint `json:"outliers"`
	Mean       float64     `json:"mean"`
	LowerBound float64     `json:"lowerBound"`
	UpperBound float64     `json:"upperBound"`
}

type Result struct {
	Success         bool       `json:"success"`
	ErrorMessage    string     `json:"errorMessage,omitempty"`
	Method          Method     `json:"method"`
	Target          Target     `json:"analysisTarget"`
	Threshold       float64    `json:"threshold"`
	IQRMultiplier   float64    `json:"iqrMultiplier"`
	InputRows       int        `json:"inputRows"`
	DroppedRows     int        `json:"droppedRows"`
	Statistics      Statistics `json:"statistics"`
	Outliers        []Outlier  `json:"outliers"`
	Summary         Summary    `json:"summary"`
	Plot            Plot       `json:"plotData"`
	Insights        []string   `json:"insights"`
	Recommendations []string   `json:"recommendations"`
}
