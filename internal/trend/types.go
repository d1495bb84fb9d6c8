package trend

import (
	"errors"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
)

var (
	ErrNoData     = errors.New("trend: no data points")
	ErrWindowSize = errors.New("trend: window size out of range")
	ErrNonNumeric = errors.New("trend: non-numeric value")
)

// Type selects the moving average.
type Type string

const (
	Simple      Type = "simple"
	Exponential Type = "exponential"
)

type Direction string

const (
	Upward   Direction = "upward"
	Downward Direction = "downward"
	Flat     Direction = "stable"
	Mixed    Direction = "mixed"
)

type Strength string

const (
	Weak     Strength = "weak"
	Moderate Strength = "moderate"
	Strong   Strength = "strong"
)

type Momentum string

const (
	Accelerating Momentum = "accelerating"
	Decelerating Momentum = "decelerating"
	Steady       Momentum = "steady"
)

const (
	// StableThreshold is the absolute percent change below which a point
	// is stable.
	StableThreshold = 2.0
	// DefaultWindow is the window used by callers that take no explicit size.
	DefaultWindow = 3
)

// Point is one observation. Period labels must sort chronologically as
// strings ("2024-01", "2024-Q1").
type Point struct {
	Period   string        `json:"period"`
	Value    dataset.Value `json:"value"`
	Category string        `json:"category,omitempty"`
}

type Params struct {
	WindowSize int  `json:"windowSize"`
	TrendType  Type `json:"trendType" validate:"omitempty,oneof=simple exponential"`
}

// TrendPoint is a series point with its moving average. Only points with a
// full trailing window are reported.
type TrendPoint struct {
	Period        string    `json:"period"`
	Value         float64   `json:"value"`
	MovingAverage float64   `json:"movingAverage"`
	PercentChange float64   `json:"percentChange"`
	Direction     Direction `json:"direction"`
	Strength      Strength  `json:"strength"`
}

type Summary struct {
	OverallTrend      Direction `json:"overallTrend"`
	TrendConsistency  float64   `json:"trendConsistency"`
	AverageGrowthRate float64   `json:"averageGrowthRate"`
	Volatility        float64   `json:"volatility"`
	Momentum          Momentum  `json:"momentum"`
	TrendScore        float64   `json:"trendScore"`
	Health            string    `json:"health"`
	DataPoints        int       `json:"dataPoints"`
	AnalyzedPoints    int       `json:"analyzedPoints"`
	UpwardPoints      int       `json:"upwardPoints"`
	DownwardPoints    int       `json:"downwardPoints"`
	StablePoints      int       `json:"stablePoints"`
	FirstPeriod       string    `json:"firstPeriod"`
	LastPeriod        string    `json:"lastPeriod"`
}

type CategoryTrend struct {
	Category string       `json:"category"`
	Points   []TrendPoint `json:"trendData"`
	Summary  Summary      `json:"summary"`
}

type Result struct {
	WindowSize      int             `json:"windowSize"`
	TrendType       Type            `json:"trendType"`
	Points          []TrendPoint    `json:"trendData"`
	Summary         Summary         `json:"summary"`
	Categories      []CategoryTrend `json:"categoryTrends,omitempty"`
	Insights        []string        `json:"insights"`
	Recommendations []string        `json:"recommendations"`
}
