package variance

import (
	"github.com/KaramelBytes/finsight-cli/internal/period"
	"github.com/KaramelBytes/finsight-cli/internal/quality"
)

// AllData is the synthetic period used when no date column is given.
const AllData = "All Data"

// OnTargetBand is the overall variance percent, either side of zero, that
// still counts as on target.
const OnTargetBand = 1.0

// DefaultPeriodType buckets rows by month.
const DefaultPeriodType = period.Month

type Status string

const (
	Favorable   Status = "favorable"
	Unfavorable Status = "unfavorable"
	Baseline    Status = "baseline"
	Increase    Status = "increase"
	Decrease    Status = "decrease"
	Unchanged   Status = "unchanged"
)

type Performance string

const (
	AboveBudget Performance = "above budget"
	OnTarget    Performance = "on target"
	BelowBudget Performance = "below budget"
)

// BudgetParams configures AnalyzeBudget. PeriodType accepts the bucket name
// or its adjective ("monthly"); empty means monthly.
type BudgetParams struct {
	BudgetColumn string `json:"budgetColumn" validate:"required"`
	ActualColumn string `json:"actualColumn" validate:"required"`
	DateColumn   string `json:"dateColumn,omitempty"`
	PeriodType   string `json:"periodType,omitempty" validate:"omitempty,oneof=week weekly month monthly quarter quarterly year yearly annual"`
}

// PeriodParams configures AnalyzePeriod.
type PeriodParams struct {
	ValueColumn string `json:"valueColumn" validate:"required"`
	DateColumn  string `json:"dateColumn" validate:"required"`
	PeriodType  string `json:"periodType,omitempty" validate:"omitempty,oneof=week weekly month monthly quarter quarterly year yearly annual"`
}

type BudgetPeriod struct {
	Period             string  `json:"period"`
	Start              string  `json:"start,omitempty"`
	Budget             float64 `json:"budget"`
	Actual             float64 `json:"actual"`
	Variance           float64 `json:"variance"`
	VariancePercentage float64 `json:"variancePercentage"`
	Status             Status  `json:"status"`
	RowCount           int     `json:"rowCount"`
}

// PeriodRef points at one period's variance.
type PeriodRef struct {
	Period             string  `json:"period"`
	Variance           float64 `json:"variance"`
	VariancePercentage float64 `json:"variancePercentage"`
}

type BudgetTotals struct {
	Budget             float64     `json:"budget"`
	Actual             float64     `json:"actual"`
	Variance           float64     `json:"variance"`
	VariancePercentage float64     `json:"variancePercentage"`
	Status             Status      `json:"status"`
	Performance        Performance `json:"performance"`
	FavorablePeriods   int         `json:"favorablePeriods"`
	UnfavorablePeriods int         `json:"unfavorablePeriods"`
	LargestFavorable   *PeriodRef  `json:"largestFavorable,omitempty"`
	LargestUnfavorable *PeriodRef  `json:"largestUnfavorable,omitempty"`
}

type Metadata struct {
	TotalRows    int           `json:"totalRows"`
	ValidRows    int           `json:"validRows"`
	SkippedRows  int           `json:"skippedRows"`
	InvalidCells int           `json:"invalidCells"`
	PeriodCount  int           `json:"periodCount"`
	PeriodType   period.Type   `json:"periodType,omitempty"`
	DateColumn   string        `json:"dateColumn,omitempty"`
	DateRange    *period.Range `json:"dateRange,omitempty"`
	DataQuality  quality.Grade `json:"dataQuality"`
}

type BudgetResult struct {
	Success         bool           `json:"success"`
	ErrorMessage    string         `json:"errorMessage,omitempty"`
	Metadata        Metadata       `json:"metadata"`
	Periods         []BudgetPeriod `json:"periods"`
	Totals          BudgetTotals   `json:"totals"`
	Insights        []string       `json:"insights"`
	Recommendations []string       `json:"recommendations"`
}

// ValuePeriod is one period of a period-over-period comparison. The first
// period has nil PreviousValue, Variance and VariancePercentage.
type ValuePeriod struct {
	Period             string   `json:"period"`
	Start              string   `json:"start"`
	Value              float64  `json:"value"`
	PreviousValue      *float64 `json:"previousValue"`
	Variance           *float64 `json:"variance"`
	VariancePercentage *float64 `json:"variancePercentage"`
	Status             Status   `json:"status"`
	RowCount           int      `json:"rowCount"`
}

type PeriodTotals struct {
	FirstValue      float64    `json:"firstValue"`
	LastValue       float64    `json:"lastValue"`
	TotalChange     float64    `json:"totalChange"`
	GrowthRate      float64    `json:"growthRate"`
	AverageChange   float64    `json:"averageChange"`
	Increases       int        `json:"increases"`
	Decreases       int        `json:"decreases"`
	LargestIncrease *PeriodRef `json:"largestIncrease,omitempty"`
	LargestDecrease *PeriodRef `json:"largestDecrease,omitempty"`
}

type PeriodResult struct {
	Success         bool          `json:"success"`
	ErrorMessage    string        `json:"errorMessage,omitempty"`
	Metadata        Metadata      `json:"metadata"`
	Periods         []ValuePeriod `json:"periods"`
	Totals          PeriodTotals  `json:"totals"`
	Insights        []string      `json:"insights"`
	Recommendations []string      `json:"recommendations"`
}
