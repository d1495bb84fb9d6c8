package contribution

import (
	"github.com/KaramelBytes/finsight-cli/internal/period"
	"github.com/KaramelBytes/finsight-cli/internal/quality"
)

// Scope selects how a category's value is aggregated.
type Scope string

const (
	ScopeTotal   Scope = "total"
	ScopeAverage Scope = "average"
	ScopePeriod  Scope = "period"
)

// SortKey selects the ranking key.
type SortKey string

const (
	SortContribution SortKey = "contribution"
	SortValue        SortKey = "value"
	SortAlphabetical SortKey = "alphabetical"
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Significance tiers a category by its contribution percent.
type Significance string

const (
	Major      Significance = "Major"
	Moderate   Significance = "Moderate"
	Minor      Significance = "Minor"
	Negligible Significance = "Negligible"
)

// Trend classifies a category's share across periods.
type Trend string

const (
	Increasing Trend = "increasing"
	Decreasing Trend = "decreasing"
	Stable     Trend = "stable"
	Volatile   Trend = "volatile"
)

const (
	// DefaultMinimumContribution is the percent below which a category is
	// reported as below minimum.
	DefaultMinimumContribution = 1.0
	// MaxVisibleItems is the item count above which Others grouping applies.
	MaxVisibleItems = 10
	// ParetoShare is the cumulative percent used for the Pareto count.
	ParetoShare = 80.0
)

// TimePeriodOptions enables per-period contribution breakdowns.
type TimePeriodOptions struct {
	Enabled    bool        `json:"enabled"`
	PeriodType period.Type `json:"periodType" validate:"omitempty,oneof=quarter month"`
	DateColumn string      `json:"dateColumn" validate:"required_if=Enabled true"`
}

// Params configures Analyze. Zero values of Scope, SortBy, SortOrder,
// MinimumContribution and TimePeriod.PeriodType take their defaults.
type Params struct {
	ValueColumn         string            `json:"valueColumn" validate:"required"`
	CategoryColumn      string            `json:"categoryColumn" validate:"required"`
	SubcategoryColumn   string            `json:"subcategoryColumn,omitempty"`
	Scope               Scope             `json:"analysisScope" validate:"omitempty,oneof=total average period"`
	PeriodColumn        string            `json:"periodColumn,omitempty" validate:"required_if=Scope period"`
	PeriodFilter        string            `json:"periodFilter,omitempty" validate:"required_if=Scope period"`
	SortBy              SortKey           `json:"sortBy" validate:"omitempty,oneof=contribution value alphabetical"`
	SortOrder           Order             `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
	MinimumContribution float64           `json:"minimumContribution" validate:"lte=100"`
	ShowOthers          bool              `json:"showOthers"`
	TimePeriod          TimePeriodOptions `json:"timePeriodAnalysis"`
}

func (p Params) withDefaults() Params {
	if p.Scope == "" {
		p.Scope = ScopeTotal
	}
	if p.SortBy == "" {
		p.SortBy = SortContribution
	}
	if p.SortOrder == "" {
		p.SortOrder = Desc
	}
	if p.MinimumContribution <= 0 {
		p.MinimumContribution = DefaultMinimumContribution
	}
	if p.TimePeriod.Enabled && p.TimePeriod.PeriodType == "" {
		p.TimePeriod.PeriodType = period.Quarter
	}
	return p
}

// Item is one ranked category.
type Item struct {
	Category            string       `json:"category"`
	Value               float64      `json:"value"`
	Count               int          `json:"count"`
	ContributionPercent float64      `json:"contributionPercent"`
	CumulativePercent   float64      `json:"cumulativePercent"`
	Rank                int          `json:"rank"`
	Percentile          string       `json:"percentile"`
	Significance        Significance `json:"significance"`
	BelowMinimum        bool         `json:"belowMinimum"`
	IsOthers            bool         `json:"isOthers,omitempty"`
	GroupedCategories   int          `json:"groupedCategories,omitempty"`
	Subcategories       []SubItem    `json:"subcategories,omitempty"`
}

// SubItem is a subcategory inside a hierarchical Item. ContributionPercent is
// against the grand total; ShareOfCategory against the parent's value.
type SubItem struct {
	Subcategory         string  `json:"subcategory"`
	Value               float64 `json:"value"`
	Count               int     `json:"count"`
	ContributionPercent float64 `json:"contributionPercent"`
	ShareOfCategory     float64 `json:"shareOfCategory"`
}

type Summary struct {
	TotalValue          float64 `json:"totalValue"`
	AverageValue        float64 `json:"averageValue"`
	CategoryCount       int     `json:"categoryCount"`
	ConcentrationRatio  float64 `json:"concentrationRatio"`
	DiversityIndex      float64 `json:"diversityIndex"`
	TopContributor      string  `json:"topContributor,omitempty"`
	TopContribution     float64 `json:"topContribution"`
	BelowMinimumCount   int     `json:"belowMinimumCount"`
	ParetoCategoryCount int     `json:"paretoCategoryCount"`
}

type Metadata struct {
	ValueColumn       string        `json:"valueColumn"`
	CategoryColumn    string        `json:"categoryColumn"`
	SubcategoryColumn string        `json:"subcategoryColumn,omitempty"`
	Scope             Scope         `json:"analysisScope"`
	PeriodFilter      string        `json:"periodFilter,omitempty"`
	TotalRows         int           `json:"totalRows"`
	AnalyzedRows      int           `json:"analyzedRows"`
	NullCells         int           `json:"nullCells"`
	Hierarchical      bool          `json:"hierarchical"`
	OthersGrouped     bool          `json:"othersGrouped"`
	DataQuality       quality.Grade `json:"dataQuality"`
	DateRange         *period.Range `json:"dateRange,omitempty"`
}

// PeriodItem is a category's contribution within one period.
type PeriodItem struct {
	Category            string  `json:"category"`
	Value               float64 `json:"value"`
	ContributionPercent float64 `json:"contributionPercent"`
	Rank                int     `json:"rank"`
}

type PeriodBreakdown struct {
	Period            string       `json:"period"`
	Start             string       `json:"start"`
	Total             float64      `json:"total"`
	RowCount          int          `json:"rowCount"`
	Items             []PeriodItem `json:"items"`
	TopContributor    *PeriodItem  `json:"topContributor,omitempty"`
	BottomContributor *PeriodItem  `json:"bottomContributor,omitempty"`
}

// CategoryTrend is the share trajectory of one category; Contributions is
// aligned with TimePeriodResult.Periods (0 where the category is absent).
type CategoryTrend struct {
	Category            string    `json:"category"`
	Trend               Trend     `json:"trend"`
	Slope               float64   `json:"slope"`
	StdDev              float64   `json:"stdDev"`
	AverageContribution float64   `json:"averageContribution"`
	Contributions       []float64 `json:"contributions"`
}

type TimePeriodResult struct {
	PeriodType        period.Type       `json:"periodType"`
	DateColumn        string            `json:"dateColumn"`
	UndatedRows       int               `json:"undatedRows"`
	Periods           []PeriodBreakdown `json:"periods"`
	CategoryTrends    []CategoryTrend   `json:"categoryTrends"`
	PeriodComparisons []string          `json:"periodComparisons"`
	SeasonalPatterns  []string          `json:"seasonalPatterns"`
}

// Result is the output of Analyze. On failure Success is false and
// ErrorMessage is set; the remaining fields hold whatever was computed.
type Result struct {
	Success         bool              `json:"success"`
	ErrorMessage    string            `json:"errorMessage,omitempty"`
	Metadata        Metadata          `json:"metadata"`
	Items           []Item            `json:"analysis"`
	Summary         Summary           `json:"summary"`
	TimePeriod      *TimePeriodResult `json:"timePeriodAnalysis,omitempty"`
	Insights        []string          `json:"insights"`
	Recommendations []string          `json:"recommendations"`
}
