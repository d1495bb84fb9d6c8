package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/finsight-cli/internal/classify"
	cfgpkg "github.com/KaramelBytes/finsight-cli/internal/config"
	"github.com/KaramelBytes/finsight-cli/internal/contribution"
	"github.com/KaramelBytes/finsight-cli/internal/period"
)

var (
	ctbInput       inputFlags
	ctbOutput      outputFlags
	ctbValue       string
	ctbCategory    string
	ctbSubcategory string
	ctbScope       string
	ctbPeriodCol   string
	ctbPeriod      string
	ctbSortBy      string
	ctbOrder       string
	ctbMinimum     float64
	ctbShowOthers  bool
	ctbTimePeriods bool
	ctbPeriodType  string
	ctbDateCol     string
)

var contributionCmd = &cobra.Command{
	Use:   "contribution <file>",
	Short: "Compute each category's share of a numeric column",
	Long: `Groups rows by --category, sums --value and reports each category's share,
rank, percentile and significance together with concentration (top 3 share)
and diversity (Simpson index). --subcategory adds a second level; --time-periods
repeats the breakdown per quarter or month and classifies each category's trend.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, defs, err := ctbInput.load(args[0])
		if err != nil {
			return err
		}
		p := contributionDefaults(defs, settings())
		p.ValueColumn = firstNonEmpty(ctbValue, p.ValueColumn)
		p.CategoryColumn = firstNonEmpty(ctbCategory, p.CategoryColumn)
		p.SubcategoryColumn = ctbSubcategory
		p.Scope = contribution.Scope(ctbScope)
		p.PeriodColumn = ctbPeriodCol
		p.PeriodFilter = ctbPeriod
		p.SortBy = contribution.SortKey(ctbSortBy)
		p.SortOrder = contribution.Order(ctbOrder)
		if cmd.Flags().Changed("min-contribution") {
			p.MinimumContribution = ctbMinimum
		}
		if cmd.Flags().Changed("show-others") {
			p.ShowOthers = ctbShowOthers
		}
		if ctbTimePeriods {
			p.TimePeriod = contribution.TimePeriodOptions{
				Enabled:    true,
				PeriodType: period.Type(ctbPeriodType),
				DateColumn: firstNonEmpty(ctbDateCol, defs.Date),
			}
		}
		res := contribution.Analyze(ds, p)
		return ctbOutput.emit(cmd, res, func(w io.Writer) { renderContribution(w, res) })
	},
}

// contributionDefaults picks the actual-like column as the value and the
// best text column as the category.
func contributionDefaults(d classify.Defaults, c *cfgpkg.Global) contribution.Params {
	return contribution.Params{
		ValueColumn:         d.Actual,
		CategoryColumn:      d.Category,
		MinimumContribution: c.MinContribution,
		ShowOthers:          c.ShowOthers,
	}
}

func init() {
	rootCmd.AddCommand(contributionCmd)
	f := contributionCmd.Flags()
	f.StringVar(&ctbValue, "value", "", "numeric column to sum (default: best actual/revenue column)")
	f.StringVar(&ctbCategory, "category", "", "column to group by (default: best text column)")
	f.StringVar(&ctbSubcategory, "subcategory", "", "optional second grouping level")
	f.StringVar(&ctbScope, "scope", "total", "analysis scope: total|average|period")
	f.StringVar(&ctbPeriodCol, "period-column", "", "column matched by --period (scope=period)")
	f.StringVar(&ctbPeriod, "period", "", "period filter, e.g. 2024-Q1 or 2024-03 (scope=period)")
	f.StringVar(&ctbSortBy, "sort-by", "contribution", "sort key: contribution|value|alphabetical")
	f.StringVar(&ctbOrder, "order", "desc", "sort order: asc|desc")
	f.Float64Var(&ctbMinimum, "min-contribution", 1, "share (percent) below which a category is flagged (default from config)")
	f.BoolVar(&ctbShowOthers, "show-others", true, "collapse the tail beyond 10 items into an Others row (default from config)")
	f.BoolVar(&ctbTimePeriods, "time-periods", false, "also break contributions down per period")
	f.StringVar(&ctbPeriodType, "period-type", "quarter", "time-period bucket: quarter|month")
	f.StringVar(&ctbDateCol, "date-column", "", "date column for --time-periods (default: best date column)")
	ctbInput.bind(contributionCmd)
	ctbOutput.bind(contributionCmd)
}
