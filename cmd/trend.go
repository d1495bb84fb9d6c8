package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/finsight-cli/internal/config"
	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/period"
	"github.com/KaramelBytes/finsight-cli/internal/trend"
)

var (
	trdInput      inputFlags
	trdOutput     outputFlags
	trdDate       string
	trdValue      string
	trdCategory   string
	trdPeriodType string
	trdWindow     int
	trdType       string
)

var trendCmd = &cobra.Command{
	Use:   "trend <file>",
	Short: "Moving-average trend, momentum and health score of a value over time",
	Long: `Sums --value per period of --date, then computes a simple or exponential
moving average over --window periods. With --category each category gets its
own trend and the overall series is the per-period total.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, defs, err := trdInput.load(args[0])
		if err != nil {
			return err
		}
		c := settings()
		cols := trend.SeriesColumns{
			Date:     firstNonEmpty(trdDate, defs.Date),
			Value:    firstNonEmpty(trdValue, defs.Actual),
			Category: trdCategory,
		}
		p := trendDefaults(c)
		if cmd.Flags().Changed("window") {
			p.WindowSize = trdWindow
		}
		if trdType != "" {
			p.TrendType = trend.Type(trdType)
		}
		res, err := runTrend(ds, cols, firstNonEmpty(trdPeriodType, c.PeriodType), p)
		if err != nil {
			return err
		}
		return trdOutput.emit(cmd, res, func(w io.Writer) { renderTrend(w, res) })
	},
}

func runTrend(ds *dataset.Dataset, cols trend.SeriesColumns, periodType string, p trend.Params) (*trend.Result, error) {
	typ, err := period.ParseType(periodType)
	if err != nil {
		return nil, err
	}
	series, err := trend.SeriesFromDataset(ds, cols, typ)
	if err != nil {
		return nil, fmt.Errorf("build series: %w", err)
	}
	return trend.Analyze(series, p)
}

func trendDefaults(c *cfgpkg.Global) trend.Params {
	return trend.Params{WindowSize: c.TrendWindow, TrendType: trend.Type(c.TrendType)}
}

func init() {
	rootCmd.AddCommand(trendCmd)
	f := trendCmd.Flags()
	f.StringVar(&trdDate, "date", "", "date column (default: best date column)")
	f.StringVar(&trdValue, "value", "", "value column (default: best actual/revenue column)")
	f.StringVar(&trdCategory, "category", "", "optional column for per-category trends")
	f.StringVar(&trdPeriodType, "period-type", "", "period bucket: week|month|quarter|year (default from config)")
	f.IntVar(&trdWindow, "window", 3, "moving-average window in periods (default from config)")
	f.StringVar(&trdType, "type", "", "moving average: simple|exponential (default from config)")
	trdInput.bind(trendCmd)
	trdOutput.bind(trendCmd)
}
