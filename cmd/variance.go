package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/finsight-cli/internal/classify"
	cfgpkg "github.com/KaramelBytes/finsight-cli/internal/config"
	"github.com/KaramelBytes/finsight-cli/internal/variance"
)

var (
	varInput      inputFlags
	varOutput     outputFlags
	varBudget     string
	varActual     string
	varDate       string
	varPeriodType string
	varValue      string
)

var varianceCmd = &cobra.Command{
	Use:   "variance",
	Short: "Budget-vs-actual and period-over-period variance",
}

var varianceBudgetCmd = &cobra.Command{
	Use:   "budget <file>",
	Short: "Compare actuals against budget, per period when a date column is present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, defs, err := varInput.load(args[0])
		if err != nil {
			return err
		}
		p := budgetDefaults(defs, settings())
		p.BudgetColumn = firstNonEmpty(varBudget, p.BudgetColumn)
		p.ActualColumn = firstNonEmpty(varActual, p.ActualColumn)
		if cmd.Flags().Changed("date") {
			// An explicit empty --date compares the whole file as one period.
			p.DateColumn = varDate
		}
		p.PeriodType = firstNonEmpty(varPeriodType, p.PeriodType)
		res := variance.AnalyzeBudget(ds, p)
		return varOutput.emit(cmd, res, func(w io.Writer) { renderBudget(w, res) })
	},
}

var variancePeriodCmd = &cobra.Command{
	Use:   "period <file>",
	Short: "Compare each period's total against the previous period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, defs, err := varInput.load(args[0])
		if err != nil {
			return err
		}
		p := variance.PeriodParams{
			ValueColumn: firstNonEmpty(varValue, defs.Actual),
			DateColumn:  firstNonEmpty(varDate, defs.Date),
			PeriodType:  firstNonEmpty(varPeriodType, settings().PeriodType),
		}
		res := variance.AnalyzePeriod(ds, p)
		return varOutput.emit(cmd, res, func(w io.Writer) { renderPeriod(w, res) })
	},
}

func budgetDefaults(d classify.Defaults, c *cfgpkg.Global) variance.BudgetParams {
	return variance.BudgetParams{
		BudgetColumn: d.Budget,
		ActualColumn: d.Actual,
		DateColumn:   d.Date,
		PeriodType:   c.PeriodType,
	}
}

func init() {
	rootCmd.AddCommand(varianceCmd)
	varianceCmd.AddCommand(varianceBudgetCmd)
	varianceCmd.AddCommand(variancePeriodCmd)

	varianceBudgetCmd.Flags().StringVar(&varBudget, "budget", "", "budget column (default: best budget/plan column)")
	varianceBudgetCmd.Flags().StringVar(&varActual, "actual", "", "actual column (default: best actual/revenue column)")
	variancePeriodCmd.Flags().StringVar(&varValue, "value", "", "value column (default: best actual/revenue column)")
	for _, c := range []*cobra.Command{varianceBudgetCmd, variancePeriodCmd} {
		c.Flags().StringVar(&varDate, "date", "", "date column (default: best date column)")
		c.Flags().StringVar(&varPeriodType, "period-type", "", "period bucket: week|month|quarter|year (default from config)")
		varInput.bind(c)
		varOutput.bind(c)
	}
}
