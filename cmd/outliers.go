package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/finsight-cli/internal/classify"
	cfgpkg "github.com/KaramelBytes/finsight-cli/internal/config"
	"github.com/KaramelBytes/finsight-cli/internal/outlier"
)

var (
	outInput     inputFlags
	outOutput    outputFlags
	outDate      string
	outActual    string
	outBudget    string
	outLabel     string
	outMethod    string
	outTarget    string
	outThreshold float64
	outIQRMult   float64
)

var outliersCmd = &cobra.Command{
	Use:   "outliers <file>",
	Short: "Flag unusual actual, budget or variance values with IQR and/or z-scores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, defs, err := outInput.load(args[0])
		if err != nil {
			return err
		}
		cols, p := outlierDefaults(defs, settings())
		cols.Date = firstNonEmpty(outDate, cols.Date)
		cols.Actual = firstNonEmpty(outActual, cols.Actual)
		cols.Label = outLabel
		if outTarget != "" {
			p.Target = outlier.Target(outTarget)
		}
		if p.Target == outlier.TargetActual && outBudget == "" {
			cols.Budget = ""
		} else {
			cols.Budget = firstNonEmpty(outBudget, cols.Budget)
		}
		if outMethod != "" {
			p.Method = outlier.Method(outMethod)
		}
		if cmd.Flags().Changed("threshold") {
			p.Threshold = outThreshold
		}
		if cmd.Flags().Changed("iqr-multiplier") {
			p.IQRMultiplier = outIQRMult
		}
		res := outlier.DetectDataset(ds, cols, p)
		return outOutput.emit(cmd, res, func(w io.Writer) { renderOutliers(w, res) })
	},
}

func outlierDefaults(d classify.Defaults, c *cfgpkg.Global) (outlier.Columns, outlier.Params) {
	return outlier.Columns{Date: d.Date, Actual: d.Actual, Budget: d.Budget},
		outlier.Params{
			Method:        outlier.Method(c.OutlierMethod),
			Target:        outlier.TargetActual,
			Threshold:     c.ZScoreThreshold,
			IQRMultiplier: c.IQRMultiplier,
		}
}

func init() {
	rootCmd.AddCommand(outliersCmd)
	f := outliersCmd.Flags()
	f.StringVar(&outDate, "date", "", "date column (default: best date column)")
	f.StringVar(&outActual, "actual", "", "actual column (default: best actual/revenue column)")
	f.StringVar(&outBudget, "budget", "", "budget column, needed for --target budget|variance (default: best budget column)")
	f.StringVar(&outLabel, "label", "", "optional column echoed on each outlier (e.g. Product)")
	f.StringVar(&outMethod, "method", "", "detection method: iqr|zscore|both (default from config)")
	f.StringVar(&outTarget, "target", "", "series under test: actual|budget|variance (default actual)")
	f.Float64Var(&outThreshold, "threshold", 2, "|z| above which a point is flagged (default from config)")
	f.Float64Var(&outIQRMult, "iqr-multiplier", 1.5, "IQR fence multiplier (default from config)")
	outInput.bind(outliersCmd)
	outOutput.bind(outliersCmd)
}
