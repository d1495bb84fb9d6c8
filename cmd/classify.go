package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/finsight-cli/internal/classify"
)

var (
	clsInput  inputFlags
	clsOutput outputFlags
)

type classifyReport struct {
	File     string            `json:"file"`
	Rows     int               `json:"rows"`
	Columns  []string          `json:"columns"`
	Roles    classify.Roles    `json:"roles"`
	Defaults classify.Defaults `json:"defaults"`
}

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Infer column roles (numeric/date/text) and default analysis columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, defs, err := clsInput.load(args[0])
		if err != nil {
			return err
		}
		rep := classifyReport{
			File:     filepath.Base(args[0]),
			Rows:     ds.Len(),
			Columns:  ds.Columns,
			Roles:    classify.Classify(ds),
			Defaults: defs,
		}
		return clsOutput.emit(cmd, rep, func(w io.Writer) { renderClassify(w, rep) })
	},
}

func renderClassify(w io.Writer, rep classifyReport) {
	fmt.Fprintf(w, "%s: %d rows, %d columns\n", rep.File, rep.Rows, len(rep.Columns))
	list := func(name string, cols []string) {
		if len(cols) == 0 {
			cols = []string{"-"}
		}
		fmt.Fprintf(w, "  %-8s %s\n", name+":", strings.Join(cols, ", "))
	}
	list("numeric", rep.Roles.Numeric)
	list("date", rep.Roles.Date)
	list("text", rep.Roles.Text)
	list("mixed", rep.Roles.Mixed)
	fmt.Fprintf(w, "Defaults: budget=%s actual=%s date=%s category=%s\n",
		rep.Defaults.Budget, rep.Defaults.Actual, rep.Defaults.Date, rep.Defaults.Category)
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	clsInput.bind(classifyCmd)
	clsOutput.bind(classifyCmd)
}
