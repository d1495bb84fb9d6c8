package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/finsight-cli/internal/classify"
	"github.com/KaramelBytes/finsight-cli/internal/contribution"
	"github.com/KaramelBytes/finsight-cli/internal/outlier"
	"github.com/KaramelBytes/finsight-cli/internal/session"
	"github.com/KaramelBytes/finsight-cli/internal/trend"
	"github.com/KaramelBytes/finsight-cli/internal/variance"
)

var (
	repInput  inputFlags
	repOutput outputFlags
	repJobs   int
	repQuiet  bool
)

// Card kinds produced by the report command.
const (
	kindContribution = "contribution"
	kindVariance     = "variance"
	kindTrend        = "trend"
	kindOutliers     = "outliers"
)

type reportFile struct {
	File     string            `json:"file"`
	Rows     int               `json:"rows"`
	Columns  int               `json:"columns"`
	Defaults classify.Defaults `json:"defaults"`
}

type runReport struct {
	RunID       uuid.UUID      `json:"runId"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Files       []reportFile   `json:"files"`
	Cards       []session.Card `json:"cards"`
}

// failedResult stands in for analyzers that return an error instead of a
// result with Success=false.
type failedResult struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage"`
}

type pendingCard struct {
	kind, title string
	result      any
}

type fileRun struct {
	info  reportFile
	cards [4]pendingCard
}

var reportCmd = &cobra.Command{
	Use:   "report <files...>",
	Short: "Run every analyzer over one or more files with default columns",
	Long: `For each input (globs allowed) the four analyzers run concurrently using the
classifier's default columns and config defaults. Results are collected as
cards under a single run id.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		settings() // resolve config before workers read it
		runID := uuid.New()
		reg := session.New()
		unsubscribe := reg.Subscribe(func(e session.Event) {
			log.Debug().Str("component", "report").Str("run", runID.String()).
				Str("event", string(e.Type)).Str("kind", e.Card.Kind).Int("index", e.Index).
				Msg("card list changed")
		})
		defer unsubscribe()

		runs := make([]fileRun, len(files))
		g, ctx := errgroup.WithContext(cmd.Context())
		if repJobs > 0 {
			g.SetLimit(repJobs)
		}
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				run, err := analyzeFile(ctx, path)
				if err != nil {
					return fmt.Errorf("%s: %w", filepath.Base(path), err)
				}
				runs[i] = run
				if !repQuiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "✓ Analyzed %s (%d rows)\n", run.info.File, run.info.Rows)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		rep := runReport{RunID: runID, GeneratedAt: time.Now().UTC()}
		for _, run := range runs {
			rep.Files = append(rep.Files, run.info)
			for _, c := range run.cards {
				reg.Add(c.kind, c.title, c.result)
			}
		}
		rep.Cards = reg.List()
		return repOutput.emit(cmd, rep, func(w io.Writer) { renderReport(w, rep) })
	},
}

// analyzeFile loads path and runs the four analyzers concurrently. Cards come
// back in a fixed order regardless of completion order.
func analyzeFile(ctx context.Context, path string) (fileRun, error) {
	ds, defs, err := repInput.load(path)
	if err != nil {
		return fileRun{}, err
	}
	c := settings()
	name := filepath.Base(path)
	run := fileRun{info: reportFile{File: name, Rows: ds.Len(), Columns: len(ds.Columns), Defaults: defs}}

	g, ctx := errgroup.WithContext(ctx)
	tasks := []func() pendingCard{
		func() pendingCard {
			p := contributionDefaults(defs, c)
			return pendingCard{kindContribution,
				fmt.Sprintf("Contribution of %s by %s (%s)", p.ValueColumn, p.CategoryColumn, name),
				contribution.Analyze(ds, p)}
		},
		func() pendingCard {
			p := budgetDefaults(defs, c)
			return pendingCard{kindVariance,
				fmt.Sprintf("Budget variance: %s vs %s (%s)", p.ActualColumn, p.BudgetColumn, name),
				variance.AnalyzeBudget(ds, p)}
		},
		func() pendingCard {
			title := fmt.Sprintf("Trend of %s (%s)", defs.Actual, name)
			res, err := runTrend(ds, trend.SeriesColumns{Date: defs.Date, Value: defs.Actual}, c.PeriodType, trendDefaults(c))
			if err != nil {
				return pendingCard{kindTrend, title, failedResult{ErrorMessage: err.Error()}}
			}
			return pendingCard{kindTrend, title, res}
		},
		func() pendingCard {
			cols, p := outlierDefaults(defs, c)
			cols.Budget = ""
			return pendingCard{kindOutliers, fmt.Sprintf("Outliers in %s (%s)", cols.Actual, name),
				outlier.DetectDataset(ds, cols, p)}
		},
	}
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			run.cards[i] = task()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileRun{}, err
	}
	return run, nil
}

// expandInputs resolves globs, keeps literal paths that exist and drops
// duplicates. The result is sorted.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().IntVar(&repJobs, "jobs", 4, "files analyzed in parallel (0 = unlimited)")
	reportCmd.Flags().BoolVar(&repQuiet, "quiet", false, "suppress progress output")
	repInput.bind(reportCmd)
	repOutput.bind(reportCmd)
}
