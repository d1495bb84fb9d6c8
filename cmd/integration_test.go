package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so values from one
// invocation do not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := tryCmd(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func tryCmd(args ...string) (string, error) {
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// isolate points HOME at a temp dir so no user config is read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeSample(t *testing.T, dir, name string, seed string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	runCmd(t, "sample", "-b", "tech startup", "-m", "6", "-r", "200", "--seed", seed, "--end", "2024-06-30", "-o", p)
	return p
}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	return m
}

func TestCLI_SampleClassifyContribution(t *testing.T) {
	home := isolate(t)
	csv := writeSample(t, home, "sales.csv", "7")

	b, err := os.ReadFile(csv)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 201 {
		t.Fatalf("expected header + 200 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date,Product,Category,State,City,Budget,Actuals,Channel" {
		t.Fatalf("unexpected header: %s", lines[0])
	}

	cls := decode(t, runCmd(t, "classify", csv))
	defs, _ := cls["defaults"].(map[string]any)
	want := map[string]string{"budget": "Budget", "actual": "Actuals", "date": "Date", "category": "Category"}
	for k, v := range want {
		if defs[k] != v {
			t.Fatalf("default %s: expected %s, got %v", k, v, defs[k])
		}
	}

	res := decode(t, runCmd(t, "contribution", csv))
	if res["success"] != true {
		t.Fatalf("contribution failed: %v", res["errorMessage"])
	}
	items, _ := res["analysis"].([]any)
	if len(items) == 0 {
		t.Fatalf("expected contribution items")
	}
	var share float64
	for _, it := range items {
		share += it.(map[string]any)["contributionPercent"].(float64)
	}
	if share < 99.9 || share > 100.1 {
		t.Fatalf("expected shares to sum to 100, got %v", share)
	}

	res = decode(t, runCmd(t, "contribution", csv, "--category", "Channel", "--subcategory", "Category", "--time-periods", "--period-type", "month"))
	if res["success"] != true {
		t.Fatalf("hierarchical contribution failed: %v", res["errorMessage"])
	}
	if _, ok := res["timePeriodAnalysis"]; !ok {
		t.Fatalf("expected timePeriodAnalysis in output")
	}
}

func TestCLI_Variance(t *testing.T) {
	home := isolate(t)
	csv := writeSample(t, home, "sales.csv", "3")

	res := decode(t, runCmd(t, "variance", "budget", csv, "--period-type", "quarter"))
	if res["success"] != true {
		t.Fatalf("budget variance failed: %v", res["errorMessage"])
	}
	periods, _ := res["periods"].([]any)
	if len(periods) < 2 || len(periods) > 3 {
		t.Fatalf("expected 2-3 quarters over six months, got %d", len(periods))
	}

	res = decode(t, runCmd(t, "variance", "period", csv))
	if res["success"] != true {
		t.Fatalf("period variance failed: %v", res["errorMessage"])
	}
	periods, _ = res["periods"].([]any)
	if len(periods) == 0 || periods[0].(map[string]any)["status"] != "baseline" {
		t.Fatalf("expected first period to be the baseline, got %v", periods)
	}

	res = decode(t, runCmd(t, "variance", "budget", csv, "--budget", "Forecast"))
	if res["success"] != false {
		t.Fatalf("expected failure for a missing budget column")
	}
}

func TestCLI_TrendAndOutliers(t *testing.T) {
	home := isolate(t)
	csv := writeSample(t, home, "sales.csv", "11")

	res := decode(t, runCmd(t, "trend", csv, "--window", "2", "--type", "exponential"))
	if res["windowSize"] != float64(2) || res["trendType"] != "exponential" {
		t.Fatalf("unexpected trend params: %v %v", res["windowSize"], res["trendType"])
	}
	if pts, _ := res["trendData"].([]any); len(pts) == 0 {
		t.Fatalf("expected trend points")
	}

	if _, err := tryCmd("trend", csv, "--window", "0"); err == nil {
		t.Fatalf("expected error for window 0")
	}

	res = decode(t, runCmd(t, "outliers", csv, "--method", "iqr", "--label", "Product"))
	if res["success"] != true {
		t.Fatalf("outliers failed: %v", res["errorMessage"])
	}
	if res["method"] != "iqr" || res["analysisTarget"] != "actual" {
		t.Fatalf("unexpected outlier params: %v %v", res["method"], res["analysisTarget"])
	}

	res = decode(t, runCmd(t, "outliers", csv, "--target", "variance"))
	if res["success"] != true || res["analysisTarget"] != "variance" {
		t.Fatalf("variance outliers failed: %v", res["errorMessage"])
	}
}

func TestCLI_TextFormatAndOutputFile(t *testing.T) {
	home := isolate(t)
	csv := writeSample(t, home, "sales.csv", "5")

	out := runCmd(t, "contribution", csv, "--format", "text")
	if !strings.Contains(out, "RANK") || !strings.Contains(out, "Contribution of Actuals by Category") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
	out = runCmd(t, "variance", "budget", csv, "--format", "text")
	if !strings.Contains(out, "TOTAL") {
		t.Fatalf("expected totals row:\n%s", out)
	}

	dest := filepath.Join(home, "out", "trend.json")
	if out := runCmd(t, "trend", csv, "-o", dest); out != "" {
		t.Fatalf("expected nothing on stdout with -o, got %q", out)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	decode(t, string(b))

	if _, err := tryCmd("trend", csv, "--format", "yaml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestCLI_InputErrors(t *testing.T) {
	home := isolate(t)
	if _, err := tryCmd("classify", filepath.Join(home, "missing.csv")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
	csv := writeSample(t, home, "sales.csv", "1")
	if _, err := tryCmd("classify", csv, "--delimiter", "#"); err == nil || !strings.Contains(err.Error(), "unsupported --delimiter") {
		t.Fatalf("expected delimiter error, got %v", err)
	}
	if _, err := tryCmd("sample", "-r", "10"); err == nil {
		t.Fatalf("expected error for too few records")
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home := isolate(t)
	runCmd(t, "config", "set", "output_format", "text")
	runCmd(t, "config", "set", "min_contribution", "5")
	if _, err := os.Stat(filepath.Join(home, ".finsight", "config.yaml")); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "output_format: text") || !strings.Contains(out, "min_contribution: 5") {
		t.Fatalf("unexpected config show:\n%s", out)
	}
	if _, err := tryCmd("config", "set", "trend_window", "1"); err == nil {
		t.Fatalf("expected validation error for trend_window 1")
	}

	// The saved text format now applies by default.
	csv := writeSample(t, home, "sales.csv", "2")
	if out := runCmd(t, "classify", csv); !strings.Contains(out, "Defaults: budget=Budget") {
		t.Fatalf("expected text output from config, got:\n%s", out)
	}
}
