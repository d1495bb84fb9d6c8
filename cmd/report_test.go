package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCLI_ReportOverGlob(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, "data")
	writeSample(t, dir, "a.csv", "1")
	writeSample(t, dir, "b.csv", "2")

	res := decode(t, runCmd(t, "report", filepath.Join(dir, "*.csv"), "--quiet"))
	if id, _ := res["runId"].(string); len(id) != 36 {
		t.Fatalf("expected a uuid run id, got %v", res["runId"])
	}
	files, _ := res["files"].([]any)
	if len(files) != 2 || files[0].(map[string]any)["file"] != "a.csv" {
		t.Fatalf("unexpected files: %v", files)
	}
	cards, _ := res["cards"].([]any)
	if len(cards) != 8 {
		t.Fatalf("expected 8 cards, got %d", len(cards))
	}
	kinds := []string{"contribution", "variance", "trend", "outliers"}
	for i, c := range cards {
		card := c.(map[string]any)
		if card["kind"] != kinds[i%4] {
			t.Fatalf("card %d: expected kind %s, got %v", i, kinds[i%4], card["kind"])
		}
		if !strings.HasSuffix(card["title"].(string), "(a.csv)") && i < 4 {
			t.Fatalf("card %d: expected first file first, got %v", i, card["title"])
		}
	}
}

func TestCLI_ReportText(t *testing.T) {
	home := isolate(t)
	p := writeSample(t, home, "only.csv", "4")
	out := runCmd(t, "report", p, "--format", "text", "--jobs", "1")
	if !strings.Contains(out, "1 file(s), 4 card(s)") || !strings.Contains(out, "== Trend of Actuals (only.csv) ==") {
		t.Fatalf("unexpected report text:\n%s", out)
	}
}

func TestExpandInputs(t *testing.T) {
	home := isolate(t)
	a := writeSample(t, home, "a.csv", "1")
	files, err := expandInputs([]string{a, filepath.Join(home, "*.csv")})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected duplicates dropped, got %v", files)
	}
	if _, err := expandInputs([]string{filepath.Join(home, "*.xlsx")}); err == nil {
		t.Fatalf("expected error when nothing matches")
	}
}
