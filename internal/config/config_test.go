package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.LogLevel != "info" || c.OutputFormat != "json" || c.TrendWindow != 3 || c.IQRMultiplier != 1.5 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if !c.ShowOthers || c.MinContribution != 1 || c.PeriodType != "monthly" {
		t.Fatalf("unexpected contribution/variance defaults: %+v", c)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(p, []byte("trend_window: 5\noutlier_method: iqr\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("FINSIGHT_OUTLIER_METHOD", "zscore")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TrendWindow != 5 {
		t.Fatalf("expected trend_window from file, got %d", c.TrendWindow)
	}
	if c.OutlierMethod != "zscore" {
		t.Fatalf("expected env to win, got %s", c.OutlierMethod)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(p, []byte("trend_type: weighted\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil || !strings.Contains(err.Error(), "trend_type") {
		t.Fatalf("expected validation error naming trend_type, got %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Set("zscore_threshold", "3"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Set("show_others", "false"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := Save(c, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".finsight", "config.yaml")); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	again, err := Load("")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.ZScoreThreshold != 3 || again.ShowOthers {
		t.Fatalf("values not persisted: %+v", again)
	}
}

func TestSetValidates(t *testing.T) {
	c := Defaults()
	cases := []struct{ key, val, want string }{
		{"trend_window", "x", "invalid int"},
		{"trend_window", "1", `"trend_window" must be at least 2`},
		{"output_format", "xml", `"output_format" must be one of`},
		{"decimal_separator", ",,", `"decimal_separator"`},
		{"show_others", "maybe", "invalid bool"},
		{"api_key", "x", "unknown key"},
	}
	for _, tc := range cases {
		err := c.Set(tc.key, tc.val)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("Set(%s, %s): expected %q, got %v", tc.key, tc.val, tc.want, err)
		}
	}
	if c.TrendWindow != 3 || c.OutputFormat != "json" {
		t.Fatalf("failed Set must not modify config: %+v", c)
	}
	if err := c.Set("period_type", "Quarterly"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := c.Get("period_type"); got != "quarterly" {
		t.Fatalf("expected quarterly, got %s", got)
	}
	for _, k := range Keys {
		if _, err := c.Get(k); err != nil {
			t.Fatalf("Get(%s): %v", k, err)
		}
	}
}

func TestSeparator(t *testing.T) {
	if Separator("") != 0 || Separator(",") != ',' {
		t.Fatalf("unexpected separator runes")
	}
}
