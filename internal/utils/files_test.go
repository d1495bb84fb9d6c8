package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeWriteFileCreatesParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "nested", "result.json")
	if err := SafeWriteFile(path, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", b)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("PrettyJSON: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"a\": 1") {
		t.Fatalf("expected indented output, got %s", b)
	}
}

func TestFormatAmountFiles(t *testing.T) {
	cases := map[float64]string{
		0:           "0.00",
		12.5:        "12.50",
		999.999:     "1,000.00",
		1234567.891: "1,234,567.89",
		-4500:       "-4,500.00",
		-0.001:      "0.00",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatSignedPercent(t *testing.T) {
	if got := FormatSignedPercent(12.34); got != "+12.3%" {
		t.Fatalf("got %q", got)
	}
	if got := FormatSignedPercent(-5); got != "-5.0%" {
		t.Fatalf("got %q", got)
	}
	if got := FormatSignedPercent(0); got != "0.0%" {
		t.Fatalf("got %q", got)
	}
}
