package ingest_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/finsight-cli/internal/classify"
	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/ingest"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadCSV(t *testing.T) {
	p := write(t, "sales.csv", "Date,Product,Budget,Actuals\n"+
		"2024-01-15,Desk,\"1,200.50\",1100\n"+
		"2024-02-01,Chair,n/a,(300)\n"+
		",,,\n"+
		"2024-03-01,Lamp\n")
	ds, err := ingest.Load(p, ingest.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := strings.Join(ds.Columns, "|"); got != "Date|Product|Budget|Actuals" {
		t.Fatalf("unexpected columns: %s", got)
	}
	if ds.Len() != 3 {
		t.Fatalf("expected 3 rows (blank row dropped), got %d", ds.Len())
	}
	r0 := ds.Records[0]
	if r0.Get("Date").Kind != dataset.KindDate {
		t.Fatalf("expected a date cell, got %v", r0.Get("Date").Kind)
	}
	if f, _ := r0.Get("Budget").Float(); f != 1200.5 {
		t.Fatalf("expected 1200.5, got %v", f)
	}
	if !ds.Records[1].Get("Budget").IsAbsent() {
		t.Fatalf("expected n/a to load as absent")
	}
	if f, _ := ds.Records[1].Get("Actuals").Float(); f != -300 {
		t.Fatalf("expected -300, got %v", f)
	}
	if !ds.Records[2].Get("Actuals").IsAbsent() {
		t.Fatalf("expected short row to leave trailing columns absent")
	}
}

func TestLoadCSVSniffsDelimiter(t *testing.T) {
	p := write(t, "eu.csv", "Region;Revenue\nNorth;1.234,50\nSouth;99,5\n")
	ds, err := ingest.Load(p, ingest.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Columns) != 2 {
		t.Fatalf("expected semicolon split, got %v", ds.Columns)
	}
	if f, _ := ds.Records[0].Get("Revenue").Float(); f != 1234.5 {
		t.Fatalf("expected 1234.5, got %v", f)
	}

	p = write(t, "data.tsv", "a\tb\n1\t2\n")
	ds, err = ingest.Load(p, ingest.Options{})
	if err != nil {
		t.Fatalf("load tsv: %v", err)
	}
	if ds.Len() != 1 || len(ds.Columns) != 2 {
		t.Fatalf("unexpected tsv shape: %v rows, %v", ds.Len(), ds.Columns)
	}
}

func TestLoadCSVExplicitSeparators(t *testing.T) {
	p := write(t, "x.csv", "Amount|Note\n1.200|ok\n")
	ds, err := ingest.Load(p, ingest.Options{
		Delimiter: '|',
		Number:    classify.Options{DecimalSeparator: ',', ThousandsSeparator: '.'},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f, _ := ds.Records[0].Get("Amount").Float(); f != 1200 {
		t.Fatalf("expected 1200 with explicit separators, got %v", f)
	}
}

func TestHeaderCleanup(t *testing.T) {
	p := write(t, "h.csv", "\ufeffName,,Name\nx,y,z\n")
	ds, err := ingest.Load(p, ingest.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := strings.Join(ds.Columns, "|"); got != "Name|Column 2|Name_2" {
		t.Fatalf("unexpected columns: %s", got)
	}
}

func TestLoadUnsupported(t *testing.T) {
	p := write(t, "notes.pdf", "%PDF")
	if _, err := ingest.Load(p, ingest.Options{}); !errors.Is(err, ingest.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if _, err := ingest.Load(filepath.Join(t.TempDir(), "missing.csv"), ingest.Options{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetRow("Sheet1", "A1", &[]any{"Date", "Product", "Actuals"}); err != nil {
		t.Fatalf("header: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "A2", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("date: %v", err)
	}
	_ = f.SetCellValue("Sheet1", "B2", "Desk")
	_ = f.SetCellValue("Sheet1", "C2", 1200.5)
	if _, err := f.NewSheet("Plan"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	_ = f.SetSheetRow("Plan", "A1", &[]any{"Region", "Budget"})
	_ = f.SetSheetRow("Plan", "A2", &[]any{"North", 500})
	_ = f.SetSheetRow("Plan", "A3", &[]any{"South", 700})
	p := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	return p
}

func TestLoadXLSX(t *testing.T) {
	p := writeWorkbook(t)
	ds, err := ingest.Load(p, ingest.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", ds.Len())
	}
	d := ds.Records[0].Get("Date")
	if d.Kind != dataset.KindDate || d.Time.Format("2006-01-02") != "2024-01-15" {
		t.Fatalf("expected date-formatted cell to load as 2024-01-15, got %v", d)
	}
	if f, _ := ds.Records[0].Get("Actuals").Float(); f != 1200.5 {
		t.Fatalf("expected 1200.5, got %v", f)
	}
}

func TestLoadXLSXSheetSelection(t *testing.T) {
	p := writeWorkbook(t)
	byName, err := ingest.Load(p, ingest.Options{SheetName: "plan"})
	if err != nil {
		t.Fatalf("load by name: %v", err)
	}
	if byName.Len() != 2 || byName.Columns[0] != "Region" {
		t.Fatalf("unexpected sheet content: %v", byName.Columns)
	}
	byIndex, err := ingest.Load(p, ingest.Options{SheetIndex: 2})
	if err != nil {
		t.Fatalf("load by index: %v", err)
	}
	if byIndex.Len() != 2 {
		t.Fatalf("expected Plan sheet by index, got %d rows", byIndex.Len())
	}

	_, err = ingest.Load(p, ingest.Options{SheetName: "Forecast"})
	if err == nil || !strings.Contains(err.Error(), "Available sheets: Sheet1, Plan") {
		t.Fatalf("expected sheet listing in error, got %v", err)
	}
	if _, err := ingest.Load(p, ingest.Options{SheetIndex: 5}); err == nil {
		t.Fatalf("expected out-of-range index error")
	}
}
