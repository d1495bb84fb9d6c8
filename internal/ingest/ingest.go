// Package ingest loads tabular files into datasets. Text cells are typed with
// classify.ParseCell so engines see numbers and dates rather than raw strings.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/KaramelBytes/finsight-cli/internal/classify"
	"github.com/KaramelBytes/finsight-cli/internal/dataset"
)

// Options controls how a file is read.
type Options struct {
	// Delimiter for CSV files; if 0, sniffed from the file name and header.
	Delimiter rune
	// SheetName selects an XLSX sheet by name (case-insensitive).
	SheetName string
	// SheetIndex selects an XLSX sheet by 1-based position when SheetName is empty.
	SheetIndex int
	Number     classify.Options
}

// Loader reads one file format.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt Options) (*dataset.Dataset, error)
}

var registry []Loader

// Register adds a loader. Later registrations are consulted after earlier ones.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates no loader accepts the file.
var ErrUnsupported = errors.New("unsupported file format")

// Load picks a loader by file name and reads path.
func Load(path string, opt Options) (*dataset.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			ds, err := l.Load(path, opt)
			if err != nil {
				return nil, err
			}
			log.Debug().Str("component", "ingest").Str("path", path).
				Int("rows", ds.Len()).Int("columns", len(ds.Columns)).Msg("dataset loaded")
			return ds, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// header cleans column names: blanks become "Column N" and repeats get a
// numeric suffix so every column is addressable.
func header(raw []string) []string {
	out := make([]string, len(raw))
	seen := map[string]int{}
	for i, h := range raw {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}

// fromRows builds a dataset from a header row and data rows. Fully blank rows
// are dropped; short rows leave the trailing columns absent; cells beyond the
// header are ignored. cell types one raw string given its row and column.
func fromRows(rows [][]string, cell func(raw string, row, col int) dataset.Value) *dataset.Dataset {
	if len(rows) == 0 {
		return dataset.New(nil)
	}
	cols := header(rows[0])
	ds := dataset.New(cols)
	for r, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec := make(dataset.Record, len(cols))
		for c, name := range cols {
			if c >= len(row) {
				rec[name] = dataset.Absent()
				continue
			}
			rec[name] = cell(row[c], r+1, c)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds
}

func blank(row []string) bool {
	for _, s := range row {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
