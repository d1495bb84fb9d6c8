package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/finsight-cli/internal/classify"
	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/period"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

// Load reads raw cell values from the selected sheet. Numeric cells carrying
// a date number format become dates; everything else goes through
// classify.ParseCell.
func (xlsxLoader) Load(path string, opt Options) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opt.SheetName, opt.SheetIndex, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	dateStyles := map[int]bool{}
	isDateCell := func(row, col int) bool {
		ref, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			return false
		}
		idx, err := f.GetCellStyle(sheet, ref)
		if err != nil || idx == 0 {
			return false
		}
		if d, ok := dateStyles[idx]; ok {
			return d
		}
		st, err := f.GetStyle(idx)
		d := err == nil && st != nil && isDateFormat(st.NumFmt, st.CustomNumFmt)
		dateStyles[idx] = d
		return d
	}

	return fromRows(rows, func(raw string, row, col int) dataset.Value {
		v := classify.ParseCell(raw, opt.Number)
		if v.Kind == dataset.KindNumber && isDateCell(row, col) {
			if t, ok := period.FromSerial(v.Num); ok {
				return dataset.Date(t)
			}
		}
		return v
	}), nil
}

// pickSheet resolves a sheet by name, then by 1-based index, defaulting to
// the first sheet.
func pickSheet(sheets []string, name string, index int, file string) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook '%s' has no sheets", file)
	}
	if name != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, name) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
			name, file, strings.Join(sheets, ", "))
	}
	if index <= 0 {
		index = 1
	}
	if index > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range: workbook '%s' has %d sheet(s)", index, file, len(sheets))
	}
	return sheets[index-1], nil
}

// Built-in number formats 14-22 and 45-47 are dates or times.
func isDateFormat(numFmt int, custom *string) bool {
	if (numFmt >= 14 && numFmt <= 22) || (numFmt >= 45 && numFmt <= 47) {
		return true
	}
	if custom == nil {
		return false
	}
	lc := strings.ToLower(*custom)
	return strings.Contains(lc, "yy") || strings.Contains(lc, "dd") || strings.Contains(lc, "mmm")
}
