package classify

import (
	"strconv"
	"strings"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/period"
)

// Options controls locale-sensitive number parsing.
type Options struct {
	// DecimalSeparator; if 0, auto-detect per value.
	DecimalSeparator rune
	// ThousandsSeparator; if 0, strip the common separators (',' '.' space) that differ from the decimal.
	ThousandsSeparator rune
}

var nullTokens = map[string]struct{}{
	"": {}, "null": {}, "nil": {}, "none": {}, "nan": {}, "n/a": {}, "na": {}, "-": {}, "--": {},
}

// IsNullToken reports whether s is a conventional placeholder for a missing cell.
func IsNullToken(s string) bool {
	_, ok := nullTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// ParseNumber parses amounts such as "1,200.50", "1.200,50", "12%", "$1,200"
// and "(300)". Percent signs are dropped, not divided.
func ParseNumber(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	if raw == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		neg = true
		raw = strings.TrimSpace(raw[1 : len(raw)-1])
	}
	raw = strings.TrimSuffix(raw, "%")
	for _, sym := range []string{"$", "€", "£", "¥"} {
		raw = strings.ReplaceAll(raw, sym, "")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0:
			if cpos > dpos {
				dec, thou = ',', '.'
			} else {
				dec, thou = '.', ','
			}
		case cpos >= 0 && strings.Count(raw, ",") == 1 && len(raw)-cpos-1 != 3:
			// "12,5" is a decimal comma; "1,200" is a grouped thousand.
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// ParseCell types a raw text cell: null tokens become absent, numbers become
// numeric, date-looking strings become dates and everything else stays text.
func ParseCell(raw string, opt Options) dataset.Value {
	s := strings.TrimSpace(raw)
	if IsNullToken(s) {
		return dataset.Absent()
	}
	if t, ok := period.ParseString(s); ok {
		return dataset.Date(t)
	}
	if f, ok := ParseNumber(s, opt); ok {
		return dataset.Number(f)
	}
	return dataset.Text(s)
}

// Coerce returns a copy of ds with text cells re-typed by ParseCell. Columns
// and record order are preserved; ds itself is not modified.
func Coerce(ds *dataset.Dataset, opt Options) *dataset.Dataset {
	if ds == nil {
		return dataset.New(nil)
	}
	out := dataset.New(ds.Columns)
	out.Records = make([]dataset.Record, len(ds.Records))
	for i, rec := range ds.Records {
		nr := make(dataset.Record, len(rec))
		for k, v := range rec {
			if v.Kind == dataset.KindText {
				v = ParseCell(v.Str, opt)
			}
			nr[k] = v
		}
		out.Records[i] = nr
	}
	return out
}
