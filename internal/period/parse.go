package period

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
)

// serialEpoch is day zero of spreadsheet serial dates (1900 date system, with
// the leap-year bug already folded in).
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// maxSerial is 9999-12-31.
const maxSerial = 2958465

var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"01-02-2006",
	"1-2-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, Jan 2, 2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2006",
	"January 2006",
}

// ParseDate converts a cell into a calendar date. Dates pass through, numbers
// are read as spreadsheet serials and text is tried against the known layouts.
// It never panics; ok is false when nothing matches.
func ParseDate(v dataset.Value) (time.Time, bool) {
	switch v.Kind {
	case dataset.KindDate:
		return civil(v.Time), true
	case dataset.KindNumber:
		return FromSerial(v.Num)
	case dataset.KindText:
		s := strings.TrimSpace(v.Str)
		if t, ok := ParseString(s); ok {
			return t, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return FromSerial(f)
		}
	}
	return time.Time{}, false
}

// ParseString parses a date string. Bare numbers are rejected; use ParseDate
// when a serial is acceptable.
func ParseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return civil(t), true
		}
	}
	return time.Time{}, false
}

// FromSerial converts a spreadsheet serial (days since 1899-12-30) to a date.
// The fractional time-of-day part is dropped.
func FromSerial(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f > maxSerial {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, int(math.Floor(f))), true
}

// civil truncates t to midnight UTC of its calendar day.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
