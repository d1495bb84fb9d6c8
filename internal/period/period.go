package period

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
)

// Type is a calendar bucket granularity.
type Type string

const (
	Week    Type = "week"
	Month   Type = "month"
	Quarter Type = "quarter"
	Year    Type = "year"
)

// ParseType accepts both the bucket name and its adjective form
// ("monthly", "quarterly", ...).
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	case "quarter", "quarterly":
		return Quarter, nil
	case "year", "yearly", "annual", "annually":
		return Year, nil
	}
	return "", fmt.Errorf("unsupported period type: %q", s)
}

// Key returns the canonical bucket key for t: "2024", "2024-Q1", "2024-Jan" or "2024-W05".
func Key(t time.Time, typ Type) string {
	switch typ {
	case Year:
		return strconv.Itoa(t.Year())
	case Quarter:
		return fmt.Sprintf("%d-Q%d", t.Year(), quarterOf(t.Month()))
	case Week:
		return fmt.Sprintf("%d-W%02d", t.Year(), weekOf(t))
	default:
		return fmt.Sprintf("%d-%s", t.Year(), t.Month().String()[:3])
	}
}

// SortableLabel is like Key but sorts lexically in chronological order
// (months are numeric: "2024-01").
func SortableLabel(t time.Time, typ Type) string {
	if typ == Month || typ == "" {
		return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
	}
	return Key(t, typ)
}

// Start returns the first calendar day of the bucket named by key.
func Start(key string, typ Type) (time.Time, bool) {
	key = strings.TrimSpace(key)
	switch typ {
	case Year:
		y, err := strconv.Atoi(key)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), true
	case Quarter:
		var y, q int
		if _, err := fmt.Sscanf(key, "%d-Q%d", &y, &q); err != nil || q < 1 || q > 4 {
			return time.Time{}, false
		}
		return time.Date(y, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC), true
	case Week:
		var y, w int
		if _, err := fmt.Sscanf(key, "%d-W%d", &y, &w); err != nil || w < 1 || w > 54 {
			return time.Time{}, false
		}
		jan1 := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		start := jan1.AddDate(0, 0, 7*(w-1)-int(jan1.Weekday()))
		if start.Before(jan1) {
			start = jan1
		}
		return start, true
	default:
		for _, layout := range []string{"2006-Jan", "2006-01"} {
			if t, err := time.Parse(layout, key); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
}

// SortKeys orders keys chronologically in place. Keys that do not parse go
// last, in lexical order.
func SortKeys(keys []string, typ Type) {
	sort.SliceStable(keys, func(i, j int) bool {
		ti, oki := Start(keys[i], typ)
		tj, okj := Start(keys[j], typ)
		switch {
		case oki && okj:
			if ti.Equal(tj) {
				return keys[i] < keys[j]
			}
			return ti.Before(tj)
		case oki:
			return true
		case okj:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

// Bucket is one calendar period and the dataset rows that fall in it.
type Bucket struct {
	Key   string
	Start time.Time
	Rows  []int
	// First and Last are the earliest and latest dates seen in the bucket.
	First time.Time
	Last  time.Time
}

// Group buckets dataset rows by the date in dateCol. Buckets are returned in
// chronological order and row indices keep dataset order. Rows whose date
// does not parse are excluded and counted in skipped.
func Group(ds *dataset.Dataset, dateCol string, typ Type) (buckets []Bucket, skipped int) {
	index := map[string]int{}
	for i := 0; i < ds.Len(); i++ {
		t, ok := ParseDate(ds.Records[i].Get(dateCol))
		if !ok {
			skipped++
			continue
		}
		k := Key(t, typ)
		pos, seen := index[k]
		if !seen {
			start, _ := Start(k, typ)
			buckets = append(buckets, Bucket{Key: k, Start: start, First: t, Last: t})
			pos = len(buckets) - 1
			index[k] = pos
		}
		b := &buckets[pos]
		b.Rows = append(b.Rows, i)
		if t.Before(b.First) {
			b.First = t
		}
		if t.After(b.Last) {
			b.Last = t
		}
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Start.Before(buckets[j].Start) })
	return buckets, skipped
}

func quarterOf(m time.Month) int { return (int(m)-1)/3 + 1 }

// weekOf numbers weeks from Jan 1, with week boundaries on Sunday.
func weekOf(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return (t.YearDay()-1+int(jan1.Weekday()))/7 + 1
}

// Range is an inclusive ISO-8601 date span for result metadata.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NewRange formats first..last as ISO dates.
func NewRange(first, last time.Time) *Range {
	return &Range{Start: first.Format("2006-01-02"), End: last.Format("2006-01-02")}
}

// Span returns the earliest First and latest Last across buckets.
func Span(buckets []Bucket) (first, last time.Time, ok bool) {
	for i, b := range buckets {
		if i == 0 || b.First.Before(first) {
			first = b.First
		}
		if i == 0 || b.Last.After(last) {
			last = b.Last
		}
	}
	return first, last, len(buckets) > 0
}
