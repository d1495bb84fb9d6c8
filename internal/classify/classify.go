package classify

import (
	"strings"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/period"
)

// Role is the inferred kind of a column.
type Role string

const (
	RoleNumeric Role = "numeric"
	RoleDate    Role = "date"
	RoleText    Role = "text"
	RoleMixed   Role = "mixed"
)

// SampleSize is how many populated cells are inspected per column.
const SampleSize = 10

const (
	numericShare  = 0.8
	dateHintShare = 0.5
	dateShare     = 0.8
	textShare     = 0.8
)

// Keyword priority lists for PickDefault.
var (
	BudgetKeywords   = []string{"budget", "planned", "target", "forecast", "plan"}
	ActualKeywords   = []string{"actual", "real", "achieved", "result", "revenue", "sales"}
	DateKeywords     = []string{"date", "time", "period", "month", "day"}
	CategoryKeywords = []string{"category", "product", "segment", "type", "region", "channel", "department", "name"}
)

var dateNameHints = []string{"date", "time"}

// Roles lists columns by inferred role, each in dataset column order.
type Roles struct {
	Numeric  []string        `json:"numericColumns"`
	Date     []string        `json:"dateColumns"`
	Text     []string        `json:"textColumns"`
	Mixed    []string        `json:"mixedColumns"`
	ByColumn map[string]Role `json:"byColumn"`
}

// Of returns the columns with role r.
func (rs Roles) Of(r Role) []string {
	switch r {
	case RoleNumeric:
		return rs.Numeric
	case RoleDate:
		return rs.Date
	case RoleText:
		return rs.Text
	default:
		return rs.Mixed
	}
}

// Classify infers a role for every column. It never fails; an empty dataset
// yields empty lists.
func Classify(ds *dataset.Dataset) Roles {
	rs := Roles{
		Numeric:  []string{},
		Date:     []string{},
		Text:     []string{},
		Mixed:    []string{},
		ByColumn: map[string]Role{},
	}
	if ds.Len() == 0 {
		return rs
	}
	for _, col := range ds.Columns {
		r := RoleOf(ds, col)
		rs.ByColumn[col] = r
		switch r {
		case RoleNumeric:
			rs.Numeric = append(rs.Numeric, col)
		case RoleDate:
			rs.Date = append(rs.Date, col)
		case RoleText:
			rs.Text = append(rs.Text, col)
		default:
			rs.Mixed = append(rs.Mixed, col)
		}
	}
	return rs
}

// RoleOf infers the role of a single column from its first SampleSize populated values.
func RoleOf(ds *dataset.Dataset, col string) Role {
	samples := sample(ds, col)
	if len(samples) == 0 {
		return RoleText
	}
	var nums, dates, strictDates, texts int
	for _, v := range samples {
		if looksLikeDate(v) {
			dates++
		}
		switch v.Kind {
		case dataset.KindNumber:
			nums++
		case dataset.KindDate:
			strictDates++
		case dataset.KindText:
			if _, ok := ParseNumber(v.Str, Options{}); ok {
				nums++
			} else if _, ok := period.ParseString(v.Str); ok {
				strictDates++
			} else {
				texts++
			}
		}
	}
	n := float64(len(samples))
	switch {
	case hasDateHint(col) && float64(dates)/n >= dateHintShare:
		return RoleDate
	case float64(nums)/n >= numericShare:
		return RoleNumeric
	case float64(strictDates)/n >= dateShare:
		return RoleDate
	case float64(texts)/n >= textShare:
		return RoleText
	default:
		return RoleMixed
	}
}

// PickDefault chooses a column for role: the first column of that role whose
// name contains a keyword (keywords in priority order), else the first column
// of that role, else the first column overall. Empty datasets yield "".
func PickDefault(role Role, ds *dataset.Dataset, keywords []string) string {
	if ds == nil || len(ds.Columns) == 0 {
		return ""
	}
	rs := Classify(ds)
	candidates := rs.Of(role)
	if role == RoleText {
		// Mixed columns still make usable category labels.
		candidates = append(append([]string{}, candidates...), rs.Mixed...)
	}
	for _, kw := range keywords {
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c), kw) {
				return c
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ds.Columns[0]
}

// Defaults are best-guess column picks for the analyzers.
type Defaults struct {
	Budget   string `json:"budget"`
	Actual   string `json:"actual"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

// PickDefaults fills Defaults. Budget and actual are kept distinct when the
// dataset has at least two numeric columns.
func PickDefaults(ds *dataset.Dataset) Defaults {
	d := Defaults{
		Budget:   PickDefault(RoleNumeric, ds, BudgetKeywords),
		Actual:   PickDefault(RoleNumeric, ds, ActualKeywords),
		Date:     PickDefault(RoleDate, ds, DateKeywords),
		Category: PickDefault(RoleText, ds, CategoryKeywords),
	}
	if d.Budget == d.Actual {
		for _, c := range Classify(ds).Numeric {
			if c != d.Budget {
				d.Actual = c
				break
			}
		}
	}
	return d
}

func sample(ds *dataset.Dataset, col string) []dataset.Value {
	out := make([]dataset.Value, 0, SampleSize)
	for _, r := range ds.Records {
		v := r.Get(col)
		if v.IsAbsent() {
			continue
		}
		if v.Kind == dataset.KindText && IsNullToken(v.Str) {
			continue
		}
		out = append(out, v)
		if len(out) == SampleSize {
			break
		}
	}
	return out
}

// Serial numbers only count toward the name-hint rule inside this window
// (1927..2173), so an "uptime_hours" column of small integers stays numeric.
const (
	minPlausibleSerial = 10000
	maxPlausibleSerial = 100000
)

func looksLikeDate(v dataset.Value) bool {
	f, ok := v.Float()
	if !ok && v.Kind == dataset.KindText {
		f, ok = ParseNumber(v.Str, Options{})
	}
	if ok {
		return f >= minPlausibleSerial && f <= maxPlausibleSerial
	}
	_, ok = period.ParseDate(v)
	return ok
}

func hasDateHint(col string) bool {
	lc := strings.ToLower(col)
	for _, h := range dateNameHints {
		if strings.Contains(lc, h) {
			return true
		}
	}
	return false
}
