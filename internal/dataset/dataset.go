package dataset

import (
	"encoding/json"
	"strconv"
	"time"
)

// Kind identifies the type carried by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindNumber
	KindDate
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindText:
		return "text"
	default:
		return "absent"
	}
}

// Value is a single typed cell. The zero Value is absent.
type Value struct {
	Kind Kind
	Num  float64
	Time time.Time
	Str  string
}

func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }
func Text(s string) Value    { return Value{Kind: KindText, Str: s} }
func Absent() Value          { return Value{} }

func (v Value) IsAbsent() bool { return v.Kind == KindAbsent }

// Float returns the numeric payload. Only number cells are numeric; text is
// never re-parsed here (see classify.Coerce).
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// String renders the value the way it would appear in a cell.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate:
		return v.Time.Format("2006-01-02")
	case KindText:
		return v.Str
	default:
		return ""
	}
}

// MarshalJSON writes numbers as numbers, dates as ISO-8601 strings and absent as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindDate:
		return json.Marshal(v.Time.Format("2006-01-02"))
	case KindText:
		return json.Marshal(v.Str)
	default:
		return []byte("null"), nil
	}
}

// Record maps column name to value. A missing key is an absent value.
type Record map[string]Value

// Get returns the value for col, absent when unset.
func (r Record) Get(col string) Value {
	if r == nil {
		return Value{}
	}
	return r[col]
}

// Dataset is an ordered sequence of records sharing Columns.
type Dataset struct {
	Columns []string
	Records []Record
}

// New builds a dataset with the given column order.
func New(columns []string, records ...Record) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{Columns: cols, Records: records}
}

// Len reports the number of records; a nil dataset has none.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Has reports whether col is a declared column.
func (d *Dataset) Has(col string) bool {
	if d == nil {
		return false
	}
	for _, c := range d.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Missing returns the non-empty names in cols that the dataset does not declare,
// in the order given.
func (d *Dataset) Missing(cols ...string) []string {
	var out []string
	for _, c := range cols {
		if c == "" {
			continue
		}
		if !d.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Column returns the values of col in record order.
func (d *Dataset) Column(col string) []Value {
	if d == nil {
		return nil
	}
	out := make([]Value, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Get(col)
	}
	return out
}
