package dataset

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAccessors(t *testing.T) {
	f, ok := Number(12.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	_, ok = Text("12.5").Float()
	assert.False(t, ok, "text must not be re-parsed as a number")

	assert.True(t, Absent().IsAbsent())
	assert.True(t, Value{}.IsAbsent())

	d := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09", Date(d).String())
	assert.Equal(t, "1200", Number(1200).String())
	assert.Equal(t, "", Absent().String())
}

func TestValueJSON(t *testing.T) {
	rec := Record{
		"amount": Number(10),
		"when":   Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		"name":   Text("A"),
		"gap":    Absent(),
	}
	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":10,"when":"2024-01-02","name":"A","gap":null}`, string(b))
}

func TestDatasetColumns(t *testing.T) {
	ds := New([]string{"cat", "val"},
		Record{"cat": Text("A"), "val": Number(1)},
		Record{"cat": Text("B")},
	)
	assert.Equal(t, 2, ds.Len())
	assert.True(t, ds.Has("val"))
	assert.False(t, ds.Has("budget"))
	assert.Equal(t, []string{"budget", "date"}, ds.Missing("cat", "budget", "", "date"))
	assert.Nil(t, ds.Missing("cat", "val"))

	col := ds.Column("val")
	require.Len(t, col, 2)
	assert.True(t, col[1].IsAbsent())

	var nilDS *Dataset
	assert.Equal(t, 0, nilDS.Len())
	assert.False(t, nilDS.Has("x"))
}
