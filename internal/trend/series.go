package trend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/period"
)

// SeriesColumns names the dataset columns used to build a series.
type SeriesColumns struct {
	Date     string
	Value    string
	Category string
}

// SeriesFromDataset sums Value per sortable period label (and per category
// when Category is set). Rows with an unparseable date or a non-numeric
// value are skipped. Points come back ordered by period, then category.
func SeriesFromDataset(ds *dataset.Dataset, cols SeriesColumns, typ period.Type) ([]Point, error) {
	if ds.Len() == 0 {
		return nil, ErrNoData
	}
	if missing := ds.Missing(cols.Date, cols.Value, cols.Category); len(missing) > 0 {
		return nil, fmt.Errorf("trend: missing required columns: %s", strings.Join(missing, ", "))
	}
	if cols.Date == "" || cols.Value == "" {
		return nil, fmt.Errorf("trend: date and value columns are required")
	}

	type key struct{ period, category string }
	sums := map[key]float64{}
	var keys []key
	skipped := 0
	for _, rec := range ds.Records {
		t, ok := period.ParseDate(rec.Get(cols.Date))
		if !ok {
			skipped++
			continue
		}
		v, ok := rec.Get(cols.Value).Float()
		if !ok {
			skipped++
			continue
		}
		k := key{period: period.SortableLabel(t, typ)}
		if cols.Category != "" {
			k.category = strings.TrimSpace(rec.Get(cols.Category).String())
		}
		if _, seen := sums[k]; !seen {
			keys = append(keys, k)
		}
		sums[k] += v
	}
	if skipped > 0 {
		log.Warn().Str("component", "trend").Int("skipped", skipped).
			Msg("rows with an unparseable date or non-numeric value were skipped")
	}
	if len(keys) == 0 {
		return nil, ErrNoData
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].period != keys[j].period {
			return keys[i].period < keys[j].period
		}
		return keys[i].category < keys[j].category
	})
	out := make([]Point, len(keys))
	for i, k := range keys {
		out[i] = Point{Period: k.period, Value: dataset.Number(sums[k]), Category: k.category}
	}
	return out, nil
}
