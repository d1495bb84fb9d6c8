// Package sample generates synthetic budget-versus-actual sales data for
// trying the analyzers without a real export.
package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/validate"
)

// Columns of every generated dataset.
var Columns = []string{"Date", "Product", "Category", "State", "City", "Budget", "Actuals", "Channel"}

const (
	DefaultBusiness = "general retail business"
	DefaultMonths   = 12
	DefaultRecords  = 1000
)

// Options controls generation. Zero values take the defaults; End defaults
// to today. The same Seed and End always produce the same rows.
type Options struct {
	Business string    `json:"business"`
	Months   int       `json:"months" validate:"gte=1,lte=24"`
	Records  int       `json:"records" validate:"gte=50,lte=10000"`
	End      time.Time `json:"end"`
	Seed     int64     `json:"seed"`
}

func (o Options) withDefaults() Options {
	if o.Business == "" {
		o.Business = DefaultBusiness
	}
	if o.Months == 0 {
		o.Months = DefaultMonths
	}
	if o.Records == 0 {
		o.Records = DefaultRecords
	}
	if o.End.IsZero() {
		o.End = time.Now()
	}
	y, m, d := o.End.Date()
	o.End = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return o
}

// Generate builds Records rows spread uniformly over the Months*30 days
// ending at End, sorted by date.
func Generate(opt Options) (*dataset.Dataset, error) {
	opt = opt.withDefaults()
	if err := validate.Struct(opt); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(opt.Seed))
	start := opt.End.AddDate(0, 0, -opt.Months*30)
	days := int(opt.End.Sub(start).Hours() / 24)
	products := catalogFor(opt.Business).products()
	lo, hi := budgetRange(opt.Business)

	recs := make([]dataset.Record, opt.Records)
	for i := range recs {
		date := start.AddDate(0, 0, rng.Intn(days+1))
		st := states[rng.Intn(len(states))]
		city := st.cities[rng.Intn(len(st.cities))]
		p := products[rng.Intn(len(products))]
		ch := channels[rng.Intn(len(channels))]

		budget := lo + rng.Intn(hi-lo+1)
		if majorStates[st.name] {
			budget = int(float64(budget) * uniform(rng, 1.1, 1.4))
		}
		budget = int(float64(budget) * uniform(rng, ch.lo, ch.hi))
		actuals := int(float64(budget) * uniform(rng, 0.75, 1.4))

		recs[i] = dataset.Record{
			"Date":     dataset.Date(date),
			"Product":  dataset.Text(p.name),
			"Category": dataset.Text(p.category),
			"State":    dataset.Text(st.name),
			"City":     dataset.Text(city),
			"Budget":   dataset.Number(float64(budget)),
			"Actuals":  dataset.Number(float64(actuals)),
			"Channel":  dataset.Text(ch.name),
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i]["Date"].Time.Before(recs[j]["Date"].Time)
	})
	return dataset.New(Columns, recs...), nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// WriteCSV writes ds with a header row. Dates are ISO formatted, numbers use
// the shortest exact representation and absent cells are empty.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(ds.Columns))
	for _, rec := range ds.Records {
		for i, col := range ds.Columns {
			row[i] = cell(rec.Get(col))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(v dataset.Value) string {
	switch v.Kind {
	case dataset.KindDate:
		return v.Time.Format("2006-01-02")
	case dataset.KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case dataset.KindText:
		return v.Str
	}
	return ""
}
