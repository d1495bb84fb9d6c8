// Package contribution ranks categories by their share of a numeric total and
// derives concentration, diversity and per-period breakdowns from the ranking.
package contribution

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/period"
	"github.com/KaramelBytes/finsight-cli/internal/quality"
	"github.com/KaramelBytes/finsight-cli/internal/validate"
)

// Unspecified labels rows whose subcategory cell is empty.
const Unspecified = "(unspecified)"

// Analyze computes the contribution of every category in ds. It never
// panics and never mutates ds; problems with the input are reported through
// Result.Success and Result.ErrorMessage.
func Analyze(ds *dataset.Dataset, p Params) Result {
	started := time.Now()
	p = p.withDefaults()
	res := Result{
		Metadata: Metadata{
			ValueColumn:       p.ValueColumn,
			CategoryColumn:    p.CategoryColumn,
			SubcategoryColumn: p.SubcategoryColumn,
			Scope:             p.Scope,
			PeriodFilter:      p.PeriodFilter,
			TotalRows:         ds.Len(),
			Hierarchical:      p.SubcategoryColumn != "",
			DataQuality:       quality.Poor,
		},
		Items:           []Item{},
		Insights:        []string{},
		Recommendations: []string{},
	}

	if err := validate.Struct(p); err != nil {
		return res.fail(err.Error())
	}
	if ds.Len() == 0 {
		return res.fail("No data available for analysis")
	}
	required := []string{p.ValueColumn, p.CategoryColumn, p.SubcategoryColumn}
	if p.PeriodFilter != "" {
		required = append(required, p.PeriodColumn)
	}
	if p.TimePeriod.Enabled {
		required = append(required, p.TimePeriod.DateColumn)
	}
	if missing := ds.Missing(required...); len(missing) > 0 {
		return res.fail("Missing required columns: " + strings.Join(missing, ", "))
	}

	scoped := ds
	if p.PeriodColumn != "" && p.PeriodFilter != "" {
		scoped = filterPeriod(ds, p.PeriodColumn, p.PeriodFilter)
		if scoped.Len() == 0 {
			return res.fail("No data found for period: " + p.PeriodFilter)
		}
	}

	groups, used, nulls := aggregate(scoped.Records, p)
	res.Metadata.AnalyzedRows = used
	res.Metadata.NullCells = nulls
	if skipped := scoped.Len() - used; skipped > 0 {
		log.Warn().Str("component", "contribution").Int("skipped", skipped).
			Msg("rows without a category or numeric value were skipped")
	}

	var total float64
	for _, g := range groups {
		total += g.value(p.Scope)
	}
	raw := buildItems(groups, total, p)
	byShare := rankedByShare(raw)

	res.Summary = summarize(raw, byShare, total, p)
	res.Items = groupOthers(raw, p)
	res.Metadata.OthersGrouped = len(res.Items) < len(raw)
	cells := 2 * scoped.Len()
	res.Metadata.DataQuality = quality.Assess(quality.Ratio(cells-nulls, cells), len(groups))

	if p.TimePeriod.Enabled {
		names := make([]string, len(byShare))
		for i, it := range byShare {
			names[i] = it.Category
		}
		res.TimePeriod, res.Metadata.DateRange = analyzePeriods(scoped, p, names)
	}

	res.Insights = insights(res, byShare, p)
	res.Recommendations = recommendations(res, p)
	res.Success = true

	log.Debug().Str("component", "contribution").
		Int("rows", scoped.Len()).
		Int("categories", len(groups)).
		Dur("elapsed", time.Since(started)).
		Msg("contribution analysis complete")
	return res
}

func (r Result) fail(msg string) Result {
	r.Success = false
	r.ErrorMessage = msg
	r.Metadata.DataQuality = quality.Poor
	log.Debug().Str("component", "contribution").Str("reason", msg).Msg("contribution analysis rejected")
	return r
}

type group struct {
	name  string
	sum   float64
	count int
	subs  []*group
	subAt map[string]*group
}

func (g *group) add(v float64) {
	g.sum += v
	g.count++
}

func (g *group) child(name string) *group {
	if g.subAt == nil {
		g.subAt = map[string]*group{}
	}
	c, ok := g.subAt[name]
	if !ok {
		c = &group{name: name}
		g.subAt[name] = c
		g.subs = append(g.subs, c)
	}
	return c
}

// value is the sum, or the per-row mean under ScopeAverage.
func (g *group) value(scope Scope) float64 {
	if scope == ScopeAverage && g.count > 0 {
		return g.sum / float64(g.count)
	}
	return g.sum
}

// aggregate groups records by category in first-seen order. Rows missing a
// category or holding a non-numeric value are skipped; each such cell is
// counted in nulls.
func aggregate(recs []dataset.Record, p Params) (groups []*group, used, nulls int) {
	index := map[string]*group{}
	for _, rec := range recs {
		v, okVal := rec.Get(p.ValueColumn).Float()
		cat := label(rec.Get(p.CategoryColumn))
		if !okVal {
			nulls++
		}
		if cat == "" {
			nulls++
		}
		if !okVal || cat == "" {
			continue
		}
		g, ok := index[cat]
		if !ok {
			g = &group{name: cat}
			index[cat] = g
			groups = append(groups, g)
		}
		g.add(v)
		if p.SubcategoryColumn != "" {
			sub := label(rec.Get(p.SubcategoryColumn))
			if sub == "" {
				sub = Unspecified
			}
			g.child(sub).add(v)
		}
		used++
	}
	return groups, used, nulls
}

func label(v dataset.Value) string {
	return strings.TrimSpace(v.String())
}

func percentOf(v, total float64) float64 {
	if total == 0 {
		return 0
	}
	return v / total * 100
}

func buildItems(groups []*group, total float64, p Params) []Item {
	items := make([]Item, len(groups))
	for i, g := range groups {
		v := g.value(p.Scope)
		items[i] = Item{
			Category:            g.name,
			Value:               v,
			Count:               g.count,
			ContributionPercent: percentOf(v, total),
		}
		if p.SubcategoryColumn != "" {
			items[i].Subcategories = subItems(g, v, total, p.Scope)
		}
	}
	if p.SubcategoryColumn != "" {
		sortItems(items, SortValue, Desc)
	} else {
		sortItems(items, p.SortBy, p.SortOrder)
	}

	var cum float64
	for i := range items {
		it := &items[i]
		it.Rank = i + 1
		cum += it.ContributionPercent
		it.CumulativePercent = cum
		it.Percentile = percentileBand(it.Rank, len(items))
		it.Significance = significanceOf(it.ContributionPercent)
		it.BelowMinimum = it.ContributionPercent < p.MinimumContribution
	}
	return items
}

func subItems(g *group, parent, total float64, scope Scope) []SubItem {
	out := make([]SubItem, len(g.subs))
	for i, s := range g.subs {
		v := s.value(scope)
		out[i] = SubItem{
			Subcategory:         s.name,
			Value:               v,
			Count:               s.count,
			ContributionPercent: percentOf(v, total),
			ShareOfCategory:     percentOf(v, parent),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Subcategory < out[j].Subcategory
	})
	return out
}

// sortItems orders by key then category name, so equal keys never depend on
// input order.
func sortItems(items []Item, key SortKey, order Order) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var c int
		switch key {
		case SortAlphabetical:
			c = strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
		case SortValue:
			c = compare(a.Value, b.Value)
		default:
			c = compare(a.ContributionPercent, b.ContributionPercent)
		}
		if order == Desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return a.Category < b.Category
	})
}

func compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// rankedByShare returns a copy of items ordered by contribution descending.
func rankedByShare(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sortItems(out, SortContribution, Desc)
	return out
}

func percentileBand(rank, n int) string {
	if n == 0 {
		return ""
	}
	r := float64(rank) / float64(n)
	switch {
	case r <= 0.25:
		return "Top 25%"
	case r <= 0.5:
		return "Top 50%"
	case r <= 0.75:
		return "Top 75%"
	default:
		return "Bottom 25%"
	}
}

func significanceOf(pct float64) Significance {
	switch {
	case pct >= 20:
		return Major
	case pct >= 10:
		return Moderate
	case pct >= 5:
		return Minor
	default:
		return Negligible
	}
}

// groupOthers keeps the first MaxVisibleItems-1 items and folds the rest into
// a single Others item ranked MaxVisibleItems.
func groupOthers(items []Item, p Params) []Item {
	if !p.ShowOthers || len(items) <= MaxVisibleItems {
		return items
	}
	keep := MaxVisibleItems - 1
	rest := items[keep:]
	o := Item{
		Category:          fmt.Sprintf("Others (%d categories)", len(rest)),
		Rank:              MaxVisibleItems,
		IsOthers:          true,
		GroupedCategories: len(rest),
		CumulativePercent: rest[len(rest)-1].CumulativePercent,
		Percentile:        percentileBand(MaxVisibleItems, MaxVisibleItems),
	}
	for _, it := range rest {
		o.Value += it.Value
		o.Count += it.Count
		o.ContributionPercent += it.ContributionPercent
	}
	o.Significance = significanceOf(o.ContributionPercent)
	o.BelowMinimum = o.ContributionPercent < p.MinimumContribution

	out := make([]Item, 0, MaxVisibleItems)
	out = append(out, items[:keep]...)
	return append(out, o)
}

func summarize(raw, byShare []Item, total float64, p Params) Summary {
	s := Summary{
		TotalValue:         total,
		CategoryCount:      len(raw),
		ConcentrationRatio: concentration(byShare),
		DiversityIndex:     diversity(raw, total),
	}
	if len(raw) > 0 {
		s.AverageValue = total / float64(len(raw))
	}
	if len(byShare) > 0 && total != 0 {
		s.TopContributor = byShare[0].Category
		s.TopContribution = byShare[0].ContributionPercent
	}
	for _, it := range raw {
		if it.BelowMinimum {
			s.BelowMinimumCount++
		}
	}
	s.ParetoCategoryCount = paretoCount(byShare, total)
	return s
}

// concentration is the combined share of the top three categories, clamped
// to [0, 100].
func concentration(byShare []Item) float64 {
	var c float64
	for i := 0; i < len(byShare) && i < 3; i++ {
		c += byShare[i].ContributionPercent
	}
	return clamp(c, 0, 100)
}

// diversity is Simpson's index 1 - Σ share² in [0, 1].
func diversity(items []Item, total float64) float64 {
	if total == 0 || len(items) == 0 {
		return 0
	}
	var sq float64
	for _, it := range items {
		s := it.ContributionPercent / 100
		sq += s * s
	}
	return clamp(1-sq, 0, 1)
}

func paretoCount(byShare []Item, total float64) int {
	if total == 0 {
		return 0
	}
	var cum float64
	for i, it := range byShare {
		cum += it.ContributionPercent
		if cum >= ParetoShare-1e-9 {
			return i + 1
		}
	}
	return len(byShare)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func filterPeriod(ds *dataset.Dataset, col, filter string) *dataset.Dataset {
	needle := strings.ToLower(strings.TrimSpace(filter))
	out := dataset.New(ds.Columns)
	for _, rec := range ds.Records {
		if matchesPeriod(rec.Get(col), needle) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

// matchesPeriod tests the cell text and, for date cells, its ISO date and
// month, quarter and year keys ("2024-jan", "2024-q1", "2024").
func matchesPeriod(v dataset.Value, needle string) bool {
	if v.IsAbsent() {
		return false
	}
	if strings.Contains(strings.ToLower(v.String()), needle) {
		return true
	}
	if v.Kind == dataset.KindNumber {
		return false
	}
	t, ok := period.ParseDate(v)
	if !ok {
		return false
	}
	keys := []string{
		t.Format("2006-01-02"),
		period.Key(t, period.Month),
		period.Key(t, period.Quarter),
		period.Key(t, period.Year),
	}
	for _, k := range keys {
		if strings.Contains(strings.ToLower(k), needle) {
			return true
		}
	}
	return false
}
