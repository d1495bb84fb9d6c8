package quality

// Grade is a coarse data-quality rating shown in result metadata.
type Grade string

const (
	Excellent Grade = "Excellent"
	Good      Grade = "Good"
	Fair      Grade = "Fair"
	Poor      Grade = "Poor"
)

// Assess grades a dataset slice from the share of populated cells (0..1) and
// the number of distinct groups it produced (categories or periods).
func Assess(nonNullRatio float64, groups int) Grade {
	switch {
	case nonNullRatio >= 0.95 && groups >= 3:
		return Excellent
	case nonNullRatio >= 0.85 && groups >= 2:
		return Good
	case nonNullRatio >= 0.70 && groups >= 2:
		return Fair
	default:
		return Poor
	}
}

// Ratio returns populated/total, or 0 when total is 0.
func Ratio(populated, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(populated) / float64(total)
}
