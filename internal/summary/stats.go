package summary

import "sort"

// descriptiveStats holds the summary statistics shown in HTML summaries
type descriptiveStats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// describe computes min, max, mean and median of the given values. It
// returns the zero value for an empty slice.
func describe(values []float64) descriptiveStats {
	if len(values) == 0 {
		return descriptiveStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return descriptiveStats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   sum / float64(len(sorted)),
		Median: median,
	}
}
