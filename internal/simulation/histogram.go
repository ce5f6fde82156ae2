package simulation

import (
	"fmt"
	"math"
)

// buildHistogram bins values into equal-width buckets spanning [min, max].
//
// Bin i covers [min+i*w, min+i*w+w). With BinRuleHalfOpen a value that
// lands in no bucket (the maximum itself) is left uncounted. With
// BinRuleInclusiveMax such values go to the nearest bucket, so the counts
// always sum to len(values). A zero-width range collapses to one bucket.
func buildHistogram(values []float64, min, max float64, bins int, rule BinRule) Histogram {
	width := (max - min) / float64(bins)
	if width == 0 || bins <= 0 {
		return Histogram{
			Labels: []string{binLabel(min, max)},
			Counts: []int{len(values)},
			Edges:  []float64{min, max},
		}
	}

	hist := Histogram{
		Labels: make([]string, bins),
		Counts: make([]int, bins),
		Edges:  make([]float64, bins+1),
	}
	starts := make([]float64, bins)
	ends := make([]float64, bins)
	for i := 0; i < bins; i++ {
		starts[i] = min + float64(i)*width
		ends[i] = starts[i] + width
		hist.Edges[i] = starts[i]
		hist.Labels[i] = binLabel(starts[i], ends[i])
	}
	hist.Edges[bins] = ends[bins-1]

	for _, v := range values {
		placed := false
		for i := 0; i < bins; i++ {
			if v >= starts[i] && v < ends[i] {
				hist.Counts[i]++
				placed = true
				break
			}
		}
		if !placed && rule != BinRuleHalfOpen {
			hist.Counts[nearestBin(v, min, width, bins)]++
		}
	}
	return hist
}

func nearestBin(v, min, width float64, bins int) int {
	idx := int(math.Floor((v - min) / width))
	if idx < 0 {
		return 0
	}
	if idx >= bins {
		return bins - 1
	}
	return idx
}

func binLabel(lo, hi float64) string {
	return fmt.Sprintf("$%d - $%d", int64(math.Round(lo)), int64(math.Round(hi)))
}
