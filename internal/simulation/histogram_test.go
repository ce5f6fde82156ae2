package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildHistogramInclusiveMaxCountsEveryValue(t *testing.T) {
	values := []float64{0, 10, 25, 49, 50, 99, 100}

	hist := buildHistogram(values, 0, 100, 10, BinRuleInclusiveMax)

	assert.Len(t, hist.Labels, 10)
	assert.Len(t, hist.Edges, 11)
	assert.Equal(t, len(values), hist.Total())
	assert.Equal(t, []int{1, 1, 1, 0, 1, 1, 0, 0, 0, 2}, hist.Counts)
	assert.Equal(t, "$0 - $10", hist.Labels[0])
	assert.Equal(t, "$90 - $100", hist.Labels[9])
}

func TestBuildHistogramHalfOpenDropsMaximum(t *testing.T) {
	values := []float64{0, 10, 25, 49, 50, 99, 100}

	hist := buildHistogram(values, 0, 100, 10, BinRuleHalfOpen)

	assert.Equal(t, len(values)-1, hist.Total())
	assert.Equal(t, 1, hist.Counts[9])
}

func TestBuildHistogramZeroWidth(t *testing.T) {
	hist := buildHistogram([]float64{500, 500, 500}, 500, 500, 10, BinRuleHalfOpen)

	assert.Equal(t, []string{"$500 - $500"}, hist.Labels)
	assert.Equal(t, []int{3}, hist.Counts)
}

func TestBinLabelRoundsEdges(t *testing.T) {
	assert.Equal(t, "$33 - $67", binLabel(33.3, 66.6))
	assert.Equal(t, "$1 - $2", binLabel(0.5, 2.4))
}

func TestNearestBinClamps(t *testing.T) {
	assert.Equal(t, 0, nearestBin(-5, 0, 10, 10))
	assert.Equal(t, 9, nearestBin(100, 0, 10, 10))
	assert.Equal(t, 4, nearestBin(45, 0, 10, 10))
}
