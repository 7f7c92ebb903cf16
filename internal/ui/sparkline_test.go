package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparklineAllZeros(t *testing.T) {
	assert.Equal(t, "▁▁▁▁▁", Sparkline([]int64{0, 0, 0, 0, 0}, 5))
}

func TestSparklineNoPadding(t *testing.T) {
	result := Sparkline([]int64{100}, 5)
	assert.Equal(t, "█", result)
}

func TestSparklineNormalRange(t *testing.T) {
	data := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	runes := []rune(Sparkline(data, 8))
	assert.Len(t, runes, 8)
	assert.Equal(t, '▁', runes[0])
	assert.Equal(t, '█', runes[7])
}

func TestSparklineAllSame(t *testing.T) {
	for _, r := range Sparkline([]int64{5, 5, 5, 5}, 4) {
		assert.Equal(t, '█', r)
	}
}

func TestSparklineNegativeCorrections(t *testing.T) {
	runes := []rune(Sparkline([]int64{-50, 10, 0}, 3))
	assert.Equal(t, []rune("▁█▁"), runes)
}

func TestSparklineEmpty(t *testing.T) {
	assert.Equal(t, "", Sparkline([]int64{1, 2, 3}, 0))
	assert.Equal(t, "", Sparkline(nil, 10))
}

func TestSparklineBucketsLongSeries(t *testing.T) {
	data := make([]int64, 100)
	data[99] = 1000
	data[0] = 1000

	runes := []rune(Sparkline(data, 10))
	assert.Len(t, runes, 10)
	assert.Equal(t, '█', runes[0])
	assert.Equal(t, '█', runes[9])
	assert.Equal(t, '▁', runes[5])
}

func TestSparkColumn(t *testing.T) {
	tests := []struct {
		i, n, width int
		want        int
	}{
		{0, 3, 10, 0},
		{2, 3, 10, 2},
		{0, 100, 10, 0},
		{9, 100, 10, 0},
		{10, 100, 10, 1},
		{99, 100, 10, 9},
		{5, 10, 3, 1},
		{0, 0, 10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SparkColumn(tt.i, tt.n, tt.width), "i=%d n=%d width=%d", tt.i, tt.n, tt.width)
	}
}
