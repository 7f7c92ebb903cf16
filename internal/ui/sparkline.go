package ui

// Sparkline renders values as Unicode block characters. The output is
// min(len(values), width) runes wide and is never padded. When there are more
// values than columns, each column shows the largest value that maps to it
// (see SparkColumn). Heights are normalized to the largest value; zero and
// negative values use the lowest block.
func Sparkline(values []int64, width int) string {
	if width <= 0 || len(values) == 0 {
		return ""
	}

	blocks := []rune("▁▂▃▄▅▆▇█")

	cols := min(len(values), width)
	samples := make([]int64, cols)
	seen := make([]bool, cols)
	for i, v := range values {
		c := SparkColumn(i, len(values), width)
		if !seen[c] || v > samples[c] {
			samples[c] = v
			seen[c] = true
		}
	}

	var maxVal int64
	for _, v := range samples {
		if v > maxVal {
			maxVal = v
		}
	}

	out := make([]rune, cols)
	for i, v := range samples {
		if maxVal <= 0 || v <= 0 {
			out[i] = blocks[0]
			continue
		}
		idx := int(float64(v) / float64(maxVal) * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		out[i] = blocks[idx]
	}
	return string(out)
}

// SparkColumn returns the column that value index i of n is drawn in by
// Sparkline at the given width.
func SparkColumn(i, n, width int) int {
	if n <= 0 || width <= 0 {
		return 0
	}
	cols := min(n, width)
	c := i * cols / n
	return max(0, min(c, cols-1))
}
