package analysis

// TurningPoints counts local extrema, skipping flat runs.
func TurningPoints(series []float64) int {
	count, dir := 0, 0
	for i := 1; i < len(series); i++ {
		d := 0
		switch {
		case series[i] > series[i-1]:
			d = 1
		case series[i] < series[i-1]:
			d = -1
		}
		if d == 0 {
			continue
		}
		if dir != 0 && d != dir {
			count++
		}
		dir = d
	}
	return count
}

// IsOscillatory reports whether the series has at least one peak and one
// trough.
func IsOscillatory(series []float64) bool {
	return TurningPoints(series) >= 2
}

// Extrema returns the minimum and maximum of a non-empty series.
func Extrema(series []float64) (lo, hi float64) {
	if len(series) == 0 {
		return 0, 0
	}
	lo, hi = series[0], series[0]
	for _, v := range series[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
