package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrIncomparable = errors.New("analysis: outcomes are not comparable")

// Difference summarizes how far one series strays from a reference.
type Difference struct {
	Outcome string
	MaxAbs  float64
	RMS     float64
	// FinalRel is |other-ref|/|ref| at the last sample, 0 when ref ends at 0.
	FinalRel float64
}

// CompareOutcomes diffs every outcome of other against ref. Both must carry
// the same names with equal lengths. Results are sorted by outcome name.
func CompareOutcomes(ref, other map[string][]float64) ([]Difference, error) {
	if len(ref) != len(other) {
		return nil, fmt.Errorf("%w: %d outcomes vs %d", ErrIncomparable, len(ref), len(other))
	}

	names := make([]string, 0, len(ref))
	for name := range ref {
		names = append(names, name)
	}
	sort.Strings(names)

	diffs := make([]Difference, 0, len(names))
	for _, name := range names {
		a := ref[name]
		b, ok := other[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing outcome %q", ErrIncomparable, name)
		}
		if len(a) != len(b) {
			return nil, fmt.Errorf("%w: %q has %d vs %d samples", ErrIncomparable, name, len(a), len(b))
		}
		diffs = append(diffs, diff(name, a, b))
	}
	return diffs, nil
}

func diff(name string, a, b []float64) Difference {
	d := Difference{Outcome: name}
	if len(a) == 0 {
		return d
	}

	sumSq := 0.0
	for i := range a {
		e := math.Abs(a[i] - b[i])
		if e > d.MaxAbs {
			d.MaxAbs = e
		}
		sumSq += e * e
	}
	d.RMS = math.Sqrt(sumSq / float64(len(a)))

	last := len(a) - 1
	if a[last] != 0 {
		d.FinalRel = math.Abs(b[last]-a[last]) / math.Abs(a[last])
	}
	return d
}
