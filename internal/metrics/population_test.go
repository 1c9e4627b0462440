package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/predprey/internal/dynamo"
)

func feed(m dynamo.Metric, values ...float64) {
	for i, v := range values {
		m.Observe(dynamo.State{v, -v}, float64(i))
	}
}

func TestPeakTrough(t *testing.T) {
	peak := NewPeak("prey", 0)
	trough := NewTrough("prey", 0)

	values := []float64{5, 9, 3, 7}
	feed(peak, values...)
	feed(trough, values...)

	if peak.Value() != 9 {
		t.Errorf("peak = %v, want 9", peak.Value())
	}
	if trough.Value() != 3 {
		t.Errorf("trough = %v, want 3", trough.Value())
	}
	if peak.Name() != "peak_prey" || trough.Name() != "trough_prey" {
		t.Errorf("unexpected names %q %q", peak.Name(), trough.Name())
	}

	neg := NewPeak("predators", 1)
	feed(neg, values...)
	if neg.Value() != -3 {
		t.Errorf("peak of negatives = %v, want -3", neg.Value())
	}
}

func TestMean(t *testing.T) {
	m := NewMean("prey", 0)
	if m.Value() != 0 {
		t.Error("expected zero mean before observations")
	}

	feed(m, 1, 2, 3, 4)
	if math.Abs(m.Value()-2.5) > 1e-12 {
		t.Errorf("mean = %v, want 2.5", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero mean after reset")
	}
}

func TestTurningPoints(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"monotonic", []float64{1, 2, 3, 4}, 0},
		{"single peak", []float64{1, 3, 2}, 1},
		{"flat steps ignored", []float64{1, 2, 2, 2, 1, 1, 3}, 2},
		{"constant", []float64{5, 5, 5}, 0},
		{"zigzag", []float64{0, 1, 0, 1, 0}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := NewTurningPoints("prey", 0)
			feed(tp, tt.values...)
			if got := tp.Value(); got != tt.want {
				t.Errorf("turning points = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutOfRangeIndexIgnored(t *testing.T) {
	for _, m := range Population("ghost", 5) {
		feed(m, 1, 2, 3)
		if m.Value() != 0 {
			t.Errorf("%s observed an out-of-range component", m.Name())
		}
	}
}

func TestLookup(t *testing.T) {
	values := map[string]float64{"peak_prey": 42}
	if v, err := Lookup(values, "peak_prey"); err != nil || v != 42 {
		t.Errorf("Lookup = %v, %v", v, err)
	}
	if _, err := Lookup(values, "peak_wolves"); err == nil {
		t.Error("expected error for missing metric")
	}
}
