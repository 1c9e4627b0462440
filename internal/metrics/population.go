package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// Peak tracks the maximum of one state component.
type Peak struct {
	name string
	idx  int
	max  float64
	seen bool
}

func NewPeak(label string, idx int) *Peak {
	return &Peak{name: "peak_" + label, idx: idx}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	if p.idx >= len(x) {
		return
	}
	if !p.seen || x[p.idx] > p.max {
		p.max = x[p.idx]
		p.seen = true
	}
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() {
	p.max = 0
	p.seen = false
}

// Trough tracks the minimum of one state component.
type Trough struct {
	name string
	idx  int
	min  float64
	seen bool
}

func NewTrough(label string, idx int) *Trough {
	return &Trough{name: "trough_" + label, idx: idx}
}

func (m *Trough) Name() string { return m.name }

func (m *Trough) Observe(x dynamo.State, t float64) {
	if m.idx >= len(x) {
		return
	}
	if !m.seen || x[m.idx] < m.min {
		m.min = x[m.idx]
		m.seen = true
	}
}

func (m *Trough) Value() float64 { return m.min }

func (m *Trough) Reset() {
	m.min = 0
	m.seen = false
}

type Mean struct {
	name    string
	idx     int
	sum     float64
	samples int
}

func NewMean(label string, idx int) *Mean {
	return &Mean{name: "mean_" + label, idx: idx}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(x dynamo.State, t float64) {
	if m.idx >= len(x) {
		return
	}
	m.sum += x[m.idx]
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

// TurningPoints counts sign changes of the first difference, ignoring flat
// steps. A monotonic series scores 0.
type TurningPoints struct {
	name   string
	idx    int
	prev   float64
	dir    int
	count  int
	primed bool
}

func NewTurningPoints(label string, idx int) *TurningPoints {
	return &TurningPoints{name: "turning_points_" + label, idx: idx}
}

func (tp *TurningPoints) Name() string { return tp.name }

func (tp *TurningPoints) Observe(x dynamo.State, t float64) {
	if tp.idx >= len(x) {
		return
	}
	v := x[tp.idx]
	if !tp.primed {
		tp.prev = v
		tp.primed = true
		return
	}

	d := 0
	switch {
	case v > tp.prev:
		d = 1
	case v < tp.prev:
		d = -1
	}
	if d != 0 {
		if tp.dir != 0 && d != tp.dir {
			tp.count++
		}
		tp.dir = d
	}
	tp.prev = v
}

func (tp *TurningPoints) Value() float64 { return float64(tp.count) }

func (tp *TurningPoints) Reset() {
	tp.prev = 0
	tp.dir = 0
	tp.count = 0
	tp.primed = false
}

// Population returns the standard metric set for one labelled component.
func Population(label string, idx int) []dynamo.Metric {
	return []dynamo.Metric{
		NewPeak(label, idx),
		NewTrough(label, idx),
		NewMean(label, idx),
		NewTurningPoints(label, idx),
	}
}

// Lookup fetches a metric value by name.
func Lookup(values map[string]float64, name string) (float64, error) {
	v, ok := values[name]
	if !ok {
		return math.NaN(), fmt.Errorf("metric %q not recorded", name)
	}
	return v, nil
}
