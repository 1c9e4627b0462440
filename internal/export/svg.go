// Package export renders saved trajectories as standalone SVG documents.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/predprey/internal/predprey"
)

type Point struct{ X, Y float64 }

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Series is one polyline of a chart.
type Series struct {
	Name   string
	Color  string
	Points []Point
}

type Options struct {
	Width, Height int
	Background    string
}

func DefaultOptions() Options {
	return Options{Width: 800, Height: 400, Background: "#0a0a0a"}
}

// TimeSeries returns prey and predators against time.
func TimeSeries(traj predprey.Trajectory) []Series {
	prey := make([]Point, traj.Len())
	pred := make([]Point, traj.Len())
	for i, t := range traj.Time {
		prey[i] = Point{t, traj.Prey[i]}
		pred[i] = Point{t, traj.Predators[i]}
	}
	return []Series{
		{Name: predprey.OutcomePrey, Color: "#00ff00", Points: prey},
		{Name: predprey.OutcomePredators, Color: "#ff4040", Points: pred},
	}
}

// Phase returns the predators-vs-prey orbit.
func Phase(traj predprey.Trajectory) []Series {
	pts := make([]Point, traj.Len())
	for i := range pts {
		pts[i] = Point{traj.Prey[i], traj.Predators[i]}
	}
	return []Series{{Name: "phase", Color: "#40a0ff", Points: pts}}
}

type bounds struct{ minX, maxX, minY, maxY float64 }

func (b bounds) padded() bounds {
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return bounds{
		minX: b.minX - rangeX*0.05,
		maxX: b.maxX + rangeX*0.05,
		minY: b.minY - rangeY*0.1,
		maxY: b.maxY + rangeY*0.1,
	}
}

func countFinite(pts []Point) int {
	n := 0
	for _, p := range pts {
		if p.finite() {
			n++
		}
	}
	return n
}

func extent(series []Series) (bounds, bool) {
	var b bounds
	found := false
	for _, s := range series {
		for _, p := range s.Points {
			if !p.finite() {
				continue
			}
			if !found {
				b = bounds{p.X, p.X, p.Y, p.Y}
				found = true
				continue
			}
			b.minX = min(b.minX, p.X)
			b.maxX = max(b.maxX, p.X)
			b.minY = min(b.minY, p.Y)
			b.maxY = max(b.maxY, p.Y)
		}
	}
	return b.padded(), found
}

// WriteSVG draws all series on a shared scale. NaN and ±Inf points are
// dropped and split the line; series with fewer than two finite points are
// skipped. An error is returned if nothing is drawable.
func WriteSVG(w io.Writer, series []Series, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("export: invalid canvas %dx%d", opts.Width, opts.Height)
	}
	b, ok := extent(series)
	if !ok {
		return fmt.Errorf("export: no points to draw")
	}

	width, height := float64(opts.Width), float64(opts.Height)
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background)

	drawn := 0
	for _, s := range series {
		if countFinite(s.Points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="`, s.Name, s.Color)
		first, move := true, true
		for _, p := range s.Points {
			// overflowed samples break the line
			if !p.finite() {
				move = true
				continue
			}
			x := (p.X - b.minX) / rangeX * width
			y := height - (p.Y-b.minY)/rangeY*height
			switch {
			case first:
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			case move:
				fmt.Fprintf(&sb, " M%.1f,%.1f", x, y)
			default:
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
			first, move = false, false
		}
		sb.WriteString("\"/>\n")
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("export: no series with at least two points")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
