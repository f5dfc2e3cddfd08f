package geom

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/f64"
)

// Errors returned by the constructors of Plane.
var (
	ErrNonFinite    = errors.New("coordinate is not a finite number")
	ErrRadius       = errors.New("radius must be positive")
	ErrTooFewPoints = errors.New("polygon needs at least two points")
)

const (
	twoPi = 2 * math.Pi
	tol   = 1e-6
)

func errNonFinite(shape string) error {
	return fmt.Errorf("%s: %w", shape, ErrNonFinite)
}

func errRadius(shape string, r float64) error {
	return fmt.Errorf("%s: %w, got %v", shape, ErrRadius, r)
}

// Plane is the Euclidean engine used by default. Its zero value is ready
// to use.
type Plane struct{}

// Default is the engine a canvas uses when none is configured.
var Default Engine = Plane{}

// Point implements Engine.
func (Plane) Point(x, y float64) Point {
	return Point{x, y}
}

// Segment implements Engine.
func (Plane) Segment(ps, pe Point) (Shape, error) {
	if !ps.finite() || !pe.finite() {
		return nil, errNonFinite("segment")
	}
	return segment{ps, pe}, nil
}

// Circle implements Engine.
func (Plane) Circle(pc Point, r float64) (Shape, error) {
	if !pc.finite() || !finite(r) {
		return nil, errNonFinite("circle")
	}
	if r <= 0 {
		return nil, errRadius("circle", r)
	}
	return circle{pc, r}, nil
}

// Arc implements Engine. Angles are in radians; ccw selects the direction
// of increasing angle.
func (Plane) Arc(pc Point, r, start, end float64, ccw bool) (Shape, error) {
	if !pc.finite() || !finite(r) || !finite(start) || !finite(end) {
		return nil, errNonFinite("arc")
	}
	if r <= 0 {
		return nil, errRadius("arc", r)
	}
	return arc{
		r:     r,
		start: start,
		end:   end,
		ccw:   ccw,
		place: f64.Aff3{r, 0, pc[0], 0, r, pc[1]},
	}, nil
}

// Polygon implements Engine. The points become a single face; two points
// give a degenerate face which is still emitted.
func (Plane) Polygon(points []Point) (Shape, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("polygon: %w, got %d", ErrTooFewPoints, len(points))
	}
	face := make([]Point, len(points))
	for i, p := range points {
		if !p.finite() {
			return nil, fmt.Errorf("polygon vertex %d: %w", i, ErrNonFinite)
		}
		face[i] = p
	}
	return polygon{face}, nil
}

type segment struct {
	ps, pe Point
}

func (s segment) SVG(a Attrs) (string, error) {
	if err := a.check(); err != nil {
		return "", err
	}
	var e element
	e.open("line", a.ID)
	e.num("x1", s.ps[0])
	e.num("y1", s.ps[1])
	e.num("x2", s.pe[0])
	e.num("y2", s.pe[1])
	e.style(a)
	return e.close(), nil
}

type circle struct {
	pc Point
	r  float64
}

func (c circle) SVG(a Attrs) (string, error) {
	if err := a.check(); err != nil {
		return "", err
	}
	var e element
	e.open("circle", a.ID)
	e.num("cx", c.pc[0])
	e.num("cy", c.pc[1])
	e.num("r", c.r)
	e.style(a)
	return e.close(), nil
}

type arc struct {
	r          float64
	start, end float64
	ccw        bool

	// place maps the unit circle onto this arc's circle.
	place f64.Aff3
}

// sweep is the angle travelled from start to end in the arc's direction,
// in [0, 2π].
func (c arc) sweep() float64 {
	if math.Abs(c.start-c.end) < tol {
		return 0
	}
	if math.Abs(math.Abs(c.start-c.end)-twoPi) < tol {
		return twoPi
	}
	d := c.end - c.start
	if !c.ccw {
		d = -d
	}
	s := math.Mod(d, twoPi)
	if s < 0 {
		s += twoPi
	}
	if s < tol || twoPi-s < tol {
		// start and end differ by a whole number of turns
		return twoPi
	}
	return s
}

func (c arc) at(angle float64) Point {
	return apply(c.place, math.Cos(angle), math.Sin(angle))
}

// apply transforms x,y by the affine matrix m.
func apply(m f64.Aff3, x, y float64) Point {
	return Point{m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]}
}

func (c arc) SVG(a Attrs) (string, error) {
	if err := a.check(); err != nil {
		return "", err
	}
	sweep := c.sweep()
	flag := "0"
	dir := -1.0
	if c.ccw {
		flag = "1"
		dir = 1
	}
	ps := c.at(c.start)
	radii := Format(c.r) + "," + Format(c.r)

	var d strings.Builder
	d.WriteString("M" + pair(ps))
	if sweep >= twoPi-tol {
		// a single arc command cannot close on itself
		mid := c.at(c.start + dir*math.Pi)
		fmt.Fprintf(&d, " A%s 0 0,%s %s", radii, flag, pair(mid))
		fmt.Fprintf(&d, " A%s 0 0,%s %s", radii, flag, pair(ps))
	} else {
		large := "0"
		if sweep > math.Pi {
			large = "1"
		}
		pe := c.at(c.start + dir*sweep)
		fmt.Fprintf(&d, " A%s 0 %s,%s %s", radii, large, flag, pair(pe))
	}

	var e element
	e.open("path", a.ID)
	e.attr("d", d.String())
	e.style(a)
	return e.close(), nil
}

type polygon struct {
	face []Point
}

func (p polygon) SVG(a Attrs) (string, error) {
	if err := a.check(); err != nil {
		return "", err
	}
	var d strings.Builder
	for i, v := range p.face {
		if i == 0 {
			d.WriteString("M")
		} else {
			d.WriteString(" L")
		}
		d.WriteString(pair(v))
	}
	d.WriteString(" z")

	var e element
	e.open("path", a.ID)
	e.attr("d", d.String())
	e.style(a)
	e.attr("fill-rule", "evenodd")
	return e.close(), nil
}

func pair(p Point) string {
	return Format(p[0]) + "," + Format(p[1])
}
