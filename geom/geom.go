// Package geom holds the geometric primitives a diagram is made of and
// knows how to write each of them as a single SVG element.
package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/math/f64"
)

// Precision is the number of decimals kept when coordinates are written
// to markup.
const Precision = 3

// Engine constructs primitives. Callers depend on this interface only, so
// the concrete geometry backend can be swapped without touching the
// renderer.
type Engine interface {
	Point(x, y float64) Point
	Segment(ps, pe Point) (Shape, error)
	Circle(pc Point, r float64) (Shape, error)
	Arc(pc Point, r, start, end float64, ccw bool) (Shape, error)
	Polygon(points []Point) (Shape, error)
}

// Shape is a constructed primitive that can be emitted as an SVG element.
type Shape interface {
	SVG(attrs Attrs) (string, error)
}

// Attrs are the presentation attributes written on an element. Empty
// strings and zero widths are omitted.
type Attrs struct {
	ID          string
	Stroke      string
	StrokeWidth float64
	Fill        string

	// Radius is used by Point only.
	Radius float64
}

func (a Attrs) check() error {
	if !finite(a.StrokeWidth) {
		return fmt.Errorf("stroke-width: %w", ErrNonFinite)
	}
	return nil
}

// Point is an X,Y coordinate
type Point f64.Vec2

// X returns the horizontal coordinate.
func (p Point) X() float64 { return p[0] }

// Y returns the vertical coordinate.
func (p Point) Y() float64 { return p[1] }

func (p Point) finite() bool { return finite(p[0]) && finite(p[1]) }

// SVG emits the point as a small filled circle. The fill falls back to
// the stroke colour when it is empty; an explicit "none" is kept.
func (p Point) SVG(a Attrs) (string, error) {
	if !p.finite() {
		return "", errNonFinite("point")
	}
	if !finite(a.Radius) || a.Radius <= 0 {
		return "", errRadius("point", a.Radius)
	}
	if err := a.check(); err != nil {
		return "", err
	}
	if a.Fill == "" {
		a.Fill = a.Stroke
	}
	var e element
	e.open("circle", a.ID)
	e.num("cx", p[0])
	e.num("cy", p[1])
	e.num("r", a.Radius)
	e.style(a)
	return e.close(), nil
}

// Format writes v with at most Precision decimals in its shortest form.
// Negative zero is written as 0. Values too large to carry decimals are
// written unrounded.
func Format(v float64) string {
	scale := math.Pow10(Precision)
	if s := v * scale; math.Abs(s) < 1<<53 {
		v = math.Round(s) / scale
	}
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// Escape replaces the five XML special characters with their entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// element accumulates one self-closing SVG element.
type element struct {
	b strings.Builder
}

func (e *element) open(name, id string) {
	e.b.WriteByte('<')
	e.b.WriteString(name)
	if id != "" {
		e.attr("id", id)
	}
}

func (e *element) attr(name, value string) {
	e.b.WriteByte(' ')
	e.b.WriteString(name)
	e.b.WriteString(`="`)
	e.b.WriteString(Escape(value))
	e.b.WriteByte('"')
}

func (e *element) num(name string, v float64) {
	e.attr(name, Format(v))
}

func (e *element) style(a Attrs) {
	if a.Stroke != "" {
		e.attr("stroke", a.Stroke)
	}
	if a.StrokeWidth > 0 {
		e.num("stroke-width", a.StrokeWidth)
	}
	if a.Fill != "" {
		e.attr("fill", a.Fill)
	}
}

func (e *element) close() string {
	e.b.WriteString("/>")
	return e.b.String()
}
