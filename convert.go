package diagram

import (
	"fmt"
	"strings"

	mt "github.com/rustyoz/Mtransform"

	"github.com/vasalvit/diagram/geom"
)

// converter turns validated instructions into SVG fragments. Coordinates
// go through the canvas transform; lengths are multiplied by its scale.
type converter struct {
	engine    geom.Engine
	theme     Theme
	transform *mt.Transform
	scale     float64
}

// outcome is the result of converting the instruction at index. inst is
// the instruction as it was validated, with pointer variants dereferenced.
type outcome struct {
	index    int
	inst     Instruction
	fragment string
	err      error
	warning  bool
}

func (cv *converter) run(instructions []Instruction) []outcome {
	outcomes := make([]outcome, len(instructions))
	for i, inst := range instructions {
		outcomes[i] = cv.step(i, inst)
	}
	return outcomes
}

// step never lets a panic escape; it becomes the instruction's error.
func (cv *converter) step(index int, inst Instruction) (o outcome) {
	o = outcome{index: index}
	defer func() {
		if r := recover(); r != nil {
			o.fragment = ""
			o.err = &stageError{stage: stageConvert, err: fmt.Errorf("panic: %v", r)}
		}
	}()

	inst = normalize(inst)
	o.inst = inst
	if err := Validate(inst); err != nil {
		o.err = &stageError{stage: stageValidate, err: err}
		if _, ok := inst.(Unrecognized); ok {
			o.warning = true
		}
		return o
	}
	frag, err := cv.convert(inst)
	if err != nil {
		o.err = &stageError{stage: stageConvert, err: err}
		return o
	}
	o.fragment = frag
	return o
}

func (cv *converter) convert(inst Instruction) (string, error) {
	e := cv.engine
	switch in := inst.(type) {
	case Point:
		a := cv.attrs(in.Style, "")
		r := in.Radius
		if r == 0 {
			r = cv.theme.PointRadius
		}
		a.Radius = r * cv.scale
		return cv.point(in.X, in.Y).SVG(a)
	case Segment:
		s, err := e.Segment(cv.tuple(in.PS), cv.tuple(in.PE))
		if err != nil {
			return "", err
		}
		return s.SVG(cv.attrs(in.Style, cv.theme.Fill))
	case Circle:
		s, err := e.Circle(cv.tuple(in.PC), in.R*cv.scale)
		if err != nil {
			return "", err
		}
		return s.SVG(cv.attrs(in.Style, cv.theme.Fill))
	case Arc:
		s, err := e.Arc(cv.tuple(in.PC), in.R*cv.scale, in.StartAngle, in.EndAngle, in.IsCounterClockwise())
		if err != nil {
			return "", err
		}
		return s.SVG(cv.attrs(in.Style, cv.theme.Fill))
	case Polygon:
		return cv.face(in.Style, in.Points)
	case Box:
		corners := in.Corners()
		return cv.face(in.Style, corners[:])
	case Text:
		return cv.text(in)
	default:
		return "", fmt.Errorf("%T: %w", inst, ErrUnknownType)
	}
}

func (cv *converter) point(x, y float64) geom.Point {
	x, y = cv.transform.Apply(x, y)
	return cv.engine.Point(x, y)
}

func (cv *converter) tuple(t Tuple) geom.Point {
	return cv.point(t.X, t.Y)
}

func (cv *converter) face(s Style, points []Tuple) (string, error) {
	vertices := make([]geom.Point, len(points))
	for i, p := range points {
		vertices[i] = cv.tuple(p)
	}
	shape, err := cv.engine.Polygon(vertices)
	if err != nil {
		return "", err
	}
	return shape.SVG(cv.attrs(s, cv.theme.FaceFill))
}

func (cv *converter) attrs(s Style, fill string) geom.Attrs {
	a := geom.Attrs{
		ID:          s.ID,
		Stroke:      s.Stroke,
		StrokeWidth: s.StrokeWidth,
		Fill:        s.Fill,
	}
	if a.Stroke == "" {
		a.Stroke = cv.theme.Stroke
	}
	if a.StrokeWidth == 0 {
		a.StrokeWidth = cv.theme.StrokeWidth
	}
	a.StrokeWidth *= cv.scale
	if a.Fill == "" {
		a.Fill = fill
	}
	return a
}

// text is emitted directly rather than through the engine, so it checks
// its own numbers after the canvas transform.
func (cv *converter) text(t Text) (string, error) {
	x, y := t.X, t.Y
	if t.Offset != nil {
		x += t.Offset.X
		y += t.Offset.Y
	}
	x, y = cv.transform.Apply(x, y)

	size := t.FontSize
	if size == 0 {
		size = cv.theme.FontSize
	}
	family := t.FontFamily
	if family == "" {
		family = cv.theme.FontFamily
	}
	anchor := t.TextAnchor
	if anchor == "" {
		anchor = cv.theme.TextAnchor
	}
	fill := t.Fill
	if fill == "" {
		fill = cv.theme.TextColor
	}
	size *= cv.scale
	width := t.StrokeWidth * cv.scale
	if err := finite(num{"x", x}, num{"y", y}, num{"font-size", size}, num{"stroke-width", width}); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<text")
	if t.ID != "" {
		attr(&b, "id", t.ID)
	}
	attr(&b, "x", geom.Format(x))
	attr(&b, "y", geom.Format(y))
	attr(&b, "font-size", geom.Format(size))
	attr(&b, "font-family", family)
	attr(&b, "text-anchor", anchor)
	attr(&b, "fill", fill)
	if t.Stroke != "" {
		attr(&b, "stroke", t.Stroke)
		if width > 0 {
			attr(&b, "stroke-width", geom.Format(width))
		}
	}
	b.WriteByte('>')
	b.WriteString(geom.Escape(t.Content))
	b.WriteString("</text>")
	return b.String(), nil
}

func attr(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, ` %s="%s"`, name, geom.Escape(value))
}
