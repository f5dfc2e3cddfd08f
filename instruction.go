package diagram

import "fmt"

// Kind tells the renderer which primitive an instruction describes. It is
// the value of the "type" field in encoded instructions.
type Kind string

// These are the instruction kinds the renderer knows how to draw.
const (
	PointKind   Kind = "point"
	SegmentKind Kind = "segment"
	CircleKind  Kind = "circle"
	ArcKind     Kind = "arc"
	PolygonKind Kind = "polygon"
	BoxKind     Kind = "box"
	TextKind    Kind = "text"
)

// Instruction is a single declarative description of one element of a
// diagram. The set of implementations is closed: Point, Segment, Circle,
// Arc, Polygon, Box and Text, plus Unrecognized and Invalid which only
// come out of decoding and are never drawn.
type Instruction interface {
	Kind() Kind
	style() Style
}

// Tuple is an X,Y coordinate
type Tuple struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (t Tuple) String() string {
	return fmt.Sprintf("(%g,%g)", t.X, t.Y)
}

// Style holds the presentation fields shared by every instruction. Empty
// values fall back to the canvas theme.
type Style struct {
	ID          string  `json:"id,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

func (s Style) style() Style { return s }

// Point is drawn as a small filled dot. A zero Radius uses the theme's
// point radius.
type Point struct {
	Style
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius,omitempty"`
}

// Segment is a straight line from PS to PE.
type Segment struct {
	Style
	PS Tuple `json:"ps"`
	PE Tuple `json:"pe"`
}

// Circle is centered at PC with radius R.
type Circle struct {
	Style
	PC Tuple   `json:"pc"`
	R  float64 `json:"r"`
}

// Arc is a circular arc around PC. Angles are in radians. A nil
// CounterClockwise means counter-clockwise.
type Arc struct {
	Style
	PC               Tuple   `json:"pc"`
	R                float64 `json:"r"`
	StartAngle       float64 `json:"startAngle"`
	EndAngle         float64 `json:"endAngle"`
	CounterClockwise *bool   `json:"counterClockwise,omitempty"`
}

// Polygon is a closed face through Points, in order.
type Polygon struct {
	Style
	Points []Tuple `json:"points"`
}

// Box is an axis-aligned rectangle.
type Box struct {
	Style
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// Text is a label anchored at X,Y, shifted by Offset when present.
type Text struct {
	Style
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Content    string  `json:"content"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	TextAnchor string  `json:"textAnchor,omitempty"`
	Offset     *Tuple  `json:"offset,omitempty"`
}

// Unrecognized is an encoded instruction whose type is not one of the
// known kinds.
type Unrecognized struct {
	Style
	Type string
}

// Invalid is an encoded instruction that could not be decoded into its
// kind, for example a text whose content is not a string.
type Invalid struct {
	Style
	Type string
	Err  error
}

func (Point) Kind() Kind   { return PointKind }
func (Segment) Kind() Kind { return SegmentKind }
func (Circle) Kind() Kind  { return CircleKind }
func (Arc) Kind() Kind     { return ArcKind }
func (Polygon) Kind() Kind { return PolygonKind }
func (Box) Kind() Kind     { return BoxKind }
func (Text) Kind() Kind    { return TextKind }

func (u Unrecognized) Kind() Kind { return Kind(u.Type) }
func (i Invalid) Kind() Kind      { return Kind(i.Type) }

// Corners returns the four vertices of the box, starting at the minimum
// corner and going through (xmax,ymin), (xmax,ymax) and (xmin,ymax).
func (b Box) Corners() [4]Tuple {
	return [4]Tuple{
		{b.XMin, b.YMin},
		{b.XMax, b.YMin},
		{b.XMax, b.YMax},
		{b.XMin, b.YMax},
	}
}

// IsCounterClockwise reports the direction of the arc.
func (a Arc) IsCounterClockwise() bool {
	return a.CounterClockwise == nil || *a.CounterClockwise
}

// normalize dereferences pointer variants. A nil pointer becomes Invalid so
// that it is reported instead of drawn.
func normalize(inst Instruction) Instruction {
	switch in := inst.(type) {
	case *Point:
		if in != nil {
			return *in
		}
		return nilVariant(PointKind)
	case *Segment:
		if in != nil {
			return *in
		}
		return nilVariant(SegmentKind)
	case *Circle:
		if in != nil {
			return *in
		}
		return nilVariant(CircleKind)
	case *Arc:
		if in != nil {
			return *in
		}
		return nilVariant(ArcKind)
	case *Polygon:
		if in != nil {
			return *in
		}
		return nilVariant(PolygonKind)
	case *Box:
		if in != nil {
			return *in
		}
		return nilVariant(BoxKind)
	case *Text:
		if in != nil {
			return *in
		}
		return nilVariant(TextKind)
	case *Unrecognized:
		if in != nil {
			return *in
		}
		return Invalid{Err: ErrNilInstruction}
	case *Invalid:
		if in != nil {
			return *in
		}
		return Invalid{Err: ErrNilInstruction}
	}
	return inst
}

func nilVariant(k Kind) Instruction {
	return Invalid{Type: string(k), Err: fmt.Errorf("%s: %w", k, ErrNilInstruction)}
}
