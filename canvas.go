// Package diagram renders a list of shape instructions as an inline SVG
// fragment.
//
// Rendering is best effort: an instruction that fails validation or
// cannot be built is skipped and reported, and the remaining instructions
// are still drawn. Render never returns an error.
package diagram

import (
	"fmt"
	"math"
	"strings"

	mt "github.com/rustyoz/Mtransform"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vasalvit/diagram/geom"
)

// Canvas is a fixed-size viewport that instructions are drawn into.
type Canvas struct {
	Width  float64
	Height float64

	// ID prefixes the ids of the accessibility title and description.
	ID          string
	Title       string
	Description string

	Theme Theme

	// Scale multiplies every coordinate and length. A negative value
	// divides by its magnitude instead and zero leaves drawings unscaled.
	Scale float64

	Engine geom.Engine
	Logger *zap.Logger
}

// New returns a canvas of the given size with the default theme, engine
// and a no-op logger.
func New(width, height float64) *Canvas {
	return &Canvas{
		Width:       width,
		Height:      height,
		ID:          "diagram",
		Title:       "Diagram",
		Description: "Vector diagram",
		Theme:       DefaultTheme(),
		Engine:      geom.Default,
		Logger:      zap.NewNop(),
	}
}

// Result is the output of one render.
type Result struct {
	// Markup is the SVG wrapped in its bordered container, ready to embed
	// in an HTML page.
	Markup string
	// SVG is the bare <svg> root.
	SVG string
	// Fragments holds the markup of each instruction that was drawn, in
	// input order.
	Fragments []string
	// Diagnostics lists what was left out and why.
	Diagnostics []Diagnostic
}

// Err combines every diagnostic into a single error, or returns nil when
// everything was drawn.
func (r *Result) Err() error {
	var err error
	for _, d := range r.Diagnostics {
		err = multierr.Append(err, d)
	}
	return err
}

// Render draws instructions in order on a default canvas of the given size
// and returns the embeddable markup.
func Render(instructions []Instruction, width, height float64) string {
	return New(width, height).Render(instructions).Markup
}

// Render draws instructions in order. Invalid or failing instructions are
// skipped; each produces one diagnostic on the result and one log entry.
// The output depends only on the inputs.
func (c *Canvas) Render(instructions []Instruction) *Result {
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	engine := c.Engine
	if engine == nil {
		engine = geom.Default
	}
	transform, scale := c.transform()
	cv := &converter{
		engine:    engine,
		theme:     c.Theme.withDefaults(),
		transform: transform,
		scale:     scale,
	}

	res := &Result{}
	width, height := c.size(res, log)

	for _, o := range cv.run(instructions) {
		if o.err != nil {
			d := diagnose(o, o.inst)
			report(log, d, o.inst)
			res.Diagnostics = append(res.Diagnostics, d)
			continue
		}
		res.Fragments = append(res.Fragments, o.fragment)
	}

	res.SVG = c.assemble(width, height, res.Fragments)
	res.Markup = c.container(cv.theme, res.SVG)
	log.Debug("rendered diagram",
		zap.Int("instructions", len(instructions)),
		zap.Int("drawn", len(res.Fragments)),
		zap.Int("skipped", len(res.Diagnostics)))
	return res
}

// transform builds the coordinate transform for Scale and returns it with
// the factor applied to lengths.
func (c *Canvas) transform() (*mt.Transform, float64) {
	t := mt.NewTransform()
	scale := 1.0
	if c.Scale > 0 {
		scale = c.Scale
	}
	if c.Scale < 0 {
		scale = 1.0 / -c.Scale
	}
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}
	if scale != 1 {
		t.Scale(scale, scale)
	}
	return t, scale
}

// size returns the viewport dimensions, replacing unusable ones with zero.
func (c *Canvas) size(res *Result, log *zap.Logger) (float64, float64) {
	w, h := c.Width, c.Height
	if usable(w) && usable(h) {
		return w, h
	}
	d := Diagnostic{
		Index:    -1,
		Severity: SeverityWarning,
		Message:  "invalid canvas size",
		Err:      fmt.Errorf("width %v, height %v: must be finite and not negative", w, h),
	}
	log.Warn(d.Message, zap.Float64("width", w), zap.Float64("height", h))
	res.Diagnostics = append(res.Diagnostics, d)
	if !usable(w) {
		w = 0
	}
	if !usable(h) {
		h = 0
	}
	return w, h
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func (c *Canvas) assemble(width, height float64, fragments []string) string {
	id := c.ID
	if id == "" {
		id = "diagram"
	}
	titleID, descID := id+"-title", id+"-desc"
	w, h := geom.Format(width), geom.Format(height)

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	attr(&b, "width", w)
	attr(&b, "height", h)
	attr(&b, "viewBox", "0 0 "+w+" "+h)
	attr(&b, "role", "img")
	attr(&b, "aria-labelledby", titleID+" "+descID)
	b.WriteString(">\n")
	fmt.Fprintf(&b, "<title id=\"%s\">%s</title>\n", geom.Escape(titleID), geom.Escape(c.Title))
	fmt.Fprintf(&b, "<desc id=\"%s\">%s</desc>\n", geom.Escape(descID), geom.Escape(c.Description))
	for _, f := range fragments {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	b.WriteString("</svg>")
	return b.String()
}

func (c *Canvas) container(t Theme, svg string) string {
	style := fmt.Sprintf("border: %s; background: %s; display: inline-block; line-height: 0;", t.Border, t.Background)
	var b strings.Builder
	b.WriteString(`<div class="diagram-canvas"`)
	attr(&b, "style", style)
	b.WriteString(">\n")
	b.WriteString(svg)
	b.WriteString("\n</div>")
	return b.String()
}
