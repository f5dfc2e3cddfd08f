package diagram

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
	{"type": "point", "x": 1, "y": 2, "id": "p"},
	{"type": "segment", "ps": {"x": 0, "y": 0}, "pe": {"x": 10, "y": 10}, "stroke": "red"},
	{"type": "circle", "pc": {"x": 5, "y": 5}, "r": 3, "fill": "blue", "strokeWidth": 1.5},
	{"type": "arc", "pc": {"x": 0, "y": 0}, "r": 4, "startAngle": 0, "endAngle": 1.5, "counterClockwise": false},
	{"type": "polygon", "points": [{"x": 0, "y": 0}, {"x": 4, "y": 0}, {"x": 2, "y": 3}]},
	{"type": "box", "xmin": 0, "ymin": 1, "xmax": 2, "ymax": 3},
	{"type": "text", "x": 4, "y": 5, "content": "hello", "fontSize": 14, "offset": {"x": 1, "y": -1}}
]`

func TestDecode(t *testing.T) {
	got, err := Decode([]byte(sampleJSON))
	require.NoError(t, err)

	cw := false
	want := []Instruction{
		Point{Style: Style{ID: "p"}, X: 1, Y: 2},
		Segment{Style: Style{Stroke: "red"}, PS: Tuple{0, 0}, PE: Tuple{10, 10}},
		Circle{Style: Style{Fill: "blue", StrokeWidth: 1.5}, PC: Tuple{5, 5}, R: 3},
		Arc{PC: Tuple{0, 0}, R: 4, StartAngle: 0, EndAngle: 1.5, CounterClockwise: &cw},
		Polygon{Points: []Tuple{{0, 0}, {4, 0}, {2, 3}}},
		Box{XMin: 0, YMin: 1, XMax: 2, YMax: 3},
		Text{X: 4, Y: 5, Content: "hello", FontSize: 14, Offset: &Tuple{1, -1}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	for i, inst := range got {
		assert.NoError(t, Validate(inst), "instruction %d", i)
	}
}

func TestDecodeMissingFields(t *testing.T) {
	got, err := Decode([]byte(`[
		{"type": "circle", "r": 3},
		{"type": "point", "x": 1},
		{"type": "segment", "ps": {"x": 0}, "pe": {"x": 1, "y": 1}},
		{"type": "box", "xmin": 0, "ymin": 0, "xmax": null, "ymax": 1}
	]`))
	require.NoError(t, err)

	nan := math.NaN()
	want := []Instruction{
		Circle{PC: Tuple{nan, nan}, R: 3},
		Point{X: 1, Y: nan},
		Segment{PS: Tuple{0, nan}, PE: Tuple{1, 1}},
		Box{XMin: 0, YMin: 0, XMax: nan, YMax: 1},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	for i, inst := range got {
		assert.ErrorIs(t, Validate(inst), ErrNonFinite, "instruction %d", i)
	}
}

func TestDecodeTolerantElements(t *testing.T) {
	got, err := Decode([]byte(`[
		{"type": "hexagon", "id": "h"},
		{"type": "text", "x": 0, "y": 0, "content": 42},
		{"type": "text", "x": 0, "y": 0},
		{"type": "circle", "pc": {"x": "1", "y": 2}, "r": 1},
		{"type": 7},
		{"type": "polygon", "points": "0,0 5,0 5,5"},
		{"type": {"shape": "circle"}, "id": "o"},
		5
	]`))
	require.NoError(t, err)
	require.Len(t, got, 8)

	assert.Equal(t, Unrecognized{Style: Style{ID: "h"}, Type: "hexagon"}, got[0])
	assert.ErrorIs(t, Validate(got[0]), ErrUnknownType)

	for _, i := range []int{1, 2} {
		inv, ok := got[i].(Invalid)
		require.True(t, ok, "element %d is %T", i, got[i])
		assert.Equal(t, "text", inv.Type)
		assert.True(t, errors.Is(inv.Err, ErrContent))
	}

	inv, ok := got[3].(Invalid)
	require.True(t, ok)
	assert.Equal(t, CircleKind, inv.Kind())
	assert.Error(t, Validate(inv))

	assert.Equal(t, Unrecognized{Type: "7"}, got[4])
	assert.ErrorIs(t, Validate(got[4]), ErrUnknownType)

	assert.Equal(t, Polygon{Points: []Tuple{{0, 0}, {5, 0}, {5, 5}}}, got[5])

	assert.Equal(t, Unrecognized{Style: Style{ID: "o"}, Type: `{"shape": "circle"}`}, got[6])

	_, ok = got[7].(Invalid)
	assert.True(t, ok, "element 7 is %T", got[7])
}

func TestDecodeNotAnArray(t *testing.T) {
	_, err := Decode([]byte(`{"type": "point"}`))
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	got, err := DecodeYAML([]byte(`
- type: circle
  pc: {x: 10, y: 20}
  r: 5
- type: polygon
  points: "0,0 1,1"
- type: text
  x: 0
  y: 0
  content: label
`))
	require.NoError(t, err)

	want := []Instruction{
		Circle{PC: Tuple{10, 20}, R: 5},
		Polygon{Points: []Tuple{{0, 0}, {1, 1}}},
		Text{Content: "label"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeYAML() mismatch (-want +got):\n%s", diff)
	}

	got, err = DecodeYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
