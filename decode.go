package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Decode reads a JSON array of instructions discriminated by their "type"
// field. Elements that cannot be decoded do not fail the whole array: they
// come back as Invalid or Unrecognized and are reported when rendered.
// Numeric fields that are absent decode as NaN so that Validate rejects
// them.
func Decode(data []byte) ([]Instruction, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode instructions: %w", err)
	}
	out := make([]Instruction, len(raws))
	for i, raw := range raws {
		out[i] = decodeInstruction(raw)
	}
	return out, nil
}

// DecodeYAML reads a YAML sequence of instructions with the same field
// names as Decode.
func DecodeYAML(data []byte) ([]Instruction, error) {
	var doc []interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode instructions: %w", err)
	}
	if doc == nil {
		return []Instruction{}, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode instructions: %w", err)
	}
	return Decode(data)
}

// UnmarshalJSON implements json.Unmarshaler. Absent or null coordinates
// become NaN.
func (t *Tuple) UnmarshalJSON(data []byte) error {
	var raw struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Tuple{X: valueOrNaN(raw.X), Y: valueOrNaN(raw.Y)}
	return nil
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func missing() Tuple {
	return Tuple{math.NaN(), math.NaN()}
}

func decodeInstruction(raw json.RawMessage) Instruction {
	var head struct {
		Type json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return Invalid{Err: fmt.Errorf("type: %w", err)}
	}
	var typ string
	if len(head.Type) > 0 {
		if err := json.Unmarshal(head.Type, &typ); err != nil {
			// a tag that is not a string names no known shape
			return Unrecognized{Style: decodeStyle(raw), Type: string(bytes.TrimSpace(head.Type))}
		}
	}

	nan := math.NaN()
	var (
		inst Instruction
		err  error
	)
	switch Kind(typ) {
	case PointKind:
		p := Point{X: nan, Y: nan}
		err = json.Unmarshal(raw, &p)
		inst = p
	case SegmentKind:
		s := Segment{PS: missing(), PE: missing()}
		err = json.Unmarshal(raw, &s)
		inst = s
	case CircleKind:
		c := Circle{PC: missing(), R: nan}
		err = json.Unmarshal(raw, &c)
		inst = c
	case ArcKind:
		a := Arc{PC: missing(), R: nan, StartAngle: nan, EndAngle: nan}
		err = json.Unmarshal(raw, &a)
		inst = a
	case PolygonKind:
		inst, err = decodePolygon(raw)
	case BoxKind:
		b := Box{XMin: nan, YMin: nan, XMax: nan, YMax: nan}
		err = json.Unmarshal(raw, &b)
		inst = b
	case TextKind:
		inst, err = decodeText(raw)
	default:
		return Unrecognized{Style: decodeStyle(raw), Type: typ}
	}
	if err != nil {
		return Invalid{Style: decodeStyle(raw), Type: typ, Err: err}
	}
	return inst
}

// decodeStyle is best effort; it only labels diagnostics.
func decodeStyle(raw json.RawMessage) Style {
	var s Style
	_ = json.Unmarshal(raw, &s)
	return s
}

func decodePolygon(raw json.RawMessage) (Instruction, error) {
	var aux struct {
		Style
		Points json.RawMessage `json:"points"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, err
	}
	p := Polygon{Style: aux.Style}
	pts := bytes.TrimSpace(aux.Points)
	switch {
	case len(pts) == 0 || bytes.Equal(pts, []byte("null")):
	case pts[0] == '"':
		var s string
		if err := json.Unmarshal(pts, &s); err != nil {
			return nil, err
		}
		list, err := ParsePoints(s)
		if err != nil {
			return nil, fmt.Errorf("points: %w", err)
		}
		p.Points = list
	default:
		if err := json.Unmarshal(pts, &p.Points); err != nil {
			return nil, fmt.Errorf("points: %w", err)
		}
	}
	return p, nil
}

func decodeText(raw json.RawMessage) (Instruction, error) {
	var aux struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, err
	}
	c := bytes.TrimSpace(aux.Content)
	if len(c) == 0 || c[0] != '"' {
		return nil, fmt.Errorf("content: %w", ErrContent)
	}
	t := Text{X: math.NaN(), Y: math.NaN()}
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return t, nil
}
