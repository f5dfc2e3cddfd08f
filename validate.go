package diagram

import (
	"errors"
	"fmt"
	"math"
)

// Validation failures. Validate wraps one of these so callers can match
// them with errors.Is.
var (
	ErrNonFinite      = errors.New("missing or non-finite number")
	ErrNegative       = errors.New("must not be negative")
	ErrRadius         = errors.New("radius must be positive")
	ErrBounds         = errors.New("minimum must be below maximum")
	ErrTooFewPoints   = errors.New("polygon needs at least two points")
	ErrContent        = errors.New("text content must be a string")
	ErrUnknownType    = errors.New("unrecognized instruction type")
	ErrNilInstruction = errors.New("nil instruction")
)

// Validate checks the shape-specific preconditions of one instruction
// before any geometry is built. It returns nil when the instruction can be
// drawn. Pointers to variants are checked as their values; a nil pointer
// fails with ErrNilInstruction.
func Validate(inst Instruction) error {
	if inst == nil {
		return fmt.Errorf("nil instruction: %w", ErrUnknownType)
	}
	inst = normalize(inst)
	switch in := inst.(type) {
	case Unrecognized:
		return fmt.Errorf("%q: %w", in.Type, ErrUnknownType)
	case Invalid:
		if in.Err != nil {
			return in.Err
		}
		return fmt.Errorf("%q: malformed instruction", in.Type)
	}
	if err := validateStyle(inst.style()); err != nil {
		return err
	}

	switch in := inst.(type) {
	case Point:
		if err := finite(num{"x", in.X}, num{"y", in.Y}); err != nil {
			return err
		}
		return nonNegative("radius", in.Radius)
	case Segment:
		if err := tupleFinite("ps", in.PS); err != nil {
			return err
		}
		return tupleFinite("pe", in.PE)
	case Circle:
		if err := tupleFinite("pc", in.PC); err != nil {
			return err
		}
		return positiveRadius(in.R)
	case Arc:
		if err := tupleFinite("pc", in.PC); err != nil {
			return err
		}
		if err := positiveRadius(in.R); err != nil {
			return err
		}
		return finite(num{"startAngle", in.StartAngle}, num{"endAngle", in.EndAngle})
	case Polygon:
		if len(in.Points) < 2 {
			return fmt.Errorf("got %d: %w", len(in.Points), ErrTooFewPoints)
		}
		for i, p := range in.Points {
			if err := tupleFinite(fmt.Sprintf("points[%d]", i), p); err != nil {
				return err
			}
		}
		return nil
	case Box:
		if err := finite(num{"xmin", in.XMin}, num{"ymin", in.YMin}, num{"xmax", in.XMax}, num{"ymax", in.YMax}); err != nil {
			return err
		}
		if in.XMin >= in.XMax {
			return fmt.Errorf("xmin %v, xmax %v: %w", in.XMin, in.XMax, ErrBounds)
		}
		if in.YMin >= in.YMax {
			return fmt.Errorf("ymin %v, ymax %v: %w", in.YMin, in.YMax, ErrBounds)
		}
		return nil
	case Text:
		if err := finite(num{"x", in.X}, num{"y", in.Y}); err != nil {
			return err
		}
		if in.Offset != nil {
			if err := tupleFinite("offset", *in.Offset); err != nil {
				return err
			}
		}
		return nonNegative("fontSize", in.FontSize)
	default:
		return fmt.Errorf("%T: %w", inst, ErrUnknownType)
	}
}

func validateStyle(s Style) error {
	return nonNegative("strokeWidth", s.StrokeWidth)
}

// num is a named field value, named as it appears in encoded instructions.
type num struct {
	name string
	v    float64
}

func finite(nums ...num) error {
	for _, n := range nums {
		if math.IsNaN(n.v) || math.IsInf(n.v, 0) {
			return fmt.Errorf("%s: %w", n.name, ErrNonFinite)
		}
	}
	return nil
}

func tupleFinite(name string, t Tuple) error {
	return finite(num{name + ".x", t.X}, num{name + ".y", t.Y})
}

func nonNegative(name string, v float64) error {
	if err := finite(num{name, v}); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%s %v: %w", name, v, ErrNegative)
	}
	return nil
}

func positiveRadius(r float64) error {
	if err := finite(num{"r", r}); err != nil {
		return err
	}
	if r <= 0 {
		return fmt.Errorf("r %v: %w", r, ErrRadius)
	}
	return nil
}
