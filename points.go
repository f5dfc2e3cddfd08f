package diagram

import (
	"fmt"
	"strconv"

	gl "github.com/rustyoz/genericlexer"
)

// ParsePoints reads a point list in the format of the SVG points
// attribute, e.g. "0,0 10,0 10 10". Pairs may be separated by commas,
// whitespace or both.
func ParsePoints(s string) ([]Tuple, error) {
	l, _ := gl.Lex("points", s)
	defer drain(l)

	var points []Tuple
	for {
		l.ConsumeWhiteSpace()
		i := l.PeekItem()
		switch i.Type {
		case gl.ItemEOS:
			if i == (gl.Item{Type: gl.ItemEOS}) {
				// the lexer stops without a position on a character it cannot lex
				return nil, fmt.Errorf("unexpected character in point list %q", s)
			}
			return points, nil
		case gl.ItemNumber:
			t, err := parseTuple(l)
			if err != nil {
				return nil, fmt.Errorf("point %d: %s", len(points), err)
			}
			points = append(points, t)
			l.ConsumeWhiteSpace()
			l.ConsumeComma()
		default:
			return nil, fmt.Errorf("unexpected %q in point list", i.Value)
		}
	}
}

// drain lets the lexer goroutine run to completion. It sends a second
// end-of-stream item after the first, so it blocks even when the whole
// input was read.
func drain(l *gl.Lexer) {
	for range l.Items {
	}
}

func parseTuple(l *gl.Lexer) (Tuple, error) {
	var t Tuple
	x, err := parseNumber(l.NextItem())
	if err != nil {
		return t, err
	}
	l.ConsumeWhiteSpace()
	l.ConsumeComma()
	l.ConsumeWhiteSpace()
	y, err := parseNumber(l.NextItem())
	if err != nil {
		return t, err
	}
	t.X, t.Y = x, y
	return t, nil
}

func parseNumber(i gl.Item) (float64, error) {
	if i.Type != gl.ItemNumber {
		return 0, fmt.Errorf("expected number, got %q", i.Value)
	}
	return strconv.ParseFloat(i.Value, 64)
}
