package diagram

import (
	"strings"
	"testing"

	"github.com/cheekybits/is"
	"go.uber.org/goleak"
)

func TestParsePoints(t *testing.T) {
	is := is.New(t)

	points, err := ParsePoints("0,0 10,0 10 10 -2.5,4.25")
	is.NoErr(err)
	is.Equal(len(points), 4)
	is.Equal(points[0], Tuple{0, 0})
	is.Equal(points[1], Tuple{10, 0})
	is.Equal(points[2], Tuple{10, 10})
	is.Equal(points[3], Tuple{-2.5, 4.25})

	points, err = ParsePoints("  1, 2   3 ,4 ")
	is.NoErr(err)
	is.Equal(len(points), 2)
	is.Equal(points[1], Tuple{3, 4})

	points, err = ParsePoints("")
	is.NoErr(err)
	is.Equal(len(points), 0)
}

func TestParsePointsErrors(t *testing.T) {
	is := is.New(t)

	_, err := ParsePoints("1,2 3")
	is.Err(err)

	_, err = ParsePoints("1,2 x,4")
	is.Err(err)

	_, err = ParsePoints("1,2 @ 3,4")
	is.Err(err)
}

func TestParsePointsReleasesLexer(t *testing.T) {
	defer goleak.VerifyNone(t)
	is := is.New(t)

	long := strings.Repeat("1,2 ", 50) + "x"
	for i := 0; i < 20; i++ {
		points, err := ParsePoints("0,0 10,0 10,10")
		is.NoErr(err)
		is.Equal(len(points), 3)
		_, err = ParsePoints("1,2 x,4 5,6 7,8")
		is.Err(err)
		_, err = ParsePoints("@")
		is.Err(err)
		_, err = ParsePoints(long)
		is.Err(err)
		_, err = Decode([]byte(`[{"type": "polygon", "points": "1,2 3"}]`))
		is.NoErr(err)
	}
}
