package diagram

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme([]byte(`
stroke: "#0f172a"
stroke_width: 1.5
font_family: Inter
point_radius: 0
`))
	require.NoError(t, err)

	want := DefaultTheme()
	want.Stroke = "#0f172a"
	want.StrokeWidth = 1.5
	want.FontFamily = "Inter"
	assert.Equal(t, want, theme)
}

func TestParseThemeError(t *testing.T) {
	_, err := ParseTheme([]byte("stroke: [unterminated"))
	assert.Error(t, err)
}

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()

	theme, err := LoadTheme(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme(), theme)

	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("face_fill: none\nborder: none\n"), 0644))
	theme, err = LoadTheme(path)
	require.NoError(t, err)
	assert.Equal(t, "none", theme.FaceFill)
	assert.Equal(t, "none", theme.Border)
	assert.Equal(t, DefaultTheme().Stroke, theme.Stroke)
}
