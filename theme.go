package diagram

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme holds the defaults applied to instructions that leave a style
// field empty, and the look of the surrounding container.
type Theme struct {
	Stroke      string  `yaml:"stroke"`
	StrokeWidth float64 `yaml:"stroke_width"`
	Fill        string  `yaml:"fill"`      // shapes without a face
	FaceFill    string  `yaml:"face_fill"` // polygons and boxes
	PointRadius float64 `yaml:"point_radius"`

	TextColor  string  `yaml:"text_color"`
	FontSize   float64 `yaml:"font_size"`
	FontFamily string  `yaml:"font_family"`
	TextAnchor string  `yaml:"text_anchor"`

	Border     string `yaml:"border"`
	Background string `yaml:"background"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Stroke:      "#6366f1",
		StrokeWidth: 2,
		Fill:        "none",
		FaceFill:    "rgba(99, 102, 241, 0.1)",
		PointRadius: 3,
		TextColor:   "#1f2937",
		FontSize:    12,
		FontFamily:  "sans-serif",
		TextAnchor:  "start",
		Border:      "1px solid #e5e7eb",
		Background:  "#ffffff",
	}
}

// withDefaults fills every zero field of t from the built-in theme.
func (t Theme) withDefaults() Theme {
	d := DefaultTheme()
	if t.Stroke == "" {
		t.Stroke = d.Stroke
	}
	if t.StrokeWidth <= 0 {
		t.StrokeWidth = d.StrokeWidth
	}
	if t.Fill == "" {
		t.Fill = d.Fill
	}
	if t.FaceFill == "" {
		t.FaceFill = d.FaceFill
	}
	if t.PointRadius <= 0 {
		t.PointRadius = d.PointRadius
	}
	if t.TextColor == "" {
		t.TextColor = d.TextColor
	}
	if t.FontSize <= 0 {
		t.FontSize = d.FontSize
	}
	if t.FontFamily == "" {
		t.FontFamily = d.FontFamily
	}
	if t.TextAnchor == "" {
		t.TextAnchor = d.TextAnchor
	}
	if t.Border == "" {
		t.Border = d.Border
	}
	if t.Background == "" {
		t.Background = d.Background
	}
	return t
}

// LoadTheme reads a theme from a YAML file. Fields the file leaves out keep
// their defaults, and a missing file yields the default theme.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTheme(), nil
		}
		return Theme{}, fmt.Errorf("failed to read theme: %w", err)
	}
	return ParseTheme(data)
}

// ParseTheme decodes a YAML theme document.
func ParseTheme(data []byte) (Theme, error) {
	t := DefaultTheme()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
	}
	return t.withDefaults(), nil
}
