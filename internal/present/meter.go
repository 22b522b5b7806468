package present

import (
	"fmt"
	"math"
)

const (
	meterRadius      = 90
	meterStrokeWidth = 12
)

// Gauge describes the SVG ring of the risk meter.
type Gauge struct {
	Percentage       float64 `json:"percentage"`
	Label            string  `json:"label"`
	Level            string  `json:"level"`
	Radius           int     `json:"radius"`
	StrokeWidth      int     `json:"stroke_width"`
	NormalizedRadius int     `json:"normalized_radius"`
	Circumference    float64 `json:"circumference"`
	DashOffset       float64 `json:"dash_offset"`
	Palette          Palette `json:"palette"`
}

// Size is the width and height of the SVG viewport.
func (g Gauge) Size() int {
	return g.Radius * 2
}

func (g Gauge) DashArray() string {
	return fmt.Sprintf("%.3f %.3f", g.Circumference, g.Circumference)
}

func Meter(probability float64, level string) Gauge {
	pct := probability * 100
	normalized := meterRadius - meterStrokeWidth*2
	circumference := float64(normalized) * 2 * math.Pi

	return Gauge{
		Percentage:       pct,
		Label:            fmt.Sprintf("%.1f%%", pct),
		Level:            level,
		Radius:           meterRadius,
		StrokeWidth:      meterStrokeWidth,
		NormalizedRadius: normalized,
		Circumference:    circumference,
		DashOffset:       circumference - (pct/100)*circumference,
		Palette:          PaletteFor(level),
	}
}
