package present

import (
	"fmt"
	"math"
)

// wideRange is the interval width, in points, above which more clinical
// information is suggested.
const wideRange = 30

var scaleMarks = []int{0, 25, 50, 75, 100}

type IntervalBar struct {
	MinPercent     int     `json:"min_percent"`
	CurrentPercent int     `json:"current_percent"`
	MaxPercent     int     `json:"max_percent"`
	RangeWidth     int     `json:"range_width"`
	Certainty      int     `json:"certainty"`
	Wide           bool    `json:"wide"`
	Marks          []int   `json:"marks"`
	Palette        Palette `json:"palette"`
}

func (b IntervalBar) MinLabel() string     { return percentLabel(b.MinPercent) }
func (b IntervalBar) CurrentLabel() string { return percentLabel(b.CurrentPercent) }
func (b IntervalBar) MaxLabel() string     { return percentLabel(b.MaxPercent) }

// BarLeft, BarWidth and MarkerLeft are CSS positions on a 0-100 scale.
func (b IntervalBar) BarLeft() int {
	return clampPercent(b.MinPercent)
}

func (b IntervalBar) BarWidth() int {
	w := clampPercent(b.MaxPercent) - clampPercent(b.MinPercent)
	if w < 0 {
		return 0
	}
	return w
}

func (b IntervalBar) MarkerLeft() int {
	return clampPercent(b.CurrentPercent)
}

func Interval(ci [2]float64, probability float64, level string) IntervalBar {
	minPct := roundPercent(ci[0])
	maxPct := roundPercent(ci[1])

	return IntervalBar{
		MinPercent:     minPct,
		CurrentPercent: roundPercent(probability),
		MaxPercent:     maxPct,
		RangeWidth:     maxPct - minPct,
		Certainty:      Certainty(ci),
		Wide:           maxPct-minPct > wideRange,
		Marks:          scaleMarks,
		Palette:        PaletteFor(level),
	}
}

// Certainty is how sure the model is, as a percent: one minus the interval
// width.
func Certainty(ci [2]float64) int {
	return int(math.Round((1 - (ci[1] - ci[0])) * 100))
}

func roundPercent(p float64) int {
	return int(math.Round(p * 100))
}

func percentLabel(p int) string {
	return fmt.Sprintf("%d%%", p)
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
