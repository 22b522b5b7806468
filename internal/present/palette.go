// Package present turns a prediction response into display groupings: the
// risk meter, the confidence bar, sorted risk factor cards, sorted
// recommendations and the executive summary. Everything here is a pure
// function of the response.
package present

import "github.com/Skufu/cardiorisk/internal/model"

// Palette holds the colors used for one risk level.
type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tone      string `json:"tone"`
}

var (
	paletteHigh     = Palette{Primary: "#dc2626", Secondary: "#fecaca", Tone: "red"}
	paletteModerate = Palette{Primary: "#d97706", Secondary: "#fed7aa", Tone: "orange"}
	paletteLow      = Palette{Primary: "#16a34a", Secondary: "#bbf7d0", Tone: "green"}
)

// PaletteFor falls back to the low-risk colors for unknown labels.
func PaletteFor(level string) Palette {
	switch level {
	case model.RiskHigh:
		return paletteHigh
	case model.RiskModerate:
		return paletteModerate
	default:
		return paletteLow
	}
}
