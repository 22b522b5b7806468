package present

import "github.com/Skufu/cardiorisk/internal/model"

// Report is everything the results view needs.
type Report struct {
	Level           string             `json:"level"`
	Palette         Palette            `json:"palette"`
	Summary         Summary            `json:"summary"`
	Meter           Gauge              `json:"meter"`
	Interval        IntervalBar        `json:"interval"`
	Factors         FactorList         `json:"factors"`
	Recommendations RecommendationList `json:"recommendations"`
	Disclaimer      string             `json:"disclaimer"`
}

func Build(resp model.PredictionResponse) Report {
	level := resp.RiskPrediction
	return Report{
		Level:           level,
		Palette:         PaletteFor(level),
		Summary:         ExecutiveSummary(resp),
		Meter:           Meter(resp.RiskProbability, level),
		Interval:        Interval(resp.ConfidenceInterval, resp.RiskProbability, level),
		Factors:         RiskFactors(resp.RiskFactors),
		Recommendations: Recommendations(resp.Recommendations, level),
		Disclaimer:      resp.Disclaimer,
	}
}
