package present

import (
	"fmt"
	"math"
	"strings"

	"github.com/Skufu/cardiorisk/internal/model"
)

type Trend struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Tone string `json:"tone"`
}

type ActionPriority struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
	Icon  string `json:"icon"`
	Tone  string `json:"tone"`
}

type Insight struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

type Summary struct {
	Percentage    int            `json:"percentage"`
	Level         string         `json:"level"`
	Trend         Trend          `json:"trend"`
	FactorCount   int            `json:"factor_count"`
	FactorCaption string         `json:"factor_caption"`
	UrgentCount   int            `json:"urgent_count"`
	Action        ActionPriority `json:"action"`
	Confidence    int            `json:"confidence"`
	Insights      []Insight      `json:"insights"`
}

// urgentMarkers are matched case-sensitively, unlike the recommendation
// classifier.
var urgentMarkers = []string{"🚨", "CRÍTICO", "URGENTE"}

func countUrgent(recs []string) int {
	n := 0
	for _, r := range recs {
		for _, m := range urgentMarkers {
			if strings.Contains(r, m) {
				n++
				break
			}
		}
	}
	return n
}

func riskTrend(level string) Trend {
	switch level {
	case model.RiskHigh:
		return Trend{Text: "Tendencia de riesgo elevada", Icon: "trending-up", Tone: "red"}
	case model.RiskModerate:
		return Trend{Text: "Tendencia de riesgo estable", Icon: "minus", Tone: "orange"}
	default:
		return Trend{Text: "Tendencia de riesgo baja", Icon: "trending-down", Tone: "green"}
	}
}

func factorCaption(n int) string {
	switch n {
	case 0:
		return "Ninguno identificado"
	case 1:
		return "Factor identificado"
	default:
		return "Factores identificados"
	}
}

func ExecutiveSummary(resp model.PredictionResponse) Summary {
	factors := len(resp.RiskFactors)
	urgent := countUrgent(resp.Recommendations)
	confidence := Certainty(resp.ConfidenceInterval)

	var action ActionPriority
	switch {
	case urgent > 0:
		action = ActionPriority{Text: "Acción inmediata requerida", Count: urgent, Icon: "alert-triangle", Tone: "red"}
	case resp.RiskPrediction != model.RiskLow:
		action = ActionPriority{Text: "Monitoreo y mejoras recomendadas", Count: len(resp.Recommendations), Icon: "alert-triangle", Tone: "orange"}
	default:
		action = ActionPriority{Text: "Mantenimiento del estilo saludable", Count: len(resp.Recommendations), Icon: "check-circle", Tone: "green"}
	}

	insights := []Insight{}
	if resp.RiskPrediction == model.RiskHigh {
		insights = append(insights, Insight{
			Text: "Su perfil indica riesgo cardiovascular elevado que requiere atención médica inmediata",
			Tone: "red",
		})
	}
	if factors == 1 {
		insights = append(insights, Insight{
			Text: "1 factor de riesgo es modificable con cambios en el estilo de vida",
			Tone: "orange",
		})
	} else if factors > 1 {
		insights = append(insights, Insight{
			Text: fmt.Sprintf("%d factores de riesgo son modificables con cambios en el estilo de vida", factors),
			Tone: "orange",
		})
	}
	if resp.RiskPrediction == model.RiskLow {
		insights = append(insights, Insight{
			Text: "Su estilo de vida actual está protegiendo efectivamente su salud cardiovascular",
			Tone: "green",
		})
	}
	insights = append(insights, Insight{
		Text: fmt.Sprintf("El modelo analizó sus datos con %d%% de confianza", confidence),
		Tone: "blue",
	})

	return Summary{
		Percentage:    int(math.Round(resp.RiskProbability * 100)),
		Level:         resp.RiskPrediction,
		Trend:         riskTrend(resp.RiskPrediction),
		FactorCount:   factors,
		FactorCaption: factorCaption(factors),
		UrgentCount:   urgent,
		Action:        action,
		Confidence:    confidence,
		Insights:      insights,
	}
}
