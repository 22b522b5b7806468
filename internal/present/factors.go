package present

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Skufu/cardiorisk/internal/model"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

var severityRank = map[Severity]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

var severityTone = map[Severity]string{
	SeverityHigh:   "red",
	SeverityMedium: "orange",
	SeverityLow:    "yellow",
}

var (
	highSeverityWords   = []string{"crítico", "urgente", "muy grave", "extremo", "crisis"}
	mediumSeverityWords = []string{"alto", "preocupante", "grave", "importante", "alarmante"}
)

// factorIcons maps keywords in a factor name to an icon. Unmatched names get
// the alert icon.
var factorIcons = []struct {
	icon     string
	keywords []string
}{
	{"cigarette", []string{"tabaquismo", "fumar"}},
	{"heart", []string{"diabetes"}},
	{"scale", []string{"obesidad", "peso"}},
	{"users", []string{"familia", "historial"}},
	{"activity", []string{"sedentarismo", "ejercicio", "actividad"}},
	{"brain", []string{"estrés", "stress"}},
	{"wine", []string{"alcohol"}},
	{"calendar", []string{"edad"}},
}

// FactorSeverity grades a risk factor by its description text.
func FactorSeverity(description string) Severity {
	desc := strings.ToLower(description)
	if containsAny(desc, highSeverityWords) {
		return SeverityHigh
	}
	if containsAny(desc, mediumSeverityWords) {
		return SeverityMedium
	}
	return SeverityLow
}

func FactorIcon(name string) string {
	n := strings.ToLower(name)
	for _, fi := range factorIcons {
		if containsAny(n, fi.keywords) {
			return fi.icon
		}
	}
	return "alert-triangle"
}

type FactorCard struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Tone        string   `json:"tone"`
	Icon        string   `json:"icon"`
}

type FactorList struct {
	Items []FactorCard `json:"items"`

	// Empty is set when the service identified no risk factors; the view then
	// shows EmptyTitle and EmptyMessage instead of a list.
	Empty        bool   `json:"empty"`
	EmptyTitle   string `json:"empty_title,omitempty"`
	EmptyMessage string `json:"empty_message,omitempty"`
}

func (l FactorList) Title() string {
	return "Factores de Riesgo Identificados"
}

func (l FactorList) Subtitle() string {
	n := len(l.Items)
	if n == 1 {
		return "1 factor requiere atención"
	}
	return fmt.Sprintf("%d factores requieren atención", n)
}

func RiskFactors(factors model.RiskFactors) FactorList {
	if len(factors) == 0 {
		return FactorList{
			Items:        []FactorCard{},
			Empty:        true,
			EmptyTitle:   "¡Excelente!",
			EmptyMessage: "No se identificaron factores de riesgo significativos",
		}
	}

	cards := make([]FactorCard, 0, len(factors))
	for _, f := range factors {
		sev := FactorSeverity(f.Description)
		cards = append(cards, FactorCard{
			Name:        f.Name,
			Description: f.Description,
			Severity:    sev,
			Tone:        severityTone[sev],
			Icon:        FactorIcon(f.Name),
		})
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return severityRank[cards[i].Severity] < severityRank[cards[j].Severity]
	})

	return FactorList{Items: cards}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
