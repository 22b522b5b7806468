package present

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Skufu/cardiorisk/internal/model"
)

type Priority string

const (
	PriorityUrgent    Priority = "urgent"
	PriorityImportant Priority = "important"
	PriorityMedical   Priority = "medical"
	PriorityLifestyle Priority = "lifestyle"
	PriorityMental    Priority = "mental"
	PriorityPositive  Priority = "positive"
	PriorityGeneral   Priority = "general"
)

// Category is the display bucket of a recommendation.
type Category struct {
	Priority Priority `json:"priority"`
	Label    string   `json:"label"`
	Tone     string   `json:"tone"`
	Icon     string   `json:"icon"`
	rank     int
}

type categoryRule struct {
	category Category
	keywords []string
}

// Rules are evaluated top to bottom; the first keyword hit wins. Keywords are
// matched against the lowercased recommendation.
var recommendationRules = []categoryRule{
	{
		category: Category{Priority: PriorityUrgent, Label: "URGENTE", Tone: "red", Icon: "alert-triangle", rank: 0},
		keywords: []string{"🚨", "crítico", "urgente", "inmediatamente", "deje de fumar hoy"},
	},
	{
		category: Category{Priority: PriorityImportant, Label: "IMPORTANTE", Tone: "orange", Icon: "clock", rank: 1},
		keywords: []string{"⚠️", "importante", "programe", "realice exámenes", "chequeos"},
	},
	{
		category: Category{Priority: PriorityMedical, Label: "MÉDICO", Tone: "blue", Icon: "stethoscope", rank: 2},
		keywords: []string{"📊", "💊", "🩺", "exámenes", "medicación", "cardiólogo"},
	},
	{
		category: Category{Priority: PriorityLifestyle, Label: "ESTILO DE VIDA", Tone: "green", Icon: "activity", rank: 3},
		keywords: []string{"🏃‍♂️", "🚶‍♂️", "🥗", "ejercicio", "dieta", "peso"},
	},
	{
		category: Category{Priority: PriorityMental, Label: "BIENESTAR MENTAL", Tone: "purple", Icon: "brain", rank: 4},
		keywords: []string{"🧘‍♂️", "😴", "🗣️", "estrés", "sueño", "psicológico"},
	},
	{
		category: Category{Priority: PriorityPositive, Label: "FELICITACIONES", Tone: "emerald", Icon: "check-circle", rank: 5},
		keywords: []string{"✅", "🌟", "🛡️", "👏", "excelente", "felicitaciones", "continúe"},
	},
}

var generalCategory = Category{Priority: PriorityGeneral, Label: "RECOMENDACIÓN", Tone: "gray", Icon: "heart", rank: 6}

func Classify(recommendation string) Category {
	rec := strings.ToLower(recommendation)
	for _, rule := range recommendationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(rec, kw) {
				return rule.category
			}
		}
	}
	return generalCategory
}

type Recommendation struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

type PlanHeader struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
	Tone     string `json:"tone"`
}

// Note is a boxed message shown below the list for high and low risk.
type Note struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tone  string `json:"tone"`
	Icon  string `json:"icon"`
}

type RecommendationList struct {
	Header         PlanHeader       `json:"header"`
	Items          []Recommendation `json:"items"`
	UrgentCount    int              `json:"urgent_count"`
	ImportantCount int              `json:"important_count"`
	Note           *Note            `json:"note,omitempty"`
}

func (l RecommendationList) UrgentBadge() string {
	return countBadge(l.UrgentCount, "Urgente")
}

func (l RecommendationList) ImportantBadge() string {
	return countBadge(l.ImportantCount, "Importante")
}

// Recommendations classifies and orders recs by category. Items in the same
// category keep the order they were received in.
func Recommendations(recs []string, level string) RecommendationList {
	items := make([]Recommendation, 0, len(recs))
	for _, r := range recs {
		items = append(items, Recommendation{Text: r, Category: Classify(r)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Category.rank < items[j].Category.rank
	})

	list := RecommendationList{
		Header: planHeader(level),
		Items:  items,
	}
	for _, it := range items {
		switch it.Category.Priority {
		case PriorityUrgent:
			list.UrgentCount++
		case PriorityImportant:
			list.ImportantCount++
		}
	}

	switch level {
	case model.RiskHigh:
		list.Note = &Note{
			Title: "¿Necesita ayuda inmediata?",
			Body:  "Si experimenta dolor en el pecho, dificultad para respirar o mareos, busque atención médica inmediata.",
			Tone:  "red",
			Icon:  "phone",
		}
	case model.RiskLow:
		list.Note = &Note{
			Title: "¡Siga así!",
			Body:  "Su estilo de vida saludable es la mejor medicina preventiva. Mantenga estos hábitos excelentes.",
			Tone:  "green",
			Icon:  "shield",
		}
	}
	return list
}

func planHeader(level string) PlanHeader {
	switch level {
	case model.RiskHigh:
		return PlanHeader{
			Title:    "Plan de Acción Inmediato",
			Subtitle: "Recomendaciones prioritarias para su salud cardiovascular",
			Icon:     "alert-triangle",
			Tone:     "red",
		}
	case model.RiskModerate:
		return PlanHeader{
			Title:    "Plan de Mejora Personalizado",
			Subtitle: "Estrategias para optimizar su salud cardiovascular",
			Icon:     "target",
			Tone:     "orange",
		}
	default:
		return PlanHeader{
			Title:    "Plan de Mantenimiento",
			Subtitle: "Recomendaciones para mantener su excelente estado cardiovascular",
			Icon:     "trending-up",
			Tone:     "green",
		}
	}
}

func countBadge(n int, word string) string {
	if n == 0 {
		return ""
	}
	if n > 1 {
		word += "s"
	}
	return strconv.Itoa(n) + " " + word
}
