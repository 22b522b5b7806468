package validation

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/Skufu/cardiorisk/internal/model"
)

const (
	MinAge           = 18
	MaxAge           = 100
	MinExerciseHours = 0.0
	MaxExerciseHours = 24.0
	MinStressLevel   = 1
	MaxStressLevel   = 10
)

const (
	msgAge      = "La edad debe estar entre 18 y 100 años"
	msgExercise = "Las horas de ejercicio deben estar entre 0 y 24"
	msgStress   = "El nivel de estrés debe estar entre 1 y 10"
	msgOption   = "Seleccione una opción válida"
)

// FieldErrors maps a PatientData JSON field name to its display message.
type FieldErrors map[string]string

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Fields returns the failing field names in sorted order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func CheckAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}

func CheckExerciseHours(hours float64) bool {
	return hours >= MinExerciseHours && hours <= MaxExerciseHours
}

func CheckStressLevel(level int) bool {
	return level >= MinStressLevel && level <= MaxStressLevel
}

// Validate returns every failing field of p. An empty result means p may be
// submitted.
func Validate(p model.PatientData) FieldErrors {
	errs := FieldErrors{}

	if !CheckAge(p.Age) {
		errs["age"] = msgAge
	}
	if !CheckExerciseHours(p.ExerciseHours) {
		errs["exercise_hours"] = msgExercise
	}
	if !CheckStressLevel(p.StressLevel) {
		errs["stress_level"] = msgStress
	}

	enums := []struct {
		field string
		value string
		opts  []model.Option
	}{
		{"gender", p.Gender, model.GenderOptions},
		{"smoking", p.Smoking, model.SmokingOptions},
		{"alcohol_intake", p.AlcoholIntake, model.AlcoholOptions},
		{"diabetes", p.Diabetes, model.YesNoOptions},
		{"family_history", p.FamilyHistory, model.YesNoOptions},
		{"obesity", p.Obesity, model.YesNoOptions},
	}
	for _, e := range enums {
		if !model.HasOption(e.opts, e.value) {
			errs[e.field] = msgOption
		}
	}

	return errs
}

// ParseForm reads a submitted patient form. Numbers that do not parse become
// zero so the range checks reject them; enum fields left empty keep the form
// defaults.
func ParseForm(form url.Values) model.PatientData {
	p := model.DefaultPatient()

	p.Age = parseInt(form.Get("age"))
	p.ExerciseHours = parseFloat(form.Get("exercise_hours"))
	p.StressLevel = parseInt(form.Get("stress_level"))

	setIfPresent(&p.Gender, form.Get("gender"))
	setIfPresent(&p.Smoking, form.Get("smoking"))
	setIfPresent(&p.AlcoholIntake, form.Get("alcohol_intake"))
	setIfPresent(&p.Diabetes, form.Get("diabetes"))
	setIfPresent(&p.FamilyHistory, form.Get("family_history"))
	setIfPresent(&p.Obesity, form.Get("obesity"))

	return p
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// "45.7" is accepted as 45, matching how number inputs truncate.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
