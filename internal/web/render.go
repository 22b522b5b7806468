package web

import (
	"errors"
	"fmt"
	"html/template"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/cardiorisk/internal/model"
	"github.com/Skufu/cardiorisk/internal/present"
	"github.com/Skufu/cardiorisk/internal/validation"
	"github.com/Skufu/cardiorisk/internal/view"
)

type formOptions struct {
	Gender  []model.Option
	Smoking []model.Option
	Alcohol []model.Option
	YesNo   []model.Option
}

var options = formOptions{
	Gender:  model.GenderOptions,
	Smoking: model.SmokingOptions,
	Alcohol: model.AlcoholOptions,
	YesNo:   model.YesNoOptions,
}

type page struct {
	State   view.State
	Health  *model.HealthResponse
	Patient model.PatientData
	Errors  validation.FieldErrors
	Options formOptions
	Report  *present.Report
	Error   string
}

func (s *Server) pageFor(snap view.Snapshot, errs validation.FieldErrors) page {
	p := page{
		State:   snap.State,
		Health:  s.health.Load(),
		Patient: snap.Patient,
		Errors:  errs,
		Options: options,
		Error:   snap.Error,
	}
	if snap.State == view.StateResults && snap.Results != nil {
		r := present.Build(*snap.Results)
		p.Report = &r
	}
	return p
}

func (s *Server) render(c *gin.Context, status int, p page) {
	c.HTML(status, "page", p)
}

var icons = map[string]string{
	"alert-triangle": "⚠",
	"clock":          "⏰",
	"stethoscope":    "🩺",
	"activity":       "🏃",
	"brain":          "🧠",
	"check-circle":   "✔",
	"heart":          "♥",
	"phone":          "📞",
	"shield":         "🛡",
	"target":         "🎯",
	"trending-up":    "📈",
	"trending-down":  "📉",
	"minus":          "➖",
	"cigarette":      "🚬",
	"scale":          "⚖",
	"users":          "👪",
	"wine":           "🍷",
	"calendar":       "📅",
}

var templateFuncs = template.FuncMap{
	"icon": func(name string) string {
		if g, ok := icons[name]; ok {
			return g
		}
		return icons["alert-triangle"]
	},
	"fmtFloat": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
	"fieldError": func(errs validation.FieldErrors, field string) string {
		return errs[field]
	},
	"dict": func(kv ...any) (map[string]any, error) {
		if len(kv)%2 != 0 {
			return nil, errors.New("dict: odd number of arguments")
		}
		m := make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			k, ok := kv[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
			}
			m[k] = kv[i+1]
		}
		return m, nil
	},
}
