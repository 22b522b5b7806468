package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/cardiorisk/internal/model"
	"github.com/Skufu/cardiorisk/internal/present"
	"github.com/Skufu/cardiorisk/internal/validation"
	"github.com/Skufu/cardiorisk/internal/view"
)

func (s *Server) index(c *gin.Context) {
	snap := controllerFrom(c).Snapshot()
	s.render(c, http.StatusOK, s.pageFor(snap, nil))
}

func (s *Server) assess(c *gin.Context) {
	ctrl := controllerFrom(c)

	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	patient := validation.ParseForm(c.Request.PostForm)

	switch ctrl.State() {
	case view.StateForm:
	case view.StateLoading:
		s.render(c, http.StatusConflict, s.pageFor(ctrl.Snapshot(), nil))
		return
	default:
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if errs := validation.Validate(patient); len(errs) > 0 {
		snap := ctrl.Snapshot()
		snap.Patient = patient
		s.render(c, http.StatusUnprocessableEntity, s.pageFor(snap, errs))
		return
	}

	if err := ctrl.Submit(patient); err != nil {
		// Lost a race with another tab of the same session.
		if errors.Is(err, view.ErrBusy) {
			s.render(c, http.StatusConflict, s.pageFor(ctrl.Snapshot(), nil))
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	resp, err := s.predictor.PredictRisk(c.Request.Context(), patient)
	if err != nil {
		msg := errorMessage(err)
		s.logger.Warn().Str("request_id", c.GetString("request_id")).Str("error", msg).Msg("prediction failed")
		_ = ctrl.Fail(msg)
	} else {
		_ = ctrl.Succeed(resp)
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) newPrediction(c *gin.Context) {
	_ = controllerFrom(c).NewPrediction()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) retry(c *gin.Context) {
	_ = controllerFrom(c).Retry()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) readyz(c *gin.Context) {
	h, err := s.predictor.HealthCheck(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "degraded",
			"predictor": errorMessage(err),
		})
		return
	}
	if !h.ModelsLoaded {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "degraded",
			"predictor": "models not loaded",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "predictor": h.Status})
}

func (s *Server) apiHealth(c *gin.Context) {
	h, err := s.predictor.HealthCheck(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": errorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, h)
}

type predictResult struct {
	Prediction *model.PredictionResponse `json:"prediction"`
	Report     present.Report            `json:"report"`
}

func (s *Server) apiPredict(c *gin.Context) {
	var patient model.PatientData
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if errs := validation.Validate(patient); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation_failed",
			"fields": errs,
		})
		return
	}

	resp, err := s.predictor.PredictRisk(c.Request.Context(), patient)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, predictResult{Prediction: resp, Report: present.Build(*resp)})
}
