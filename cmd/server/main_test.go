package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/cardiorisk/internal/model"
)

type upstream struct {
	*httptest.Server
	predicts atomic.Int32
	got      atomic.Pointer[model.PatientData]
}

func newUpstream(t *testing.T, factors string) *upstream {
	t.Helper()
	u := &upstream{}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","models_loaded":true,"timestamp":"2025-01-01T00:00:00"}`))
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		u.predicts.Add(1)
		var p model.PatientData
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		u.got.Store(&p)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"risk_prediction": "Riesgo Moderado",
			"risk_probability": 0.4,
			"confidence_interval": [0.3, 0.5],
			"risk_factors": ` + factors + `,
			"recommendations": ["Consulte a su médico regularmente"],
			"disclaimer": "Esta predicción es solo informativa"
		}`))
	})
	u.Server = httptest.NewServer(mux)
	t.Cleanup(u.Close)
	return u
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"API_URL", "PREDICTOR_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "GIN_MODE"} {
		t.Setenv(k, "")
	}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	clearConfigEnv(t)

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestHealthCommand(t *testing.T) {
	up := newUpstream(t, `{}`)

	out, _, err := run(t, "health", "--api-url", up.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "status: healthy")
	assert.Contains(t, out, "models_loaded: true")
}

func TestHealthCommandUnreachable(t *testing.T) {
	up := newUpstream(t, `{}`)
	url := up.URL
	up.Close()

	_, _, err := run(t, "health", "--api-url", url)

	assert.Error(t, err)
}

func TestAssessCommandPrintsReport(t *testing.T) {
	up := newUpstream(t, `{"Tabaquismo": "Fumador actual"}`)

	out, _, err := run(t, "assess", "--api-url", up.URL, "--age", "60", "--smoking", "Current")

	require.NoError(t, err)
	assert.Contains(t, out, "Riesgo Moderado (40.0%)")
	assert.Contains(t, out, "30% - 50% (80% de certeza)")
	assert.Contains(t, out, "Tabaquismo: Fumador actual")
	assert.Contains(t, out, "Consulte a su médico regularmente")
	assert.Contains(t, out, "Esta predicción es solo informativa")

	assert.Equal(t, int32(1), up.predicts.Load())
	got := up.got.Load()
	require.NotNil(t, got)
	assert.Equal(t, 60, got.Age)
	assert.Equal(t, "Current", got.Smoking)
	// untouched flags keep the form defaults
	assert.Equal(t, "Male", got.Gender)
	assert.Equal(t, 5, got.StressLevel)
}

func TestAssessCommandEmptyFactors(t *testing.T) {
	up := newUpstream(t, `{}`)

	out, _, err := run(t, "assess", "--api-url", up.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "No se identificaron factores de riesgo significativos")
}

func TestAssessCommandRejectsInvalidInput(t *testing.T) {
	up := newUpstream(t, `{}`)

	_, stderr, err := run(t, "assess", "--api-url", up.URL, "--age", "10", "--stress-level", "0")

	require.Error(t, err)
	assert.Contains(t, stderr, "age: La edad debe estar entre 18 y 100 años")
	assert.Contains(t, stderr, "stress_level: El nivel de estrés debe estar entre 1 y 10")
	assert.Equal(t, int32(0), up.predicts.Load())
}

func TestAssessCommandJSON(t *testing.T) {
	up := newUpstream(t, `{"Tabaquismo": "Fumador actual", "Estrés": "Nivel de estrés elevado"}`)

	out, _, err := run(t, "assess", "--api-url", up.URL, "--json")
	require.NoError(t, err)

	var got struct {
		Prediction model.PredictionResponse `json:"prediction"`
		Report     struct {
			Level string `json:"level"`
			Meter struct {
				Label string `json:"label"`
			} `json:"meter"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, model.RiskModerate, got.Prediction.RiskPrediction)
	require.Len(t, got.Prediction.RiskFactors, 2)
	assert.Equal(t, "Tabaquismo", got.Prediction.RiskFactors[0].Name)
	assert.Equal(t, "Estrés", got.Prediction.RiskFactors[1].Name)
	assert.Equal(t, model.RiskModerate, got.Report.Level)
	assert.Equal(t, "40.0%", got.Report.Meter.Label)
}

func TestAssessCommandUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"Model not loaded"}`))
	}))
	defer ts.Close()

	_, _, err := run(t, "assess", "--api-url", ts.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Model not loaded")
}
