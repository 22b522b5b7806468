package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/cardiorisk/internal/model"
)

func TestNewDefaultsBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").BaseURL())
	assert.Equal(t, "http://svc:9000", New("http://svc:9000/").BaseURL())
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"healthy","models_loaded":true,"timestamp":"2025-01-01T00:00:00"}`))
	}))
	defer srv.Close()

	health, err := New(srv.URL).HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.ModelsLoaded)
}

func TestPredictRiskSendsPatientData(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got model.PatientData
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, model.DefaultPatient(), got)

		_, _ = w.Write([]byte(`{
			"risk_prediction": "Bajo Riesgo",
			"risk_probability": 0.12,
			"confidence_interval": [0.05, 0.2],
			"risk_factors": {},
			"recommendations": ["✅ Continúe así"],
			"disclaimer": "Solo informativo"
		}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).PredictRisk(context.Background(), model.DefaultPatient())
	require.NoError(t, err)
	assert.Equal(t, model.RiskLow, resp.RiskPrediction)
	assert.InDelta(t, 0.12, resp.RiskProbability, 1e-9)
	assert.Empty(t, resp.RiskFactors)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPredictRiskErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"detail string", http.StatusUnprocessableEntity, `{"detail":"Edad inválida"}`, "Edad inválida"},
		{"detail list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"bad value"}]}`, "field required; bad value"},
		{"no body", http.StatusInternalServerError, ``, "HTTP error! status: 500"},
		{"empty detail", http.StatusServiceUnavailable, `{"detail":""}`, "HTTP error! status: 503"},
		{"bad success body", http.StatusOK, `not json`, "invalid response from prediction service"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).PredictRisk(context.Background(), model.DefaultPatient())
			require.Error(t, err)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.message, perr.Message)
			assert.Equal(t, tc.status, perr.Status)
		})
	}
}

func TestPredictRiskNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).PredictRisk(context.Background(), model.DefaultPatient())
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.NotEmpty(t, perr.Message)
	assert.Zero(t, perr.Status)
}

func TestWithTimeoutSurvivesWithHTTPClient(t *testing.T) {
	custom := &http.Client{}

	c := New("", WithTimeout(time.Second), WithHTTPClient(custom))
	assert.Equal(t, time.Second, c.http.Timeout)
	assert.Zero(t, custom.Timeout)

	c = New("", WithHTTPClient(custom), WithTimeout(2*time.Second))
	assert.Equal(t, 2*time.Second, c.http.Timeout)

	assert.Zero(t, New("").http.Timeout)
}

func TestPredictRiskTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithTimeout(20*time.Millisecond)).HealthCheck(context.Background())
	var perr *Error
	assert.True(t, errors.As(err, &perr))
}
