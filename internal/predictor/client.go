package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Skufu/cardiorisk/internal/model"
)

const DefaultBaseURL = "http://localhost:8000"

// Error is the only error kind returned by Client. Message is meant for
// display.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// Client talks to the external prediction service. It never retries.
type Client struct {
	baseURL string
	http    *http.Client

	timeout    time.Duration
	hasTimeout bool
}

type Option func(*Client)

// WithTimeout bounds each request. Zero means no timeout. It applies
// regardless of where it appears relative to WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.hasTimeout = true
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{baseURL: baseURL, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.hasTimeout {
		// Copy so a caller-supplied client is left untouched.
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) HealthCheck(ctx context.Context) (*model.HealthResponse, error) {
	var out model.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PredictRisk(ctx context.Context, patient model.PatientData) (*model.PredictionResponse, error) {
	body, err := json.Marshal(patient)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("encode patient data: %v", err)}
	}

	var out model.PredictionResponse
	if err := c.do(ctx, http.MethodPost, "/predict", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type errorPayload struct {
	Detail any `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: err.Error(), Status: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Message: errorMessage(data, resp.StatusCode), Status: resp.StatusCode}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Message: "invalid response from prediction service", Status: resp.StatusCode}
	}
	return nil
}

// errorMessage prefers the service's "detail" field. FastAPI-style services
// send either a string or a list of objects with a "msg" key.
func errorMessage(data []byte, status int) string {
	fallback := fmt.Sprintf("HTTP error! status: %d", status)

	var payload errorPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fallback
	}

	switch d := payload.Detail.(type) {
	case string:
		if d != "" {
			return d
		}
	case []any:
		msgs := make([]string, 0, len(d))
		for _, item := range d {
			if m, ok := item.(map[string]any); ok {
				if s, ok := m["msg"].(string); ok && s != "" {
					msgs = append(msgs, s)
				}
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return fallback
}
