package view

import (
	"errors"
	"sync"

	"github.com/Skufu/cardiorisk/internal/model"
)

type State string

const (
	StateForm    State = "form"
	StateLoading State = "loading"
	StateResults State = "results"
	StateError   State = "error"
)

const unknownError = "Error desconocido"

var (
	ErrBusy        = errors.New("a prediction is already in progress")
	ErrNotOnForm   = errors.New("submission is only allowed from the form")
	ErrNotLoading  = errors.New("no prediction in progress")
	ErrNoResults   = errors.New("no results to leave")
	ErrNoErrorView = errors.New("no error to retry from")
)

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	State   State
	Patient model.PatientData
	Results *model.PredictionResponse
	Error   string
}

// Controller drives which view a session shows. Only Submit, Succeed and
// Fail move forward; results and error are left through NewPrediction and
// Retry.
type Controller struct {
	mu      sync.Mutex
	state   State
	patient model.PatientData
	results *model.PredictionResponse
	err     string
}

func NewController() *Controller {
	return &Controller{
		state:   StateForm,
		patient: model.DefaultPatient(),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:   c.state,
		Patient: c.patient,
		Results: c.results,
		Error:   c.err,
	}
}

// Submit records the patient data being sent and enters loading.
func (c *Controller) Submit(p model.PatientData) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateForm:
	case StateLoading:
		return ErrBusy
	default:
		return ErrNotOnForm
	}

	c.state = StateLoading
	c.patient = p
	c.err = ""
	return nil
}

func (c *Controller) Succeed(resp *model.PredictionResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLoading {
		return ErrNotLoading
	}
	c.state = StateResults
	c.results = resp
	return nil
}

func (c *Controller) Fail(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLoading {
		return ErrNotLoading
	}
	if message == "" {
		message = unknownError
	}
	c.state = StateError
	c.err = message
	return nil
}

// NewPrediction returns from results to the form. The last patient data is
// kept so the form shows what was submitted.
func (c *Controller) NewPrediction() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateResults {
		return ErrNoResults
	}
	c.state = StateForm
	c.results = nil
	c.err = ""
	return nil
}

func (c *Controller) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateError {
		return ErrNoErrorView
	}
	c.state = StateForm
	c.err = ""
	return nil
}
