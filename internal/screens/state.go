package screens

import (
	"errors"
	"sync"

	"banking-client/internal/errs"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is what a screen would render.
type State struct {
	Status  Status
	Message string
	Fields  map[string][]string
}

// machine drives idle → loading → success|error. Only one operation runs
// at a time; a second one fails with errs.ErrSubmitInProgress.
type machine struct {
	mu       sync.Mutex
	state    State
	inFlight bool
}

func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

func (m *machine) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inFlight {
		return errs.ErrSubmitInProgress
	}

	m.inFlight = true
	m.state = State{Status: StatusLoading}

	return nil
}

// finish ends the running operation and returns err unchanged.
func (m *machine) finish(message string, err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inFlight = false

	if err == nil {
		m.state = State{Status: StatusSuccess, Message: message}
		return nil
	}

	m.state = State{Status: StatusError, Message: errs.UserMessage(err)}

	var valErr *errs.ValidationError
	if errors.As(err, &valErr) {
		m.state.Fields = valErr.Fields
	}

	return err
}
