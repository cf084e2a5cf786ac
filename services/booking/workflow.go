package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"medbook/models"
	"medbook/services/api"
)

// State is the workflow state machine position.
type State string

const (
	StateIdle       State = "idle"
	StateConfirming State = "confirming"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ErrSubmissionInFlight is returned when a confirm arrives while another
// submission is still running; the guard guarantees one user action never
// produces two booking records.
var ErrSubmissionInFlight = errors.New("a booking submission is already in flight")

const msgBookingFailed = "Failed to book service. Please try again later."

// Workflow drives a single booking from selection through confirm and submit
// to its outcome. A failed submission returns to confirming so the caller
// can retry without reselecting.
type Workflow struct {
	api api.Client

	mu          sync.Mutex
	state       State
	hospital    *models.Hospital
	service     *models.Service
	inFlight    bool
	booking     *models.Booking
	lastErr     string
	unconfirmed bool // one-shot confirmation not yet consumed
}

// WorkflowSnapshot is a copy of the workflow state for the UI layer.
type WorkflowSnapshot struct {
	State    State            `json:"state"`
	Hospital *models.Hospital `json:"hospital,omitempty"`
	Service  *models.Service  `json:"service,omitempty"`
	Booking  *models.Booking  `json:"booking,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// NewWorkflow returns an idle workflow bound to the given API client.
func NewWorkflow(client api.Client) *Workflow {
	return &Workflow{api: client, state: StateIdle}
}

// SelectService enters the confirming state. Both the hospital and the
// service must be present and the service must belong to the hospital, or
// the transition is rejected.
func (w *Workflow) SelectService(hospital *models.Hospital, service *models.Service) error {
	if hospital == nil || hospital.ID == "" {
		return &api.ValidationError{Field: "hospitalId", Message: "A hospital must be selected"}
	}
	if service == nil || service.ID == "" {
		return &api.ValidationError{Field: "serviceId", Message: "A service must be selected"}
	}
	if hospital.ServiceByID(service.ID) == nil {
		return &api.ValidationError{Field: "serviceId", Message: "Service does not belong to the selected hospital"}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return ErrSubmissionInFlight
	}

	h := *hospital
	s := *service
	w.hospital = &h
	w.service = &s
	w.booking = nil
	w.lastErr = ""
	w.state = StateConfirming
	return nil
}

// Confirm submits the booking for the current selection. The date defaults
// to the current timestamp and the status to confirmed. At most one
// submission is in flight per workflow instance.
func (w *Workflow) Confirm(ctx context.Context, userID string) (*models.Booking, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if w.state != StateConfirming && w.state != StateFailed {
		w.mu.Unlock()
		return nil, &api.ValidationError{Field: "selection", Message: "No service selected for booking"}
	}
	req := models.BookingRequest{
		UserID:     userID,
		HospitalID: w.hospital.ID,
		ServiceID:  w.service.ID,
		Date:       time.Now().UTC().Format(time.RFC3339),
		Status:     models.BookingStatusConfirmed,
	}
	w.inFlight = true
	w.state = StateSubmitting
	w.mu.Unlock()

	booking, err := w.api.CreateBooking(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false

	if err != nil {
		// The modal stays open; Confirm may be retried from the failed state.
		w.state = StateFailed
		w.lastErr = msgBookingFailed
		return nil, err
	}

	w.booking = booking
	w.lastErr = ""
	w.state = StateSucceeded
	w.unconfirmed = true
	return booking, nil
}

// Cancel returns the workflow to idle and clears the selection. It is
// rejected while a submission is in flight.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return ErrSubmissionInFlight
	}
	w.hospital = nil
	w.service = nil
	w.booking = nil
	w.lastErr = ""
	w.state = StateIdle
	return nil
}

// Busy reports whether a submission is currently in flight.
func (w *Workflow) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// Confirmation returns the one-shot user-visible confirmation message after
// a successful submission. The second call reports false.
func (w *Workflow) Confirmation() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.unconfirmed || w.service == nil || w.hospital == nil {
		return "", false
	}
	w.unconfirmed = false
	return fmt.Sprintf("Your appointment for %s at %s has been confirmed.", w.service.Name, w.hospital.Name), true
}

// Snapshot returns a copy of the workflow state.
func (w *Workflow) Snapshot() WorkflowSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := WorkflowSnapshot{State: w.state, Error: w.lastErr}
	if w.hospital != nil {
		h := *w.hospital
		snap.Hospital = &h
	}
	if w.service != nil {
		s := *w.service
		snap.Service = &s
	}
	if w.booking != nil {
		b := *w.booking
		snap.Booking = &b
	}
	return snap
}
