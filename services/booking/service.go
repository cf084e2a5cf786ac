package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"medbook/models"
	"medbook/services/api"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired workflow sessions.
var ErrSessionNotFound = errors.New("booking session not found")

// A confirming session left untouched this long is treated as abandoned.
const defaultSessionTTL = 30 * time.Minute

// Service manages workflow instances for the HTTP layer, keyed by a
// server-assigned session ID.
type Service interface {
	StartSession(ctx context.Context, hospitalID, serviceID string) (string, WorkflowSnapshot, error)
	Confirm(ctx context.Context, sessionID, userID string) (*models.Booking, string, error)
	CancelSession(sessionID string) error
	GetSession(sessionID string) (WorkflowSnapshot, error)
}

type sessionEntry struct {
	wf      *Workflow
	created time.Time
}

// DefaultBookingService implements Service with an in-memory registry.
// Sessions are short-lived: they are removed on success or cancel, and
// abandoned sessions expire after a TTL.
type DefaultBookingService struct {
	API api.Client

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
}

// NewBookingService returns an empty registry bound to the given API client.
func NewBookingService(client api.Client) *DefaultBookingService {
	return &DefaultBookingService{
		API:      client,
		sessions: make(map[string]*sessionEntry),
		ttl:      defaultSessionTTL,
	}
}

// StartSession resolves the hospital and service against current reference
// data, creates a workflow in the confirming state, and returns its session ID.
func (s *DefaultBookingService) StartSession(ctx context.Context, hospitalID, serviceID string) (string, WorkflowSnapshot, error) {
	hospital, err := s.API.FetchHospitalByID(ctx, hospitalID)
	if err != nil {
		return "", WorkflowSnapshot{}, err
	}
	service := hospital.ServiceByID(serviceID)

	wf := NewWorkflow(s.API)
	if err := wf.SelectService(hospital, service); err != nil {
		return "", WorkflowSnapshot{}, err
	}

	sessionID := uuid.New().String()
	s.mu.Lock()
	s.sessions[sessionID] = &sessionEntry{wf: wf, created: time.Now()}
	s.mu.Unlock()

	return sessionID, wf.Snapshot(), nil
}

// Confirm submits the booking for the given session and returns the created
// record together with the one-shot confirmation message. A successful
// session is retired from the registry; the caller already holds everything
// it needs.
func (s *DefaultBookingService) Confirm(ctx context.Context, sessionID, userID string) (*models.Booking, string, error) {
	wf, err := s.lookup(sessionID)
	if err != nil {
		return nil, "", err
	}

	booking, err := wf.Confirm(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	msg, _ := wf.Confirmation()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return booking, msg, nil
}

// CancelSession cancels the workflow and drops it from the registry.
func (s *DefaultBookingService) CancelSession(sessionID string) error {
	wf, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	if err := wf.Cancel(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// GetSession returns a snapshot of the workflow state.
func (s *DefaultBookingService) GetSession(sessionID string) (WorkflowSnapshot, error) {
	wf, err := s.lookup(sessionID)
	if err != nil {
		return WorkflowSnapshot{}, err
	}
	return wf.Snapshot(), nil
}

// lookup returns the live workflow for the session, dropping it first if it
// has outlived the TTL. An in-flight submission keeps its entry alive.
func (s *DefaultBookingService) lookup(sessionID string) (*Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ent, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Since(ent.created) > s.ttl && !ent.wf.Busy() {
		delete(s.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	return ent.wf, nil
}

var _ Service = (*DefaultBookingService)(nil)
