package api

import (
	"context"
	"sync"
	"time"

	"medbook/models"
	"medbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const fixtureTokenTTL = 24 * time.Hour

// FixtureLatency holds the simulated network delay per operation. The delay
// is a design requirement, not an incidental detail: the UI must stay
// testable under slow-network conditions. A zero value disables delays.
type FixtureLatency struct {
	Login  time.Duration
	List   time.Duration
	Detail time.Duration
	Create time.Duration
}

// LatencyFromBase derives the per-operation delays from a single base
// duration, preserving the ratios of the original test backend (login and
// create are the slowest, detail lookups the fastest).
func LatencyFromBase(base time.Duration) FixtureLatency {
	return FixtureLatency{
		Login:  base * 5 / 4,
		List:   base,
		Detail: base * 5 / 8,
		Create: base * 5 / 4,
	}
}

// DefaultFixtureLatency mirrors the delays of the original test backend.
func DefaultFixtureLatency() FixtureLatency {
	return LatencyFromBase(800 * time.Millisecond)
}

// FixtureConfig configures the canonical credential pair and the simulated
// latency of the fixture client.
type FixtureConfig struct {
	Email    string
	Password string
	UserName string
	Latency  FixtureLatency
}

// FixtureClient is the in-memory stand-in for a real backend: deterministic
// reference data, exactly one accepted credential pair, and an append-only
// booking collection.
type FixtureClient struct {
	email        string
	passwordHash []byte
	userName     string
	latency      FixtureLatency

	mu        sync.Mutex
	hospitals []models.Hospital
	bookings  []models.Booking
}

// NewFixtureClient builds a fixture seeded with the static hospital set.
func NewFixtureClient(cfg FixtureConfig) *FixtureClient {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash fixture password", zap.Error(err))
	}
	return &FixtureClient{
		email:        cfg.Email,
		passwordHash: hash,
		userName:     cfg.UserName,
		latency:      cfg.Latency,
		hospitals:    seedHospitals(),
	}
}

// sleep simulates network latency while honoring context cancellation.
func (c *FixtureClient) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func (c *FixtureClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if err := c.sleep(ctx, c.latency.Login); err != nil {
		return nil, err
	}

	if email != c.email {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := models.User{ID: "1", Email: email, Name: c.userName}
	token, err := utils.GenerateToken(user.ID, user.Email, fixtureTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, &NetworkError{Op: "login", Err: err}
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// FetchHospitals returns the full reference set. The fixture variant never fails.
func (c *FixtureClient) FetchHospitals(ctx context.Context) ([]models.Hospital, error) {
	if err := c.sleep(ctx, c.latency.List); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Hospital, len(c.hospitals))
	copy(out, c.hospitals)
	return out, nil
}

func (c *FixtureClient) FetchHospitalByID(ctx context.Context, id string) (*models.Hospital, error) {
	if err := c.sleep(ctx, c.latency.Detail); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.hospitals {
		if c.hospitals[i].ID == id {
			h := c.hospitals[i]
			return &h, nil
		}
	}
	return nil, ErrHospitalNotFound
}

// CreateBooking assigns the booking ID server-side and appends the record.
// The caller-supplied date and status are accepted as-is; there is no
// double-booking conflict detection.
func (c *FixtureClient) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if err := c.sleep(ctx, c.latency.Create); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var hospital *models.Hospital
	for i := range c.hospitals {
		if c.hospitals[i].ID == req.HospitalID {
			hospital = &c.hospitals[i]
			break
		}
	}
	if hospital == nil {
		return nil, &ValidationError{Field: "hospitalId", Message: "unknown hospital"}
	}
	if hospital.ServiceByID(req.ServiceID) == nil {
		return nil, &ValidationError{Field: "serviceId", Message: "service does not belong to this hospital"}
	}

	booking := models.Booking{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		HospitalID: req.HospitalID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Status:     req.Status,
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	c.bookings = append(c.bookings, booking)
	return &booking, nil
}

func (c *FixtureClient) FetchUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	if err := c.sleep(ctx, c.latency.List); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.Booking
	for _, b := range c.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}
