package api

import (
	"context"

	"medbook/models"
)

// AuthResponse carries the token and user returned by a successful login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Client is the remote access contract. Two interchangeable implementations
// exist: FixtureClient (in-memory reference data, simulated latency) and
// RemoteClient (HTTP calls to the external test endpoints). Swapping one for
// the other must not change the session manager or the booking workflow.
type Client interface {
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	FetchHospitals(ctx context.Context) ([]models.Hospital, error)
	FetchHospitalByID(ctx context.Context, id string) (*models.Hospital, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	FetchUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
}
