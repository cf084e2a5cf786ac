package models

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a created appointment record. IDs are assigned by the
// API layer at creation time, never by the caller. The booking collection is
// append-only; there is no update or delete.
type Booking struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	HospitalID string `json:"hospitalId"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date"` // ISO-8601
	Status     string `json:"status"`
}

// BookingRequest carries the caller-supplied fields of a new booking.
type BookingRequest struct {
	UserID     string `json:"userId"`
	HospitalID string `json:"hospitalId"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}
