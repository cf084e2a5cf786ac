package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medbook/database/store"
	"medbook/models"

	"github.com/google/uuid"
)

const defaultRemoteTimeout = 5 * time.Second

// RemoteClient talks to the external test endpoints over HTTP. Responses are
// decoded into typed structs and schema-checked at this boundary; anything
// malformed surfaces as a NetworkError instead of propagating undefined
// fields upward.
type RemoteClient struct {
	baseURL string
	http    *http.Client
}

// bearerTransport attaches the persisted token as an Authorization header to
// every outgoing request, when one is present.
type bearerTransport struct {
	kv   store.KVStore
	next http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.kv != nil {
		if token, err := t.kv.Get(req.Context(), store.KeyAuthToken); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	return t.next.RoundTrip(req)
}

// NewRemoteClient builds a client for the given base URL. The token source
// is the same key-value store the session manager persists to.
func NewRemoteClient(baseURL string, timeout time.Duration, kv store.KVStore) *RemoteClient {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &RemoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{kv: kv, next: http.DefaultTransport},
		},
	}
}

func (c *RemoteClient) do(ctx context.Context, op, method, path string, body, out interface{}) (int, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, &NetworkError{Op: op, Err: err}
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, &NetworkError{Op: op, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, &NetworkError{Op: op, Err: fmt.Errorf("malformed response: %w", err)}
		}
	}
	return resp.StatusCode, nil
}

func (c *RemoteClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var auth AuthResponse
	status, err := c.do(ctx, "login", http.MethodPost, "/login", body, &auth)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if status != http.StatusOK {
		return nil, &NetworkError{Op: "login", Err: fmt.Errorf("unexpected status %d", status)}
	}
	if auth.Token == "" || auth.User.ID == "" {
		return nil, &NetworkError{Op: "login", Err: fmt.Errorf("response missing token or user")}
	}
	return &auth, nil
}

func (c *RemoteClient) FetchHospitals(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	status, err := c.do(ctx, "fetch hospitals", http.MethodGet, "/hospitals", nil, &hospitals)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &NetworkError{Op: "fetch hospitals", Err: fmt.Errorf("unexpected status %d", status)}
	}
	for _, h := range hospitals {
		if h.ID == "" || h.Name == "" {
			return nil, &NetworkError{Op: "fetch hospitals", Err: fmt.Errorf("hospital record missing id or name")}
		}
	}
	return hospitals, nil
}

func (c *RemoteClient) FetchHospitalByID(ctx context.Context, id string) (*models.Hospital, error) {
	var hospital models.Hospital
	status, err := c.do(ctx, "fetch hospital", http.MethodGet, "/hospitals/"+url.PathEscape(id), nil, &hospital)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrHospitalNotFound
	}
	if status != http.StatusOK {
		return nil, &NetworkError{Op: "fetch hospital", Err: fmt.Errorf("unexpected status %d", status)}
	}
	if hospital.ID == "" {
		return nil, &NetworkError{Op: "fetch hospital", Err: fmt.Errorf("hospital record missing id")}
	}
	return &hospital, nil
}

// CreateBooking posts the booking fields; the endpoint acknowledges with
// {"status":"success"}, which triggers local ID assignment.
func (c *RemoteClient) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var ack struct {
		Status string `json:"status"`
	}
	status, err := c.do(ctx, "create booking", http.MethodPost, "/bookings", map[string]interface{}{"booking": req}, &ack)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, &NetworkError{Op: "create booking", Err: fmt.Errorf("unexpected status %d", status)}
	}
	if ack.Status != "success" {
		return nil, &NetworkError{Op: "create booking", Err: fmt.Errorf("unexpected ack status %q", ack.Status)}
	}
	booking := models.Booking{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		HospitalID: req.HospitalID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Status:     req.Status,
	}
	return &booking, nil
}

func (c *RemoteClient) FetchUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	path := "/bookings?userId=" + url.QueryEscape(userID)
	status, err := c.do(ctx, "fetch bookings", http.MethodGet, path, nil, &bookings)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &NetworkError{Op: "fetch bookings", Err: fmt.Errorf("unexpected status %d", status)}
	}
	return bookings, nil
}
