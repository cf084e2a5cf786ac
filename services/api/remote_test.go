package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medbook/database/store"
	"medbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"remote-tok","user":{"id":"1","email":"test@example.com","name":"Test User"}}`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, 5*time.Second, store.NewMemoryStore())
	resp, err := c.Login(context.Background(), "test@example.com", "abcdefg")
	require.NoError(t, err)
	assert.Equal(t, "remote-tok", resp.Token)
	assert.Equal(t, "test@example.com", resp.User.Email)
}

func TestRemoteLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, 5*time.Second, store.NewMemoryStore())
	_, err := c.Login(context.Background(), "wrong@x.com", "abcdefg")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRemoteLoginSchemaValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing token", body: `{"user":{"id":"1","email":"a@b.c","name":"A"}}`},
		{name: "missing user id", body: `{"token":"tok","user":{"email":"a@b.c"}}`},
		{name: "malformed json", body: `{"token":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewRemoteClient(srv.URL, 5*time.Second, store.NewMemoryStore())
			_, err := c.Login(context.Background(), "test@example.com", "abcdefg")
			var netErr *NetworkError
			assert.ErrorAs(t, err, &netErr)
		})
	}
}

func TestRemoteBearerInjection(t *testing.T) {
	var seenAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	kv := store.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), store.KeyAuthToken, "stored-token"))

	c := NewRemoteClient(srv.URL, 5*time.Second, kv)
	_, err := c.FetchHospitals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer stored-token", seenAuth)
}

func TestRemoteFetchHospitals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","name":"City General Hospital","address":"Badda","rating":4.5,"services":[]}]`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, 5*time.Second, store.NewMemoryStore())
	hospitals, err := c.FetchHospitals(context.Background())
	require.NoError(t, err)
	require.Len(t, hospitals, 1)
	assert.Equal(t, "City General Hospital", hospitals[0].Name)
}

func TestRemoteFetchHospitalsSchemaValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"address":"missing id and name"}]`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, 5*time.Second, store.NewMemoryStore())
	_, err := c.FetchHospitals(context.Background())
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestRemoteFetchHospitalByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, 5*time.Second, store.NewMemoryStore())
	_, err := c.FetchHospitalByID(context.Background(), "999")
	assert.ErrorIs(t, err, ErrHospitalNotFound)
}

func TestRemoteCreateBooking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bookings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, 5*time.Second, store.NewMemoryStore())
	booking, err := c.CreateBooking(context.Background(), models.BookingRequest{
		UserID: "1", HospitalID: "1", ServiceID: "101", Status: models.BookingStatusConfirmed,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID, "ID is assigned locally on success ack")
	assert.Equal(t, "1", booking.HospitalID)
}

func TestRemoteCreateBookingBadAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"error"}`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, 5*time.Second, store.NewMemoryStore())
	_, err := c.CreateBooking(context.Background(), models.BookingRequest{UserID: "1", HospitalID: "1", ServiceID: "101"})
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestRemoteServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately closed: connection refused

	c := NewRemoteClient(srv.URL, time.Second, store.NewMemoryStore())
	_, err := c.FetchHospitals(context.Background())
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}
