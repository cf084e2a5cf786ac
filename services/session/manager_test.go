package session

import (
	"context"
	"errors"
	"testing"

	"medbook/database/store"
	"medbook/models"
	"medbook/services/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient lets each test script the API behavior and observe calls.
type stubClient struct {
	loginFunc  func(ctx context.Context, email, password string) (*api.AuthResponse, error)
	loginCalls int
}

func (s *stubClient) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	s.loginCalls++
	if s.loginFunc != nil {
		return s.loginFunc(ctx, email, password)
	}
	return nil, api.ErrInvalidCredentials
}

func (s *stubClient) FetchHospitals(ctx context.Context) ([]models.Hospital, error) {
	return nil, nil
}

func (s *stubClient) FetchHospitalByID(ctx context.Context, id string) (*models.Hospital, error) {
	return nil, api.ErrHospitalNotFound
}

func (s *stubClient) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (s *stubClient) FetchUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, nil
}

// failingStore wraps a MemoryStore and injects write/delete failures.
type failingStore struct {
	*store.MemoryStore
	setErr error
	delErr error
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *failingStore) Del(ctx context.Context, keys ...string) error {
	if s.delErr != nil {
		return s.delErr
	}
	return s.MemoryStore.Del(ctx, keys...)
}

func fixtureCreds() *api.FixtureClient {
	return api.NewFixtureClient(api.FixtureConfig{
		Email:    "test@example.com",
		Password: "abcdefg",
		UserName: "Test User",
	})
}

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		wantField string
	}{
		{name: "empty email", email: "", password: "abcdefg", wantField: "email"},
		{name: "malformed email", email: "not-an-email", password: "abcdefg", wantField: "email"},
		{name: "missing tld dot", email: "a@b", password: "abcdefg", wantField: "email"},
		{name: "empty password", email: "test@example.com", password: "", wantField: "password"},
		{name: "short password", email: "test@example.com", password: "abc", wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClient{}
			m := NewSessionManager(stub, store.NewMemoryStore())
			m.Restore(context.Background())

			err := m.Login(context.Background(), tt.email, tt.password)

			var fieldErrs api.ValidationErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.NotEmpty(t, fieldErrs)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)

			// Validation failures never reach the API and never disturb the session.
			assert.Zero(t, stub.loginCalls)
			snap := m.Snapshot()
			assert.Equal(t, StatusUnauthenticated, snap.Status)
			assert.Empty(t, snap.Error)
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	kv := store.NewMemoryStore()
	m := NewSessionManager(fixtureCreds(), kv)
	m.Restore(context.Background())

	err := m.Login(context.Background(), "test@example.com", "abcdefg")
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, StatusAuthenticated, snap.Status)
	require.NotNil(t, snap.User)
	assert.Equal(t, "test@example.com", snap.User.Email)
	assert.NotEmpty(t, snap.Token)
	assert.Empty(t, snap.Error)

	// Both keys were persisted before authenticated was reported.
	token, err := kv.Get(context.Background(), store.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, snap.Token, token)
	_, err = kv.Get(context.Background(), store.KeyUser)
	assert.NoError(t, err)
}

func TestLoginInvalidCredentials(t *testing.T) {
	kv := store.NewMemoryStore()
	m := NewSessionManager(fixtureCreds(), kv)
	m.Restore(context.Background())

	err := m.Login(context.Background(), "wrong@x.com", "abcdefg")
	require.ErrorIs(t, err, api.ErrInvalidCredentials)

	snap := m.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Equal(t, StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
	assert.Equal(t, "Invalid email or password", snap.Error)

	// Nothing was persisted.
	_, err = kv.Get(context.Background(), store.KeyAuthToken)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestLoginNetworkFailure(t *testing.T) {
	stub := &stubClient{
		loginFunc: func(ctx context.Context, email, password string) (*api.AuthResponse, error) {
			return nil, &api.NetworkError{Op: "login", Err: errors.New("connection refused")}
		},
	}
	kv := store.NewMemoryStore()
	m := NewSessionManager(stub, kv)
	m.Restore(context.Background())

	err := m.Login(context.Background(), "test@example.com", "abcdefg")
	require.Error(t, err)

	snap := m.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.NotEmpty(t, snap.Error)
	assert.NotEqual(t, StatusAuthenticating, snap.Status, "session must not hang in authenticating")

	_, err = kv.Get(context.Background(), store.KeyAuthToken)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestRestoreAfterLogin(t *testing.T) {
	kv := store.NewMemoryStore()
	first := NewSessionManager(fixtureCreds(), kv)
	first.Restore(context.Background())
	require.NoError(t, first.Login(context.Background(), "test@example.com", "abcdefg"))

	// A fresh manager over the same store restores without touching the
	// credential-check path: the stub fails any Login it receives.
	stub := &stubClient{
		loginFunc: func(ctx context.Context, email, password string) (*api.AuthResponse, error) {
			t.Fatal("restore must not invoke login")
			return nil, nil
		},
	}
	second := NewSessionManager(stub, kv)
	second.Restore(context.Background())

	snap := second.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "test@example.com", snap.User.Email)
	assert.NotEmpty(t, snap.Token)
	assert.Zero(t, stub.loginCalls)
}

func TestRestorePartialState(t *testing.T) {
	tests := []struct {
		name string
		seed func(kv store.KVStore)
	}{
		{name: "empty store", seed: func(kv store.KVStore) {}},
		{name: "token only", seed: func(kv store.KVStore) {
			kv.Set(context.Background(), store.KeyAuthToken, "tok")
		}},
		{name: "user only", seed: func(kv store.KVStore) {
			kv.Set(context.Background(), store.KeyUser, `{"id":"1","email":"a@b.c","name":"A"}`)
		}},
		{name: "corrupt user record", seed: func(kv store.KVStore) {
			kv.Set(context.Background(), store.KeyAuthToken, "tok")
			kv.Set(context.Background(), store.KeyUser, "{not json")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := store.NewMemoryStore()
			tt.seed(kv)

			m := NewSessionManager(&stubClient{}, kv)
			m.Restore(context.Background())

			snap := m.Snapshot()
			assert.False(t, snap.IsAuthenticated)
			assert.Equal(t, StatusUnauthenticated, snap.Status)
			assert.Nil(t, snap.User)
		})
	}
}

func TestLogout(t *testing.T) {
	kv := store.NewMemoryStore()
	m := NewSessionManager(fixtureCreds(), kv)
	m.Restore(context.Background())
	require.NoError(t, m.Login(context.Background(), "test@example.com", "abcdefg"))

	require.NoError(t, m.Logout(context.Background()))

	snap := m.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
	assert.Equal(t, StatusUnauthenticated, snap.Status)

	_, err := kv.Get(context.Background(), store.KeyAuthToken)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
	_, err = kv.Get(context.Background(), store.KeyUser)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestLogoutSwallowsStoreFailure(t *testing.T) {
	kv := &failingStore{MemoryStore: store.NewMemoryStore(), delErr: errors.New("redis down")}
	m := NewSessionManager(fixtureCreds(), kv)
	m.Restore(context.Background())
	require.NoError(t, m.Login(context.Background(), "test@example.com", "abcdefg"))

	err := m.Logout(context.Background())
	assert.NoError(t, err, "logout always succeeds from the state-machine perspective")

	snap := m.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
}
