package session

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync"

	"medbook/database/store"
	"medbook/models"
	"medbook/services/api"
	"medbook/utils"

	"go.uber.org/zap"
)

// Status is the session state machine position.
type Status string

const (
	StatusInitializing    Status = "initializing"
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
	StatusLoggingOut      Status = "logging_out"
)

// User-facing error messages. Invalid credentials and network failures both
// surface as a single human-readable string; the cause is not otherwise
// distinguished to the caller.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgLoginFailed        = "Login failed. Please try again later."
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *models.User `json:"user"`
	Token           string       `json:"token,omitempty"`
	Status          Status       `json:"status"`
	Error           string       `json:"error,omitempty"`
}

// Manager owns the authentication state and mediates between callers and the
// API client, persisting the session through the key-value store.
type Manager interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Snapshot() Snapshot
}

// DefaultSessionManager implements Manager. There is exactly one live
// instance per running process, handed to the HTTP layer by the composition
// root. Overlapping Login/Logout calls are last-write-wins on the in-memory
// state; callers are expected not to interleave them.
type DefaultSessionManager struct {
	API   api.Client
	Store store.KVStore

	mu      sync.Mutex
	status  Status
	user    *models.User
	token   string
	lastErr string
}

// NewSessionManager returns a manager in the initializing state; call
// Restore once at startup to settle it.
func NewSessionManager(client api.Client, kv store.KVStore) *DefaultSessionManager {
	return &DefaultSessionManager{
		API:    client,
		Store:  kv,
		status: StatusInitializing,
	}
}

// ValidateCredentials performs the client-side checks that run before any
// network call: basic email shape and minimum password length. Failures are
// field-level and never produce a session error.
func ValidateCredentials(email, password string) api.ValidationErrors {
	var errs api.ValidationErrors
	if email == "" {
		errs = append(errs, api.ValidationError{Field: "email", Message: "Email is required"})
	} else if !emailPattern.MatchString(email) {
		errs = append(errs, api.ValidationError{Field: "email", Message: "Please enter a valid email"})
	}
	if password == "" {
		errs = append(errs, api.ValidationError{Field: "password", Message: "Password is required"})
	} else if len(password) < 6 {
		errs = append(errs, api.ValidationError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return errs
}

// Restore reads the persisted token and user. Both present yields an
// authenticated session without re-validating credentials; anything else,
// including a half-written pair, settles as unauthenticated.
func (m *DefaultSessionManager) Restore(ctx context.Context) {
	token, tokenErr := m.Store.Get(ctx, store.KeyAuthToken)
	userJSON, userErr := m.Store.Get(ctx, store.KeyUser)

	m.mu.Lock()
	defer m.mu.Unlock()

	if tokenErr != nil || userErr != nil || token == "" {
		m.status = StatusUnauthenticated
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		utils.GetLogger().Warn("Discarding unreadable persisted user record", zap.Error(err))
		m.status = StatusUnauthenticated
		return
	}

	m.user = &user
	m.token = token
	m.status = StatusAuthenticated
}

// Login validates input, authenticates through the API client, and persists
// the session before reporting the authenticated state. On failure the
// session returns to unauthenticated with a human-readable error and nothing
// is persisted.
func (m *DefaultSessionManager) Login(ctx context.Context, email, password string) error {
	if errs := ValidateCredentials(email, password); len(errs) > 0 {
		return errs
	}

	m.mu.Lock()
	m.status = StatusAuthenticating
	m.lastErr = ""
	m.mu.Unlock()

	resp, err := m.API.Login(ctx, email, password)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.status = StatusUnauthenticated
		m.user = nil
		m.token = ""
		if errors.Is(err, api.ErrInvalidCredentials) {
			m.lastErr = msgInvalidCredentials
		} else {
			utils.GetLogger().Error("Login failed", zap.Error(err))
			m.lastErr = msgLoginFailed
		}
		return err
	}

	// Persistence is attempted before the authenticated state becomes
	// visible. Write failures are logged, not fatal: Restore treats a
	// half-written pair as absent.
	userJSON, err := json.Marshal(resp.User)
	if err == nil {
		if err := m.Store.Set(ctx, store.KeyAuthToken, resp.Token); err != nil {
			utils.GetLogger().Error("Failed to persist auth token", zap.Error(err))
		} else if err := m.Store.Set(ctx, store.KeyUser, string(userJSON)); err != nil {
			utils.GetLogger().Error("Failed to persist user record", zap.Error(err))
		}
	}

	user := resp.User
	m.user = &user
	m.token = resp.Token
	m.status = StatusAuthenticated
	m.lastErr = ""
	return nil
}

// Logout clears the persisted session unconditionally and settles as
// unauthenticated. A store failure is swallowed: logout always succeeds from
// the state-machine perspective.
func (m *DefaultSessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.status = StatusLoggingOut
	m.mu.Unlock()

	if err := m.Store.Del(ctx, store.KeyAuthToken, store.KeyUser); err != nil {
		utils.GetLogger().Warn("Failed to clear persisted session", zap.Error(err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.token = ""
	m.lastErr = ""
	m.status = StatusUnauthenticated
	return nil
}

// Snapshot returns a copy of the current session state.
func (m *DefaultSessionManager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		IsAuthenticated: m.status == StatusAuthenticated,
		Token:           m.token,
		Status:          m.status,
		Error:           m.lastErr,
	}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}
