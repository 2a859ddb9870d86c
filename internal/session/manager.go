package session

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/medport/medport/internal/api"
	"github.com/medport/medport/internal/log"
	"github.com/medport/medport/internal/tokenstore"
)

// TokenStore is the slice of the credential store the manager needs
type TokenStore interface {
	Load() (string, error)
	Delete() error
}

// Manager lazily establishes the current user's session by validating the
// persisted token against the backend, then memoizes the result. All
// dependencies are injected; the manager owns no ambient state.
type Manager struct {
	client *api.Client
	tokens TokenStore
	logger *log.Logger

	mu      sync.RWMutex
	current *Session

	// group collapses concurrent resolutions into a single verify call
	group singleflight.Group
}

// NewManager creates a session manager
func NewManager(client *api.Client, tokens TokenStore, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{
		client: client,
		tokens: tokens,
		logger: logger,
	}
}

// Current returns the cached session, or nil when none has been resolved.
// Synchronous; never performs I/O.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Ensure returns the cached session if present, otherwise resolves it from
// the persisted token. All failure modes collapse to nil so callers can treat
// "no session" uniformly; Ensure never returns an error and never panics.
// Concurrent callers share one in-flight resolution.
func (m *Manager) Ensure(ctx context.Context) *Session {
	if s := m.Current(); s != nil {
		return s
	}

	// The winning caller's context governs the shared resolution. If that
	// context is cancelled mid-flight, every joined caller gets nil for
	// this round; nothing is cached, so the next Ensure starts fresh.
	v, _, _ := m.group.Do("resolve", func() (interface{}, error) {
		// Re-check under the flight: a previous winner may have cached
		// the session between our Current() miss and joining the group.
		if s := m.Current(); s != nil {
			return s, nil
		}
		return m.resolve(ctx), nil
	})

	s, _ := v.(*Session)
	return s
}

// Clear drops the cached session. The persisted token and the API client's
// in-memory token are left untouched.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

// resolve performs the full resolution sequence: read token, verify identity,
// enrich with the role-specific profile id, cache.
func (m *Manager) resolve(ctx context.Context) *Session {
	token, err := m.tokens.Load()
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNotFound) {
			m.logger.WithError(err).Warn("reading persisted token failed")
		}
		return nil
	}

	m.client.SetToken(token)

	verify, err := m.client.Verify(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			// The backend rejected the credential outright; keeping it
			// around would just repeat this failure on every start.
			m.purgeToken()
		}
		m.logger.WithError(err).Warn("session verification failed")
		return nil
	}

	s := &Session{
		UserID: verify.UserID,
		Role:   verify.Role,
	}
	m.enrich(ctx, s)

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	m.logger.Debug("session resolved", "user_id", s.UserID, "role", s.Role)
	return s
}

// enrich fills in the role-specific profile id. Failures here are explicitly
// non-fatal: the session stays valid with the id left nil.
func (m *Manager) enrich(ctx context.Context, s *Session) {
	switch s.Role {
	case api.RoleDoctor:
		doctor, err := m.client.DoctorProfile(ctx, s.UserID)
		if err != nil {
			m.logger.WithError(err).Warn("doctor profile enrichment failed", "user_id", s.UserID)
			return
		}
		s.DoctorID = &doctor.ID
	case api.RolePatient:
		patient, err := m.client.PatientProfile(ctx, s.UserID)
		if err != nil {
			m.logger.WithError(err).Warn("patient profile enrichment failed", "user_id", s.UserID)
			return
		}
		s.PatientID = &patient.ID
	}
}

// purgeToken erases the rejected credential from disk and from the client
func (m *Manager) purgeToken() {
	if err := m.tokens.Delete(); err != nil {
		m.logger.WithError(err).Warn("purging rejected token failed")
	}
	m.client.SetToken("")
}
