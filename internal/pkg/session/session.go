// Package session keeps server-side login sessions. A session record lives in a
// Store (Redis or memory); the browser only holds a signed token naming it.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

// Session is the server-side record of an authenticated user
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Identity is the user identity attached to an authenticated request
type Identity struct {
	UserID   string
	Username string
}

// Store persists session records
type Store interface {
	Save(ctx context.Context, s *Session) error
	// Get returns apperrors.ErrSessionNotFound for unknown or expired ids
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type identityKey struct{}

// WithIdentity returns a context carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity attached by the session gate
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Manager ties a Store to a TokenSigner
type Manager struct {
	store  Store
	signer *TokenSigner
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a session manager. ttl bounds both the record and the token.
func NewManager(store Store, signer *TokenSigner, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, signer: signer, ttl: ttl, now: time.Now}
}

// TTL returns the configured session lifetime
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start creates a session for the user and returns the signed token for the cookie.
func (m *Manager) Start(ctx context.Context, userID, username string) (string, *Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return "", nil, fmt.Errorf("error saving session: %w", err)
	}
	token, err := m.signer.Sign(s)
	if err != nil {
		_ = m.store.Delete(ctx, s.ID)
		return "", nil, err
	}
	return token, s, nil
}

// Resolve verifies a token and loads the session it names.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.signer.Parse(token)
	if err != nil {
		return nil, err
	}
	s, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if s.UserID != claims.UserID {
		return nil, apperrors.ErrTokenInvalid
	}
	if s.Expired(m.now()) {
		_ = m.store.Delete(ctx, s.ID)
		return nil, apperrors.ErrSessionExpired
	}
	return s, nil
}

// Destroy removes the session named by token. Unknown or invalid tokens are ignored.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	claims, err := m.signer.Parse(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.ID)
}
