package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// ErrInvalidSession is returned for unknown and expired tokens alike, so a
// caller cannot distinguish the two cases.
var ErrInvalidSession = errors.New("session: invalid or expired token")

type clocker interface {
	Now() time.Time
}

// Session is the server-side record behind an opaque bearer token.
type Session struct {
	UserID    int64
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer creates and validates opaque session tokens.
type Issuer interface {
	// Issue mints a token bound to (userID, role).
	Issue(userID int64, role string) (string, error)
	// Validate returns the session behind token, failing uniformly for
	// unknown and expired tokens.
	Validate(token string) (*Session, error)
	// Revoke discards the session behind token. Idempotent.
	Revoke(token string)
}

// Registry is an in-memory Issuer. Tokens are 32 random bytes, hex encoded;
// state lives in process memory only, so a restart invalidates all sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	clock    clocker
}

// NewRegistry returns a Registry issuing tokens valid for ttl.
func NewRegistry(ttl time.Duration, clock clocker) *Registry {
	return &Registry{
		sessions: make(map[string]Session),
		ttl:      ttl,
		clock:    clock,
	}
}

// Issue mints an opaque token for the user and stores its session.
func (r *Registry) Issue(userID int64, role string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	now := r.clock.Now()

	r.mu.Lock()
	r.sessions[token] = Session{
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(r.ttl),
	}
	r.mu.Unlock()

	return token, nil
}

// Validate returns the session behind token or ErrInvalidSession.
func (r *Registry) Validate(token string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[token]
	if !ok {
		return nil, ErrInvalidSession
	}

	if !r.clock.Now().Before(sess.ExpiresAt) {
		delete(r.sessions, token)
		return nil, ErrInvalidSession
	}

	return &sess, nil
}

// Revoke discards the session behind token. Revoking an absent token is a no-op.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}
