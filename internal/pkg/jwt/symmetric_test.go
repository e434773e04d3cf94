package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/albanyauto/vsm/internal/pkg/clock"
	"github.com/albanyauto/vsm/internal/pkg/uid"
)

func newTestJWT(t *testing.T, clk clocker) *Symmetric {
	t.Helper()

	j, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("s", 64)),
		Issuer:    "vsm-test",
		Audiences: []string{"vsm"},
		TTL:       15 * time.Minute,
		Clock:     clk,
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("new jwt: %v", err)
	}
	return j
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	j := newTestJWT(t, clock.New())

	token, err := j.Generate(99, "carol@example.com", "customer")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := j.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 99 || claims.UserEmail != "carol@example.com" || claims.UserRole != "customer" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifyExpired(t *testing.T) {
	clk := clock.NewFixed(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	j := newTestJWT(t, clk)

	token, err := j.Generate(1, "a@example.com", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := j.Verify(token); err != nil {
		t.Fatalf("verify before expiry: %v", err)
	}

	clk.Advance(16 * time.Minute)

	if _, err := j.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestShortSecretRejected(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short"), Clock: clock.New(), UUID: uid.NewUUID()})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}
