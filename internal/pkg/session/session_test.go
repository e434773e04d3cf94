package session

import (
	"errors"
	"testing"
	"time"

	"github.com/albanyauto/vsm/internal/pkg/clock"
)

func TestIssueAndValidate(t *testing.T) {
	fc := clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	reg := NewRegistry(30*time.Minute, fc)

	token, err := reg.Issue(42, "customer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(token))
	}

	sess, err := reg.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sess.UserID != 42 || sess.Role != "customer" {
		t.Fatalf("unexpected session %+v", sess)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	reg := NewRegistry(time.Minute, clock.NewFixed(time.Now()))

	if _, err := reg.Validate("deadbeef"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	fc := clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	reg := NewRegistry(30*time.Minute, fc)

	token, err := reg.Issue(7, "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	fc.Advance(30 * time.Minute)

	// Expired and unknown tokens fail with the same error.
	if _, err := reg.Validate(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	reg := NewRegistry(time.Hour, clock.NewFixed(time.Now()))

	token, err := reg.Issue(1, "serviceadvisor")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	reg.Revoke(token)
	reg.Revoke(token) // idempotent

	if _, err := reg.Validate(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession after revoke, got %v", err)
	}
}

func TestTokensAreUnique(t *testing.T) {
	reg := NewRegistry(time.Hour, clock.New())

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := reg.Issue(int64(i), "customer")
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token on iteration %d", i)
		}
		seen[token] = struct{}{}
	}
}
