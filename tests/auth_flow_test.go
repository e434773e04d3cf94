package tests

import (
	"net/http"
	"testing"
)

func TestOTPRequestValidation(t *testing.T) {
	requireServer(t)

	status, raw := doJSON(t, http.MethodPost, "/api/v1/auth/otp/request", map[string]string{
		"identifier": "",
		"purpose":    "login",
	}, "")
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty identifier, got %d (%s)", status, raw)
	}

	env := decodeError(t, raw)
	if env.Message == "" {
		t.Fatal("expected an error message")
	}
}

func TestOTPRequestUnknownPurpose(t *testing.T) {
	requireServer(t)

	status, raw := doJSON(t, http.MethodPost, "/api/v1/auth/otp/request", map[string]string{
		"identifier": uniqueEmail("otp"),
		"purpose":    "password-reset",
	}, "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown purpose, got %d (%s)", status, raw)
	}
}

func TestOTPVerifyWithoutLiveCode(t *testing.T) {
	requireServer(t)

	// Never-issued code must behave exactly like an expired one.
	status, raw := doJSON(t, http.MethodPost, "/api/v1/auth/otp/verify", map[string]string{
		"identifier": uniqueEmail("ghost"),
		"code":       "0000",
		"purpose":    "login",
	}, "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing code, got %d (%s)", status, raw)
	}
}

func TestLoginUnknownIdentifier(t *testing.T) {
	requireServer(t)

	status, raw := doJSON(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"identifier": uniqueEmail("nobody"),
	}, "")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown account, got %d (%s)", status, raw)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	requireServer(t)

	status, raw := doJSON(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"full_name": "Test Admin",
		"email":     uniqueEmail("admin"),
		"mobile":    uniqueMobile(),
		"password":  "correct-horse-battery",
		"role":      "admin",
	}, "")
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for admin self-registration, got %d (%s)", status, raw)
	}
}

func TestRegisterStartsPendingRegistration(t *testing.T) {
	requireServer(t)

	status, raw := doJSON(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"full_name": "Ravi Kumar",
		"email":     uniqueEmail("ravi"),
		"mobile":    uniqueMobile(),
		"password":  "correct-horse-battery",
	}, "")
	// 200 when the OTP was delivered; 503 when the configured gateway is
	// unreachable in the test environment. Both prove the flow is wired.
	if status != http.StatusOK && status != http.StatusServiceUnavailable {
		t.Fatalf("expected 200 or 503, got %d (%s)", status, raw)
	}

	if status == http.StatusOK {
		env := decodeSuccess(t, raw)
		if env.Message == "" {
			t.Fatal("expected a message in the success envelope")
		}
	}
}

func TestProtectedEndpointRequiresToken(t *testing.T) {
	requireServer(t)

	status, _ := doJSON(t, http.MethodGet, "/api/v1/vehicles", nil, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	status, _ = doJSON(t, http.MethodGet, "/api/v1/vehicles", nil, "not-a-jwt")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a bad token, got %d", status)
	}
}
