// Package tests contains black-box API tests that run against a live server.
//
// Start the server locally, then:
//
//	VSM_REAL_BASE_URL=http://localhost:8080 go test ./tests/...
//
// Without a reachable server every test is skipped.
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

var (
	realBaseURL string
	serverUp    bool
	httpClient  = &http.Client{Timeout: 5 * time.Second}
)

func TestMain(m *testing.M) {
	realBaseURL = strings.TrimSpace(os.Getenv("VSM_REAL_BASE_URL"))
	if realBaseURL == "" {
		realBaseURL = "http://localhost:8080"
	}

	resp, err := httpClient.Get(strings.TrimRight(realBaseURL, "/"))
	if err == nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		serverUp = resp.StatusCode < http.StatusInternalServerError
	}

	os.Exit(m.Run())
}

func requireServer(t *testing.T) {
	t.Helper()
	if !serverUp {
		t.Skipf("no server reachable at %s; set VSM_REAL_BASE_URL and start the API", realBaseURL)
	}
}

type successEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

type errorEnvelope struct {
	Message string            `json:"message"`
	Error   map[string]string `json:"error"`
}

func doJSON(t *testing.T, method, path string, payload any, token string) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			t.Fatalf("encode json: %v", err)
		}
		body = buf
	}

	req, err := http.NewRequest(method, strings.TrimRight(realBaseURL, "/")+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp.StatusCode, raw
}

func decodeSuccess(t *testing.T, raw []byte) successEnvelope {
	t.Helper()

	var env successEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode success envelope: %v (%s)", err, raw)
	}
	return env
}

func decodeError(t *testing.T, raw []byte) errorEnvelope {
	t.Helper()

	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, raw)
	}
	return env
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s+%d@example.com", prefix, time.Now().UnixNano())
}

func uniqueMobile() string {
	return fmt.Sprintf("9%09d", time.Now().UnixNano()%1_000_000_000)
}
