// Package testutil provides small helpers shared by handler and service tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

// NewTestRequest builds a request without running it through a server.
func NewTestRequest(method, target string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, target, body)
}

// NewTestRequestWithJSON marshals v and builds a JSON request around it.
func NewTestRequestWithJSON(t *testing.T, method, target string, v interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ParseJSONResponse decodes a JSON object body, failing the test on error.
func ParseJSONResponse(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("failed to parse JSON response: %v", err)
	}
	return parsed
}

// AssertStatusCode fails the test if the recorded status differs.
func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

// AssertJSONContains fails the test unless body[key] equals want.
func AssertJSONContains(t *testing.T, body []byte, key string, want interface{}) {
	t.Helper()
	parsed := ParseJSONResponse(t, body)
	got, ok := parsed[key]
	if !ok {
		t.Fatalf("expected key %q in response %s", key, body)
	}
	if got != want {
		t.Fatalf("expected %q=%v, got %v", key, want, got)
	}
}

func RandomUUID() uuid.UUID {
	return uuid.New()
}

func RandomEmail() string {
	return fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])
}
