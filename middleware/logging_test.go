// ABOUTME: Tests for request logging middleware
// ABOUTME: Verifies correlation IDs and path sanitization against log injection

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline injection", "/api/v1/templates\nAdmin access granted", "/api/v1/templatesAdmin access granted"},
		{"carriage return", "/api/test\rmalicious", "/api/testmalicious"},
		{"tab and null", "/api/\ttest\x00", "/api/test"},
		{"delete char", "/api/test\x7f", "/api/test"},
		{"clean path", "/api/v1/scenario/compare", "/api/v1/scenario/compare"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizePath(tt.input); got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogRequest_GeneratesRequestID(t *testing.T) {
	var seen string
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r)
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	id := rec.Header().Get("X-Request-ID")
	if len(id) != 16 {
		t.Errorf("Expected 16 hex character request ID, got %q", id)
	}
	if seen != id {
		t.Errorf("Context request ID = %q, header = %q", seen, id)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestLogRequest_ReusesValidIncomingID(t *testing.T) {
	handler := LogRequest(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-abc_123")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "trace-abc_123" {
		t.Errorf("X-Request-ID = %q, want trace-abc_123", got)
	}
}

func TestLogRequest_ReplacesUnsafeIncomingID(t *testing.T) {
	handler := LogRequest(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "evil id\ninjected")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got == "evil id\ninjected" || len(got) != 16 {
		t.Errorf("Expected generated request ID, got %q", got)
	}
}

func TestRequestID_WithoutMiddleware(t *testing.T) {
	if got := RequestID(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Errorf("RequestID() = %q, want empty", got)
	}
}
