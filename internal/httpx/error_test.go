package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	e := NewError("no_locale_match", "no locale\nmatches", http.StatusNotFound).
		WithDetails(map[string]any{"path": "/fr/"})
	WriteError(context.Background(), rec, e)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "no_locale_match" || body["message"] != "no locale matches" {
		t.Fatalf("unexpected body: %v", body)
	}
	details, _ := body["details"].(map[string]any)
	if details["path"] != "/fr/" {
		t.Fatalf("missing details: %v", body)
	}
}

func TestNewErrorDefaults(t *testing.T) {
	e := NewError(strings.Repeat("x", 100), "m", 0)
	if e.Status != http.StatusInternalServerError {
		t.Errorf("expected 500 default, got %d", e.Status)
	}
	if len(e.Code) != 80 {
		t.Errorf("expected code truncated to 80, got %d", len(e.Code))
	}
	if got := e.WithDetails(nil); got.Details != nil {
		t.Errorf("expected nil details")
	}
}
