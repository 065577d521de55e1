package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func serve(t *testing.T, h echo.HandlerFunc) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, body
}

func TestLiveness(t *testing.T) {
	rec, body := serve(t, NewHealthHandler().Liveness)

	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected response %d %v", rec.Code, body)
	}
}

func TestReadiness_OK(t *testing.T) {
	h := NewHealthDependenciesHandler(stubPinger{}, nil, zerolog.New(io.Discard))

	rec, body := serve(t, h.Readiness)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["database"] != "connected" || body["redis"] != "disabled" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestReadiness_DatabaseDown(t *testing.T) {
	h := NewHealthDependenciesHandler(stubPinger{err: errors.New("dial tcp 10.1.2.3:5432: connection refused")}, nil, zerolog.New(io.Discard))

	rec, body := serve(t, h.Readiness)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if body["database"] != "unavailable" {
		t.Fatalf("unexpected body %v", body)
	}
	if strings.Contains(rec.Body.String(), "10.1.2.3") {
		t.Fatalf("response leaks error detail: %s", rec.Body.String())
	}
}
