package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSecurityHeaders_AddsHeaders(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, SecurityHeaders())

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if v := rec.Header().Get("X-Content-Type-Options"); v != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want %q", v, "nosniff")
	}
	if v := rec.Header().Get("X-Frame-Options"); v != "DENY" {
		t.Errorf("X-Frame-Options = %q, want %q", v, "DENY")
	}
}

func TestSecurityHeaders_LeavesRequestHeadersAlone(t *testing.T) {
	e := echo.New()

	var gotConnection string
	e.GET("/healthz", func(c echo.Context) error {
		gotConnection = c.Request().Header.Get("Connection")
		return c.String(http.StatusOK, "ok")
	}, SecurityHeaders())

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	req.Header.Set("Connection", "keep-alive")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// The outbound header filter owns exclusion policy; this middleware must
	// not touch inbound headers.
	if gotConnection != "keep-alive" {
		t.Errorf("Connection = %q, want untouched", gotConnection)
	}
}
