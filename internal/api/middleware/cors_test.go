package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestCORS_PreflightReturns200NoBody(t *testing.T) {
	e := echo.New()
	e.Use(CORSConfig())
	e.POST("/api/v1/extract", func(c echo.Context) error {
		return c.String(http.StatusOK, "handled")
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/extract", nil)
	req.Header.Set(echo.HeaderOrigin, "https://example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 preflight, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty preflight body, got %q", rec.Body.String())
	}
	if rec.Header().Get(echo.HeaderAccessControlAllowOrigin) != "*" {
		t.Fatalf("expected wildcard allow-origin, got %q", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPost) {
		t.Fatalf("expected POST in allow-methods, got %q", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	}
}

func TestCORS_SimpleRequestCarriesAllowOrigin(t *testing.T) {
	e := echo.New()
	e.Use(CORSConfig())
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderOrigin, "https://example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderAccessControlAllowOrigin) != "*" {
		t.Fatalf("expected wildcard allow-origin, got %q", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	}
	if rec.Body.String() != "ok" {
		t.Fatalf("expected handler body, got %q", rec.Body.String())
	}
}
