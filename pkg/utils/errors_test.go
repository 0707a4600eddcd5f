package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestExtractionErrorCodes(t *testing.T) {
	cases := []struct {
		err     *ExtractionError
		message string
		code    int
	}{
		{NewInvalidInputError("bad"), "invalid_url", http.StatusBadRequest},
		{NewFetchFailedError("upstream returned 404"), "fetch_failed", http.StatusBadRequest},
		{NewTimeoutError("20s"), "fetch_timeout", http.StatusRequestTimeout},
		{NewContentTooShortError("42 chars", "basic"), "content_too_short", http.StatusBadRequest},
		{NewInternalServerError("boom"), "extraction_failed", http.StatusInternalServerError},
		{NewParseError("bad json"), "parse_failed", http.StatusBadGateway},
	}

	for _, tc := range cases {
		if tc.err.Message != tc.message {
			t.Fatalf("expected message %q, got %q", tc.message, tc.err.Message)
		}
		if tc.err.Code != tc.code {
			t.Fatalf("%s: expected code %d, got %d", tc.message, tc.code, tc.err.Code)
		}
	}
}

func TestContentTooShortCarriesMethod(t *testing.T) {
	err := NewContentTooShortError("too short", "basic-fallback")
	if err.Method != "basic-fallback" {
		t.Fatalf("expected method on error, got %q", err.Method)
	}
}

func TestExtractionErrorString(t *testing.T) {
	err := NewFetchFailedError("upstream returned 503")
	if err.Error() != "fetch_failed: upstream returned 503" {
		t.Fatalf("unexpected error string: %q", err.Error())
	}

	bare := &ExtractionError{Code: 500, Message: "extraction_failed"}
	if bare.Error() != "extraction_failed" {
		t.Fatalf("unexpected error string without detail: %q", bare.Error())
	}
}

func TestAsExtractionError_Passthrough(t *testing.T) {
	orig := NewTimeoutError("slow upstream")
	wrapped := fmt.Errorf("job failed: %w", orig)

	got := AsExtractionError(wrapped)
	if got != orig {
		t.Fatalf("expected unwrapped original error, got %+v", got)
	}
}

func TestAsExtractionError_WrapsUnknown(t *testing.T) {
	got := AsExtractionError(errors.New("something odd"))
	if got.Message != "extraction_failed" {
		t.Fatalf("expected extraction_failed wrapper, got %q", got.Message)
	}
	if got.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", got.Code)
	}
}
