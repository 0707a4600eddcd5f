package utils

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestGenerateRequestID_Unique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	if a == "" || b == "" {
		t.Fatalf("request IDs must not be empty")
	}
	if a == b {
		t.Fatalf("request IDs must be unique, got %q twice", a)
	}
}

func TestTruncate_NoOpBelowLimit(t *testing.T) {
	if got := Truncate("short", 100); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
}

func TestTruncate_CutsAtLimit(t *testing.T) {
	got := Truncate(strings.Repeat("a", 50), 10)
	if len(got) != 10 {
		t.Fatalf("expected 10 bytes, got %d", len(got))
	}
}

func TestTruncate_NeverSplitsRune(t *testing.T) {
	s := "ab日本語テスト"
	for max := 1; max < len(s); max++ {
		got := Truncate(s, max)
		if !utf8.ValidString(got) {
			t.Fatalf("truncate at %d produced invalid utf-8: %q", max, got)
		}
		if len(got) > max {
			t.Fatalf("truncate at %d returned %d bytes", max, len(got))
		}
	}
}

func TestTruncate_ZeroOrNegativeMax(t *testing.T) {
	if got := Truncate("abc", 0); got != "abc" {
		t.Fatalf("expected passthrough for max 0, got %q", got)
	}
	if got := Truncate("abc", -1); got != "abc" {
		t.Fatalf("expected passthrough for negative max, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{2500 * time.Millisecond, "2.50s"},
		{90 * time.Second, "1.5m"},
		{90 * time.Minute, "1.5h"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestGetStringOrDefault(t *testing.T) {
	if got := GetStringOrDefault("", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := GetStringOrDefault("value", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}
