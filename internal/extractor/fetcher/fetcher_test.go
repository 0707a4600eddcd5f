package fetcher

import (
	"compress/gzip"
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/pkg/utils"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Extractor.FetchTimeout = 5 * time.Second
	cfg.Extractor.MaxBodyBytes = 1 << 20
	return cfg
}

// page returns HTML comfortably above the minimum body length.
func page(body string) string {
	return "<html><body><p>" + body + strings.Repeat(" filler content for minimum length.", 5) + "</p></body></html>"
}

func TestFetch_ReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page("Software Engineer at Acme")))
	}))
	defer srv.Close()

	client := NewClient(testConfig())
	body, err := client.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "Software Engineer at Acme") {
		t.Fatalf("expected page body, got %q", body)
	}
}

func TestFetch_SendsBrowserHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(page("ok")))
	}))
	defer srv.Close()

	client := NewClient(testConfig())
	if _, err := client.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ua := got.Get("User-Agent"); !strings.Contains(ua, "Mozilla/5.0") {
		t.Fatalf("expected browser user agent, got %q", ua)
	}
	if accept := got.Get("Accept"); !strings.Contains(accept, "text/html") {
		t.Fatalf("expected html accept header, got %q", accept)
	}
	if got.Get("Upgrade-Insecure-Requests") != "1" {
		t.Fatalf("expected upgrade-insecure-requests header")
	}
	if got.Get("Sec-Fetch-Mode") != "navigate" {
		t.Fatalf("expected sec-fetch-mode header")
	}
}

func TestFetch_DecompressesGzipBody(t *testing.T) {
	pageText := page("Senior Data Engineer at Globex")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			t.Errorf("expected transport-negotiated gzip, got %q", r.Header.Get("Accept-Encoding"))
			w.Write([]byte(pageText))
			return
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(pageText))
		gz.Close()
	}))
	defer srv.Close()

	client := NewClient(testConfig())
	body, err := client.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "Senior Data Engineer at Globex") {
		t.Fatalf("expected decompressed page body, got %q", body)
	}
}

func TestFetch_UpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(testConfig())
	_, err := client.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error for 404 response")
	}

	ee := utils.AsExtractionError(err)
	if ee.Message != "fetch_failed" {
		t.Fatalf("expected fetch_failed, got %q", ee.Message)
	}
	if ee.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", ee.Code)
	}
	if !strings.Contains(ee.Detail, "404") {
		t.Fatalf("expected upstream status in detail, got %q", ee.Detail)
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(page("late")))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Extractor.FetchTimeout = 50 * time.Millisecond

	client := NewClient(cfg)
	_, err := client.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected timeout error")
	}

	ee := utils.AsExtractionError(err)
	if ee.Message != "fetch_timeout" {
		t.Fatalf("expected fetch_timeout, got %q (detail %q)", ee.Message, ee.Detail)
	}
	if ee.Code != http.StatusRequestTimeout {
		t.Fatalf("expected status 408, got %d", ee.Code)
	}
}

func TestFetch_BodyTooShort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	client := NewClient(testConfig())
	_, err := client.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error for near-empty body")
	}

	ee := utils.AsExtractionError(err)
	if ee.Message != "content_too_short" {
		t.Fatalf("expected content_too_short, got %q", ee.Message)
	}
}

func TestPickAgent_Deterministic(t *testing.T) {
	pool := []string{"a", "b", "c"}

	first := PickAgent(pool, rand.New(rand.NewSource(42)))
	second := PickAgent(pool, rand.New(rand.NewSource(42)))
	if first != second {
		t.Fatalf("same seed must pick the same agent: %q vs %q", first, second)
	}

	found := false
	for _, agent := range pool {
		if agent == first {
			found = true
		}
	}
	if !found {
		t.Fatalf("picked agent %q not in pool", first)
	}
}

func TestPickAgent_EmptyPool(t *testing.T) {
	if got := PickAgent(nil, rand.New(rand.NewSource(1))); got != "" {
		t.Fatalf("expected empty string for empty pool, got %q", got)
	}
}

func TestDefaultUserAgentsPool(t *testing.T) {
	if len(defaultUserAgents) == 0 {
		t.Fatalf("default user agent pool must not be empty")
	}
	for _, ua := range defaultUserAgents {
		if !strings.HasPrefix(ua, "Mozilla/5.0") {
			t.Fatalf("unexpected user agent format: %q", ua)
		}
	}
}
