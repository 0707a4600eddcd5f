package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/pkg/models"
	"github.com/StephCurry07/Appication-Tracker/pkg/utils"
)

const jobDescription = `We are hiring a Staff Engineer for our data platform.
You will own ingestion pipelines end to end and mentor a team of five.
Requirements include eight years of experience, deep knowledge of Go, and
production experience with Kafka and Postgres. We offer equity, full remote,
and a learning budget. The role reports to the VP of Engineering.`

func pipelineConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Extractor.FetchTimeout = 5 * time.Second
	cfg.Extractor.MaxContentLength = 15000
	cfg.Extractor.MinContentLength = 100
	cfg.Extractor.MaxBodyBytes = 1 << 20
	return cfg
}

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtract_AutoUsesTargetedSelector(t *testing.T) {
	srv := serve(t, `<html><body>
	<nav>Site nav</nav>
	<div class="job-description">`+jobDescription+`</div>
	</body></html>`)

	p := NewPipeline(pipelineConfig())
	result, err := p.Extract(context.Background(), srv.URL, models.StrategyAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Method != MethodTargeted {
		t.Fatalf("expected method %q, got %q", MethodTargeted, result.Method)
	}
	if !strings.Contains(result.Content, "Staff Engineer") {
		t.Fatalf("expected description content, got %q", result.Content)
	}
	if result.ContentLength != len(result.Content) {
		t.Fatalf("content length mismatch: %d vs %d", result.ContentLength, len(result.Content))
	}
	if result.Hostname == "" {
		t.Fatalf("expected hostname on result")
	}
}

func TestExtract_AutoFallsBackToBasic(t *testing.T) {
	// No selector in the fallback chain matches, so auto must reuse the
	// fetched page and normalize it whole.
	srv := serve(t, `<html><body>
	<p>`+jobDescription+`</p>
	</body></html>`)

	p := NewPipeline(pipelineConfig())
	result, err := p.Extract(context.Background(), srv.URL, models.StrategyAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Method != MethodBasicFallback {
		t.Fatalf("expected method %q, got %q", MethodBasicFallback, result.Method)
	}
	if !strings.Contains(result.Content, "data platform") {
		t.Fatalf("expected page text, got %q", result.Content)
	}
}

func TestRunStrategy_TargetedReportsSpecializedSite(t *testing.T) {
	html := `<html><body>
	<nav>Careers home About Teams Locations ` + strings.Repeat("menu item ", 40) + `</nav>
	<div class="job-description">` + jobDescription + `</div>
	<footer>Privacy Terms ` + strings.Repeat("footer link ", 40) + `</footer>
	</body></html>`

	p := NewPipeline(pipelineConfig())
	content, method := p.runStrategy(html, "careers.google.com", models.StrategyTargeted)

	if method != "specialized-careers.google.com" {
		t.Fatalf("expected specialized method tag, got %q", method)
	}
	if !strings.Contains(content, "Staff Engineer") {
		t.Fatalf("expected description content, got %q", content)
	}
	if strings.Contains(content, "menu item") || strings.Contains(content, "footer link") {
		t.Fatalf("navigation noise leaked into content: %q", content)
	}
}

func TestRunStrategy_TargetedWithoutSiteMatch(t *testing.T) {
	html := `<html><body><div class="job-description">` + jobDescription + `</div></body></html>`

	p := NewPipeline(pipelineConfig())
	content, method := p.runStrategy(html, "jobs.example.com", models.StrategyTargeted)

	if method != MethodTargeted {
		t.Fatalf("expected method %q, got %q", MethodTargeted, method)
	}
	if !strings.Contains(content, "Staff Engineer") {
		t.Fatalf("expected description content, got %q", content)
	}
}

func TestRunStrategy_TargetedFallsBackToWholePage(t *testing.T) {
	// Nothing in the selector chain matches, so the whole page is normalized
	// under the targeted tag rather than returned empty.
	html := `<html><body><p>` + jobDescription + `</p></body></html>`

	p := NewPipeline(pipelineConfig())
	content, method := p.runStrategy(html, "example.com", models.StrategyTargeted)

	if method != MethodTargeted {
		t.Fatalf("expected method %q, got %q", MethodTargeted, method)
	}
	if !strings.Contains(content, "data platform") {
		t.Fatalf("expected whole-page text, got %q", content)
	}
}

func TestExtract_BasicStrategy(t *testing.T) {
	srv := serve(t, `<html><body>
	<div class="job-description">`+jobDescription+`</div>
	</body></html>`)

	p := NewPipeline(pipelineConfig())
	result, err := p.Extract(context.Background(), srv.URL, models.StrategyBasic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Method != MethodBasic {
		t.Fatalf("expected method %q, got %q", MethodBasic, result.Method)
	}
	if strings.Contains(result.Content, "<div") {
		t.Fatalf("markup leaked into basic output: %q", result.Content)
	}
}

func TestExtract_ContentTooShortCarriesMethod(t *testing.T) {
	srv := serve(t, `<html><head><title>x</title></head><body>
	<!-- padding padding padding padding padding padding padding padding -->
	<p>tiny</p>
	</body></html>`)

	p := NewPipeline(pipelineConfig())
	_, err := p.Extract(context.Background(), srv.URL, models.StrategyAuto)
	if err == nil {
		t.Fatalf("expected content_too_short error")
	}

	ee := utils.AsExtractionError(err)
	if ee.Message != "content_too_short" {
		t.Fatalf("expected content_too_short, got %q", ee.Message)
	}
	if ee.Method != MethodBasicFallback {
		t.Fatalf("expected method %q on error, got %q", MethodBasicFallback, ee.Method)
	}
	if ee.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", ee.Code)
	}
}

func TestExtract_BoundsContentLength(t *testing.T) {
	cfg := pipelineConfig()
	cfg.Extractor.MaxContentLength = 300

	srv := serve(t, `<html><body><div class="job-description">`+
		strings.Repeat(jobDescription, 5)+`</div></body></html>`)

	p := NewPipeline(cfg)
	result, err := p.Extract(context.Background(), srv.URL, models.StrategyAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Content) > 300 {
		t.Fatalf("content exceeds bound: %d bytes", len(result.Content))
	}
	if len(result.Content) < 100 {
		t.Fatalf("bounded content fell below minimum: %d bytes", len(result.Content))
	}
}

func TestExtract_DeterministicAcrossRuns(t *testing.T) {
	// The user-agent rotation varies per request; the extracted content must
	// not.
	srv := serve(t, `<html><body>
	<nav>Site nav</nav>
	<div class="job-description">`+jobDescription+`</div>
	</body></html>`)

	p := NewPipeline(pipelineConfig())
	first, err := p.Extract(context.Background(), srv.URL, models.StrategyAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Extract(context.Background(), srv.URL, models.StrategyAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Content != second.Content {
		t.Fatalf("identical input produced different content:\n%q\nvs\n%q", first.Content, second.Content)
	}
	if first.Method != second.Method {
		t.Fatalf("identical input produced different methods: %q vs %q", first.Method, second.Method)
	}
}

func TestExtract_RejectsBadScheme(t *testing.T) {
	p := NewPipeline(pipelineConfig())
	_, err := p.Extract(context.Background(), "ftp://example.com/job", models.StrategyAuto)
	if err == nil {
		t.Fatalf("expected error for ftp scheme")
	}
	if ee := utils.AsExtractionError(err); ee.Message != "invalid_url" {
		t.Fatalf("expected invalid_url, got %q", ee.Message)
	}
}

func TestExtract_RejectsEmptyURL(t *testing.T) {
	p := NewPipeline(pipelineConfig())
	_, err := p.Extract(context.Background(), "   ", models.StrategyAuto)
	if err == nil {
		t.Fatalf("expected error for blank url")
	}
	if ee := utils.AsExtractionError(err); ee.Message != "invalid_url" {
		t.Fatalf("expected invalid_url, got %q", ee.Message)
	}
}

func TestExtract_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewPipeline(pipelineConfig())
	_, err := p.Extract(context.Background(), srv.URL, models.StrategyAuto)
	if err == nil {
		t.Fatalf("expected fetch error")
	}

	ee := utils.AsExtractionError(err)
	if ee.Message != "fetch_failed" {
		t.Fatalf("expected fetch_failed, got %q", ee.Message)
	}
	if !strings.Contains(ee.Detail, "403") {
		t.Fatalf("expected upstream status in detail, got %q", ee.Detail)
	}
}

func TestPrepareURL_CanonicalizesLinkedIn(t *testing.T) {
	p := NewPipeline(pipelineConfig())

	target, hostname, err := p.prepareURL("https://www.linkedin.com/jobs/collections/recommended/?currentJobId=4012345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target != "https://www.linkedin.com/jobs/view/4012345678" {
		t.Fatalf("expected canonical job view url, got %q", target)
	}
	if hostname != "www.linkedin.com" {
		t.Fatalf("expected linkedin hostname, got %q", hostname)
	}
}
