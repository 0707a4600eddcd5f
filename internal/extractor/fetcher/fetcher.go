// Package fetcher issues the single outbound GET of an extraction request
// and classifies its failures.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/pkg/utils"
)

// MinBodyLength is the shortest body worth extracting from. Anything under it
// is an empty shell or an error page and counts as a fetch failure.
const MinBodyLength = 100

// Client fetches pages with a browser-like header set and a rotating user
// agent. Safe for concurrent use; the rng is guarded because math/rand
// sources are not.
type Client struct {
	httpClient *http.Client
	agents     []string
	timeout    time.Duration
	maxBody    int64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClient builds a Client from configuration. The user-agent pool defaults
// to the built-in rotation when the config does not override it.
func NewClient(cfg *config.Config) *Client {
	agents := cfg.Extractor.UserAgents
	if len(agents) == 0 {
		agents = defaultUserAgents
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Extractor.FetchTimeout,
		},
		agents:  agents,
		timeout: cfg.Extractor.FetchTimeout,
		maxBody: cfg.Extractor.MaxBodyBytes,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Fetch GETs rawURL and returns the body. Failures map onto the error
// taxonomy: timeout (retryable by the caller), transport failure carrying the
// upstream status, or content-too-short for sub-MinBodyLength bodies.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", utils.NewInvalidInputError(err.Error())
	}

	c.setBrowserHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", utils.NewTimeoutError(fmt.Sprintf("fetch timed out after %s", c.timeout))
		}
		return "", utils.NewFetchFailedError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", utils.NewFetchFailedError(fmt.Sprintf("upstream returned %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		if isTimeout(err) {
			return "", utils.NewTimeoutError(fmt.Sprintf("fetch timed out after %s", c.timeout))
		}
		return "", utils.NewFetchFailedError("reading body: " + err.Error())
	}

	if len(body) < MinBodyLength {
		return "", utils.NewContentTooShortError(
			fmt.Sprintf("page body is %d characters, need at least %d", len(body), MinBodyLength), "")
	}

	return string(body), nil
}

// setBrowserHeaders applies the standard browser-ish header set plus a
// rotating user agent.
func (c *Client) setBrowserHeaders(req *http.Request) {
	c.mu.Lock()
	agent := PickAgent(c.agents, c.rng)
	c.mu.Unlock()

	req.Header.Set("User-Agent", agent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	// Accept-Encoding is left to the transport so net/http decompresses
	// gzip responses itself.
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "max-age=0")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout")
}
