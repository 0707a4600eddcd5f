// Package extractor runs the job-posting content pipeline: fetch the page
// once, pick an extraction strategy, clean and bound the result, and report
// which method produced it.
package extractor

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/internal/extractor/enhancer"
	"github.com/StephCurry07/Appication-Tracker/internal/extractor/fetcher"
	"github.com/StephCurry07/Appication-Tracker/internal/extractor/normalizer"
	"github.com/StephCurry07/Appication-Tracker/internal/extractor/sites"
	"github.com/StephCurry07/Appication-Tracker/internal/extractor/targeted"
	"github.com/StephCurry07/Appication-Tracker/internal/logging"
	"github.com/StephCurry07/Appication-Tracker/pkg/models"
	"github.com/StephCurry07/Appication-Tracker/pkg/utils"
)

// Method tags reported on every successful extraction.
const (
	MethodBasic         = "basic"
	MethodTargeted      = "targeted"
	MethodBasicFallback = "basic-fallback"
)

// Pipeline extracts readable job content from a posting URL.
type Pipeline struct {
	cfg     *config.Config
	fetcher *fetcher.Client
	logger  logging.Logger
}

// NewPipeline wires the pipeline from configuration.
func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		fetcher: fetcher.NewClient(cfg),
		logger:  logging.GetGlobalLogger(),
	}
}

// Extract fetches rawURL once and extracts content using the requested
// strategy. The auto strategy tries the targeted extractor and falls back to
// basic cleaning of the same HTML when no selector yields substantive text.
func (p *Pipeline) Extract(ctx context.Context, rawURL, strategy string) (*models.ExtractionResult, error) {
	target, hostname, err := p.prepareURL(rawURL)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Starting extraction", map[string]interface{}{
		"url":      target,
		"hostname": hostname,
		"strategy": strategy,
	})

	html, err := p.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	content, method := p.runStrategy(html, hostname, strategy)

	site := sites.Lookup(hostname)
	company := ""
	if site != nil {
		company = site.Company
	}
	content = enhancer.Enhance(content, company, hostname)
	content = utils.Truncate(content, p.cfg.Extractor.MaxContentLength)

	if len(content) < p.cfg.Extractor.MinContentLength {
		return nil, utils.NewContentTooShortError(
			fmt.Sprintf("extracted %d characters, need at least %d", len(content), p.cfg.Extractor.MinContentLength),
			method)
	}

	p.logger.Info("Extraction complete", map[string]interface{}{
		"hostname":       hostname,
		"method":         method,
		"content_length": len(content),
	})

	return &models.ExtractionResult{
		Content:       content,
		Method:        method,
		Hostname:      hostname,
		ContentLength: len(content),
		Timestamp:     time.Now().UTC(),
	}, nil
}

// runStrategy dispatches to the requested strategy over already-fetched HTML.
func (p *Pipeline) runStrategy(html, hostname, strategy string) (string, string) {
	switch strategy {
	case models.StrategyBasic:
		return normalizer.Normalize(html), MethodBasic
	case models.StrategyTargeted:
		site := sites.Lookup(hostname)
		content, specialized := targeted.Extract(html, site)
		if content == "" {
			// No selector hit; clean the whole page under the same tag.
			return normalizer.Normalize(html), MethodTargeted
		}
		if specialized && site != nil {
			return content, "specialized-" + site.Domain
		}
		return content, MethodTargeted
	default:
		site := sites.Lookup(hostname)
		content, specialized := targeted.Extract(html, site)
		if len(content) >= targeted.MinSubstantiveLength {
			if specialized && site != nil {
				return content, "specialized-" + site.Domain
			}
			return content, MethodTargeted
		}
		// Reuse the HTML already in hand instead of fetching again.
		return normalizer.Normalize(html), MethodBasicFallback
	}
}

// prepareURL validates the URL, canonicalizes LinkedIn job links, and returns
// the fetch target plus its hostname.
func (p *Pipeline) prepareURL(rawURL string) (string, string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", "", utils.NewInvalidInputError("url is required")
	}

	if utils.IsLinkedInURL(rawURL) {
		if canonical := utils.CanonicalLinkedInJobURL(rawURL); canonical != "" {
			rawURL = canonical
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", utils.NewInvalidInputError("invalid url: " + err.Error())
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", "", utils.NewInvalidInputError("url scheme must be http or https")
	}
	if parsed.Hostname() == "" {
		return "", "", utils.NewInvalidInputError("url has no hostname")
	}

	return parsed.String(), parsed.Hostname(), nil
}
