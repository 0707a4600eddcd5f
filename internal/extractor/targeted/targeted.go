// Package targeted isolates the job-description region of a page using a
// parsed document tree and CSS selectors. Selector matching over a real DOM
// replaces regex-over-markup on purpose: regexes cannot pair open/close tags
// and over- or under-capture on nested elements of the same class.
package targeted

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/StephCurry07/Appication-Tracker/internal/extractor/normalizer"
	"github.com/StephCurry07/Appication-Tracker/internal/extractor/sites"
)

// MinSubstantiveLength is the acceptance threshold for a selector's combined
// text. Anything shorter is treated as a widget or heading hit, not the
// description body.
const MinSubstantiveLength = 200

// fallbackSelectors is the generic chain used when no site configuration
// matched, or its selectors produced nothing substantive. Ordered broad
// job-specific patterns first, generic page regions last.
var fallbackSelectors = []string{
	"[class*='job-description'], [id*='job-description']",
	"[class*='job-detail'], [id*='job-detail']",
	"[class*='position-description'], [id*='position-description']",
	"[class*='jobDescription'], [id*='jobDescription']",
	"main, [role='main']",
	".content, #content",
}

// Extract returns the text of the most promising subtree of html, and whether
// a site-configured selector (as opposed to the generic fallback chain)
// produced it. An empty string means nothing substantive was found and the
// caller should fall back to whole-page normalization. Parse and selector
// errors are swallowed: a broken document is indistinguishable from a
// document with no job content.
func Extract(html string, cfg *sites.SiteConfig) (content string, specialized bool) {
	defer func() {
		if r := recover(); r != nil {
			content, specialized = "", false
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	if cfg != nil {
		removeNoise(doc, cfg.NoiseSelectors)

		if text := firstSubstantive(doc, cfg.ContentSelectors); text != "" {
			return text, true
		}
	}

	if text := firstSubstantive(doc, fallbackSelectors); text != "" {
		return text, false
	}

	return "", false
}

func removeNoise(doc *goquery.Document, selectors []string) {
	for _, sel := range selectors {
		doc.Find(sel).Remove()
	}
}

// firstSubstantive walks selectors in priority order and returns the first
// candidate whose normalized text clears the substantiveness threshold.
// Selector order encodes confidence, so the walk stops at the first
// acceptance.
func firstSubstantive(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		var parts []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if fragment, err := goquery.OuterHtml(s); err == nil {
				parts = append(parts, fragment)
			}
		})
		if len(parts) == 0 {
			continue
		}

		text := normalizer.Normalize(strings.Join(parts, "\n"))
		if len(text) > MinSubstantiveLength {
			return text
		}
	}
	return ""
}
