// Package enhancer post-processes extracted job text: provenance banner,
// noise-phrase removal, section-heading canonicalization, and blank-line
// hygiene. Enhance is pure and idempotent — running it twice yields the same
// bytes.
package enhancer

import (
	"regexp"
	"strings"
)

// section maps a canonical heading to the synonyms that trigger it. Matching
// is keyword detection on heading-shaped lines, not structural parsing; prose
// that happens to consist of one of these words alone on a line will be
// tagged. Downstream consumption tolerates that.
type section struct {
	canonical string
	synonyms  []string
}

var sections = []section{
	{"Job Description", []string{"job description", "description", "overview"}},
	{"Responsibilities", []string{"responsibilities", "duties", "what you'll do"}},
	{"Requirements", []string{"requirements", "qualifications", "what we're looking for"}},
	{"Benefits", []string{"benefits", "perks", "what we offer"}},
	{"About the Company", []string{"about us", "about the company", "company overview"}},
}

var noisePhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bapply (now|today|for this job)\b`),
	regexp.MustCompile(`(?i)\bshare this job\b`),
	regexp.MustCompile(`(?i)\bsave (this )?job\b`),
	regexp.MustCompile(`(?i)\bback to search( results)?\b`),
	regexp.MustCompile(`(?i)\bview all jobs\b`),
	regexp.MustCompile(`(?i)\bcookie policy\b`),
	regexp.MustCompile(`(?i)\bprivacy policy\b`),
	regexp.MustCompile(`(?i)\bterms (of service|and conditions)\b`),
	regexp.MustCompile(`(?i)(©|\(c\)|\bcopyright\b)\s*\d{0,4}[^\n.]*\ball rights reserved\b\.?`),
	regexp.MustCompile(`(?i)\ball rights reserved\b\.?`),
}

var (
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// synonymIndex is built once: lowercase synonym -> canonical heading.
var synonymIndex = func() map[string]string {
	idx := make(map[string]string)
	for _, sec := range sections {
		for _, syn := range sec.synonyms {
			idx[syn] = sec.canonical
		}
		// Canonical headings are their own synonym so re-running the
		// enhancer maps them back onto themselves.
		idx[strings.ToLower(sec.canonical)] = sec.canonical
	}
	return idx
}()

// Enhance cleans text for downstream structured extraction. company is the
// canonical employer name when the site registry knew the page, otherwise
// empty; hostname is the fetched host and backs the provenance banner when no
// company is known.
func Enhance(text, company, hostname string) string {
	text = stripNoise(text)
	text = canonicalizeSections(text)

	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	text = prependProvenance(text, company, hostname)

	return text
}

func stripNoise(text string) string {
	for _, re := range noisePhrases {
		text = re.ReplaceAllString(text, "")
	}
	return spaceRunRe.ReplaceAllString(text, " ")
}

// canonicalizeSections rewrites heading-shaped lines (a synonym alone on a
// line, optionally ending in a colon) to the canonical heading with exactly
// one blank line before it.
func canonicalizeSections(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		key := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(line), ":"))
		canonical, ok := synonymIndex[key]
		if !ok {
			out = append(out, strings.TrimRight(line, " \t"))
			continue
		}

		// Exactly one blank line before the heading
		for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
			out = out[:len(out)-1]
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, canonical)
	}

	return strings.Join(out, "\n")
}

func prependProvenance(text, company, hostname string) string {
	if company != "" {
		if !containsFold(text, company) {
			return "Company: " + company + "\n\n" + text
		}
		return text
	}

	if hostname != "" && !containsFold(text, hostname) {
		return "Source: " + hostname + "\n\n" + text
	}
	return text
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
