package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	linkedinJobViewRe = regexp.MustCompile(`^/jobs/view/(\d+)/?$`)
	numericIDRe       = regexp.MustCompile(`^\d+$`)
)

// IsLinkedInURL checks if a URL points at LinkedIn
func IsLinkedInURL(urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	hostname := strings.ToLower(parsed.Hostname())
	return hostname == "linkedin.com" || strings.HasSuffix(hostname, ".linkedin.com")
}

// CanonicalLinkedInJobURL rewrites LinkedIn job URLs to their public job-view
// form. Collection URLs (/jobs/collections/...?currentJobId=N) require a
// session and fetch as an empty shell; the public /jobs/view/N page for the
// same ID does not. Non-job LinkedIn URLs are returned unchanged.
func CanonicalLinkedInJobURL(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	path := strings.ToLower(parsed.Path)

	if m := linkedinJobViewRe.FindStringSubmatch(path); len(m) > 1 {
		return fmt.Sprintf("https://www.linkedin.com/jobs/view/%s", m[1])
	}

	if strings.HasPrefix(path, "/jobs/collections/") || strings.HasPrefix(path, "/jobs/search") {
		if id := parsed.Query().Get("currentJobId"); numericIDRe.MatchString(id) {
			return fmt.Sprintf("https://www.linkedin.com/jobs/view/%s", id)
		}
	}

	return urlStr
}
