// Package sites holds the static per-site extraction configuration table.
package sites

import "strings"

// SiteConfig describes how to pull a job description out of one job board or
// careers site. The table is read-only after process start, so concurrent
// lookups need no synchronization.
type SiteConfig struct {
	// Domain is the hostname fragment this entry matches on. It may carry a
	// path segment (e.g. "linkedin.com/jobs") for boards whose job pages live
	// under a path; see Lookup for how such fragments match.
	Domain string

	// Company is the canonical employer or board name used for provenance
	// banners in the cleaned output.
	Company string

	// ContentSelectors are tried in order; the order encodes confidence.
	ContentSelectors []string

	// NoiseSelectors mark subtrees to drop before content selection.
	NoiseSelectors []string
}

var genericNoise = []string{
	"nav", "header", "footer", "aside",
	".nav", ".navbar", ".header", ".footer", ".sidebar",
	".apply-button", ".apply-btn", ".share-buttons", ".social-share",
	".cookie-banner", ".cookie-consent", ".breadcrumb",
}

// registry is ordered: more specific fragments come before the general ones
// they overlap with, and Lookup returns the first match.
var registry = []SiteConfig{
	{
		Domain:  "careers.google.com",
		Company: "Google",
		ContentSelectors: []string{
			".job-description", "[itemprop='description']", ".gc-job-detail", "main",
		},
		NoiseSelectors: genericNoise,
	},
	{
		Domain:  "linkedin.com/jobs",
		Company: "LinkedIn",
		ContentSelectors: []string{
			".description__text", ".show-more-less-html__markup",
			".jobs-description-content", ".jobs-box__html-content",
		},
		NoiseSelectors: append([]string{
			".jobs-apply-button", ".top-card-layout__cta-container", ".similar-jobs",
		}, genericNoise...),
	},
	{
		Domain:  "indeed.com",
		Company: "Indeed",
		ContentSelectors: []string{
			"#jobDescriptionText", ".jobsearch-jobDescriptionText", ".jobsearch-JobComponent-description",
		},
		NoiseSelectors: append([]string{
			".jobsearch-IndeedApplyButton", "#similarJobs", ".icl-Callout",
		}, genericNoise...),
	},
	{
		Domain:  "glassdoor.com",
		Company: "Glassdoor",
		ContentSelectors: []string{
			".jobDescriptionContent", "[class*='JobDetails_jobDescription']", ".desc",
		},
		NoiseSelectors: genericNoise,
	},
	{
		Domain:  "greenhouse.io",
		Company: "Greenhouse",
		ContentSelectors: []string{
			"#content", ".job__description", "#app_body", "main",
		},
		NoiseSelectors: append([]string{"#application", "#apply_button"}, genericNoise...),
	},
	{
		Domain:  "jobs.lever.co",
		Company: "Lever",
		ContentSelectors: []string{
			".section-wrapper .content", ".posting-page", "[data-qa='job-description']",
		},
		NoiseSelectors: append([]string{".postings-btn-wrapper", ".posting-apply"}, genericNoise...),
	},
	{
		Domain:  "myworkdayjobs.com",
		Company: "Workday",
		ContentSelectors: []string{
			"[data-automation-id='jobPostingDescription']", ".jobPostingDescription", "main",
		},
		NoiseSelectors: genericNoise,
	},
	{
		Domain:  "smartrecruiters.com",
		Company: "SmartRecruiters",
		ContentSelectors: []string{
			".job-sections", "[itemprop='description']", ".jobad-main",
		},
		NoiseSelectors: genericNoise,
	},
	{
		Domain:  "icims.com",
		Company: "iCIMS",
		ContentSelectors: []string{
			".iCIMS_JobContent", ".iCIMS_InfoMsg_Job", ".iCIMS_Expandable_Container",
		},
		NoiseSelectors: genericNoise,
	},
	{
		Domain:  "bamboohr.com",
		Company: "BambooHR",
		ContentSelectors: []string{
			".BambooHR-ATS-Description", ".js-jobs-description", "main",
		},
		NoiseSelectors: genericNoise,
	},
	{
		Domain:  "ziprecruiter.com",
		Company: "ZipRecruiter",
		ContentSelectors: []string{
			".job_description", "[class*='jobDescriptionSection']", ".jobDescriptionSection",
		},
		NoiseSelectors: genericNoise,
	},
	{
		Domain:  "monster.com",
		Company: "Monster",
		ContentSelectors: []string{
			".job-description", "[data-testid='svx-description-container']", ".details-content",
		},
		NoiseSelectors: genericNoise,
	},
	{
		Domain:  "wellfound.com",
		Company: "Wellfound",
		ContentSelectors: []string{
			"[class*='jobDescription']", ".decorated-job-posting", "main",
		},
		NoiseSelectors: genericNoise,
	},
	{
		Domain:  "jobvite.com",
		Company: "Jobvite",
		ContentSelectors: []string{
			".jv-job-detail-description", ".jv-page-body", "main",
		},
		NoiseSelectors: append([]string{".jv-apply-button-wrapper"}, genericNoise...),
	},
}

// Lookup returns the configuration for hostname, or nil when no entry
// matches. A hostname matches a registry fragment when either contains the
// other (the hostname with any leading "www." stripped). The
// fragment-contains-hostname branch exists so path-style fragments like
// "linkedin.com/jobs" still match the bare hostname; it is imprecise — a
// short hostname could in principle fall into an unrelated longer
// fragment — and that inaccuracy is an accepted tradeoff of the scheme.
func Lookup(hostname string) *SiteConfig {
	host := strings.TrimPrefix(strings.ToLower(hostname), "www.")
	if host == "" {
		return nil
	}

	for i := range registry {
		if strings.Contains(host, registry[i].Domain) || strings.Contains(registry[i].Domain, host) {
			return &registry[i]
		}
	}
	return nil
}

// All returns the registry entries, for monitoring and tests.
func All() []SiteConfig {
	return registry
}
