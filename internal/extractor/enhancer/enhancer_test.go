package enhancer

import (
	"strings"
	"testing"
)

func TestEnhance_CanonicalizesHeadings(t *testing.T) {
	text := "Intro paragraph.\nqualifications:\nFive years of Go.\nwhat we offer\nHealth insurance."

	got := Enhance(text, "", "")
	if !strings.Contains(got, "\n\nRequirements\n") {
		t.Fatalf("expected canonical Requirements heading, got %q", got)
	}
	if !strings.Contains(got, "\n\nBenefits\n") {
		t.Fatalf("expected canonical Benefits heading, got %q", got)
	}
	if strings.Contains(got, "qualifications") {
		t.Fatalf("synonym heading survived: %q", got)
	}
}

func TestEnhance_Idempotent(t *testing.T) {
	text := "Role overview.\n\nduties:\nShip features.\n\n\n\nperks\nFree lunch.\napply now\n"

	once := Enhance(text, "Acme", "acme.com")
	twice := Enhance(once, "Acme", "acme.com")
	if once != twice {
		t.Fatalf("enhance is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestEnhance_StripsNoisePhrases(t *testing.T) {
	text := "Great role. Apply now! Share this job with friends.\nPrivacy Policy\nReal content stays."

	got := Enhance(text, "", "")
	for _, phrase := range []string{"Apply now", "Share this job", "Privacy Policy"} {
		if strings.Contains(got, phrase) {
			t.Fatalf("noise phrase %q survived: %q", phrase, got)
		}
	}
	if !strings.Contains(got, "Real content stays.") {
		t.Fatalf("real content was removed: %q", got)
	}
}

func TestEnhance_CollapsesBlankRuns(t *testing.T) {
	got := Enhance("one\n\n\n\n\ntwo", "", "")
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank run survived: %q", got)
	}
}

func TestEnhance_CompanyBanner(t *testing.T) {
	got := Enhance("Engineer role with great impact.", "Acme", "jobs.acme.com")
	if !strings.HasPrefix(got, "Company: Acme\n\n") {
		t.Fatalf("expected company banner, got %q", got)
	}
}

func TestEnhance_NoBannerWhenCompanyMentioned(t *testing.T) {
	got := Enhance("Join ACME as an engineer.", "Acme", "jobs.acme.com")
	if strings.HasPrefix(got, "Company:") {
		t.Fatalf("banner added although company already mentioned: %q", got)
	}
}

func TestEnhance_HostnameBannerWhenCompanyUnknown(t *testing.T) {
	got := Enhance("Engineer role.", "", "jobs.example.com")
	if !strings.HasPrefix(got, "Source: jobs.example.com\n\n") {
		t.Fatalf("expected source banner, got %q", got)
	}
}
