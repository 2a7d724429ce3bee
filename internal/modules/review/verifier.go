package review

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"weddingstudio/internal/domain"
)

// Automated verification thresholds. A review passes when its title carries
// every required keyword and its body is long enough.
var requiredTitleKeywords = []string{"본식", "영상"}

const minReviewChars = 400

// Page is the scraped content of a review URL.
type Page struct {
	Title string
	Body  string
}

// VerificationResult records what the automated check saw.
type VerificationResult struct {
	TitleMatched  bool
	LengthMatched bool
	CharCount     int
}

// Verify runs the keyword and length checks against scraped content.
func Verify(page *Page) VerificationResult {
	title := strings.ToLower(page.Title)
	matched := true
	for _, kw := range requiredTitleKeywords {
		if !strings.Contains(title, strings.ToLower(kw)) {
			matched = false
			break
		}
	}

	count := utf8.RuneCountInString(strings.TrimSpace(page.Body))
	return VerificationResult{
		TitleMatched:  matched,
		LengthMatched: count >= minReviewChars,
		CharCount:     count,
	}
}

// DetectPlatform classifies a review URL by host.
func DetectPlatform(rawURL string) domain.ReviewPlatform {
	u, err := url.Parse(rawURL)
	if err != nil {
		return domain.PlatformEtc
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "m."))
	switch {
	case strings.HasSuffix(host, "blog.naver.com"):
		return domain.PlatformNaverBlog
	case strings.HasSuffix(host, "cafe.naver.com"):
		return domain.PlatformNaverCafe
	case host == "instagram.com" || strings.HasSuffix(host, ".instagram.com"):
		return domain.PlatformInstagram
	default:
		return domain.PlatformEtc
	}
}

// autoVerifiable reports whether the platform scrapes reliably enough for
// the automatic approval path. Everything else routes to manual review.
func autoVerifiable(p domain.ReviewPlatform) bool {
	return p == domain.PlatformNaverBlog
}

// NormalizeURL collapses cosmetic URL variants so duplicate detection
// catches resubmissions: scheme and host lowercased, mobile host folded,
// query, fragment and trailing slash dropped.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return strings.TrimSpace(rawURL)
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "m.")

	path := strings.TrimRight(u.Path, "/")

	return "https://" + host + path
}

// submissionCap is the per-type, per-tier limit on live submissions.
func submissionCap(purpose domain.ReviewPurpose, tier domain.ProductTier) int {
	if purpose == domain.ReviewForBooking {
		return 1
	}
	if tier == domain.TierBasic {
		return 1
	}
	return 2
}
