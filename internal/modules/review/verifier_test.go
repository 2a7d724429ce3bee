package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"weddingstudio/internal/domain"
)

func TestDetectPlatform(t *testing.T) {
	cases := map[string]domain.ReviewPlatform{
		"https://blog.naver.com/bride123/223000111222":   domain.PlatformNaverBlog,
		"https://m.blog.naver.com/bride123/223000111222": domain.PlatformNaverBlog,
		"https://cafe.naver.com/wedding/123":             domain.PlatformNaverCafe,
		"https://www.instagram.com/p/Cxyz/":              domain.PlatformInstagram,
		"https://some.random.site/post/1":                domain.PlatformEtc,
	}
	for raw, want := range cases {
		assert.Equal(t, want, DetectPlatform(raw), raw)
	}
}

func TestNormalizeURL_CosmeticVariantsCollapse(t *testing.T) {
	want := "https://blog.naver.com/bride123/223000111222"

	variants := []string{
		"https://blog.naver.com/bride123/223000111222",
		"http://blog.naver.com/bride123/223000111222",
		"https://m.blog.naver.com/bride123/223000111222",
		"https://Blog.Naver.com/bride123/223000111222/",
		"https://blog.naver.com/bride123/223000111222?fromRss=true&trackingCode=rss",
		"https://blog.naver.com/bride123/223000111222#comments",
	}
	for _, v := range variants {
		assert.Equal(t, want, NormalizeURL(v), v)
	}
}

func TestVerify(t *testing.T) {
	longBody := strings.Repeat("후기 ", 300)

	result := Verify(&Page{Title: "본식 영상 후기입니다", Body: longBody})
	assert.True(t, result.TitleMatched)
	assert.True(t, result.LengthMatched)
	assert.GreaterOrEqual(t, result.CharCount, minReviewChars)

	result = Verify(&Page{Title: "그냥 일상 글", Body: longBody})
	assert.False(t, result.TitleMatched)
	assert.True(t, result.LengthMatched)

	result = Verify(&Page{Title: "본식 영상 후기", Body: "짧은 글"})
	assert.True(t, result.TitleMatched)
	assert.False(t, result.LengthMatched)
}

func TestSubmissionCap(t *testing.T) {
	assert.Equal(t, 1, submissionCap(domain.ReviewForBooking, domain.TierPremium))
	assert.Equal(t, 1, submissionCap(domain.ReviewForShooting, domain.TierBasic))
	assert.Equal(t, 2, submissionCap(domain.ReviewForShooting, domain.TierStandard))
	assert.Equal(t, 2, submissionCap(domain.ReviewForShooting, domain.TierPremium))
}
