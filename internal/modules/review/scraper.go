package review

import (
	"context"
	"os"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// Scraper fetches the rendered title and body text of a review URL.
// Services depend on the interface; tests stub it out.
type Scraper interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

// ChromeScraper renders pages in headless Chrome. Naver blog posts load
// their content inside the #mainFrame iframe, which plain HTTP fetching
// cannot see, so scraping goes through a real browser.
type ChromeScraper struct {
	execPath string
	timeout  time.Duration
}

// NewChromeScraper builds a scraper using execPath, or autodetection when
// execPath is empty.
func NewChromeScraper(execPath string) *ChromeScraper {
	if execPath == "" {
		execPath = detectChromePath()
	}
	return &ChromeScraper{execPath: execPath, timeout: 30 * time.Second}
}

func detectChromePath() string {
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (s *ChromeScraper) Fetch(ctx context.Context, url string) (*Page, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
	)
	if s.execPath != "" {
		opts = append(opts, chromedp.ExecPath(s.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	runCtx, runCancel := context.WithTimeout(browserCtx, s.timeout)
	defer runCancel()

	var title, body, frameSrc string
	err := chromedp.Run(runCtx,
		// The mobile rendering of Naver pages is lighter and stable.
		emulation.SetUserAgentOverride(mobileUserAgent),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.querySelector('#mainFrame') ? document.querySelector('#mainFrame').src : ''`, &frameSrc),
	)
	if err != nil {
		return nil, err
	}

	actions := []chromedp.Action{}
	if frameSrc != "" {
		actions = append(actions,
			chromedp.Navigate(frameSrc),
			chromedp.WaitReady("body"),
		)
	}
	actions = append(actions,
		chromedp.Title(&title),
		chromedp.Text("body", &body, chromedp.ByQuery),
	)

	if err := chromedp.Run(runCtx, actions...); err != nil {
		return nil, err
	}

	return &Page{Title: title, Body: body}, nil
}
