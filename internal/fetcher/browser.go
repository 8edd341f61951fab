package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserSession is the headless-browser fallback transport: one page
// that lives for the whole crawl, navigated once per fallback fetch and
// serialized across the batch because it is a single shared resource.
type BrowserSession interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
	Close() error
}

// rodSession implements BrowserSession with go-rod over headless
// Chrome. Navigation is serialized with a mutex: the session is one
// page, not one page per goroutine.
type rodSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	mu       sync.Mutex
}

// NewBrowserSession launches a headless Chrome instance and opens the
// single page that will be reused for every fallback fetch in the run.
func NewBrowserSession(timeout time.Duration) (BrowserSession, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	controlURL, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		lnchr.Kill()
		return nil, fmt.Errorf("opening page: %w", err)
	}

	return &rodSession{
		browser:  browser,
		launcher: lnchr,
		page:     page,
		timeout:  timeout,
	}, nil
}

func (s *rodSession) Fetch(ctx context.Context, rawURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page := s.page.Context(fetchCtx)

	if err := page.Navigate(rawURL); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

func (s *rodSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.browser.Close()
	s.launcher.Kill()
	return err
}
