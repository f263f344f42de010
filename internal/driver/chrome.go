package driver

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/chromedp"

	"wqa/internal/domain"
)

// Options configure a Chrome browser instance.
type Options struct {
	// Engine is the browser engine name (chromium or chrome).
	Engine string
	// ExecPath overrides the browser binary location.
	ExecPath string
	// Headless runs the browser without a visible window.
	Headless bool
}

// Chrome drives a Chromium-family engine over the DevTools protocol.
type Chrome struct {
	allocCtx context.Context
	cancel   context.CancelFunc

	mu       sync.Mutex
	sessions []*chromeSession
}

// NewChrome prepares a browser engine instance. The process itself starts
// lazily on the first session; launch failures surface there as
// infrastructure errors.
func NewChrome(opts Options) (*Chrome, error) {
	engine := strings.ToLower(opts.Engine)
	switch engine {
	case "", "chromium", "chrome":
	default:
		if opts.ExecPath == "" {
			return nil, domain.Infraf("launch browser",
				fmt.Errorf("unsupported engine %q (set WQA_BROWSER_PATH to drive a custom binary)", opts.Engine))
		}
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if !opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	return &Chrome{allocCtx: allocCtx, cancel: cancel}, nil
}

// NewSession opens a fresh browser tab context. The first call launches the
// browser process; a launch failure is an infrastructure error.
func (c *Chrome) NewSession(ctx context.Context) (Session, error) {
	tabCtx, tabCancel := chromedp.NewContext(c.allocCtx)

	s := &chromeSession{ctx: tabCtx, cancel: tabCancel}
	// An empty Run starts the browser and the target, so launch errors
	// surface here instead of on the first page action.
	if err := s.run(ctx); err != nil {
		tabCancel()
		return nil, domain.Infraf("launch browser session", err)
	}

	c.mu.Lock()
	c.sessions = append(c.sessions, s)
	c.mu.Unlock()
	return s, nil
}

// Close releases the engine and all open sessions.
func (c *Chrome) Close() error {
	c.mu.Lock()
	sessions := c.sessions
	c.sessions = nil
	c.mu.Unlock()

	for _, s := range sessions {
		s.cancel()
	}
	c.cancel()
	return nil
}

type chromeSession struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// run executes chromedp actions on the session while honoring the caller's
// context. On cancellation or deadline the session is torn down so the
// underlying target cannot outlive the case.
func (s *chromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(s.ctx, actions...)
	}()
	select {
	case <-ctx.Done():
		s.cancel()
		<-done
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, chromedp.Navigate(url))
}

func (s *chromeSession) WaitVisible(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (s *chromeSession) Fill(ctx context.Context, selector, value string) error {
	return s.run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
}

func (s *chromeSession) SendKeys(ctx context.Context, selector, keys string) error {
	return s.run(ctx, chromedp.SendKeys(selector, keys, chromedp.ByQuery))
}

func (s *chromeSession) Click(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

func (s *chromeSession) Text(ctx context.Context, selector string) (string, error) {
	var out string
	err := s.run(ctx, chromedp.Text(selector, &out, chromedp.ByQuery))
	return strings.TrimSpace(out), err
}

func (s *chromeSession) Title(ctx context.Context) (string, error) {
	var out string
	err := s.run(ctx, chromedp.Title(&out))
	return out, err
}

func (s *chromeSession) Location(ctx context.Context) (string, error) {
	var out string
	err := s.run(ctx, chromedp.Location(&out))
	return out, err
}

func (s *chromeSession) Evaluate(ctx context.Context, expression string, out any) error {
	return s.run(ctx, chromedp.Evaluate(expression, out))
}

func (s *chromeSession) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := s.run(ctx, chromedp.FullScreenshot(&buf, 90))
	return buf, err
}

func (s *chromeSession) Close() error {
	s.cancel()
	return nil
}
