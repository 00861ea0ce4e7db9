// Package rodsession owns the browser lifecycle for one automation run:
// exactly one browser process and one page per Session, torn down on every
// exit path.
package rodsession

import (
	"context"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/domain/autoerr"
)

const (
	defaultSlowMotion = 300 * time.Millisecond
	defaultTimeout    = 10 * time.Second
)

type Config struct {
	Headless       bool
	UserAgent      string
	SlowMotion     time.Duration
	Timeout        time.Duration
	NoSandbox      bool
	HideAutomation bool
	ScreenshotDir  string
}

func DefaultConfig() Config {
	return Config{
		Headless:       true,
		SlowMotion:     defaultSlowMotion,
		Timeout:        defaultTimeout,
		NoSandbox:      true,
		HideAutomation: true,
		ScreenshotDir:  "screenshots",
	}
}

// Session is one live browser plus its single page. It must not be shared
// across requests; every element handle derived from it dies with it.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	cfg      Config
	log      output.LoggerPort

	closeOnce sync.Once
}

// Begin launches a browser and opens a blank page bound to ctx, so a
// request-level cancellation interrupts every pending page call. A launch or
// connect failure is returned as *autoerr.LaunchError.
func Begin(ctx context.Context, cfg Config, log output.LoggerPort) (*Session, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(false).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-setuid-sandbox")
	if cfg.HideAutomation {
		l = l.Set("disable-blink-features", "AutomationControlled")
	}
	if cfg.UserAgent != "" {
		l = l.Set("user-agent", cfg.UserAgent)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, &autoerr.LaunchError{Err: err}
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, &autoerr.LaunchError{Err: err}
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, &autoerr.LaunchError{Err: err}
	}

	if cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: cfg.UserAgent}); err != nil {
			log.Warn("user-agent override failed", "error", err)
		}
	}

	return &Session{
		browser:  browser,
		launcher: l,
		page:     page.Context(ctx),
		cfg:      cfg,
		log:      log,
	}, nil
}

// Page returns the session's single page. Valid until Close.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Close tears the browser down. Idempotent, and it never returns an error:
// teardown failures are logged so they cannot mask the failure that caused
// the teardown. The launcher Kill+Cleanup pair is what actually reaps the
// Chrome process.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				s.log.Warn("browser close failed", "error", err)
			}
		}
		if s.launcher != nil {
			s.launcher.Kill()
			s.launcher.Cleanup()
		}
	})
}
