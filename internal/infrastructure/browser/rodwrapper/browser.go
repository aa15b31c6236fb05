package rodwrapper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

type LaunchConfig struct {
	// Bin overrides the browser binary; empty lets the launcher find or
	// download one.
	Bin           string
	Headless      bool
	NoSandbox     bool
	UserAgent     string
	DisableImages bool
	SlowMotion    time.Duration
	Trace         bool
}

// Browser wraps *rod.Browser together with its launcher so Close also kills
// the Chrome process.
type Browser struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	closeOnce sync.Once
}

func Launch(ctx context.Context, cfg LaunchConfig) (*Browser, error) {
	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-blink-features", "AutomationControlled")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.DisableImages {
		l = l.Set("blink-settings", "imagesEnabled=false")
	}
	if cfg.UserAgent != "" {
		l = l.Set("user-agent", cfg.UserAgent)
	}

	url, err := l.Launch()
	if err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		Trace(cfg.Trace).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	return &Browser{
		browser:  browser,
		launcher: l,
	}, nil
}

// Page opens a blank tab. With stealth the tab gets the evasion scripts
// injected before any document loads.
func (b *Browser) Page(withStealth bool) (*rod.Page, error) {
	if withStealth {
		page, err := stealth.Page(b.browser)
		if err != nil {
			return nil, fmt.Errorf("stealth page: %w", err)
		}
		return page, nil
	}
	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	return page, nil
}

// Close shuts the browser and the Chrome process down. Safe to call twice.
func (b *Browser) Close() {
	b.closeOnce.Do(func() {
		if b.browser != nil {
			_ = b.browser.Close()
		}
		if b.launcher != nil {
			b.launcher.Kill()
			b.launcher.Cleanup()
		}
	})
}
