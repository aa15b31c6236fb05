package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"account-automator/internal/application/port/output"
	"account-automator/internal/domain/entity"
	"account-automator/internal/infrastructure/browser/rodwrapper"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

const (
	defaultMaxScreenshotWidth = 1280
	navigationIdle            = 2 * time.Second
)

var (
	_ output.SessionFactory = (*SessionFactory)(nil)
	_ output.BrowserSession = (*Session)(nil)
)

type FactoryConfig struct {
	NoSandbox          bool
	DisableImages      bool
	MaxScreenshotWidth int
	Trace              bool
}

func DefaultFactoryConfig() FactoryConfig {
	return FactoryConfig{
		NoSandbox:          true,
		DisableImages:      true,
		MaxScreenshotWidth: defaultMaxScreenshotWidth,
	}
}

// SessionFactory launches one Chrome per session.
type SessionFactory struct {
	cfg    FactoryConfig
	logger output.LoggerPort
}

func NewSessionFactory(cfg FactoryConfig, logger output.LoggerPort) *SessionFactory {
	if cfg.MaxScreenshotWidth <= 0 {
		cfg.MaxScreenshotWidth = defaultMaxScreenshotWidth
	}
	return &SessionFactory{cfg: cfg, logger: logger}
}

func (f *SessionFactory) Open(ctx context.Context, opts entity.Options) (output.BrowserSession, error) {
	return f.OpenSession(ctx, opts)
}

// OpenSession is Open with the concrete type, for callers that need the
// underlying page.
func (f *SessionFactory) OpenSession(ctx context.Context, opts entity.Options) (*Session, error) {
	opts = opts.Normalize()

	browser, err := rodwrapper.Launch(ctx, rodwrapper.LaunchConfig{
		Bin:           opts.BrowserBinaryPath,
		Headless:      opts.Headless,
		NoSandbox:     f.cfg.NoSandbox,
		UserAgent:     opts.UserAgent,
		DisableImages: f.cfg.DisableImages,
		Trace:         f.cfg.Trace,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", output.ErrBrowserInit, err)
	}

	page, err := browser.Page(opts.Stealth)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("%w: %v", output.ErrBrowserInit, err)
	}
	if opts.UserAgent != "" {
		_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: opts.UserAgent})
	}

	f.logger.Debug("Browser session opened", "headless", opts.Headless, "stealth", opts.Stealth)
	return &Session{
		browser:  browser,
		page:     page,
		timeout:  opts.Timeout,
		probe:    opts.ProbeTimeout,
		shotDir:  opts.ScreenshotDir,
		maxWidth: f.cfg.MaxScreenshotWidth,
		logger:   f.logger,
	}, nil
}

// Session is one tab in a dedicated browser process.
type Session struct {
	browser  *rodwrapper.Browser
	page     *rod.Page
	timeout  time.Duration
	probe    time.Duration
	shotDir  string
	maxWidth int
	logger   output.LoggerPort

	mu     sync.Mutex
	closed bool
}

func (s *Session) Page() *rod.Page {
	return s.page
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx).Timeout(s.timeout)
	defer p.CancelTimeout()
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	_ = s.page.Context(ctx).WaitIdle(navigationIdle)
	return nil
}

// element resolves sel within timeout. Lookup errors are reported as "not
// found"; the caller decides what absence means.
func (s *Session) element(ctx context.Context, sel entity.Selector, timeout time.Duration) (*rod.Element, bool) {
	p := s.page.Context(ctx).Timeout(timeout)

	var (
		el  *rod.Element
		err error
	)
	switch sel.Kind {
	case entity.SelectorText:
		el, err = p.ElementR(sel.CSSQuery(), regexp.QuoteMeta(sel.Value))
	default:
		el, err = p.Element(sel.CSSQuery())
	}
	p.CancelTimeout()
	if err != nil {
		return nil, false
	}
	return el.Context(ctx), true
}

func (s *Session) WaitForElement(ctx context.Context, sel entity.Selector, timeout time.Duration) bool {
	_, ok := s.element(ctx, sel, timeout)
	return ok
}

func (s *Session) Fill(ctx context.Context, sel entity.Selector, text string, timeout time.Duration) bool {
	el, ok := s.element(ctx, sel, timeout)
	if !ok {
		return false
	}
	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	if err := el.Input(text); err != nil {
		s.logger.Debug("Input failed", "selector", sel.String(), "error", err)
		return false
	}
	return true
}

func (s *Session) Value(ctx context.Context, sel entity.Selector) (string, bool) {
	el, ok := s.element(ctx, sel, s.probe)
	if !ok {
		return "", false
	}
	v, err := el.Property("value")
	if err != nil {
		return "", false
	}
	return v.Str(), true
}

func (s *Session) IsChecked(ctx context.Context, sel entity.Selector) bool {
	el, ok := s.element(ctx, sel, s.probe)
	if !ok {
		return false
	}
	v, err := el.Property("checked")
	if err == nil && v.Bool() {
		return true
	}
	// Custom checkboxes expose state through aria-checked.
	aria, err := el.Attribute("aria-checked")
	return err == nil && aria != nil && *aria == "true"
}

func (s *Session) Click(ctx context.Context, sel entity.Selector, timeout time.Duration) bool {
	el, ok := s.element(ctx, sel, timeout)
	if !ok {
		return false
	}
	if err := el.ScrollIntoView(); err != nil {
		s.logger.Debug("Scroll into view failed", "selector", sel.String(), "error", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		s.logger.Debug("Click failed", "selector", sel.String(), "error", err)
		return false
	}
	return true
}

func (s *Session) Text(ctx context.Context, sel entity.Selector, timeout time.Duration) (string, bool) {
	el, ok := s.element(ctx, sel, timeout)
	if !ok {
		return "", false
	}
	text, err := el.Text()
	if err != nil {
		return "", false
	}
	return text, true
}

// Screenshot saves a PNG named <name>_<timestamp>.png into the screenshot
// directory and returns its path, or "" on any failure.
func (s *Session) Screenshot(ctx context.Context, name string) string {
	path, err := s.screenshot(ctx, name)
	if err != nil {
		s.logger.Warn("Screenshot failed", "name", name, "error", err)
		return ""
	}
	return path
}

func (s *Session) screenshot(ctx context.Context, name string) (string, error) {
	raw, err := s.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if img.Bounds().Dx() > s.maxWidth {
		img = imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(s.shotDir, 0755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	path := filepath.Join(s.shotDir, fmt.Sprintf("%s_%s.png", sanitize(name), time.Now().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return path, nil
}

func (s *Session) CurrentURL(ctx context.Context) string {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// CurrentHTML is the lower-cased document with scripts and styles removed.
func (s *Session) CurrentHTML(ctx context.Context) string {
	raw, err := s.page.Context(ctx).HTML()
	if err != nil {
		return ""
	}
	return rodwrapper.PageTextForMatching(raw)
}

// Close releases the tab and the browser process. Only the first call has an
// effect.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.browser.Close()
}

func (s *Session) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Controls lists the interactive elements of the current page.
func (s *Session) Controls(ctx context.Context) ([]rodwrapper.FormControl, error) {
	return rodwrapper.ExtractControls(s.page.Context(ctx), nil)
}

// Eval runs a JS function on the page, for the inspector and tests.
func (s *Session) Eval(ctx context.Context, js string, args ...any) (gson.JSON, error) {
	res, err := s.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return gson.JSON{}, err
	}
	return res.Value, nil
}

func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, name)
	if name == "" {
		return "screenshot"
	}
	return name
}
