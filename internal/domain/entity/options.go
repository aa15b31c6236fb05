package entity

import "time"

const (
	DefaultTimeout       = 30 * time.Second
	DefaultProbeTimeout  = 2 * time.Second
	DefaultAnchorTimeout = 10 * time.Second
	DefaultScreenshotDir = "screenshots"
	DefaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Options is the per-call options bag.
type Options struct {
	Headless          bool          `json:"headless"`
	Timeout           time.Duration `json:"timeout"`
	BrowserBinaryPath string        `json:"browser_binary_path,omitempty"`

	// ProbeTimeout bounds lookups of optional or candidate elements.
	ProbeTimeout time.Duration `json:"probe_timeout,omitempty"`
	// AnchorTimeout bounds the wait for the field that proves the page loaded.
	AnchorTimeout time.Duration `json:"anchor_timeout,omitempty"`

	ScreenshotDir string `json:"screenshot_dir,omitempty"`
	UserAgent     string `json:"user_agent,omitempty"`
	// HumanDelays enables the randomized pauses between steps.
	HumanDelays bool `json:"human_delays"`
	Stealth     bool `json:"stealth"`
}

func DefaultOptions() Options {
	return Options{
		Headless:      false,
		Timeout:       DefaultTimeout,
		ProbeTimeout:  DefaultProbeTimeout,
		AnchorTimeout: DefaultAnchorTimeout,
		ScreenshotDir: DefaultScreenshotDir,
		UserAgent:     DefaultUserAgent,
		HumanDelays:   true,
		Stealth:       true,
	}
}

// Normalize fills zero durations and paths with defaults.
func (o Options) Normalize() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = DefaultProbeTimeout
	}
	if o.AnchorTimeout <= 0 {
		o.AnchorTimeout = DefaultAnchorTimeout
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = DefaultScreenshotDir
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	return o
}
