package output

import (
	"context"
	"errors"
	"time"

	"account-automator/internal/domain/entity"
)

// ErrBrowserInit is returned by SessionFactory.Open when no browser could be
// started. Callers treat it as terminal for the operation.
var ErrBrowserInit = errors.New("browser init failed")

// BrowserSession controls exactly one browser tab. Lookups report absence with
// false instead of an error so candidate lists can move on to the next entry.
type BrowserSession interface {
	Navigate(ctx context.Context, url string) error
	WaitForElement(ctx context.Context, sel entity.Selector, timeout time.Duration) bool
	Fill(ctx context.Context, sel entity.Selector, text string, timeout time.Duration) bool
	Value(ctx context.Context, sel entity.Selector) (string, bool)
	IsChecked(ctx context.Context, sel entity.Selector) bool
	Click(ctx context.Context, sel entity.Selector, timeout time.Duration) bool
	Text(ctx context.Context, sel entity.Selector, timeout time.Duration) (string, bool)

	// Screenshot writes a PNG and returns its path, or "" on failure.
	Screenshot(ctx context.Context, name string) string
	CurrentURL(ctx context.Context) string
	// CurrentHTML is lower-cased for substring matching.
	CurrentHTML(ctx context.Context) string

	// Close is idempotent and never fails.
	Close()
}

type SessionFactory interface {
	Open(ctx context.Context, opts entity.Options) (BrowserSession, error)
}
