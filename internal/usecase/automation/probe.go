package automation

import (
	"context"
	"fmt"
	"time"

	"account-automator/internal/domain/entity"
)

// firstPresent returns the first candidate that resolves within the probe
// timeout. Later candidates are never touched once one resolves.
func (r *run) firstPresent(ctx context.Context, candidates []entity.Selector) (entity.Selector, bool) {
	return r.firstPresentWithin(ctx, candidates, r.opts.ProbeTimeout)
}

func (r *run) firstPresentWithin(ctx context.Context, candidates []entity.Selector, timeout time.Duration) (entity.Selector, bool) {
	for _, sel := range candidates {
		if ctx.Err() != nil {
			return entity.Selector{}, false
		}
		if r.sess.WaitForElement(ctx, sel, timeout) {
			return sel, true
		}
	}
	return entity.Selector{}, false
}

// fillFirst fills the first present candidate. A present candidate that
// refuses the input ends the search.
func (r *run) fillFirst(ctx context.Context, candidates []entity.Selector, value string) (entity.Selector, bool) {
	sel, ok := r.firstPresent(ctx, candidates)
	if !ok {
		return entity.Selector{}, false
	}
	return sel, r.sess.Fill(ctx, sel, value, r.opts.ProbeTimeout)
}

// clickFirst clicks the first candidate that both exists and accepts the click.
func (r *run) clickFirst(ctx context.Context, candidates []entity.Selector) (entity.Selector, bool) {
	for i, sel := range candidates {
		if ctx.Err() != nil {
			break
		}
		if !r.sess.WaitForElement(ctx, sel, r.opts.ProbeTimeout) {
			r.log.Debug("Submit candidate not found", "index", i+1, "of", len(candidates), "selector", sel.String())
			continue
		}
		if r.sess.Click(ctx, sel, r.opts.ProbeTimeout) {
			return sel, true
		}
		r.log.Debug("Submit candidate click failed", "selector", sel.String())
	}
	return entity.Selector{}, false
}

// check ticks the first present checkbox candidate unless already checked.
// Failures are ignored.
func (r *run) check(ctx context.Context, candidates []entity.Selector) {
	sel, ok := r.firstPresent(ctx, candidates)
	if !ok {
		return
	}
	if r.sess.IsChecked(ctx, sel) {
		return
	}
	if r.sess.Click(ctx, sel, r.opts.ProbeTimeout) {
		r.log.Debug("Checked box", "selector", sel.String())
		_ = r.pause(ctx, 500*time.Millisecond, time.Second)
	}
}

func (r *run) pause(ctx context.Context, min, max time.Duration) error {
	return r.pacer.Pause(ctx, min, max)
}

func (r *run) screenshot(ctx context.Context, outcome string) string {
	name := fmt.Sprintf("%s_%s_%s", r.slug, r.op, outcome)
	path := r.sess.Screenshot(ctx, name)
	if path != "" {
		r.log.Debug("Screenshot saved", "path", path)
	}
	return path
}

// result builds a terminal result with a screenshot tagged by outcome.
func (r *run) result(ctx context.Context, status entity.AutomationStatus, msg, outcome string) entity.AutomationResult {
	return entity.NewResult(status, msg).WithScreenshot(r.screenshot(ctx, outcome))
}

func (r *run) fromError(ctx context.Context, err error) entity.AutomationResult {
	status := statusForError(err)
	r.log.Error("Automation aborted", "status", status.String(), "error", err)

	// The caller's context may already be done; the screenshot still gets a
	// short window of its own.
	shotCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	var path string
	func() {
		defer func() { _ = recover() }()
		path = r.screenshot(shotCtx, string(status))
	}()

	return entity.NewResult(status, fmt.Sprintf("%s: %v", status.Label(), err)).WithScreenshot(path)
}
