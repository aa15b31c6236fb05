package automation

import (
	"context"
	"time"

	"account-automator/internal/application/port/output"
	"account-automator/internal/domain/entity"
)

type VerifiedField struct {
	Name     string
	Selector entity.Selector
	Value    string
}

// FillWithVerification fills fields in order. After every fill it checks that
// all previously filled fields still hold their value and re-fills a stale one
// once. It returns false when a field cannot be located or still mismatches
// after its single retry.
func FillWithVerification(ctx context.Context, sess output.BrowserSession, fields []VerifiedField, timeout time.Duration) bool {
	return fillWithVerification(ctx, sess, fields, timeout, nil, nil)
}

func fillWithVerification(
	ctx context.Context,
	sess output.BrowserSession,
	fields []VerifiedField,
	timeout time.Duration,
	settle func(ctx context.Context),
	log output.LoggerPort,
) bool {
	pause := func() {
		if settle != nil {
			settle(ctx)
		}
	}
	debug := func(msg string, args ...any) {
		if log != nil {
			log.Debug(msg, args...)
		}
	}

	for i, field := range fields {
		if ctx.Err() != nil {
			return false
		}

		for _, prev := range fields[:i] {
			if holds(ctx, sess, prev) {
				continue
			}
			debug("Field lost its value, refilling", "field", prev.Name)
			if !refill(ctx, sess, prev, timeout) {
				debug("Refill failed", "field", prev.Name)
				return false
			}
			pause()
		}

		if !sess.Fill(ctx, field.Selector, field.Value, timeout) {
			debug("Field not found", "field", field.Name, "selector", field.Selector.String())
			return false
		}
		pause()

		if !holds(ctx, sess, field) {
			debug("Field verification failed, retrying", "field", field.Name)
			if !refill(ctx, sess, field, timeout) {
				return false
			}
		}

		for _, prev := range fields[:i] {
			if holds(ctx, sess, prev) {
				continue
			}
			debug("Field cleared by sibling input, refilling", "field", prev.Name, "after", field.Name)
			if !refill(ctx, sess, prev, timeout) {
				return false
			}
			pause()
		}
	}

	for _, field := range fields {
		if !holds(ctx, sess, field) {
			debug("Final verification failed", "field", field.Name)
			return false
		}
	}
	return true
}

func holds(ctx context.Context, sess output.BrowserSession, f VerifiedField) bool {
	v, ok := sess.Value(ctx, f.Selector)
	return ok && v == f.Value
}

func refill(ctx context.Context, sess output.BrowserSession, f VerifiedField, timeout time.Duration) bool {
	if !sess.Fill(ctx, f.Selector, f.Value, timeout) {
		return false
	}
	return holds(ctx, sess, f)
}
