package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"account-automator/internal/domain/entity"
)

const (
	msgUnclear         = "outcome unclear, manual check required"
	msgVerifyEmail     = "email verification required, check the inbox and follow the link"
	msgVerifyPhone     = "phone verification required, complete it manually"
	msgCaptchaRequired = "captcha required, solve it manually"
)

// classify maps the post-submit page state to a status. Order matters: the
// first matching rule wins.
func (d *Driver) classify(ctx context.Context, r *run, echo map[string]any, email string) entity.AutomationResult {
	html := r.sess.CurrentHTML(ctx)

	if indicator, ok := containsAny(html, d.desc.PhoneVerificationIndicators); ok {
		r.log.Info("Phone verification detected", "indicator", indicator)
		return r.result(ctx, entity.StatusPhoneVerificationRequired, msgVerifyPhone, "phone_verification").
			WithData(map[string]any{"email": email})
	}
	if indicator, ok := containsAny(html, d.desc.VerificationIndicators); ok {
		r.log.Info("Email verification detected", "indicator", indicator)
		return r.result(ctx, entity.StatusEmailVerificationRequired, msgVerifyEmail, "email_verification").
			WithData(map[string]any{"email": email})
	}

	url := strings.ToLower(r.sess.CurrentURL(ctx))
	if indicator, ok := containsAny(url, d.desc.SuccessURLIndicators); ok {
		r.log.Info("Success URL reached", "url", url, "indicator", indicator)
		msg := fmt.Sprintf("%s %s succeeded", d.desc.Name, r.op)
		return r.result(ctx, entity.StatusSuccess, msg, "success").WithData(echo)
	}

	for _, sel := range d.desc.ErrorSelectors {
		text, ok := r.sess.Text(ctx, sel, r.opts.ProbeTimeout)
		text = strings.TrimSpace(text)
		if !ok || text == "" {
			continue
		}
		r.log.Info("Error container found", "selector", sel.String(), "text", text)
		return d.classifyErrorText(ctx, r, text)
	}

	if r.op == opLogin {
		if sel, ok := r.firstPresent(ctx, d.desc.CaptchaSelectors); ok {
			r.log.Info("Captcha detected", "selector", sel.String())
			return r.result(ctx, entity.StatusCaptchaRequired, msgCaptchaRequired, "captcha_required")
		}
	}

	r.log.Warn("Outcome unclear", "url", url)
	return r.result(ctx, entity.StatusUnknownError, msgUnclear, "unclear")
}

func (d *Driver) classifyErrorText(ctx context.Context, r *run, text string) entity.AutomationResult {
	lower := strings.ToLower(text)

	if _, ok := containsAny(lower, d.desc.AccountExistsIndicators); ok {
		return r.result(ctx, entity.StatusAccountExists, "account already exists: "+text, "account_exists")
	}
	if r.op == opLogin {
		if _, ok := containsAny(lower, d.desc.InvalidCredentialIndicators); ok {
			return r.result(ctx, entity.StatusInvalidCredentials, "invalid credentials: "+text, "invalid_credentials")
		}
	}
	return r.result(ctx, entity.StatusFailed, fmt.Sprintf("%s failed: %s", r.op, text), "error")
}

// statusForError sniffs a driver error the way the status taxonomy expects.
func statusForError(err error) entity.AutomationStatus {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return entity.StatusTimeout
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return entity.StatusTimeout
	case strings.Contains(msg, "net::err_"), strings.Contains(msg, "network"), strings.Contains(msg, "connection"):
		return entity.StatusNetworkError
	default:
		return entity.StatusUnknownError
	}
}

func containsAny(haystack string, needles []string) (string, bool) {
	for _, n := range needles {
		if n != "" && strings.Contains(haystack, strings.ToLower(n)) {
			return n, true
		}
	}
	return "", false
}
