package automation

import (
	"strings"

	"account-automator/internal/domain/entity"
)

// FieldSpec binds a data key (entity.Field*) to its locator candidates.
type FieldSpec struct {
	Key        string
	Candidates []entity.Selector
}

// FlowSpec is the page contract of one operation.
type FlowSpec struct {
	// Anchor proves the page loaded; waited for with the long anchor timeout.
	Anchor []entity.Selector
	// Required fields fail the operation when they cannot be filled.
	Required []FieldSpec
	// Optional fields are filled when both the value and a candidate exist.
	Optional []FieldSpec
	// Consent holds the terms checkbox for signup and remember-me for login.
	Consent []entity.Selector
	Submit  []entity.Selector
}

// Descriptor is everything that differs between two services. Control flow
// lives in Driver.
type Descriptor struct {
	Type            entity.AccountType
	Name            string
	RegistrationURL string
	LoginURL        string
	HomeURL         string

	Register FlowSpec
	Login    FlowSpec

	// VerifyRequired fills registration fields through FillWithVerification,
	// for forms that clear sibling inputs while typing.
	VerifyRequired bool

	VerificationIndicators      []string
	PhoneVerificationIndicators []string
	SuccessURLIndicators        []string
	ErrorSelectors              []entity.Selector
	AccountExistsIndicators     []string
	InvalidCredentialIndicators []string
	CaptchaSelectors            []entity.Selector
}

// Slug is the lower-case prefix used for screenshot names.
func (d Descriptor) Slug() string {
	if d.Type != "" {
		return string(d.Type)
	}
	return strings.ToLower(strings.ReplaceAll(d.Name, " ", "_"))
}

func (d Descriptor) Info() entity.ServiceInfo {
	return entity.ServiceInfo{
		Type:            d.Type,
		Name:            d.Name,
		RegistrationURL: d.RegistrationURL,
		LoginURL:        d.LoginURL,
	}
}

func (d Descriptor) flow(op operation) FlowSpec {
	if op == opLogin {
		return d.Login
	}
	return d.Register
}

// withDefaults fills every classification list the descriptor leaves empty.
func (d Descriptor) withDefaults() Descriptor {
	if len(d.VerificationIndicators) == 0 {
		d.VerificationIndicators = defaultVerificationIndicators
	}
	if len(d.PhoneVerificationIndicators) == 0 {
		d.PhoneVerificationIndicators = defaultPhoneVerificationIndicators
	}
	if len(d.SuccessURLIndicators) == 0 {
		d.SuccessURLIndicators = defaultSuccessURLIndicators
	}
	if len(d.ErrorSelectors) == 0 {
		d.ErrorSelectors = defaultErrorSelectors
	}
	if len(d.AccountExistsIndicators) == 0 {
		d.AccountExistsIndicators = defaultAccountExistsIndicators
	}
	if len(d.InvalidCredentialIndicators) == 0 {
		d.InvalidCredentialIndicators = defaultInvalidCredentialIndicators
	}
	if len(d.CaptchaSelectors) == 0 {
		d.CaptchaSelectors = defaultCaptchaSelectors
	}
	return d
}

var (
	defaultVerificationIndicators = []string{
		"verify",
		"confirmation",
		"check your email",
		"验证",
		"确认",
	}

	defaultPhoneVerificationIndicators = []string{
		"verify your phone",
		"phone verification",
		"sms code",
		"text message",
		"手机验证",
		"短信验证码",
	}

	defaultSuccessURLIndicators = []string{
		"dashboard",
		"welcome",
		"app",
		"workspace",
		"console",
		"profile",
	}

	defaultErrorSelectors = []entity.Selector{
		entity.CSS(".error"),
		entity.CSS(".alert-danger"),
		entity.CSS(`[role="alert"]`),
		entity.CSS(".text-red"),
		entity.CSS(".text-danger"),
	}

	defaultAccountExistsIndicators = []string{
		"already exists",
		"already registered",
		"already in use",
		"已存在",
	}

	defaultInvalidCredentialIndicators = []string{
		"invalid",
		"incorrect",
		"wrong password",
		"无效",
	}

	defaultCaptchaSelectors = []entity.Selector{
		entity.CSS(".captcha"),
		entity.CSS(".recaptcha"),
		entity.CSS("[data-sitekey]"),
		entity.CSS(`iframe[src*="recaptcha"]`),
		entity.CSS(`iframe[src*="hcaptcha"]`),
		entity.CSS(`iframe[src*="challenges.cloudflare.com"]`),
	}

	emailInput    = entity.CSS(`input[type="email"]`)
	passwordInput = entity.CSS(`input[type="password"]`)

	termsCheckboxes = []entity.Selector{
		entity.CSS(`input[type="checkbox"]`),
		entity.CSS(`input[name="terms"]`),
		entity.CSS(`input[name="agree"]`),
		entity.CSS(`[role="checkbox"]`),
	}

	rememberCheckboxes = []entity.Selector{
		entity.CSS(`input[name="remember"]`),
		entity.CSS(`input[type="checkbox"]`),
		entity.CSS(`[role="checkbox"]`),
	}

	loginButtons = []entity.Selector{
		entity.CSS(`button[type="submit"]`),
		entity.Text("button", "Sign In"),
		entity.Text("button", "Login"),
		entity.Text("button", "Log In"),
		entity.CSS(`input[type="submit"]`),
	}
)
