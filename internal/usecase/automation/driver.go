package automation

import (
	"context"
	"fmt"
	"time"

	"account-automator/internal/application/port/input"
	"account-automator/internal/application/port/output"
	"account-automator/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.ServiceAutomation = (*Driver)(nil)

type operation string

const (
	opRegister operation = "register"
	opLogin    operation = "login"
)

// Driver runs the shared signup/login protocol against one Descriptor.
type Driver struct {
	desc     Descriptor
	sessions output.SessionFactory
	logger   output.LoggerPort
	pacer    *Pacer
}

type DriverOption func(*Driver)

// WithPacer replaces the human-delay source.
func WithPacer(p *Pacer) DriverOption {
	return func(d *Driver) { d.pacer = p }
}

func NewDriver(desc Descriptor, sessions output.SessionFactory, logger output.LoggerPort, opts ...DriverOption) *Driver {
	d := &Driver{
		desc:     desc.withDefaults(),
		sessions: sessions,
		logger:   logger,
		pacer:    NewPacer(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Type() entity.AccountType { return d.desc.Type }
func (d *Driver) ServiceName() string { return d.desc.Name }
func (d *Driver) RegistrationURL() string { return d.desc.RegistrationURL }
func (d *Driver) LoginURL() string { return d.desc.LoginURL }
func (d *Driver) Info() entity.ServiceInfo { return d.desc.Info() }
func (d *Driver) Descriptor() Descriptor { return d.desc }

func (d *Driver) Register(ctx context.Context, data entity.RegistrationData, opts entity.Options) entity.AutomationResult {
	if err := data.Validate(); err != nil {
		return entity.NewResult(entity.StatusFailed, "invalid registration data: "+err.Error())
	}

	values := map[string]string{}
	for k, v := range data.ToMap() {
		if s, ok := v.(string); ok {
			values[k] = s
		}
	}
	values[entity.FieldConfirmPassword] = data.Password

	if key, ok := missingRequired(d.desc.Register, values); ok {
		return entity.NewResult(entity.StatusFailed, fmt.Sprintf("%s registration requires %s", d.desc.Name, key))
	}

	return d.run(ctx, opRegister, opts, func(ctx context.Context, r *run) (entity.AutomationResult, error) {
		return d.execute(ctx, r, d.desc.RegistrationURL, values, false, data.ToMap(), data.Email)
	})
}

func (d *Driver) Login(ctx context.Context, data entity.LoginData, opts entity.Options) entity.AutomationResult {
	if err := data.Validate(); err != nil {
		return entity.NewResult(entity.StatusFailed, "invalid login data: "+err.Error())
	}

	values := map[string]string{
		entity.FieldEmail:    data.Email,
		entity.FieldPassword: data.Password,
	}

	return d.run(ctx, opLogin, opts, func(ctx context.Context, r *run) (entity.AutomationResult, error) {
		return d.execute(ctx, r, d.desc.LoginURL, values, data.RememberMe, data.ToMap(), data.Email)
	})
}

// RegisterGenerated creates credentials with gen, registers them and attaches
// the generated account to the result data.
func (d *Driver) RegisterGenerated(ctx context.Context, gen output.CredentialGenerator, req entity.GenerateRequest, opts entity.Options) entity.AutomationResult {
	if req.UsernamePrefix == "" {
		req.UsernamePrefix = d.desc.Slug()
	}
	if req.PasswordLength == 0 {
		req.PasswordLength = 12
	}

	account, err := gen.Generate(req)
	if err != nil {
		d.logger.Error("Account generation failed", "service", d.desc.Name, "error", err)
		return entity.NewResult(entity.StatusFailed, "account generation failed: "+err.Error())
	}
	first, last := gen.RandomName()

	result := d.Register(ctx, account.ToRegistration(first, last), opts)
	return result.WithData(map[string]any{
		"generated_account": map[string]any{
			"username":     account.Username,
			"email":        account.Email,
			"password":     account.Password,
			"domain":       account.Domain,
			"pin":          account.PIN,
			"first_name":   first,
			"last_name":    last,
			"generated_at": account.GeneratedAt.Format(time.RFC3339),
		},
	})
}

type run struct {
	sess  output.BrowserSession
	opts  entity.Options
	log   output.LoggerPort
	op    operation
	slug  string
	pacer *Pacer
}

func (d *Driver) run(
	ctx context.Context,
	op operation,
	opts entity.Options,
	body func(ctx context.Context, r *run) (entity.AutomationResult, error),
) (result entity.AutomationResult) {
	opts = opts.Normalize()
	log := d.logger.WithFields(map[string]any{
		"service":   d.desc.Name,
		"operation": string(op),
		"run_id":    uuid.NewString(),
	})

	// Covers the session factory and Close; panics inside body are handled
	// below while the session is still open for a screenshot.
	defer func() {
		if p := recover(); p != nil {
			log.Error("Automation panicked", "panic", p)
			result = entity.NewResult(entity.StatusUnknownError, fmt.Sprintf("driver panic: %v", p))
		}
	}()

	pacer := d.pacer
	if !opts.HumanDelays {
		pacer = NoopPacer()
	}

	log.Info("Opening browser session", "headless", opts.Headless)
	sess, err := d.sessions.Open(ctx, opts)
	if err != nil {
		log.Error("Browser init failed", "error", err)
		return entity.NewResult(entity.StatusFailed, fmt.Sprintf("%s: %v", output.ErrBrowserInit, err))
	}
	defer func() {
		sess.Close()
		log.Debug("Browser session closed")
	}()

	r := &run{sess: sess, opts: opts, log: log, op: op, slug: d.desc.Slug(), pacer: pacer}

	defer func() {
		if p := recover(); p != nil {
			result = r.fromError(ctx, fmt.Errorf("driver panic: %v", p))
		}
	}()

	result, err = body(ctx, r)
	if err != nil {
		return r.fromError(ctx, err)
	}
	log.Info("Automation finished", "status", result.Status.String(), "message", result.Message)
	return result
}

// execute is the shared protocol: navigate, anchor, fields, consent, submit,
// settle, classify.
func (d *Driver) execute(
	ctx context.Context,
	r *run,
	url string,
	values map[string]string,
	consent bool,
	echo map[string]any,
	email string,
) (entity.AutomationResult, error) {
	flow := d.desc.flow(r.op)

	r.log.Info("Navigating", "url", url)
	if err := r.sess.Navigate(ctx, url); err != nil {
		return entity.AutomationResult{}, err
	}
	if err := r.pause(ctx, 2*time.Second, 4*time.Second); err != nil {
		return entity.AutomationResult{}, err
	}

	if _, ok := r.firstPresentWithin(ctx, flow.Anchor, r.opts.AnchorTimeout); !ok {
		if err := ctx.Err(); err != nil {
			return entity.AutomationResult{}, err
		}
		return r.result(ctx, entity.StatusFailed, fmt.Sprintf("%s page did not load", r.op), "page_load_failed"), nil
	}

	if res, ok := d.fillRequired(ctx, r, flow, values); !ok {
		if err := ctx.Err(); err != nil {
			return entity.AutomationResult{}, err
		}
		return res, nil
	}

	d.fillOptional(ctx, r, flow, values)

	if r.op == opRegister || consent {
		r.check(ctx, flow.Consent)
	}
	if err := r.pause(ctx, time.Second, 2*time.Second); err != nil {
		return entity.AutomationResult{}, err
	}

	if sel, ok := r.clickFirst(ctx, flow.Submit); ok {
		r.log.Info("Submitted form", "selector", sel.String())
	} else {
		if err := ctx.Err(); err != nil {
			return entity.AutomationResult{}, err
		}
		return r.result(ctx, entity.StatusFailed, "submit control not found", "submit_not_found"), nil
	}

	if err := r.pause(ctx, 3*time.Second, 5*time.Second); err != nil {
		return entity.AutomationResult{}, err
	}

	return d.classify(ctx, r, echo, email), nil
}

func (d *Driver) fillRequired(ctx context.Context, r *run, flow FlowSpec, values map[string]string) (entity.AutomationResult, bool) {
	if r.op == opRegister && d.desc.VerifyRequired {
		fields := make([]VerifiedField, 0, len(flow.Required))
		for _, fs := range flow.Required {
			sel, ok := r.firstPresent(ctx, fs.Candidates)
			if !ok {
				return r.result(ctx, entity.StatusFailed, "field not found: "+fs.Key, fs.Key+"_not_found"), false
			}
			fields = append(fields, VerifiedField{Name: fs.Key, Selector: sel, Value: values[fs.Key]})
		}
		settle := func(ctx context.Context) { _ = r.pause(ctx, 500*time.Millisecond, time.Second) }
		if !fillWithVerification(ctx, r.sess, fields, r.opts.ProbeTimeout, settle, r.log) {
			return r.result(ctx, entity.StatusFailed, "form fill failed", "form_failed"), false
		}
		return entity.AutomationResult{}, true
	}

	for _, fs := range flow.Required {
		sel, ok := r.fillFirst(ctx, fs.Candidates, values[fs.Key])
		if !ok {
			r.log.Warn("Required field fill failed", "field", fs.Key)
			return r.result(ctx, entity.StatusFailed, "failed to fill "+fs.Key, fs.Key+"_failed"), false
		}
		r.log.Debug("Filled field", "field", fs.Key, "selector", sel.String())
		_ = r.pause(ctx, time.Second, 2*time.Second)
	}
	return entity.AutomationResult{}, true
}

func (d *Driver) fillOptional(ctx context.Context, r *run, flow FlowSpec, values map[string]string) {
	for _, fs := range flow.Optional {
		value := values[fs.Key]
		if value == "" {
			continue
		}
		if sel, ok := r.fillFirst(ctx, fs.Candidates, value); ok {
			r.log.Debug("Filled optional field", "field", fs.Key, "selector", sel.String())
			_ = r.pause(ctx, 500*time.Millisecond, time.Second)
		} else {
			r.log.Debug("Optional field skipped", "field", fs.Key)
		}
	}
}

func missingRequired(flow FlowSpec, values map[string]string) (string, bool) {
	for _, fs := range flow.Required {
		if values[fs.Key] == "" {
			return fs.Key, true
		}
	}
	return "", false
}
