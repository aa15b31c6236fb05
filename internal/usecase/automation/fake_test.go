package automation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"account-automator/internal/application/port/output"
	"account-automator/internal/domain/entity"
)

type fakeElement struct {
	value   string
	text    string
	checked bool
	noClick bool
	// locked elements ignore fills.
	locked  bool
	onFill  func(p *fakePage)
	onClick func(p *fakePage)
}

// fakePage is an in-memory BrowserSession. Elements are keyed by
// Selector.String().
type fakePage struct {
	mu       sync.Mutex
	elements map[string]*fakeElement
	url      string
	html     string

	navigateErr error
	panicOnWait bool

	navigated []string
	waited    []string
	filled    []string
	clicked   []string
	shots     []string
	closed    int
}

var _ output.BrowserSession = (*fakePage)(nil)

func newFakePage() *fakePage {
	return &fakePage{elements: make(map[string]*fakeElement)}
}

func (p *fakePage) add(sel entity.Selector, el *fakeElement) *fakePage {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements[sel.String()] = el
	return p
}

func (p *fakePage) el(sel entity.Selector) *fakeElement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elements[sel.String()]
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.navigated = append(p.navigated, url)
	if p.navigateErr != nil {
		return p.navigateErr
	}
	p.url = url
	return nil
}

func (p *fakePage) WaitForElement(ctx context.Context, sel entity.Selector, timeout time.Duration) bool {
	if p.panicOnWait {
		panic("cdp: target crashed")
	}
	p.waited = append(p.waited, sel.String())
	return p.el(sel) != nil
}

func (p *fakePage) Fill(ctx context.Context, sel entity.Selector, text string, timeout time.Duration) bool {
	el := p.el(sel)
	if el == nil {
		return false
	}
	p.filled = append(p.filled, sel.String())
	if !el.locked {
		el.value = text
	}
	if el.onFill != nil {
		el.onFill(p)
	}
	return true
}

func (p *fakePage) Value(ctx context.Context, sel entity.Selector) (string, bool) {
	el := p.el(sel)
	if el == nil {
		return "", false
	}
	return el.value, true
}

func (p *fakePage) IsChecked(ctx context.Context, sel entity.Selector) bool {
	el := p.el(sel)
	return el != nil && el.checked
}

func (p *fakePage) Click(ctx context.Context, sel entity.Selector, timeout time.Duration) bool {
	el := p.el(sel)
	if el == nil || el.noClick {
		return false
	}
	p.clicked = append(p.clicked, sel.String())
	el.checked = !el.checked
	if el.onClick != nil {
		el.onClick(p)
	}
	return true
}

func (p *fakePage) Text(ctx context.Context, sel entity.Selector, timeout time.Duration) (string, bool) {
	el := p.el(sel)
	if el == nil {
		return "", false
	}
	return el.text, true
}

func (p *fakePage) Screenshot(ctx context.Context, name string) string {
	p.shots = append(p.shots, name)
	return "screenshots/" + name + ".png"
}

func (p *fakePage) CurrentURL(ctx context.Context) string  { return p.url }
func (p *fakePage) CurrentHTML(ctx context.Context) string { return strings.ToLower(p.html) }

func (p *fakePage) Close() {
	p.closed++
}

func (p *fakePage) waitedFor(sel entity.Selector) bool {
	for _, w := range p.waited {
		if w == sel.String() {
			return true
		}
	}
	return false
}

type fakeFactory struct {
	page   *fakePage
	err    error
	panic  string
	opened int
	opts   entity.Options
}

func (f *fakeFactory) Open(ctx context.Context, opts entity.Options) (output.BrowserSession, error) {
	f.opened++
	f.opts = opts
	if f.panic != "" {
		panic(f.panic)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

type fakeGenerator struct {
	err error
	req entity.GenerateRequest
}

func (g *fakeGenerator) Generate(req entity.GenerateRequest) (entity.GeneratedAccount, error) {
	g.req = req
	if g.err != nil {
		return entity.GeneratedAccount{}, g.err
	}
	return entity.GeneratedAccount{
		Username:    req.UsernamePrefix + "123",
		Email:       req.UsernamePrefix + "1234567@example.io",
		Password:    "Secr3t!pass",
		Domain:      "example.io",
		GeneratedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

func (g *fakeGenerator) RandomName() (string, string) { return "Alex", "Smith" }

var errGenerate = errors.New("no domains")

// Selectors of the test service.
var (
	selEmail    = entity.CSS("#email")
	selPassword = entity.CSS("#password")
	selUsername = entity.Attr("name", "username")
	selTerms    = entity.CSS("#terms")
	selRemember = entity.CSS("#remember")
	selSubmit   = entity.Text("button", "Create account")
	selLogin    = entity.CSS(`button[type="submit"]`)
	selError    = entity.CSS(".error")
	selCaptcha  = entity.CSS("[data-sitekey]")
)

func testDescriptor() Descriptor {
	return Descriptor{
		Type:            "acme",
		Name:            "Acme",
		RegistrationURL: "https://acme.test/signup",
		LoginURL:        "https://acme.test/login",
		Register: FlowSpec{
			Anchor: []entity.Selector{selEmail},
			Required: []FieldSpec{
				{Key: entity.FieldEmail, Candidates: []entity.Selector{selEmail}},
				{Key: entity.FieldPassword, Candidates: []entity.Selector{selPassword}},
			},
			Optional: []FieldSpec{
				{Key: entity.FieldUsername, Candidates: []entity.Selector{entity.CSS("#nick"), selUsername}},
				{Key: entity.FieldCompany, Candidates: []entity.Selector{entity.CSS("#company")}},
			},
			Consent: []entity.Selector{selTerms},
			Submit:  []entity.Selector{entity.CSS("#missing-button"), selSubmit},
		},
		Login: FlowSpec{
			Anchor: []entity.Selector{selEmail},
			Required: []FieldSpec{
				{Key: entity.FieldEmail, Candidates: []entity.Selector{selEmail}},
				{Key: entity.FieldPassword, Candidates: []entity.Selector{selPassword}},
			},
			Consent: []entity.Selector{selRemember},
			Submit:  []entity.Selector{selLogin},
		},
		ErrorSelectors:   []entity.Selector{selError},
		CaptchaSelectors: []entity.Selector{selCaptcha},
	}
}

// signupPage returns a page with the full signup form; submitting runs then.
func signupPage(then func(p *fakePage)) *fakePage {
	p := newFakePage()
	p.add(selEmail, &fakeElement{})
	p.add(selPassword, &fakeElement{})
	p.add(selTerms, &fakeElement{})
	p.add(selSubmit, &fakeElement{onClick: then})
	return p
}

func loginPage(then func(p *fakePage)) *fakePage {
	p := newFakePage()
	p.add(selEmail, &fakeElement{})
	p.add(selPassword, &fakeElement{})
	p.add(selRemember, &fakeElement{})
	p.add(selLogin, &fakeElement{onClick: then})
	return p
}

func testOptions() entity.Options {
	opts := entity.DefaultOptions()
	opts.Headless = true
	opts.HumanDelays = false
	return opts
}

var (
	regData   = entity.RegistrationData{Email: "dev@acme.test", Password: "Secr3t!"}
	loginData = entity.LoginData{Email: "dev@acme.test", Password: "Secr3t!"}
)
