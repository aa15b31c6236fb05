package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"account-automator/internal/application/port/output"
	"account-automator/internal/domain/entity"
)

var ErrInvalidDomain = errors.New("invalid email domain")

var _ output.CredentialGenerator = (*Generator)(nil)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
)

var (
	defaultPrefixes = []string{
		"dev", "code", "user", "test", "demo", "temp",
		"cursor", "ai", "prog", "tech", "beta", "alpha",
	}
	firstNames = []string{"Alex", "Jordan", "Taylor", "Casey", "Morgan", "Riley", "Avery", "Quinn", "Blake", "Cameron"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
)

type Config struct {
	DefaultDomain  string
	Domains        []string
	Prefixes       []string
	Symbols        string
	PasswordLength int
	PINLength      int
}

func DefaultConfig() Config {
	return Config{
		DefaultDomain:  "hjj0185.email",
		Domains:        []string{"hjj0185.email", "tempmail.plus"},
		Prefixes:       defaultPrefixes,
		Symbols:        "!@#$%^&*",
		PasswordLength: 12,
		PINLength:      4,
	}
}

// Generator produces throwaway account credentials. It is safe for
// concurrent use.
type Generator struct {
	mu            sync.Mutex
	rnd           *rand.Rand
	now           func() time.Time
	logger        output.LoggerPort
	defaultDomain string
	domains       []string
	prefixes      []string
	symbols       string
	passwordLen   int
	pinLen        int
}

type Option func(*Generator)

// WithSeed makes output deterministic.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rnd = rand.New(rand.NewSource(seed)) }
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func New(cfg Config, logger output.LoggerPort, opts ...Option) (*Generator, error) {
	def := DefaultConfig()
	if cfg.DefaultDomain == "" {
		cfg.DefaultDomain = def.DefaultDomain
	}
	if len(cfg.Domains) == 0 {
		cfg.Domains = def.Domains
	}
	if len(cfg.Prefixes) == 0 {
		cfg.Prefixes = def.Prefixes
	}
	if cfg.Symbols == "" {
		cfg.Symbols = def.Symbols
	}
	if cfg.PasswordLength <= 0 {
		cfg.PasswordLength = def.PasswordLength
	}
	if cfg.PINLength <= 0 {
		cfg.PINLength = def.PINLength
	}

	g := &Generator{
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
		logger:      logger,
		prefixes:    slices.Clone(cfg.Prefixes),
		symbols:     cfg.Symbols,
		passwordLen: cfg.PasswordLength,
		pinLen:      cfg.PINLength,
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, d := range cfg.Domains {
		if err := g.AddDomain(d); err != nil {
			return nil, err
		}
	}
	if err := g.SetDefaultDomain(cfg.DefaultDomain); err != nil {
		return nil, err
	}
	return g, nil
}

// ValidateDomain checks the basic shape of an email domain: a dot, letters,
// digits, '.' and '-' only, 4 to 253 characters.
func ValidateDomain(domain string) error {
	if len(domain) < 4 || len(domain) > 253 || !strings.Contains(domain, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	for _, r := range domain {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-'
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
		}
	}
	return nil
}

func (g *Generator) Domains() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.domains)
}

func (g *Generator) DefaultDomain() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.defaultDomain
}

// SetDefaultDomain validates domain, makes it the default and adds it to the
// known domains.
func (g *Generator) SetDefaultDomain(domain string) error {
	if err := g.AddDomain(domain); err != nil {
		return err
	}
	g.mu.Lock()
	g.defaultDomain = domain
	g.mu.Unlock()
	g.debug("Default domain set", "domain", domain)
	return nil
}

// AddDomain registers domain. Adding a known domain is a no-op.
func (g *Generator) AddDomain(domain string) error {
	if err := ValidateDomain(domain); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !slices.Contains(g.domains, domain) {
		g.domains = append(g.domains, domain)
	}
	return nil
}

// Username is prefix followed by random digits, at least three of them. An
// empty prefix picks one from the configured list.
func (g *Generator) Username(prefix string, length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.username(prefix, length)
}

func (g *Generator) username(prefix string, length int) string {
	if prefix == "" {
		prefix = g.prefixes[g.rnd.Intn(len(g.prefixes))]
	}
	if length <= 0 {
		length = 8
	}
	n := max(3, length-len(prefix))
	return prefix + g.pick(digits, n)
}

// Email appends the last four digits of the unix time to username. Empty
// arguments fall back to the default domain and a fresh username.
func (g *Generator) Email(domain, username string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.email(domain, username)
}

func (g *Generator) email(domain, username string) string {
	if domain == "" {
		domain = g.defaultDomain
	}
	if username == "" {
		username = g.username("", 10)
	}
	ts := strconv.FormatInt(g.now().Unix(), 10)
	if len(ts) > 4 {
		ts = ts[len(ts)-4:]
	}
	return fmt.Sprintf("%s%s@%s", username, ts, domain)
}

// Password returns a random password that contains at least one lowercase
// letter, uppercase letter, digit and symbol. Lengths shorter than the
// number of classes are raised to it.
func (g *Generator) Password(length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.password(length)
}

func (g *Generator) password(length int) string {
	if length <= 0 {
		length = g.passwordLen
	}
	classes := []string{lowercase, uppercase, digits, g.symbols}
	length = max(length, len(classes))

	all := strings.Join(classes, "")
	buf := []byte(g.pick(all, length))

	// Reserve one distinct position per class.
	positions := g.rnd.Perm(length)
	for i, class := range classes {
		buf[positions[i]] = class[g.rnd.Intn(len(class))]
	}
	return string(buf)
}

func (g *Generator) PIN(length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if length <= 0 {
		length = g.pinLen
	}
	return g.pick(digits, length)
}

// Generate builds one account. An explicit PIN wins over IncludePIN.
func (g *Generator) Generate(req entity.GenerateRequest) (entity.GeneratedAccount, error) {
	if req.Domain != "" {
		if err := ValidateDomain(req.Domain); err != nil {
			return entity.GeneratedAccount{}, err
		}
	}

	g.mu.Lock()
	username := g.username(req.UsernamePrefix, 0)
	email := g.email(req.Domain, username)
	password := g.password(req.PasswordLength)
	pin := req.PIN
	if pin == "" && req.IncludePIN {
		pin = g.pick(digits, g.pinLen)
	}
	now := g.now()
	g.mu.Unlock()

	domain := req.Domain
	if domain == "" {
		domain = email[strings.LastIndex(email, "@")+1:]
	}

	g.debug("Account generated", "email", email)
	return entity.GeneratedAccount{
		Username:    username,
		Email:       email,
		Password:    password,
		Domain:      domain,
		PIN:         pin,
		GeneratedAt: now,
	}, nil
}

// Batch generates count accounts. A prefix gets a 1-based, three-digit
// sequence number per account.
func (g *Generator) Batch(count int, req entity.GenerateRequest) ([]entity.GeneratedAccount, error) {
	prefix := req.UsernamePrefix
	accounts := make([]entity.GeneratedAccount, 0, count)
	for i := range count {
		if prefix != "" {
			req.UsernamePrefix = fmt.Sprintf("%s%03d", prefix, i+1)
		}
		acc, err := g.Generate(req)
		if err != nil {
			return accounts, fmt.Errorf("generate account %d: %w", i+1, err)
		}
		accounts = append(accounts, acc)
	}
	g.debug("Batch generated", "count", len(accounts))
	return accounts, nil
}

func (g *Generator) RandomName() (string, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return firstNames[g.rnd.Intn(len(firstNames))], lastNames[g.rnd.Intn(len(lastNames))]
}

func (g *Generator) pick(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(alphabet[g.rnd.Intn(len(alphabet))])
	}
	return b.String()
}

func (g *Generator) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}
