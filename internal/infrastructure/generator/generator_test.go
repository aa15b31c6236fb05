package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode"

	"account-automator/internal/domain/entity"
	"account-automator/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := New(DefaultConfig(), logger.NewNop(), WithSeed(42), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return g
}

func TestValidateDomain(t *testing.T) {
	tests := []struct {
		domain string
		valid  bool
	}{
		{"example.io", true},
		{"mail-box.example.com", true},
		{"a.b", false},
		{"nodot", false},
		{"", false},
		{"bad_chars.com", false},
		{"spa ce.com", false},
		{strings.Repeat("a", 250) + ".com", false},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			err := ValidateDomain(tt.domain)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidDomain)
			}
		})
	}
}

func TestNew_RejectsInvalidDomains(t *testing.T) {
	_, err := New(Config{Domains: []string{"nope"}}, nil)
	assert.ErrorIs(t, err, ErrInvalidDomain)

	_, err = New(Config{DefaultDomain: "x"}, nil)
	assert.ErrorIs(t, err, ErrInvalidDomain)
}

func TestDomains(t *testing.T) {
	g := newTestGenerator(t)

	assert.Equal(t, "hjj0185.email", g.DefaultDomain())
	assert.Equal(t, []string{"hjj0185.email", "tempmail.plus"}, g.Domains())

	require.NoError(t, g.SetDefaultDomain("example.io"))
	assert.Equal(t, "example.io", g.DefaultDomain())
	assert.Contains(t, g.Domains(), "example.io")

	require.NoError(t, g.AddDomain("example.io"))
	assert.Len(t, g.Domains(), 3, "duplicates are ignored")

	assert.ErrorIs(t, g.SetDefaultDomain("bad"), ErrInvalidDomain)
	assert.Equal(t, "example.io", g.DefaultDomain())

	domains := g.Domains()
	domains[0] = "mutated"
	assert.NotEqual(t, "mutated", g.Domains()[0])
}

func TestUsername(t *testing.T) {
	g := newTestGenerator(t)

	u := g.Username("dev", 8)
	assert.True(t, strings.HasPrefix(u, "dev"))
	assert.Len(t, u, 8)
	assert.True(t, isDigits(u[3:]))

	u = g.Username("averyverylongprefix", 8)
	assert.Len(t, u, len("averyverylongprefix")+3, "at least three digits")

	u = g.Username("", 0)
	var matched bool
	for _, p := range defaultPrefixes {
		if strings.HasPrefix(u, p) && isDigits(u[len(p):]) {
			matched = true
		}
	}
	assert.True(t, matched, u)
}

func TestEmail(t *testing.T) {
	g := newTestGenerator(t)
	unix := strconv.FormatInt(fixedNow.Unix(), 10)
	suffix := unix[len(unix)-4:]

	assert.Equal(t, "neo"+suffix+"@example.io", g.Email("example.io", "neo"))
	assert.True(t, strings.HasSuffix(g.Email("", "neo"), "@hjj0185.email"))
}

func TestPassword(t *testing.T) {
	g := newTestGenerator(t)

	for _, length := range []int{1, 4, 8, 12, 32} {
		for i := 0; i < 50; i++ {
			p := g.Password(length)
			assert.Len(t, p, max(length, 4))
			assert.True(t, strings.IndexFunc(p, unicode.IsLower) >= 0, p)
			assert.True(t, strings.IndexFunc(p, unicode.IsUpper) >= 0, p)
			assert.True(t, strings.IndexFunc(p, unicode.IsDigit) >= 0, p)
			assert.True(t, strings.ContainsAny(p, "!@#$%^&*"), p)
		}
	}
	assert.Len(t, g.Password(0), 12)
}

func TestPIN(t *testing.T) {
	g := newTestGenerator(t)

	assert.Len(t, g.PIN(0), 4)
	pin := g.PIN(6)
	assert.Len(t, pin, 6)
	assert.True(t, isDigits(pin))
}

func TestGenerate(t *testing.T) {
	g := newTestGenerator(t)

	acc, err := g.Generate(entity.GenerateRequest{UsernamePrefix: "cursor", PasswordLength: 16})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(acc.Username, "cursor"))
	assert.True(t, strings.HasPrefix(acc.Email, acc.Username))
	assert.Equal(t, "hjj0185.email", acc.Domain)
	assert.Len(t, acc.Password, 16)
	assert.Empty(t, acc.PIN)
	assert.Equal(t, fixedNow, acc.GeneratedAt)

	acc, err = g.Generate(entity.GenerateRequest{Domain: "example.io", IncludePIN: true})
	require.NoError(t, err)
	assert.Equal(t, "example.io", acc.Domain)
	assert.True(t, strings.HasSuffix(acc.Email, "@example.io"))
	assert.Len(t, acc.PIN, 4)

	acc, err = g.Generate(entity.GenerateRequest{PIN: "9999", IncludePIN: true})
	require.NoError(t, err)
	assert.Equal(t, "9999", acc.PIN)

	_, err = g.Generate(entity.GenerateRequest{Domain: "not valid"})
	assert.ErrorIs(t, err, ErrInvalidDomain)
}

func TestBatch(t *testing.T) {
	g := newTestGenerator(t)

	accounts, err := g.Batch(3, entity.GenerateRequest{UsernamePrefix: "test"})
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.True(t, strings.HasPrefix(accounts[0].Username, "test001"))
	assert.True(t, strings.HasPrefix(accounts[2].Username, "test003"))

	accounts, err = g.Batch(2, entity.GenerateRequest{Domain: "x"})
	assert.ErrorIs(t, err, ErrInvalidDomain)
	assert.Empty(t, accounts)
}

func TestRandomName(t *testing.T) {
	g := newTestGenerator(t)

	first, last := g.RandomName()
	assert.Contains(t, firstNames, first)
	assert.Contains(t, lastNames, last)
}

func TestExportText(t *testing.T) {
	g := newTestGenerator(t)
	accounts := []entity.GeneratedAccount{
		{Username: "dev123", Email: "dev123@example.io", Password: "Aa1!aaaa", Domain: "example.io", PIN: "1234", GeneratedAt: fixedNow},
		{Username: "dev456", Email: "dev456@example.io", Password: "Bb2@bbbb", Domain: "example.io", GeneratedAt: fixedNow},
	}

	path, err := g.Export(accounts, filepath.Join(t.TempDir(), "out", "accounts.txt"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# Count: 2")
	assert.Contains(t, text, "Account 1:\n  Username: dev123\n")
	assert.Contains(t, text, "  PIN: 1234\n")
	assert.Equal(t, 1, strings.Count(text, "PIN:"))
}

func TestExportYAML(t *testing.T) {
	g := newTestGenerator(t)
	accounts := []entity.GeneratedAccount{{Username: "u", Email: "u@example.io", Password: "p", Domain: "example.io", GeneratedAt: fixedNow}}

	path, err := g.Export(accounts, filepath.Join(t.TempDir(), "accounts.yaml"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc exportDoc
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, 1, doc.Count)
	assert.Equal(t, accounts[0].Email, doc.Accounts[0].Email)
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, nil, fixedNow))
	assert.Contains(t, buf.String(), "# Count: 0")
}

func isDigits(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}
