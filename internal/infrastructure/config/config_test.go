package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"account-automator/internal/domain/entity"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Equal(t, entity.DefaultOptions(), opts)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.LoggerConfig().Level)
	assert.True(t, cfg.FactoryConfig().DisableImages)
	assert.Equal(t, "hjj0185.email", cfg.GeneratorConfig().DefaultDomain)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automator.yaml")
	body := `
browser:
  headless: true
  timeout: 45s
  screenshot_dir: /tmp/shots
log:
  level: debug
generator:
  default_domain: example.io
  domains: [example.io, example.org]
  password_length: 16
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	opts := cfg.Options()
	assert.True(t, opts.Headless)
	assert.Equal(t, 45*time.Second, opts.Timeout)
	assert.Equal(t, "/tmp/shots", opts.ScreenshotDir)
	assert.Equal(t, entity.DefaultProbeTimeout, opts.ProbeTimeout)
	assert.Equal(t, "debug", cfg.LoggerConfig().Level)

	gen := cfg.GeneratorConfig()
	assert.Equal(t, "example.io", gen.DefaultDomain)
	assert.Equal(t, []string{"example.io", "example.org"}, gen.Domains)
	assert.Equal(t, 16, gen.PasswordLength)
	assert.Equal(t, 4, gen.PINLength)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTOMATOR_BROWSER_HEADLESS", "true")
	t.Setenv("AUTOMATOR_PROBE_TIMEOUT", "750ms")
	t.Setenv("AUTOMATOR_SERVER_ADDR", "127.0.0.1:9000")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 750*time.Millisecond, cfg.Browser.ProbeTimeout)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))

	assert.ErrorContains(t, err, "error reading config file")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automator.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browser: [unclosed"), 0o644))

	_, err := Load(viper.New(), path)

	assert.Error(t, err)
}

func TestDescriptors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automator.yaml")
	body := `
services:
  - type: tabnine
    registration_url: https://app.tabnine.example/signup
    login_url: https://app.tabnine.example/signin
    success_url_indicators: [home]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	descs, err := cfg.Descriptors()
	require.NoError(t, err)

	require.Len(t, descs, 1)
	assert.Equal(t, entity.AccountTypeTabnine, descs[0].Type)
	assert.Equal(t, "Tabnine", descs[0].Name)
	assert.Equal(t, []string{"home"}, descs[0].SuccessURLIndicators)
}

func TestDescriptors_Invalid(t *testing.T) {
	cfg := &Config{Services: []ServiceConfig{{Type: "myspace", RegistrationURL: "a", LoginURL: "b"}}}
	_, err := cfg.Descriptors()
	assert.ErrorContains(t, err, "services[0]")

	cfg = &Config{Services: []ServiceConfig{{Type: "tabnine"}}}
	_, err = cfg.Descriptors()
	assert.ErrorContains(t, err, "registration_url and login_url are required")
}
