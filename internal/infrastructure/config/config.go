package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"account-automator/internal/domain/entity"
	"account-automator/internal/infrastructure/browser/rod"
	"account-automator/internal/infrastructure/generator"
	"account-automator/internal/infrastructure/logger"
	"account-automator/internal/usecase/automation"

	"github.com/spf13/viper"
)

const (
	EnvPrefix       = "AUTOMATOR"
	DefaultFileName = "automator"
)

type Config struct {
	Browser   BrowserConfig   `mapstructure:"browser" yaml:"browser"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	// Services adds drivers built from the generic signup template.
	Services []ServiceConfig `mapstructure:"services" yaml:"services"`
}

type ServiceConfig struct {
	Type                 string   `mapstructure:"type" yaml:"type"`
	Name                 string   `mapstructure:"name" yaml:"name"`
	RegistrationURL      string   `mapstructure:"registration_url" yaml:"registration_url"`
	LoginURL             string   `mapstructure:"login_url" yaml:"login_url"`
	SuccessURLIndicators []string `mapstructure:"success_url_indicators" yaml:"success_url_indicators"`
}

type BrowserConfig struct {
	Headless           bool          `mapstructure:"headless" yaml:"headless"`
	Binary             string        `mapstructure:"binary" yaml:"binary"`
	Timeout            time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ProbeTimeout       time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout"`
	AnchorTimeout      time.Duration `mapstructure:"anchor_timeout" yaml:"anchor_timeout"`
	ScreenshotDir      string        `mapstructure:"screenshot_dir" yaml:"screenshot_dir"`
	UserAgent          string        `mapstructure:"user_agent" yaml:"user_agent"`
	HumanDelays        bool          `mapstructure:"human_delays" yaml:"human_delays"`
	Stealth            bool          `mapstructure:"stealth" yaml:"stealth"`
	NoSandbox          bool          `mapstructure:"no_sandbox" yaml:"no_sandbox"`
	DisableImages      bool          `mapstructure:"disable_images" yaml:"disable_images"`
	MaxScreenshotWidth int           `mapstructure:"max_screenshot_width" yaml:"max_screenshot_width"`
	Trace              bool          `mapstructure:"trace" yaml:"trace"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
	Dir    string `mapstructure:"dir" yaml:"dir"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type GeneratorConfig struct {
	DefaultDomain  string   `mapstructure:"default_domain" yaml:"default_domain"`
	Domains        []string `mapstructure:"domains" yaml:"domains"`
	PasswordLength int      `mapstructure:"password_length" yaml:"password_length"`
	PINLength      int      `mapstructure:"pin_length" yaml:"pin_length"`
}

// SetDefaults registers every key so AutomaticEnv can override it.
func SetDefaults(v *viper.Viper) {
	opts := entity.DefaultOptions()
	factory := rod.DefaultFactoryConfig()
	logCfg := logger.DefaultConfig()
	gen := generator.DefaultConfig()

	v.SetDefault("browser.headless", opts.Headless)
	v.SetDefault("browser.binary", "")
	v.SetDefault("browser.timeout", opts.Timeout)
	v.SetDefault("browser.probe_timeout", opts.ProbeTimeout)
	v.SetDefault("browser.anchor_timeout", opts.AnchorTimeout)
	v.SetDefault("browser.screenshot_dir", opts.ScreenshotDir)
	v.SetDefault("browser.user_agent", opts.UserAgent)
	v.SetDefault("browser.human_delays", opts.HumanDelays)
	v.SetDefault("browser.stealth", opts.Stealth)
	v.SetDefault("browser.no_sandbox", factory.NoSandbox)
	v.SetDefault("browser.disable_images", factory.DisableImages)
	v.SetDefault("browser.max_screenshot_width", factory.MaxScreenshotWidth)
	v.SetDefault("browser.trace", false)

	v.SetDefault("log.level", logCfg.Level)
	v.SetDefault("log.format", logCfg.Format)
	v.SetDefault("log.file", "")
	v.SetDefault("log.dir", logCfg.Dir)

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("generator.default_domain", gen.DefaultDomain)
	v.SetDefault("generator.domains", gen.Domains)
	v.SetDefault("generator.password_length", gen.PasswordLength)
	v.SetDefault("generator.pin_length", gen.PINLength)
}

// Load reads file (or ./automator.yaml when file is empty) and the
// AUTOMATOR_* environment. A missing default file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultFileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Short alias kept for existing deployments.
	if err := v.BindEnv("browser.probe_timeout", "AUTOMATOR_BROWSER_PROBE_TIMEOUT", "AUTOMATOR_PROBE_TIMEOUT"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Options() entity.Options {
	return entity.Options{
		Headless:          c.Browser.Headless,
		Timeout:           c.Browser.Timeout,
		BrowserBinaryPath: c.Browser.Binary,
		ProbeTimeout:      c.Browser.ProbeTimeout,
		AnchorTimeout:     c.Browser.AnchorTimeout,
		ScreenshotDir:     c.Browser.ScreenshotDir,
		UserAgent:         c.Browser.UserAgent,
		HumanDelays:       c.Browser.HumanDelays,
		Stealth:           c.Browser.Stealth,
	}.Normalize()
}

// Descriptors builds the configured generic services.
func (c *Config) Descriptors() ([]automation.Descriptor, error) {
	descs := make([]automation.Descriptor, 0, len(c.Services))
	for i, svc := range c.Services {
		t, err := entity.ParseAccountType(svc.Type)
		if err != nil {
			return nil, fmt.Errorf("services[%d]: %w", i, err)
		}
		if svc.RegistrationURL == "" || svc.LoginURL == "" {
			return nil, fmt.Errorf("services[%d]: registration_url and login_url are required", i)
		}
		name := svc.Name
		if name == "" {
			name = t.DisplayName()
		}
		d := automation.NewGenericDescriptor(t, name, svc.RegistrationURL, svc.LoginURL)
		if len(svc.SuccessURLIndicators) > 0 {
			d.SuccessURLIndicators = svc.SuccessURLIndicators
		}
		descs = append(descs, d)
	}
	return descs, nil
}

func (c *Config) FactoryConfig() rod.FactoryConfig {
	return rod.FactoryConfig{
		NoSandbox:          c.Browser.NoSandbox,
		DisableImages:      c.Browser.DisableImages,
		MaxScreenshotWidth: c.Browser.MaxScreenshotWidth,
		Trace:              c.Browser.Trace,
	}
}

func (c *Config) LoggerConfig() logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	cfg.File = c.Log.File
	cfg.Dir = c.Log.Dir
	return cfg
}

func (c *Config) GeneratorConfig() generator.Config {
	cfg := generator.DefaultConfig()
	if c.Generator.DefaultDomain != "" {
		cfg.DefaultDomain = c.Generator.DefaultDomain
	}
	if len(c.Generator.Domains) > 0 {
		cfg.Domains = c.Generator.Domains
	}
	if c.Generator.PasswordLength > 0 {
		cfg.PasswordLength = c.Generator.PasswordLength
	}
	if c.Generator.PINLength > 0 {
		cfg.PINLength = c.Generator.PINLength
	}
	return cfg
}
