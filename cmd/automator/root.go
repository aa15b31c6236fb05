package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"account-automator/internal/di"
	"account-automator/internal/domain/entity"
	"account-automator/internal/infrastructure/config"
	"account-automator/internal/infrastructure/env"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	cfgFile  string
	headless bool
	timeout  time.Duration
	browser  string
	jsonOut  bool

	out       io.Writer
	build     func(*config.Config) (*di.Container, error)
	container *di.Container
}

func newApp() *app {
	return &app{
		out:   color.Output,
		build: di.NewContainer,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "automator",
		Short:         "Register and log in to AI tool accounts through a real browser",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./automator.yaml)")
	flags.BoolVar(&a.headless, "headless", false, "run the browser without a window")
	flags.DurationVar(&a.timeout, "timeout", 0, "base timeout for browser operations")
	flags.StringVar(&a.browser, "browser", "", "path to a Chrome/Chromium binary")
	flags.BoolVar(&a.jsonOut, "json", false, "print results as JSON")

	root.SetOut(a.out)
	root.AddCommand(
		newServicesCmd(a),
		newInfoCmd(a),
		newRegisterCmd(a),
		newLoginCmd(a),
		newRegisterGeneratedCmd(a),
		newGenerateCmd(a),
		newBatchCmd(a),
		newServeCmd(a),
		newInspectCmd(a),
	)
	return root
}

// init loads .env files, then the viper config, then applies flags that
// were set explicitly.
func (a *app) init(cmd *cobra.Command) error {
	envs := env.NewEnvService("")
	if a.cfgFile == "" {
		a.cfgFile = envs.Get("AUTOMATOR_CONFIG")
	}

	cfg, err := config.Load(viper.New(), a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("headless") {
		cfg.Browser.Headless = a.headless
	}
	if flags.Changed("timeout") {
		cfg.Browser.Timeout = a.timeout
	}
	if flags.Changed("browser") {
		cfg.Browser.Binary = a.browser
	}

	c, err := a.build(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	a.container = c
	c.Logger.Debug("Automator started", "version", Version, "app_env", envs.AppEnv(), "env_files", envs.Loaded())
	return nil
}

func (a *app) close() {
	if a.container != nil {
		a.container.Close()
	}
}

func (a *app) parseType(raw string) (entity.AccountType, error) {
	t, err := entity.ParseAccountType(raw)
	if err != nil {
		return "", err
	}
	if !a.container.Manager.IsSupported(t) {
		return "", fmt.Errorf("unsupported account type: %s", t)
	}
	return t, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// report prints result and turns hard failures into a non-zero exit.
func (a *app) report(cmd *cobra.Command, label string, result entity.AutomationResult) error {
	if a.jsonOut {
		if err := a.printJSON(result); err != nil {
			return err
		}
	} else {
		a.container.Console.ShowResult(cmd.Context(), label, result)
	}
	if result.Status.IsHardFailure() {
		return fmt.Errorf("%s: %s", result.Status, result.Message)
	}
	return nil
}
