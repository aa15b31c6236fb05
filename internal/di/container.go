package di

import (
	"fmt"

	"account-automator/internal/application/port/output"
	"account-automator/internal/application/service"
	"account-automator/internal/domain/entity"
	"account-automator/internal/infrastructure/browser/rod"
	"account-automator/internal/infrastructure/config"
	"account-automator/internal/infrastructure/generator"
	"account-automator/internal/infrastructure/httpapi"
	"account-automator/internal/infrastructure/logger"
	"account-automator/internal/infrastructure/userinteraction"
	"account-automator/internal/usecase/automation"
	"account-automator/internal/usecase/manager"
)

type Container struct {
	Config    *config.Config
	Options   entity.Options
	Logger    output.LoggerPort
	Sessions  output.SessionFactory
	Services  *service.ServiceRegistry
	Generator *generator.Generator
	Manager   *manager.UseCase
	Console   *userinteraction.ConsoleUserInteraction
}

func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(cfg.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c, err := NewContainerWith(cfg, log, rod.NewSessionFactory(cfg.FactoryConfig(), log))
	if err != nil {
		log.Close()
		return nil, err
	}
	return c, nil
}

// NewContainerWith wires everything around an existing logger and session
// factory.
func NewContainerWith(cfg *config.Config, log output.LoggerPort, sessions output.SessionFactory) (*Container, error) {
	gen, err := generator.New(cfg.GeneratorConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	custom, err := cfg.Descriptors()
	if err != nil {
		return nil, fmt.Errorf("invalid service config: %w", err)
	}

	services := service.NewServiceRegistry()
	registerServices(services, sessions, log, append(automation.BuiltinDescriptors(), custom...))

	return &Container{
		Config:    cfg,
		Options:   cfg.Options(),
		Logger:    log,
		Sessions:  sessions,
		Services:  services,
		Generator: gen,
		Manager:   manager.New(services, gen, log),
		Console:   userinteraction.NewConsoleUserInteraction(),
	}, nil
}

func (c *Container) HTTPServer(addr string) *httpapi.Server {
	if addr == "" {
		addr = c.Config.Server.Addr
	}
	return httpapi.NewServer(httpapi.Config{Addr: addr, AccessLog: true}, c.Manager, c.Generator, c.Options, c.Logger)
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func registerServices(registry *service.ServiceRegistry, sessions output.SessionFactory, log output.LoggerPort, descs []automation.Descriptor) {
	for _, d := range descs {
		registry.Register(automation.NewDriver(d, sessions, log))
	}
}
