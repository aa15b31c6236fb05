package input

import (
	"context"

	"account-automator/internal/application/port/output"
	"account-automator/internal/domain/entity"
)

// ServiceAutomation drives one service's signup and login pages. Register and
// Login always return a result; failures are encoded in its status.
type ServiceAutomation interface {
	Type() entity.AccountType
	ServiceName() string
	RegistrationURL() string
	LoginURL() string
	Info() entity.ServiceInfo

	Register(ctx context.Context, data entity.RegistrationData, opts entity.Options) entity.AutomationResult
	Login(ctx context.Context, data entity.LoginData, opts entity.Options) entity.AutomationResult
	RegisterGenerated(ctx context.Context, gen output.CredentialGenerator, req entity.GenerateRequest, opts entity.Options) entity.AutomationResult
}

type RegistrationRequest struct {
	Type entity.AccountType
	Data entity.RegistrationData
}

type LoginRequest struct {
	Type entity.AccountType
	Data entity.LoginData
}

// AutomationManager is the single entry point used by the CLI and HTTP API.
type AutomationManager interface {
	IsSupported(t entity.AccountType) bool
	SupportedTypes() []entity.AccountType
	ServiceInfo(t entity.AccountType) (entity.ServiceInfo, bool)

	Register(ctx context.Context, t entity.AccountType, data entity.RegistrationData, opts entity.Options) entity.AutomationResult
	Login(ctx context.Context, t entity.AccountType, data entity.LoginData, opts entity.Options) entity.AutomationResult
	RegisterGenerated(ctx context.Context, t entity.AccountType, req entity.GenerateRequest, opts entity.Options) entity.AutomationResult

	RegisterBatch(ctx context.Context, reqs []RegistrationRequest, opts entity.Options) *BatchResult
	LoginBatch(ctx context.Context, reqs []LoginRequest, opts entity.Options) *BatchResult
}
