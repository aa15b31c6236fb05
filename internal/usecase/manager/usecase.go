package manager

import (
	"context"
	"fmt"

	"account-automator/internal/application/port/input"
	"account-automator/internal/application/port/output"
	"account-automator/internal/application/service"
	"account-automator/internal/domain/entity"
)

var _ input.AutomationManager = (*UseCase)(nil)

type UseCase struct {
	services  *service.ServiceRegistry
	generator output.CredentialGenerator
	logger    output.LoggerPort
}

func New(
	services *service.ServiceRegistry,
	generator output.CredentialGenerator,
	logger output.LoggerPort,
) *UseCase {
	return &UseCase{
		services:  services,
		generator: generator,
		logger:    logger,
	}
}

func (uc *UseCase) IsSupported(t entity.AccountType) bool {
	return uc.services.Has(t)
}

func (uc *UseCase) SupportedTypes() []entity.AccountType {
	return uc.services.Types()
}

func (uc *UseCase) ServiceInfo(t entity.AccountType) (entity.ServiceInfo, bool) {
	svc, ok := uc.services.Get(t)
	if !ok {
		return entity.ServiceInfo{}, false
	}
	return svc.Info(), true
}

// Infos lists every supported service in type order.
func (uc *UseCase) Infos() []entity.ServiceInfo {
	return uc.services.Infos()
}

func (uc *UseCase) Register(ctx context.Context, t entity.AccountType, data entity.RegistrationData, opts entity.Options) entity.AutomationResult {
	svc, res, ok := uc.lookup(t)
	if !ok {
		return res
	}
	if err := data.Validate(); err != nil {
		return entity.NewResult(entity.StatusFailed, "invalid registration data: "+err.Error())
	}

	uc.logger.Info("Starting registration", "service", svc.ServiceName(), "email", data.Email)
	return uc.guard(t, "register", func() entity.AutomationResult {
		return svc.Register(ctx, data, opts)
	})
}

func (uc *UseCase) Login(ctx context.Context, t entity.AccountType, data entity.LoginData, opts entity.Options) entity.AutomationResult {
	svc, res, ok := uc.lookup(t)
	if !ok {
		return res
	}
	if err := data.Validate(); err != nil {
		return entity.NewResult(entity.StatusFailed, "invalid login data: "+err.Error())
	}

	uc.logger.Info("Starting login", "service", svc.ServiceName(), "email", data.Email)
	return uc.guard(t, "login", func() entity.AutomationResult {
		return svc.Login(ctx, data, opts)
	})
}

func (uc *UseCase) RegisterGenerated(ctx context.Context, t entity.AccountType, req entity.GenerateRequest, opts entity.Options) entity.AutomationResult {
	svc, res, ok := uc.lookup(t)
	if !ok {
		return res
	}
	if uc.generator == nil {
		return entity.NewResult(entity.StatusFailed, "no credential generator configured")
	}

	uc.logger.Info("Starting generated registration", "service", svc.ServiceName())
	return uc.guard(t, "register_generated", func() entity.AutomationResult {
		return svc.RegisterGenerated(ctx, uc.generator, req, opts)
	})
}

// RegisterBatch processes reqs in order and stops after the first result that
// needs a human, or when ctx is done.
func (uc *UseCase) RegisterBatch(ctx context.Context, reqs []input.RegistrationRequest, opts entity.Options) *input.BatchResult {
	items := make([]batchItem, len(reqs))
	for i, req := range reqs {
		items[i] = batchItem{t: req.Type, run: func() entity.AutomationResult {
			return uc.Register(ctx, req.Type, req.Data, opts)
		}}
	}
	return uc.batch(ctx, "register", items)
}

func (uc *UseCase) LoginBatch(ctx context.Context, reqs []input.LoginRequest, opts entity.Options) *input.BatchResult {
	items := make([]batchItem, len(reqs))
	for i, req := range reqs {
		items[i] = batchItem{t: req.Type, run: func() entity.AutomationResult {
			return uc.Login(ctx, req.Type, req.Data, opts)
		}}
	}
	return uc.batch(ctx, "login", items)
}

type batchItem struct {
	t   entity.AccountType
	run func() entity.AutomationResult
}

func (uc *UseCase) batch(ctx context.Context, op string, items []batchItem) *input.BatchResult {
	out := input.NewBatchResult()
	uc.logger.Info("Batch started", "operation", op, "size", len(items))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("Batch cancelled", "operation", op, "processed", i, "error", err)
			out.Halted = true
			out.Remaining = len(items) - i
			return out
		}

		label := BatchLabel(item.t, i)
		res := item.run()
		out.Add(label, res)
		uc.logger.Info("Batch item finished", "label", label, "status", res.Status.String())

		if res.NeedsManualIntervention() {
			uc.logger.Warn("Batch halted for manual intervention", "label", label, "status", res.Status.String())
			out.Halted = true
			out.Remaining = len(items) - i - 1
			return out
		}
	}

	uc.logger.Info("Batch finished", "operation", op, "processed", out.Len())
	return out
}

// BatchLabel is the result key of the index-th batch entry.
func BatchLabel(t entity.AccountType, index int) string {
	return fmt.Sprintf("%s_%d", t, index)
}

func (uc *UseCase) lookup(t entity.AccountType) (input.ServiceAutomation, entity.AutomationResult, bool) {
	svc, ok := uc.services.Get(t)
	if !ok {
		uc.logger.Warn("Unsupported account type", "type", string(t))
		return nil, entity.NewResult(entity.StatusFailed, fmt.Sprintf("unsupported account type: %s", t)), false
	}
	return svc, entity.AutomationResult{}, true
}

// guard converts a panic escaping an automation into an UnknownError result.
func (uc *UseCase) guard(t entity.AccountType, op string, fn func() entity.AutomationResult) (result entity.AutomationResult) {
	defer func() {
		if p := recover(); p != nil {
			uc.logger.Error("Automation panicked", "type", string(t), "operation", op, "panic", p)
			result = entity.NewResult(entity.StatusUnknownError, fmt.Sprintf("%s %s failed: %v", t, op, p))
		}
	}()
	return fn()
}
