package output

import (
	"context"

	"account-automator/internal/domain/entity"
)

type UserInteractionPort interface {
	WaitForUserAction(ctx context.Context, message string) error
	Confirm(ctx context.Context, question string) (bool, error)

	ShowResult(ctx context.Context, label string, result entity.AutomationResult)
	ShowServices(ctx context.Context, services []entity.ServiceInfo)
	ShowGenerated(ctx context.Context, accounts []entity.GeneratedAccount)
}
