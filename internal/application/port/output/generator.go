package output

import "account-automator/internal/domain/entity"

type CredentialGenerator interface {
	Generate(req entity.GenerateRequest) (entity.GeneratedAccount, error)
	// RandomName returns a plausible first and last name pair.
	RandomName() (first, last string)
}
