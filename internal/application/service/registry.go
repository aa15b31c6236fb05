package service

import (
	"sort"

	"account-automator/internal/application/port/input"
	"account-automator/internal/domain/entity"
)

// ServiceRegistry maps an account type to the automation that handles it.
type ServiceRegistry struct {
	services map[entity.AccountType]input.ServiceAutomation
}

func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{
		services: make(map[entity.AccountType]input.ServiceAutomation),
	}
}

// Register replaces any automation previously bound to the same type.
func (r *ServiceRegistry) Register(svc input.ServiceAutomation) {
	r.services[svc.Type()] = svc
}

func (r *ServiceRegistry) Get(t entity.AccountType) (input.ServiceAutomation, bool) {
	svc, ok := r.services[t]
	return svc, ok
}

func (r *ServiceRegistry) Has(t entity.AccountType) bool {
	_, ok := r.services[t]
	return ok
}

// Types lists the registered account types in lexical order.
func (r *ServiceRegistry) Types() []entity.AccountType {
	result := make([]entity.AccountType, 0, len(r.services))
	for t := range r.services {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (r *ServiceRegistry) Infos() []entity.ServiceInfo {
	types := r.Types()
	result := make([]entity.ServiceInfo, 0, len(types))
	for _, t := range types {
		result = append(result, r.services[t].Info())
	}
	return result
}
