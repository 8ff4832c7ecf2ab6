package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

// Roles recognized from the identity provider's role claim. Anything else
// is treated as self-service only.
const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleEmployee = "EMPLOYEE"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Allowed(role, resource, action string) (bool, error)
	IsPrivileged(role string) bool
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

func (s *service) Allowed(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}

// IsPrivileged reports whether the role may act on employees other than
// the caller.
func (s *service) IsPrivileged(role string) bool {
	switch role {
	case RoleAdmin, RoleHR:
		return true
	default:
		return false
	}
}
