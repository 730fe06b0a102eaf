package rbac

import (
	"sync"

	"go-payroll/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	Enforce(role, resource, action string) (bool, error)
	Grant(role, resource, action string) error
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	if _, err := enforcer.AddPolicies(defaultPolicies()); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddGroupingPolicies(defaultGroupings()); err != nil {
		return nil, err
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Grant adds a permission at runtime, e.g. from deployment-specific bootstrap code.
func (s *service) Grant(role, resource, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.enforcer.AddPolicy(role, resource, action)
	return err
}
