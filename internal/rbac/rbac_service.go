package rbac

import (
	"context"
	"sync"

	"go-teamdesk/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

// RoleLookup resolves the stored role of a user. Users without a role record
// resolve to domain.RoleUnassigned.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (domain.Role, error)
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
	SubjectOf(ctx context.Context, userID string, isStaff bool) (string, error)
	PermissionsOf(subject string) ([][]string, error)
}

type service struct {
	roles    RoleLookup
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(roles RoleLookup, enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	s := &service{roles: roles, enforcer: enforcer, logger: l}
	if err := s.loadDefaultPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadDefaultPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	for _, g := range defaultGrouping {
		if _, err := s.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}
	for _, p := range defaultPolicy {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	s.logger.Debug("rbac policy loaded",
		zap.Int("grouping", len(defaultGrouping)),
		zap.Int("policies", len(defaultPolicy)),
	)
	return nil
}

func (s *service) SubjectOf(ctx context.Context, userID string, isStaff bool) (string, error) {
	if isStaff {
		return SubjectAdmin, nil
	}
	role, err := s.roles.RoleOf(ctx, userID)
	if err != nil {
		return "", err
	}
	return role.Subject(), nil
}

func (s *service) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	subject, err := s.SubjectOf(ctx, req.UserID, req.IsStaff)
	if err != nil {
		s.logger.Error("rbac resolve subject failed", zap.String("user_id", req.UserID), zap.Error(err))
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(subject, req.Resource, req.Action)
	if err != nil {
		return false, err
	}
	s.logger.Debug("rbac enforce result",
		zap.String("user_id", req.UserID),
		zap.String("subject", subject),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) PermissionsOf(subject string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enforcer.GetImplicitPermissionsForUser(subject)
}
