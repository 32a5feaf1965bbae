package rbac

import (
	"sort"
	"sync"

	"hris-payroll/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Capabilities(role string) ([]domain.Capability, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{enforcer: enforcer, logger: logger.Named("rbac")}
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Role == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("role", req.Role),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("user_id", req.UserID),
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Capabilities lists everything role may do, including inherited grants,
// sorted by resource then action.
func (s *service) Capabilities(role string) ([]domain.Capability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perms, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.Capability]struct{}, len(perms))
	caps := make([]domain.Capability, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		c := domain.Capability{Resource: p[1], Action: p[2]}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool {
		if caps[i].Resource != caps[j].Resource {
			return caps[i].Resource < caps[j].Resource
		}
		return caps[i].Action < caps[j].Action
	})
	return caps, nil
}
