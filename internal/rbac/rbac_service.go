package rbac

import (
	"sync"

	"employee-portal/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	// Can is the single capability check used by every workflow operation.
	Can(role Role, action Action, rel Relationship) bool
	Capabilities(role Role) []Capability
}

type Capability struct {
	Action        Action         `json:"action"`
	Relationships []Relationship `json:"relationships"`
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	enforcer, err := infra.NewEnforcer(modelText)
	if err != nil {
		return nil, err
	}

	for _, row := range defaultPolicy() {
		if _, err := enforcer.AddPolicy(string(row.role), string(row.action), row.rel); err != nil {
			return nil, err
		}
	}
	l.Debug("rbac policy loaded", zap.Int("rules", len(defaultPolicy())))

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Can(role Role, action Action, rel Relationship) bool {
	if _, ok := ParseRole(string(role)); !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(string(role), string(action), string(rel))
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", string(role)),
			zap.String("action", string(action)),
			zap.String("relationship", string(rel)),
			zap.Error(err),
		)
		return false
	}
	return allowed
}

func (s *service) Capabilities(role Role) []Capability {
	caps := make([]Capability, 0, len(AllActions))
	for _, action := range AllActions {
		var rels []Relationship
		for _, rel := range AllRelationships {
			if s.Can(role, action, rel) {
				rels = append(rels, rel)
			}
		}
		if len(rels) > 0 {
			caps = append(caps, Capability{Action: action, Relationships: rels})
		}
	}
	return caps
}
