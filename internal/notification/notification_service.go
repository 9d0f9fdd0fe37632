package notification

import (
	"context"
	"sort"

	"employee-portal/internal/rbac"

	"go.uber.org/zap"
)

type Service interface {
	ListForCaller(ctx context.Context, employeeID string, role rbac.Role, limit int) ([]Message, error)
}

type CapabilityChecker interface {
	Can(role rbac.Role, action rbac.Action, rel rbac.Relationship) bool
}

type service struct {
	inbox   Inbox
	checker CapabilityChecker
	logger  *zap.Logger
}

func NewService(inbox Inbox, checker CapabilityChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{inbox: inbox, checker: checker, logger: l}
}

// ListForCaller merges the personal inbox with the shared HR inbox for
// callers who review the HR queue, newest first.
func (s *service) ListForCaller(ctx context.Context, employeeID string, role rbac.Role, limit int) ([]Message, error) {
	msgs, err := s.inbox.List(ctx, InboxKey(employeeID), limit)
	if err != nil {
		s.logger.Error("list inbox failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	if s.checker.Can(role, rbac.ActionReviewQueue, rbac.RelNone) {
		shared, err := s.inbox.List(ctx, HRInboxKey, limit)
		if err != nil {
			s.logger.Error("list hr inbox failed", zap.Error(err))
			return nil, err
		}
		msgs = append(msgs, shared...)
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].OccurredAt.After(msgs[j].OccurredAt)
		})
	}

	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}
