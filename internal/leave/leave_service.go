package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"employee-portal/internal/balance"
	"employee-portal/internal/employee"
	leaveerrors "employee-portal/internal/leave/errors"
	"employee-portal/internal/notification"
	"employee-portal/internal/rbac"
	"employee-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, callerID string, req CreateLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, callerID string, scope Scope) ([]LeaveResponse, error)
	GetByID(ctx context.Context, callerID, id string) (LeaveResponse, error)
	Update(ctx context.Context, callerID, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, callerID, id string) error
	// Transition runs one approval-workflow action against the request.
	Transition(ctx context.Context, callerID, id string, action rbac.Action, reason string) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	ledger    balance.Ledger
	notifier  notification.Notifier
	rbac      rbac.Service
	policy    Policy
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	ledger balance.Ledger,
	notifier notification.Notifier,
	rbacService rbac.Service,
	policy Policy,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		ledger:    ledger,
		notifier:  notifier,
		rbac:      rbacService,
		policy:    policy,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

// caller loads the authenticated employee; role and manager come from the
// directory, not from token claims.
func (s *service) caller(ctx context.Context, callerID string) (*employee.Employee, error) {
	if _, err := uuid.Parse(callerID); err != nil {
		return nil, leaveerrors.ErrCallerNotEmployee
	}
	empl, err := s.employees.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrCallerNotEmployee
		}
		return nil, err
	}
	return empl, nil
}

func (s *service) Create(ctx context.Context, callerID string, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave requested",
		zap.String("caller_id", callerID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !s.rbac.Can(caller.Role, rbac.ActionCreateLeave, rbac.RelOwner) {
		return LeaveResponse{}, leaveerrors.ErrForbidden
	}

	startDate, endDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		log.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	status := StatusPending
	if caller.Role == rbac.RoleDirector {
		status = StatusManagerApproved
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: caller.ID,
		LeaveType:  LeaveType(req.LeaveType),
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     status,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	l.Employee = caller

	if err := s.notifySubmitted(ctx, tx, l, caller); err != nil {
		log.Error("create leave notify failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", caller.ID.String()),
		zap.String("status", string(l.Status)),
	)

	return mapToResponse(*l), nil
}

func (s *service) notifySubmitted(ctx context.Context, tx *sql.Tx, l *LeaveRequest, caller *employee.Employee) error {
	ref := noteRef(l, "")
	requester := partyOf(caller)

	if l.Status == StatusManagerApproved {
		return s.notifier.Notify(ctx, tx, notification.DirectorSubmitted(ref, requester))
	}

	if caller.ManagerID == nil {
		s.logger.Warn("leave submitted without manager, nobody notified",
			zap.String("leave_id", l.ID.String()),
			zap.String("employee_id", caller.ID.String()),
		)
		return nil
	}
	manager, err := s.employees.WithTx(tx).FindByID(ctx, caller.ManagerID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("manager record missing, nobody notified",
				zap.String("leave_id", l.ID.String()),
				zap.String("manager_id", caller.ManagerID.String()),
			)
			return nil
		}
		return err
	}
	return s.notifier.Notify(ctx, tx, notification.Submitted(ref, requester, partyOf(manager)))
}

func (s *service) List(ctx context.Context, callerID string, scope Scope) ([]LeaveResponse, error) {
	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	v := ResolveVisibility(s.rbac, *caller, scope)
	if v.Empty() {
		return []LeaveResponse{}, nil
	}
	leaves, err := s.repo.List(ctx, v)
	if err != nil {
		s.logger.Error("list leaves failed",
			zap.String("caller_id", callerID),
			zap.String("scope", string(scope)),
			zap.Error(err),
		)
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, callerID, id string) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !CanView(s.rbac, *caller, *l) {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*l), nil
}

// lockVisible loads and locks the request, then applies the visibility and
// capability checks in that order.
func (s *service) lockVisible(
	ctx context.Context,
	qtx Repository,
	caller *employee.Employee,
	leaveID uuid.UUID,
	action rbac.Action,
) (*LeaveRequest, error) {
	l, err := qtx.FindByIDForUpdate(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	if !CanView(s.rbac, *caller, *l) {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	if !s.rbac.Can(caller.Role, action, relationship(*caller, *l)) {
		s.logger.Warn("leave action forbidden",
			zap.String("leave_id", leaveID.String()),
			zap.String("caller_id", caller.ID.String()),
			zap.String("role", string(caller.Role)),
			zap.String("action", string(action)),
		)
		return nil, leaveerrors.ErrForbidden
	}
	return l, nil
}

func (s *service) Update(ctx context.Context, callerID, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	l, err := s.lockVisible(ctx, qtx, caller, leaveID, rbac.ActionUpdate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotEditable
	}

	start, end := l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout)
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	startDate, endDate, err := parseRange(start, end)
	if err != nil {
		return LeaveResponse{}, err
	}

	fields := map[string]interface{}{}
	if req.StartDate != nil {
		fields["start_date"] = startDate
		l.StartDate = startDate
	}
	if req.EndDate != nil {
		fields["end_date"] = endDate
		l.EndDate = endDate
	}
	if req.Reason != nil {
		l.Reason = strings.TrimSpace(*req.Reason)
		fields["reason"] = l.Reason
	}
	if len(fields) == 0 {
		return mapToResponse(*l), nil
	}
	l.UpdatedAt = s.now()
	fields["updated_at"] = l.UpdatedAt

	n, err := qtx.UpdateIfStatus(ctx, l.ID, StatusPending, fields)
	if err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if n == 0 {
		return LeaveResponse{}, leaveerrors.ErrNotEditable
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, callerID, id string) error {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return leaveerrors.ErrLeaveNotFound
	}
	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	l, err := s.lockVisible(ctx, qtx, caller, leaveID, rbac.ActionDelete)
	if err != nil {
		return err
	}
	if !s.policy.CanDelete(l.Status) {
		return leaveerrors.ErrNotDeletable
	}

	n, err := qtx.DeleteIfStatus(ctx, l.ID, l.Status)
	if err != nil {
		s.logger.Error("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return leaveerrors.ErrNotDeletable
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete leave success",
		zap.String("leave_id", id),
		zap.String("status", string(l.Status)),
	)
	return nil
}

func (s *service) Transition(ctx context.Context, callerID, id string, action rbac.Action, reason string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	t, ok := s.policy.Transition(action)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("transition leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	l, err := s.lockVisible(ctx, qtx, caller, leaveID, action)
	if err != nil {
		return LeaveResponse{}, err
	}

	reason = strings.TrimSpace(reason)
	if t.ReasonRequired && reason == "" {
		return LeaveResponse{}, leaveerrors.ErrReasonRequired
	}

	from := l.Status
	if !t.Allows(from) {
		log.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("action", string(action)),
			zap.String("from_status", string(from)),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	if err := s.applyLedger(ctx, tx, t, from, l); err != nil {
		return LeaveResponse{}, err
	}

	fields := s.apply(l, t, caller, reason)
	n, err := qtx.UpdateIfStatus(ctx, l.ID, from, fields)
	if err != nil {
		log.Error("transition leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if n == 0 {
		// another caller moved the request first
		return LeaveResponse{}, leaveerrors.ErrInvalidTransition
	}

	msg := transitionMessage(t, noteRef(l, from), requesterOf(l), partyOf(caller), reason)
	if err := s.notifier.Notify(ctx, tx, msg); err != nil {
		log.Error("transition leave notify failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("transition leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("transition leave success",
		zap.String("leave_id", id),
		zap.String("action", string(action)),
		zap.String("from_status", string(from)),
		zap.String("status", string(l.Status)),
	)
	return mapToResponse(*l), nil
}

func (s *service) applyLedger(ctx context.Context, tx *sql.Tx, t Transition, from Status, l *LeaveRequest) error {
	switch {
	case t.Action == rbac.ActionApproveHR:
		_, err := s.ledger.Debit(ctx, tx, l.EmployeeID, string(l.LeaveType), l.Days(), l.ID)
		return err
	case t.Action == rbac.ActionCancel && from == StatusApproved:
		_, err := s.ledger.Credit(ctx, tx, l.EmployeeID, string(l.LeaveType), l.Days(), l.ID)
		return err
	}
	return nil
}

// apply mutates l for the transition and returns the columns to persist.
func (s *service) apply(l *LeaveRequest, t Transition, actor *employee.Employee, reason string) map[string]interface{} {
	now := s.now()
	l.Status = t.To
	l.UpdatedAt = now
	fields := map[string]interface{}{
		"status":     t.To,
		"updated_at": now,
	}

	switch t.Action {
	case rbac.ActionApproveManager, rbac.ActionRejectManager:
		l.ApprovedByManagerID = &actor.ID
		l.ManagerApprovalTimestamp = &now
		l.ManagerApprover = actor
		fields["approved_by_manager_id"] = actor.ID
		fields["manager_approval_timestamp"] = now
	case rbac.ActionApproveHR, rbac.ActionRejectHR:
		l.ApprovedByHRID = &actor.ID
		l.HRApprovalTimestamp = &now
		l.HRApprover = actor
		fields["approved_by_hr_id"] = actor.ID
		fields["hr_approval_timestamp"] = now
	}

	switch {
	case t.ReasonRequired:
		l.RejectionReason = reason
		fields["rejection_reason"] = reason
	case t.Action == rbac.ActionApproveManager:
		l.RejectionReason = ""
		fields["rejection_reason"] = ""
	}
	return fields
}

func transitionMessage(t Transition, ref notification.Leave, requester, actor notification.Party, reason string) notification.Message {
	switch t.Action {
	case rbac.ActionApproveManager:
		return notification.ManagerApproved(ref, requester, actor)
	case rbac.ActionRejectManager:
		return notification.ManagerRejected(ref, requester, actor, reason)
	case rbac.ActionApproveHR:
		return notification.HRApproved(ref, requester, actor)
	case rbac.ActionRejectHR:
		return notification.HRRejected(ref, requester, actor, reason)
	default:
		return notification.Cancelled(ref, requester)
	}
}

func partyOf(e *employee.Employee) notification.Party {
	return notification.Party{
		ID:    e.ID.String(),
		Name:  e.FullName,
		Email: e.Email,
		Role:  e.Role.Display(),
	}
}

func requesterOf(l *LeaveRequest) notification.Party {
	if l.Employee != nil {
		return partyOf(l.Employee)
	}
	return notification.Party{ID: l.EmployeeID.String()}
}

func noteRef(l *LeaveRequest, from Status) notification.Leave {
	return notification.Leave{
		ID:         l.ID.String(),
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		FromStatus: string(from),
		ToStatus:   string(l.Status),
	}
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func formatID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                       l.ID.String(),
		EmployeeID:               l.EmployeeID.String(),
		LeaveType:                string(l.LeaveType),
		LeaveTypeDisplay:         l.LeaveType.Display(),
		StartDate:                l.StartDate.Format(dateLayout),
		EndDate:                  l.EndDate.Format(dateLayout),
		DurationDays:             l.DurationDays(),
		Reason:                   l.Reason,
		Status:                   string(l.Status),
		StatusDisplay:            l.Status.Display(),
		ApprovedByManagerID:      formatID(l.ApprovedByManagerID),
		ManagerApprovalTimestamp: formatTime(l.ManagerApprovalTimestamp),
		ApprovedByHRID:           formatID(l.ApprovedByHRID),
		HRApprovalTimestamp:      formatTime(l.HRApprovalTimestamp),
		RejectionReason:          l.RejectionReason,
		CreatedAt:                l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                l.UpdatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.Employee = &EmployeeSummary{
			ID:       l.Employee.ID.String(),
			FullName: l.Employee.FullName,
			Email:    l.Employee.Email,
			Role:     string(l.Employee.Role),
		}
	}
	if l.ManagerApprover != nil {
		resp.ApprovedByManagerName = l.ManagerApprover.FullName
	}
	if l.HRApprover != nil {
		resp.ApprovedByHRName = l.HRApprover.FullName
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
