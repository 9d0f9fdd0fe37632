package leave

import (
	"context"
	"database/sql"
	"strings"

	"employee-portal/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	List(ctx context.Context, v Visibility) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	// FindByIDForUpdate locks the request row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	// UpdateIfStatus writes fields only while the row still has status
	// expected and reports the number of rows changed.
	UpdateIfStatus(ctx context.Context, id uuid.UUID, expected Status, fields map[string]interface{}) (int64, error)
	DeleteIfStatus(ctx context.Context, id uuid.UUID, expected Status) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.WithSQLTx(ctx, r.db, r.tx)
}

func withParties(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Employee").
		Preload("ManagerApprover").
		Preload("HRApprover")
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Omit(clause.Associations).Create(l).Error
}

func visibilityFilter(v Visibility) (string, []interface{}) {
	var (
		parts []string
		args  []interface{}
	)
	if v.Own {
		parts = append(parts, "employee_id = ?")
		args = append(args, v.CallerID)
	}
	if v.TeamStatus != "" {
		// direct reports only, one level
		parts = append(parts, "(employee_id IN (SELECT id FROM employees WHERE manager_id = ?) AND status = ?)")
		args = append(args, v.CallerID, v.TeamStatus)
	}
	if v.QueueStatus != "" {
		if v.ExcludeOwn {
			parts = append(parts, "(status = ? AND employee_id <> ?)")
			args = append(args, v.QueueStatus, v.CallerID)
		} else {
			parts = append(parts, "status = ?")
			args = append(args, v.QueueStatus)
		}
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func (r *repository) List(ctx context.Context, v Visibility) ([]LeaveRequest, error) {
	if v.Empty() {
		return []LeaveRequest{}, nil
	}

	q := withParties(r.conn(ctx))
	if !v.All {
		cond, args := visibilityFilter(v)
		q = q.Where(cond, args...)
	}

	var leaves []LeaveRequest
	err := q.Order(v.Order).Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := withParties(r.conn(ctx)).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := withParties(r.conn(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) UpdateIfStatus(ctx context.Context, id uuid.UUID, expected Status, fields map[string]interface{}) (int64, error) {
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteIfStatus(ctx context.Context, id uuid.UUID, expected Status) (int64, error) {
	res := r.conn(ctx).
		Where("id = ? AND status = ?", id, expected).
		Delete(&LeaveRequest{})
	return res.RowsAffected, res.Error
}
