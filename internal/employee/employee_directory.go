package employee

import (
	"context"
	"errors"

	employeeerrors "employee-portal/internal/employee/errors"
	"employee-portal/internal/rbac"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Directory answers identity lookups for request middleware.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

// RoleOf returns the role on record. Unknown or malformed ids are
// ErrCallerNotEmployee.
func (d *Directory) RoleOf(ctx context.Context, employeeID string) (rbac.Role, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return "", employeeerrors.ErrCallerNotEmployee
	}

	empl, err := d.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", employeeerrors.ErrCallerNotEmployee
		}
		return "", err
	}
	return empl.Role, nil
}
