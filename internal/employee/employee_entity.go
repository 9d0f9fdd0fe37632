package employee

import (
	"time"

	"employee-portal/internal/rbac"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FullName         string          `gorm:"type:varchar(150);not null"`
	Email            string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Role             rbac.Role       `gorm:"type:varchar(20);not null;default:employee"`
	ManagerID        *uuid.UUID      `gorm:"type:uuid;index"`
	PaidLeaveBalance decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	SickLeaveBalance decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsManagerOf reports whether e is the direct manager of other.
func (e Employee) IsManagerOf(other Employee) bool {
	return other.ManagerID != nil && *other.ManagerID == e.ID
}
