package deduction

import (
	"time"

	"github.com/google/uuid"
)

// PayrollDeduction is the statutory contribution snapshot for one employee
// and one calendar year. One row per (employee, year); a later write is an
// explicit correction of the same period, never a new one.
type PayrollDeduction struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_deduction_employee_year"`
	Year       int        `gorm:"column:year;not null;uniqueIndex:uq_deduction_employee_year"`
	SSS        float64    `gorm:"column:sss;type:numeric(15,2);not null;default:0"`
	PhilHealth float64    `gorm:"column:philhealth;type:numeric(15,2);not null;default:0"`
	PagIbig    float64    `gorm:"column:pagibig;type:numeric(15,2);not null;default:0"`
	CreatedBy  uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	UpdatedBy  *uuid.UUID `gorm:"column:updated_by;type:uuid"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (PayrollDeduction) TableName() string {
	return "payroll_deductions"
}

func (d PayrollDeduction) Total() float64 {
	return d.SSS + d.PhilHealth + d.PagIbig
}
