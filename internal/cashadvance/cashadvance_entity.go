package cashadvance

import (
	"time"

	"github.com/google/uuid"
)

// ActorSystem marks log entries written by automated settlement rather
// than a human administrator.
const ActorSystem = "SYSTEM"

// CashAdvance is a loan extended to an employee. Rows are never deleted;
// only ApplyPayment (or an equivalent manual correction) moves PaidToDate.
type CashAdvance struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	Reference  string    `gorm:"column:reference;type:varchar(20);not null;uniqueIndex:uq_cash_advance_reference"`
	Principal  float64   `gorm:"column:principal;type:numeric(15,2);not null"`
	PaidToDate float64   `gorm:"column:paid_to_date;type:numeric(15,2);not null;default:0"`
	Paid       bool      `gorm:"column:paid;not null;default:false;index"`
	CreatedBy  uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (CashAdvance) TableName() string {
	return "cash_advances"
}

func (a CashAdvance) Outstanding() float64 {
	return a.Principal - a.PaidToDate
}

// PaymentLog is one immutable allocation entry. The chain of entries for
// an advance, in timestamp order, reconstructs its paid-to-date exactly.
type PaymentLog struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CashAdvanceID uuid.UUID `gorm:"column:cash_advance_id;type:uuid;not null;index"`
	BalanceAfter  float64   `gorm:"column:balance_after;type:numeric(15,2);not null"`
	AmountApplied float64   `gorm:"column:amount_applied;type:numeric(15,2);not null"`
	Actor         string    `gorm:"column:actor;type:varchar(40);not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (PaymentLog) TableName() string {
	return "cash_advance_payment_logs"
}
