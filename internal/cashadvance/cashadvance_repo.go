package cashadvance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=cashadvance_repo.go -destination=mock/cashadvance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *CashAdvance) error
	FindByID(ctx context.Context, id string) (*CashAdvance, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]CashAdvance, error)
	// FindUnpaidByEmployee returns open advances oldest first, unlocked.
	FindUnpaidByEmployee(ctx context.Context, employeeID string) ([]CashAdvance, error)
	// FindUnpaidByEmployeeForUpdate is the same set under FOR UPDATE, for
	// the payment allocation transaction.
	FindUnpaidByEmployeeForUpdate(ctx context.Context, employeeID string) ([]CashAdvance, error)
	Update(ctx context.Context, a *CashAdvance) error
	CreateLog(ctx context.Context, entry *PaymentLog) error
	FindLogsByAdvance(ctx context.Context, advanceID string) ([]PaymentLog, error)
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

func (r *repository) Create(ctx context.Context, a *CashAdvance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*CashAdvance, error) {
	var a CashAdvance
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]CashAdvance, error) {
	var rows []CashAdvance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindUnpaidByEmployee(ctx context.Context, employeeID string) ([]CashAdvance, error) {
	var rows []CashAdvance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("paid = ?", false).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindUnpaidByEmployeeForUpdate(ctx context.Context, employeeID string) ([]CashAdvance, error) {
	var rows []CashAdvance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		Where("paid = ?", false).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *CashAdvance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) CreateLog(ctx context.Context, entry *PaymentLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindLogsByAdvance(ctx context.Context, advanceID string) ([]PaymentLog, error) {
	var rows []PaymentLog
	err := r.db.WithContext(ctx).
		Where("cash_advance_id = ?", advanceID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
