package deduction

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=deduction_repo.go -destination=mock/deduction_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// FindByEmployeeAndYear returns gorm.ErrRecordNotFound when no snapshot
	// has been written for that year.
	FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) (*PayrollDeduction, error)
	Upsert(ctx context.Context, d *PayrollDeduction) error
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

func (r *repository) FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) (*PayrollDeduction, error) {
	var d PayrollDeduction
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		First(&d).Error
	return &d, err
}

func (r *repository) Upsert(ctx context.Context, d *PayrollDeduction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"sss", "philhealth", "pagibig", "updated_by", "updated_at",
			}),
		}).
		Create(d).Error
}
