package clock

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=clock_repo.go -destination=mock/clock_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *ClockRecord) error
	// FindOpenByEmployeeAndDate returns the open record for that employee-day,
	// or gorm.ErrRecordNotFound.
	FindOpenByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*ClockRecord, error)
	// FindLatestByEmployeeAndDate returns the most recent record for that
	// employee-day regardless of state.
	FindLatestByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*ClockRecord, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]ClockRecord, error)
	FindAllByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]ClockRecord, error)
	Update(ctx context.Context, r *ClockRecord) error
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

func (r *repository) Create(ctx context.Context, rec *ClockRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindOpenByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*ClockRecord, error) {
	var rec ClockRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("clock_in_date = ?", date.Format("2006-01-02")).
		Where("clock_out_at IS NULL").
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindLatestByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*ClockRecord, error) {
	var rec ClockRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("clock_in_date = ?", date.Format("2006-01-02")).
		Order("clock_in_at DESC").
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]ClockRecord, error) {
	var recs []ClockRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("clock_in_date DESC, clock_in_at DESC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) FindAllByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]ClockRecord, error) {
	var recs []ClockRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("clock_in_date >= ?", from.Format("2006-01-02")).
		Where("clock_in_date <= ?", to.Format("2006-01-02")).
		Order("clock_in_at ASC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) Update(ctx context.Context, rec *ClockRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}
