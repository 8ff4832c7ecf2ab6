package payweek

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payweek_repo.go -destination=mock/payweek_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// GetOrCreate performs a single atomic insert-if-absent against the
	// composite key and returns the surviving row. Concurrent callers for
	// the same key converge on one bucket.
	GetOrCreate(ctx context.Context, bucket *WeekBucket) (*WeekBucket, error)
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

func (r *repository) GetOrCreate(ctx context.Context, bucket *WeekBucket) (*WeekBucket, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "week_start"}, {Name: "week_end"}},
			DoNothing: true,
		}).
		Create(bucket).Error
	if err != nil {
		return nil, err
	}

	// DoNothing does not return the winning row on conflict; re-read by key.
	var existing WeekBucket
	err = r.db.WithContext(ctx).
		Where("employee_id = ?", bucket.EmployeeID).
		Where("week_start = ?", bucket.WeekStart.Format("2006-01-02")).
		Where("week_end = ?", bucket.WeekEnd.Format("2006-01-02")).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
