package policy

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	Get(ctx context.Context) (PayrollSettings, error)
	Upsert(ctx context.Context, settings *PayrollSettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (PayrollSettings, error) {
	var s PayrollSettings
	err := r.db.WithContext(ctx).First(&s, "id = ?", settingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultSettings(), nil
	}
	return s, err
}

func (r *repository) Upsert(ctx context.Context, settings *PayrollSettings) error {
	settings.ID = settingsRowID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
}
