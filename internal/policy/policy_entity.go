package policy

import (
	"time"

	"github.com/google/uuid"
)

// PayrollSettings is a single-row table; settingsRowID pins the row so
// updates are plain upserts.
const settingsRowID = 1

type PayrollSettings struct {
	ID                      int        `gorm:"column:id;primaryKey"`
	WorkingDayHoursPerWeek  int        `gorm:"column:working_day_hours_per_week;not null"`
	RegularOTRatePercent    float64    `gorm:"column:regular_ot_rate_percent;not null"`
	WeekendOTRate           float64    `gorm:"column:weekend_ot_rate;not null"`
	UpdatedBy               *uuid.UUID `gorm:"column:updated_by;type:uuid"`
	UpdatedAt               time.Time  `gorm:"column:updated_at"`
}

func (PayrollSettings) TableName() string {
	return "payroll_settings"
}

// Defaults applied when no settings row has been written yet.
func defaultSettings() PayrollSettings {
	return PayrollSettings{
		ID:                     settingsRowID,
		WorkingDayHoursPerWeek: 40,
		RegularOTRatePercent:   1.25,
		WeekendOTRate:          1.5,
	}
}
