package clock

import (
	"time"

	"github.com/google/uuid"
)

// ClockRecord is one attendance session for one employee on one calendar
// day. The store carries a partial unique index
//
//	uq_clock_open_session ON clock_records (employee_id, clock_in_date)
//	WHERE clock_out_at IS NULL
//
// so that two racing clock-ins cannot both leave an open record behind;
// the in-transaction check catches the common case and the index catches
// the race window.
type ClockRecord struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	WeekBucketID uuid.UUID  `gorm:"column:week_bucket_id;type:uuid;not null;index"`
	ClockInAt    time.Time  `gorm:"column:clock_in_at;type:timestamptz;not null"`
	ClockInDate  time.Time  `gorm:"column:clock_in_date;type:date;not null;index"`
	ClockOutAt   *time.Time `gorm:"column:clock_out_at;type:timestamptz"`
	ClockOutDate *time.Time `gorm:"column:clock_out_date;type:date"`
	GeoIn        *string    `gorm:"column:geo_in;type:varchar(100)"`
	GeoOut       *string    `gorm:"column:geo_out;type:varchar(100)"`
	Manual       bool       `gorm:"column:manual;not null;default:false"`
	CreatedBy    uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (ClockRecord) TableName() string {
	return "clock_records"
}

// Open reports whether the session has not been closed yet.
func (r ClockRecord) Open() bool {
	return r.ClockOutAt == nil
}
