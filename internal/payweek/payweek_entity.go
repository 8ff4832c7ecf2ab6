package payweek

import (
	"time"

	"github.com/google/uuid"
)

// WeekBucket is the aggregation scope for one employee and one payroll
// week. At most one bucket exists per (employee_id, week_start, week_end);
// uq_week_bucket backs that up in the store.
type WeekBucket struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_week_bucket"`
	WeekStart  time.Time `gorm:"column:week_start;type:date;not null;uniqueIndex:uq_week_bucket"`
	WeekEnd    time.Time `gorm:"column:week_end;type:date;not null;uniqueIndex:uq_week_bucket"`
	CreatedBy  uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (WeekBucket) TableName() string {
	return "week_buckets"
}
