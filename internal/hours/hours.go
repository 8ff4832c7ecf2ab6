// Package hours derives regular and overtime hour breakdowns from closed
// clock records. It has no state of its own; callers load the records and
// the current payroll settings and hand both in.
package hours

import (
	"sort"

	"github.com/google/uuid"

	"go-paytrack/internal/clock"
	"go-paytrack/internal/payweek"
	"go-paytrack/internal/policy"
)

// Breakdown is the weekly hours split. Hours beyond the configured weekly
// threshold count as overtime; the overtime is attributed to the calendar
// day it was worked on, which decides the applicable rate.
type Breakdown struct {
	RegularHours   float64 `json:"regular_hours"`
	WeekdayOTHours float64 `json:"weekday_ot_hours"`
	WeekendOTHours float64 `json:"weekend_ot_hours"`
	WeekdayOTRate  float64 `json:"weekday_ot_rate"`
	WeekendOTRate  float64 `json:"weekend_ot_rate"`

	// InProgress counts open records seen in the input. They contribute no
	// hours but are reported so "still on shift" is distinguishable from
	// "worked nothing".
	InProgress int `json:"in_progress"`

	// Flagged lists records whose clock-out precedes their clock-in. Such
	// records contribute no hours; a negative duration is never produced.
	Flagged []uuid.UUID `json:"flagged,omitempty"`
}

func (b Breakdown) TotalHours() float64 {
	return b.RegularHours + b.WeekdayOTHours + b.WeekendOTHours
}

func (b Breakdown) OvertimeHours() float64 {
	return b.WeekdayOTHours + b.WeekendOTHours
}

// Compute folds the records in clock-in order against the weekly threshold.
// The portion of each record below the running threshold is regular time;
// the remainder is overtime on that record's day.
func Compute(records []clock.ClockRecord, settings policy.PayrollSettings) Breakdown {
	b := Breakdown{
		WeekdayOTRate: settings.RegularOTRatePercent,
		WeekendOTRate: settings.WeekendOTRate,
	}

	sorted := make([]clock.ClockRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ClockInAt.Before(sorted[j].ClockInAt)
	})

	threshold := float64(settings.WorkingDayHoursPerWeek)
	running := 0.0

	for _, rec := range sorted {
		if rec.Open() {
			b.InProgress++
			continue
		}

		worked := rec.ClockOutAt.Sub(rec.ClockInAt).Hours()
		if worked < 0 {
			b.Flagged = append(b.Flagged, rec.ID)
			continue
		}

		regular := worked
		if running+worked > threshold {
			regular = threshold - running
			if regular < 0 {
				regular = 0
			}
		}
		overtime := worked - regular

		b.RegularHours += regular
		if payweek.IsWeekend(rec.ClockInDate) {
			b.WeekendOTHours += overtime
		} else {
			b.WeekdayOTHours += overtime
		}
		running += worked
	}

	return b
}
