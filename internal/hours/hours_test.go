package hours

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-paytrack/internal/clock"
	"go-paytrack/internal/policy"
)

func settings40() policy.PayrollSettings {
	return policy.PayrollSettings{
		WorkingDayHoursPerWeek: 40,
		RegularOTRatePercent:   1.25,
		WeekendOTRate:          1.5,
	}
}

func closedRecord(day time.Time, startHour, hoursWorked float64) clock.ClockRecord {
	in := day.Add(time.Duration(startHour * float64(time.Hour)))
	out := in.Add(time.Duration(hoursWorked * float64(time.Hour)))
	return clock.ClockRecord{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		ClockInAt:   in,
		ClockInDate: day,
		ClockOutAt:  &out,
	}
}

func TestCompute_ZeroRecords(t *testing.T) {
	b := Compute(nil, settings40())
	assert.Zero(t, b.RegularHours)
	assert.Zero(t, b.OvertimeHours())
	assert.Zero(t, b.InProgress)
	assert.Empty(t, b.Flagged)
}

func TestCompute_ThresholdSplitOnFinalDay(t *testing.T) {
	// 38 hours accumulated Monday through Thursday, then a 9 hour Friday:
	// 2 hours of it are regular, 7 are weekday overtime.
	mon := time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC)
	recs := []clock.ClockRecord{
		closedRecord(mon, 8, 10),
		closedRecord(mon.AddDate(0, 0, 1), 8, 10),
		closedRecord(mon.AddDate(0, 0, 2), 8, 10),
		closedRecord(mon.AddDate(0, 0, 3), 8, 8),
		closedRecord(mon.AddDate(0, 0, 4), 8, 9), // Friday
	}

	b := Compute(recs, settings40())
	assert.InDelta(t, 40, b.RegularHours, 1e-9)
	assert.InDelta(t, 7, b.WeekdayOTHours, 1e-9)
	assert.Zero(t, b.WeekendOTHours)
	assert.InDelta(t, 47, b.TotalHours(), 1e-9)
	assert.Equal(t, 1.25, b.WeekdayOTRate)
}

func TestCompute_WeekendOvertimeAttribution(t *testing.T) {
	// Threshold already consumed by Friday; Saturday's hours are all
	// weekend overtime.
	mon := time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC)
	recs := []clock.ClockRecord{
		closedRecord(mon, 8, 20),
		closedRecord(mon.AddDate(0, 0, 1), 8, 20),
		closedRecord(mon.AddDate(0, 0, 5), 9, 6), // Saturday
	}

	b := Compute(recs, settings40())
	assert.InDelta(t, 40, b.RegularHours, 1e-9)
	assert.Zero(t, b.WeekdayOTHours)
	assert.InDelta(t, 6, b.WeekendOTHours, 1e-9)
	assert.Equal(t, 1.5, b.WeekendOTRate)
}

func TestCompute_OpenRecordsCountedInProgress(t *testing.T) {
	mon := time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC)
	open := clock.ClockRecord{
		ID:          uuid.New(),
		ClockInAt:   mon.Add(8 * time.Hour),
		ClockInDate: mon,
	}
	recs := []clock.ClockRecord{open, closedRecord(mon.AddDate(0, 0, 1), 8, 4)}

	b := Compute(recs, settings40())
	assert.Equal(t, 1, b.InProgress)
	assert.InDelta(t, 4, b.RegularHours, 1e-9)
}

func TestCompute_NegativeDurationFlagged(t *testing.T) {
	mon := time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC)
	out := mon.Add(6 * time.Hour)
	bad := clock.ClockRecord{
		ID:          uuid.New(),
		ClockInAt:   mon.Add(9 * time.Hour),
		ClockInDate: mon,
		ClockOutAt:  &out,
	}

	b := Compute([]clock.ClockRecord{bad}, settings40())
	assert.Len(t, b.Flagged, 1)
	assert.Equal(t, bad.ID, b.Flagged[0])
	assert.Zero(t, b.TotalHours())
}

func TestCompute_OvertimeMonotonic(t *testing.T) {
	mon := time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC)
	prev := -1.0
	for worked := 30.0; worked <= 60.0; worked += 2.5 {
		b := Compute([]clock.ClockRecord{closedRecord(mon, 0, worked)}, settings40())
		assert.GreaterOrEqual(t, b.OvertimeHours(), prev)
		prev = b.OvertimeHours()
	}
}

func TestCompute_UnsortedInputHandled(t *testing.T) {
	// Overtime attribution depends on clock-in order, not slice order.
	mon := time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC)
	friday := closedRecord(mon.AddDate(0, 0, 4), 8, 9)
	early := closedRecord(mon, 8, 38)

	b := Compute([]clock.ClockRecord{friday, early}, settings40())
	assert.InDelta(t, 40, b.RegularHours, 1e-9)
	assert.InDelta(t, 7, b.WeekdayOTHours, 1e-9)
}
