package payweek

import "time"

// Pay weeks run Monday through Sunday: the employer's policy shifts both
// boundaries of the Sunday-start calendar week forward by one day. This is
// a fixed policy constant, not configuration.

// WindowFor returns the canonical payroll week window containing t, with
// both bounds normalized to midnight UTC.
func WindowFor(t time.Time) (weekStart, weekEnd time.Time) {
	d := Midnight(t)
	offset := (int(d.Weekday()) + 6) % 7 // days since Monday
	weekStart = d.AddDate(0, 0, -offset)
	weekEnd = weekStart.AddDate(0, 0, 6)
	return weekStart, weekEnd
}

// Midnight normalizes a timestamp to its calendar date at 00:00 UTC.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether the calendar day of t is a Saturday or Sunday.
// Weekend overtime is paid at the weekend rate regardless of where the day
// sits inside the pay week.
func IsWeekend(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
