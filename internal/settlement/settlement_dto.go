package settlement

import "go-paytrack/internal/deduction"

// WeekSummary is one pay week's hours split inside a settlement.
type WeekSummary struct {
	WeekStart      string  `json:"week_start"`
	WeekEnd        string  `json:"week_end"`
	RegularHours   float64 `json:"regular_hours"`
	WeekdayOTHours float64 `json:"weekday_ot_hours"`
	WeekendOTHours float64 `json:"weekend_ot_hours"`
	InProgress     int     `json:"in_progress"`
	Flagged        int     `json:"flagged"`
}

// SettlementResponse is the combined yearly view: hours and overtime over
// the year's pay weeks, the statutory deduction snapshot (zeros when
// absent), and the outstanding cash advance balance.
type SettlementResponse struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`

	RegularHours   float64 `json:"regular_hours"`
	WeekdayOTHours float64 `json:"weekday_ot_hours"`
	WeekendOTHours float64 `json:"weekend_ot_hours"`
	WeekdayOTRate  float64 `json:"weekday_ot_rate"`
	WeekendOTRate  float64 `json:"weekend_ot_rate"`
	TotalHours     float64 `json:"total_hours"`
	TotalClock     string  `json:"total_clock"`
	TotalHuman     string  `json:"total_human"`
	InProgress     int     `json:"in_progress"`
	Flagged        int     `json:"flagged"`

	Weeks []WeekSummary `json:"weeks"`

	Deductions          deduction.DeductionResponse `json:"deductions"`
	OutstandingAdvances float64                     `json:"outstanding_advances"`

	GeneratedAt string `json:"generated_at"`
}

type NotifyRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Email      string `json:"email" binding:"required,email"`
}
