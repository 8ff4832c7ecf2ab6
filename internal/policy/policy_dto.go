package policy

type UpdateSettingsRequest struct {
	WorkingDayHoursPerWeek int     `json:"working_day_hours_per_week" binding:"required,gt=0"`
	RegularOTRatePercent   float64 `json:"regular_ot_rate_percent" binding:"required,gt=0"`
	WeekendOTRate          float64 `json:"weekend_ot_rate" binding:"required,gt=0"`
}

type SettingsResponse struct {
	WorkingDayHoursPerWeek int     `json:"working_day_hours_per_week"`
	RegularOTRatePercent   float64 `json:"regular_ot_rate_percent"`
	WeekendOTRate          float64 `json:"weekend_ot_rate"`
}
