package clock

type ClockInRequest struct {
	// At overrides the server clock (RFC3339); empty means now.
	At  string  `json:"at"`
	Geo *string `json:"geo"`
}

type ClockOutRequest struct {
	At  string  `json:"at"`
	Geo *string `json:"geo"`
}

type ManualUpsertRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	ClockIn    string  `json:"clock_in" binding:"required"`
	ClockOut   *string `json:"clock_out"`
	GeoIn      *string `json:"geo_in"`
	GeoOut     *string `json:"geo_out"`
}

type ClockRecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	WeekBucketID string  `json:"week_bucket_id"`
	ClockInDate  string  `json:"clock_in_date"`
	ClockIn      string  `json:"clock_in"`
	ClockOut     *string `json:"clock_out,omitempty"`
	ClockOutDate *string `json:"clock_out_date,omitempty"`
	GeoIn        *string `json:"geo_in,omitempty"`
	GeoOut       *string `json:"geo_out,omitempty"`
	Manual       bool    `json:"manual"`
	Open         bool    `json:"open"`
}
