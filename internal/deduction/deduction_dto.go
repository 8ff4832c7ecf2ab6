package deduction

type UpsertDeductionRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	SSS        float64 `json:"sss" binding:"gte=0"`
	PhilHealth float64 `json:"philhealth" binding:"gte=0"`
	PagIbig    float64 `json:"pagibig" binding:"gte=0"`
}

type DeductionResponse struct {
	EmployeeID string  `json:"employee_id"`
	Year       int     `json:"year"`
	SSS        float64 `json:"sss"`
	PhilHealth float64 `json:"philhealth"`
	PagIbig    float64 `json:"pagibig"`
	Total      float64 `json:"total"`
}
