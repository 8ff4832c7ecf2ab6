package cashadvance

type CreateCashAdvanceRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

type ApplyPaymentRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

type CashAdvanceResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Reference   string  `json:"reference"`
	Principal   float64 `json:"principal"`
	PaidToDate  float64 `json:"paid_to_date"`
	Outstanding float64 `json:"outstanding"`
	Paid        bool    `json:"paid"`
	CreatedAt   string  `json:"created_at"`
}

type PaymentLogResponse struct {
	ID            string  `json:"id"`
	CashAdvanceID string  `json:"cash_advance_id"`
	BalanceAfter  float64 `json:"balance_after"`
	AmountApplied float64 `json:"amount_applied"`
	Actor         string  `json:"actor"`
	CreatedAt     string  `json:"created_at"`
}
