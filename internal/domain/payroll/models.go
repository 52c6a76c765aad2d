package payroll

// Fields are the numeric inputs that contribute to Totals.
type Fields struct {
	TotalWorkingDays float64
	LeavesTaken      float64

	Basic               float64
	HRA                 float64
	Conveyance          float64
	Medical             float64
	AttendanceIncentive float64
	FestivalBonus       float64
	OtherAllowance      float64

	EPF             float64
	ESI             float64
	ProfessionalTax float64
	WelfareFund     float64
	Insurance       float64
	Advance         float64
}

type Totals struct {
	Earnings   float64 `json:"earnings"`
	Deductions float64 `json:"deductions"`
	Net        float64 `json:"net"`
	PaidDays   float64 `json:"paidDays"`
}
