package form

import "payslip/internal/domain/payroll"

// State is the raw form input. Numbers stay text until a payload is built.
type State struct {
	EmployeeID  string `json:"employeeId"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Month       string `json:"month"`
	Year        string `json:"year"`

	GrossWages       string `json:"grossWages"`
	TotalWorkingDays string `json:"totalWorkingDays"`
	LOPDays          string `json:"lopDays"`
	LeavesTaken      string `json:"leavesTaken"`

	Basic               string `json:"basic"`
	HRA                 string `json:"hra"`
	Conveyance          string `json:"conveyance"`
	Medical             string `json:"medical"`
	AttendanceIncentive string `json:"attendanceIncentive"`
	FestivalBonus       string `json:"festivalBonus"`
	OtherAllowance      string `json:"otherAllowance"`

	EPF             string `json:"epf"`
	ESI             string `json:"esi"`
	ProfessionalTax string `json:"professionalTax"`
	WelfareFund     string `json:"welfareFund"`
	Insurance       string `json:"insurance"`
	Advance         string `json:"advance"`
}

type View struct {
	State      State          `json:"state"`
	Totals     payroll.Totals `json:"totals"`
	Generating bool           `json:"generating"`
}

type Result struct {
	Path     string `json:"path"`
	FileName string `json:"fileName"`
}

// Settings carry the static company identity and rendering choices.
type Settings struct {
	CompanyName    string
	CompanyAddress string
	CurrencySymbol string
	Watermark      bool
}
