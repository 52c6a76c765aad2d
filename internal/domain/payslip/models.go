package payslip

// Payload is the immutable snapshot handed to Render.
type Payload struct {
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	Month          string `json:"month"`
	Date           string `json:"date"`

	EmployeeID  string `json:"employeeId"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`

	GrossWages       float64 `json:"grossWages"`
	TotalWorkingDays float64 `json:"totalWorkingDays"`
	LOPDays          float64 `json:"lopDays"`
	LeavesTaken      float64 `json:"leavesTaken"`
	PaidDays         float64 `json:"paidDays"`

	Basic               float64 `json:"basic"`
	HRA                 float64 `json:"hra"`
	Conveyance          float64 `json:"conveyance"`
	Medical             float64 `json:"medical"`
	AttendanceIncentive float64 `json:"attendanceIncentive"`
	FestivalBonus       float64 `json:"festivalBonus"`
	OtherAllowance      float64 `json:"otherAllowance"`

	EPF             float64 `json:"epf"`
	ESI             float64 `json:"esi"`
	ProfessionalTax float64 `json:"professionalTax"`
	WelfareFund     float64 `json:"welfareFund"`
	Insurance       float64 `json:"insurance"`
	Advance         float64 `json:"advance"`

	TotalEarnings   float64 `json:"totalEarnings"`
	TotalDeductions float64 `json:"totalDeductions"`
	NetSalary       float64 `json:"netSalary"`
}

type Options struct {
	CurrencySymbol string
	Watermark      bool
}

// Image points at an asset. Src starts as a placeholder path and is replaced
// by a data URI before the document is written out.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Table struct {
	Title    string `json:"title"`
	Rows     []Row  `json:"rows"`
	Subtotal Row    `json:"subtotal"`
}

type Header struct {
	Logo           Image  `json:"logo"`
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	Title          string `json:"title"`
	Period         string `json:"period"`
	Date           string `json:"date"`
}

type Document struct {
	Header     Header `json:"header"`
	Employee   []Row  `json:"employee"`
	Attendance []Row  `json:"attendance"`
	Earnings   Table  `json:"earnings"`
	Deductions Table  `json:"deductions"`
	Net        Row    `json:"net"`
	Watermark  *Image `json:"watermark,omitempty"`
	Footer     string `json:"footer"`
}
