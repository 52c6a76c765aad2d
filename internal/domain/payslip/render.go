package payslip

import (
	"strconv"

	"payslip/internal/domain/payroll"
)

// Render lays out the payslip document for the given payload.
func Render(p Payload, opts Options) Document {
	money := func(v float64) string { return payroll.FormatMoney(opts.CurrencySymbol, v) }

	doc := Document{
		Header: Header{
			Logo:           Image{Src: LogoPlaceholder, Alt: p.CompanyName},
			CompanyName:    p.CompanyName,
			CompanyAddress: p.CompanyAddress,
			Title:          Title,
			Period:         "Payslip for the month of " + p.Month,
			Date:           p.Date,
		},
		Employee: []Row{
			{Label: "Employee ID", Value: p.EmployeeID},
			{Label: "Name", Value: p.Name},
			{Label: "Designation", Value: p.Designation},
			{Label: "Department", Value: p.Department},
		},
		Attendance: []Row{
			{Label: "Gross Wages", Value: money(p.GrossWages)},
			{Label: "Total Working Days", Value: days(p.TotalWorkingDays)},
			{Label: "LOP Days", Value: days(p.LOPDays)},
			{Label: "Leaves Taken", Value: days(p.LeavesTaken)},
			{Label: "Paid Days", Value: days(p.PaidDays)},
		},
		Earnings: Table{
			Title: "Earnings",
			Rows: []Row{
				{Label: "Basic", Value: money(p.Basic)},
				{Label: "HRA", Value: money(p.HRA)},
				{Label: "Conveyance", Value: money(p.Conveyance)},
				{Label: "Medical", Value: money(p.Medical)},
				{Label: "Attendance Incentive", Value: money(p.AttendanceIncentive)},
				{Label: "Festival Bonus", Value: money(p.FestivalBonus)},
				{Label: "Other Allowance", Value: money(p.OtherAllowance)},
			},
			Subtotal: Row{Label: "Total Earnings", Value: money(p.TotalEarnings)},
		},
		Deductions: Table{
			Title: "Deductions",
			Rows: []Row{
				{Label: "EPF", Value: money(p.EPF)},
				{Label: "ESI", Value: money(p.ESI)},
				{Label: "Professional Tax", Value: money(p.ProfessionalTax)},
				{Label: "Welfare Fund", Value: money(p.WelfareFund)},
				{Label: "Insurance", Value: money(p.Insurance)},
				{Label: "Advance", Value: money(p.Advance)},
			},
			Subtotal: Row{Label: "Total Deductions", Value: money(p.TotalDeductions)},
		},
		Net:    Row{Label: "Net Salary", Value: money(p.NetSalary)},
		Footer: FooterNote,
	}
	if opts.Watermark {
		doc.Watermark = &Image{Src: WatermarkPlaceholder, Alt: "watermark"}
	}
	return doc
}

func days(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
