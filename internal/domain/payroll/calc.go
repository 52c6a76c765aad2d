package payroll

import "math"

// ComputeTotals derives the payslip totals from the entered fields.
func ComputeTotals(f Fields) Totals {
	earnings := f.Basic + f.HRA + f.Conveyance + f.Medical +
		f.AttendanceIncentive + f.FestivalBonus + f.OtherAllowance
	deductions := f.EPF + f.ESI + f.ProfessionalTax + f.WelfareFund +
		f.Insurance + f.Advance
	return Totals{
		Earnings:   earnings,
		Deductions: deductions,
		Net:        earnings - deductions,
		PaidDays:   math.Max(0, f.TotalWorkingDays-f.LeavesTaken),
	}
}
