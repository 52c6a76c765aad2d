package payroll

const (
	FieldTotalWorkingDays = "totalWorkingDays"
	FieldLeavesTaken      = "leavesTaken"

	FieldBasic               = "basic"
	FieldHRA                 = "hra"
	FieldConveyance          = "conveyance"
	FieldMedical             = "medical"
	FieldAttendanceIncentive = "attendanceIncentive"
	FieldFestivalBonus       = "festivalBonus"
	FieldOtherAllowance      = "otherAllowance"

	FieldEPF             = "epf"
	FieldESI             = "esi"
	FieldProfessionalTax = "professionalTax"
	FieldWelfareFund     = "welfareFund"
	FieldInsurance       = "insurance"
	FieldAdvance         = "advance"
)

var totalsFields = map[string]struct{}{
	FieldTotalWorkingDays:    {},
	FieldLeavesTaken:         {},
	FieldBasic:               {},
	FieldHRA:                 {},
	FieldConveyance:          {},
	FieldMedical:             {},
	FieldAttendanceIncentive: {},
	FieldFestivalBonus:       {},
	FieldOtherAllowance:      {},
	FieldEPF:                 {},
	FieldESI:                 {},
	FieldProfessionalTax:     {},
	FieldWelfareFund:         {},
	FieldInsurance:           {},
	FieldAdvance:             {},
}

// IsTotalsField reports whether a form field feeds ComputeTotals.
func IsTotalsField(name string) bool {
	_, ok := totalsFields[name]
	return ok
}
