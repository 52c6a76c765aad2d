package form

import (
	"strconv"
	"time"

	"payslip/internal/domain/payroll"
)

const (
	FieldEmployeeID  = "employeeId"
	FieldName        = "name"
	FieldDesignation = "designation"
	FieldDepartment  = "department"
	FieldMonth       = "month"
	FieldYear        = "year"
	FieldGrossWages  = "grossWages"
	FieldLOPDays     = "lopDays"
)

// fieldOrder is the order SetFields applies edits in: identity first so that
// autofill settles before the rest of the batch lands.
var fieldOrder = []string{
	FieldEmployeeID, FieldName, FieldDesignation, FieldDepartment, FieldMonth, FieldYear,
	FieldGrossWages, payroll.FieldTotalWorkingDays, FieldLOPDays, payroll.FieldLeavesTaken,
	payroll.FieldBasic, payroll.FieldHRA, payroll.FieldConveyance, payroll.FieldMedical,
	payroll.FieldAttendanceIncentive, payroll.FieldFestivalBonus, payroll.FieldOtherAllowance,
	payroll.FieldEPF, payroll.FieldESI, payroll.FieldProfessionalTax, payroll.FieldWelfareFund,
	payroll.FieldInsurance, payroll.FieldAdvance,
}

func (s *State) field(name string) *string {
	switch name {
	case FieldEmployeeID:
		return &s.EmployeeID
	case FieldName:
		return &s.Name
	case FieldDesignation:
		return &s.Designation
	case FieldDepartment:
		return &s.Department
	case FieldMonth:
		return &s.Month
	case FieldYear:
		return &s.Year
	case FieldGrossWages:
		return &s.GrossWages
	case payroll.FieldTotalWorkingDays:
		return &s.TotalWorkingDays
	case FieldLOPDays:
		return &s.LOPDays
	case payroll.FieldLeavesTaken:
		return &s.LeavesTaken
	case payroll.FieldBasic:
		return &s.Basic
	case payroll.FieldHRA:
		return &s.HRA
	case payroll.FieldConveyance:
		return &s.Conveyance
	case payroll.FieldMedical:
		return &s.Medical
	case payroll.FieldAttendanceIncentive:
		return &s.AttendanceIncentive
	case payroll.FieldFestivalBonus:
		return &s.FestivalBonus
	case payroll.FieldOtherAllowance:
		return &s.OtherAllowance
	case payroll.FieldEPF:
		return &s.EPF
	case payroll.FieldESI:
		return &s.ESI
	case payroll.FieldProfessionalTax:
		return &s.ProfessionalTax
	case payroll.FieldWelfareFund:
		return &s.WelfareFund
	case payroll.FieldInsurance:
		return &s.Insurance
	case payroll.FieldAdvance:
		return &s.Advance
	}
	return nil
}

// InitialState is the form as first shown and after a reset.
func InitialState(now time.Time) State {
	s := State{
		Month: now.Month().String(),
		Year:  strconv.Itoa(now.Year()),
	}
	for _, name := range fieldOrder {
		switch name {
		case FieldEmployeeID, FieldName, FieldDesignation, FieldDepartment, FieldMonth, FieldYear:
			continue
		}
		*s.field(name) = "0"
	}
	return s
}

func (s State) numbers() payroll.Fields {
	return payroll.Fields{
		TotalWorkingDays:    payroll.ParseAmount(s.TotalWorkingDays),
		LeavesTaken:         payroll.ParseAmount(s.LeavesTaken),
		Basic:               payroll.ParseAmount(s.Basic),
		HRA:                 payroll.ParseAmount(s.HRA),
		Conveyance:          payroll.ParseAmount(s.Conveyance),
		Medical:             payroll.ParseAmount(s.Medical),
		AttendanceIncentive: payroll.ParseAmount(s.AttendanceIncentive),
		FestivalBonus:       payroll.ParseAmount(s.FestivalBonus),
		OtherAllowance:      payroll.ParseAmount(s.OtherAllowance),
		EPF:                 payroll.ParseAmount(s.EPF),
		ESI:                 payroll.ParseAmount(s.ESI),
		ProfessionalTax:     payroll.ParseAmount(s.ProfessionalTax),
		WelfareFund:         payroll.ParseAmount(s.WelfareFund),
		Insurance:           payroll.ParseAmount(s.Insurance),
		Advance:             payroll.ParseAmount(s.Advance),
	}
}

// IsField reports whether name is a known form field.
func IsField(name string) bool {
	var s State
	return s.field(name) != nil
}
