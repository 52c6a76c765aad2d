package form

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"payslip/internal/domain/directory"
	"payslip/internal/domain/export"
	"payslip/internal/domain/payroll"
	"payslip/internal/domain/payslip"
)

type Directory interface {
	Get(ctx context.Context, id string) (directory.Employee, bool, error)
	FindByName(ctx context.Context, name string) (directory.Employee, bool, error)
	Put(ctx context.Context, emp directory.Employee) error
}

type Exporter interface {
	Export(ctx context.Context, doc payslip.Document, employeeName string, opts export.Options) (string, error)
}

type Recorder interface {
	RecordGeneration(err error)
	RecordRejected()
}

type Deps struct {
	Directory Directory
	Exporter  Exporter
	Settings  Settings
	Clock     func() time.Time
	Metrics   Recorder
}

// Controller holds one operator's form. Edits are serialized; at most one
// generation runs at a time.
type Controller struct {
	dir      Directory
	exporter Exporter
	settings Settings
	now      func() time.Time
	metrics  Recorder

	mu     sync.Mutex
	state  State
	totals payroll.Totals

	generating atomic.Bool
}

func New(deps Deps) *Controller {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	c := &Controller{
		dir:      deps.Directory,
		exporter: deps.Exporter,
		settings: deps.Settings,
		now:      now,
		metrics:  deps.Metrics,
	}
	c.state = InitialState(now())
	c.totals = payroll.ComputeTotals(c.state.numbers())
	return c
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) SetField(ctx context.Context, name, value string) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !IsField(name) {
		return c.viewLocked(), ErrUnknownField
	}
	c.setLocked(ctx, name, value)
	return c.viewLocked(), nil
}

// SetFields applies a batch of edits. Unknown names reject the whole batch.
func (c *Controller) SetFields(ctx context.Context, values map[string]string) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name := range values {
		if !IsField(name) {
			return c.viewLocked(), ErrUnknownField
		}
	}
	for _, name := range fieldOrder {
		if value, ok := values[name]; ok {
			c.setLocked(ctx, name, value)
		}
	}
	return c.viewLocked(), nil
}

// PickPeriod applies a date picker result. A nil date means the picker was
// dismissed.
func (c *Controller) PickPeriod(date *time.Time) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if date != nil {
		c.state.Month = date.Month().String()
		c.state.Year = strconv.Itoa(date.Year())
	}
	return c.viewLocked()
}

func (c *Controller) Reset() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = InitialState(c.now())
	c.totals = payroll.ComputeTotals(c.state.numbers())
	return c.viewLocked()
}

func (c *Controller) Payload() payslip.Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payloadLocked()
}

// Document renders the current form without exporting it.
func (c *Controller) Document() payslip.Document {
	return payslip.Render(c.Payload(), c.renderOptions())
}

func (c *Controller) Generating() bool {
	return c.generating.Load()
}

func (c *Controller) Generate(ctx context.Context, opts export.Options) (Result, error) {
	if !c.generating.CompareAndSwap(false, true) {
		if c.metrics != nil {
			c.metrics.RecordRejected()
		}
		return Result{}, ErrGenerationInProgress
	}
	defer c.generating.Store(false)

	c.mu.Lock()
	state := c.state
	payload := c.payloadLocked()
	c.mu.Unlock()

	if missing := missingIdentity(state); len(missing) > 0 {
		return Result{}, &ValidationError{Missing: missing}
	}

	emp := directory.Employee{
		ID:          payload.EmployeeID,
		Name:        payload.Name,
		Designation: state.Designation,
		Department:  state.Department,
	}
	if c.dir != nil {
		if err := c.dir.Put(ctx, emp); err != nil {
			slog.Warn("employee cache save failed", "employeeId", emp.ID, "err", err)
		}
	}

	doc := payslip.Render(payload, c.renderOptions())

	var (
		path string
		err  error
	)
	if c.exporter == nil {
		err = export.ErrNoWriter
	} else {
		path, err = c.exporter.Export(ctx, doc, payload.Name, opts)
	}
	if c.metrics != nil {
		c.metrics.RecordGeneration(err)
	}
	if err != nil {
		slog.Error("payslip generation failed", "employeeId", emp.ID, "err", err)
		return Result{}, &GenerateError{Err: err}
	}
	slog.Info("payslip generated", "employeeId", emp.ID, "path", path)
	return Result{Path: path, FileName: export.FileName(payload.Name)}, nil
}

func (c *Controller) setLocked(ctx context.Context, name, value string) {
	ptr := c.state.field(name)
	if *ptr == value {
		return
	}
	*ptr = value

	switch name {
	case FieldEmployeeID:
		c.autofillByID(ctx)
	case FieldName:
		c.autofillByName(ctx)
	}
	if payroll.IsTotalsField(name) {
		c.totals = payroll.ComputeTotals(c.state.numbers())
	}
}

func (c *Controller) autofillByID(ctx context.Context) {
	id := strings.TrimSpace(c.state.EmployeeID)
	if id == "" || c.dir == nil {
		return
	}
	emp, ok, err := c.dir.Get(ctx, id)
	if err != nil {
		slog.Warn("employee lookup by id failed", "employeeId", id, "err", err)
		return
	}
	if !ok {
		return
	}
	c.state.Name = emp.Name
	c.state.Designation = emp.Designation
	c.state.Department = emp.Department
}

func (c *Controller) autofillByName(ctx context.Context) {
	name := strings.TrimSpace(c.state.Name)
	if name == "" || strings.TrimSpace(c.state.EmployeeID) != "" || c.dir == nil {
		return
	}
	emp, ok, err := c.dir.FindByName(ctx, name)
	if err != nil {
		slog.Warn("employee lookup by name failed", "err", err)
		return
	}
	if !ok {
		return
	}
	c.state.EmployeeID = emp.ID
	c.state.Designation = emp.Designation
	c.state.Department = emp.Department
}

func (c *Controller) renderOptions() payslip.Options {
	return payslip.Options{
		CurrencySymbol: c.settings.CurrencySymbol,
		Watermark:      c.settings.Watermark,
	}
}

func (c *Controller) viewLocked() View {
	return View{State: c.state, Totals: c.totals, Generating: c.generating.Load()}
}

func (c *Controller) payloadLocked() payslip.Payload {
	s := c.state
	return payslip.Payload{
		CompanyName:    c.settings.CompanyName,
		CompanyAddress: c.settings.CompanyAddress,
		Month:          s.Month + " " + s.Year,
		Date:           c.now().UTC().Format(time.DateOnly),

		EmployeeID:  strings.TrimSpace(s.EmployeeID),
		Name:        strings.TrimSpace(s.Name),
		Designation: s.Designation,
		Department:  s.Department,

		GrossWages:       payroll.ParseAmount(s.GrossWages),
		TotalWorkingDays: payroll.RoundDays(payroll.ParseAmount(s.TotalWorkingDays)),
		LOPDays:          payroll.RoundDays(payroll.ParseAmount(s.LOPDays)),
		LeavesTaken:      payroll.RoundDays(payroll.ParseAmount(s.LeavesTaken)),
		PaidDays:         c.totals.PaidDays,

		Basic:               payroll.ParseAmount(s.Basic),
		HRA:                 payroll.ParseAmount(s.HRA),
		Conveyance:          payroll.ParseAmount(s.Conveyance),
		Medical:             payroll.ParseAmount(s.Medical),
		AttendanceIncentive: payroll.ParseAmount(s.AttendanceIncentive),
		FestivalBonus:       payroll.ParseAmount(s.FestivalBonus),
		OtherAllowance:      payroll.ParseAmount(s.OtherAllowance),

		EPF:             payroll.ParseAmount(s.EPF),
		ESI:             payroll.ParseAmount(s.ESI),
		ProfessionalTax: payroll.ParseAmount(s.ProfessionalTax),
		WelfareFund:     payroll.ParseAmount(s.WelfareFund),
		Insurance:       payroll.ParseAmount(s.Insurance),
		Advance:         payroll.ParseAmount(s.Advance),

		TotalEarnings:   c.totals.Earnings,
		TotalDeductions: c.totals.Deductions,
		NetSalary:       c.totals.Net,
	}
}

func missingIdentity(s State) []string {
	var missing []string
	if strings.TrimSpace(s.EmployeeID) == "" {
		missing = append(missing, FieldEmployeeID)
	}
	if strings.TrimSpace(s.Name) == "" {
		missing = append(missing, FieldName)
	}
	return missing
}
