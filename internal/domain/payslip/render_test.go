package payslip

import (
	"bytes"
	"strings"
	"testing"
)

func samplePayload() Payload {
	return Payload{
		CompanyName:         "Source One",
		Month:               "August 2025",
		Date:                "2025-08-31",
		EmployeeID:          "E100",
		Name:                "Raj Kumar",
		Designation:         "Engineer",
		Department:          "IT",
		GrossWages:          30750,
		TotalWorkingDays:    26,
		LeavesTaken:         2,
		PaidDays:            24,
		Basic:               20000,
		HRA:                 8000,
		Conveyance:          1000,
		Medical:             1250,
		AttendanceIncentive: 500,
		EPF:                 1800,
		ESI:                 200,
		ProfessionalTax:     200,
		WelfareFund:         20,
		TotalEarnings:       30750,
		TotalDeductions:     2220,
		NetSalary:           28530,
	}
}

func TestRenderBuildsSections(t *testing.T) {
	doc := Render(samplePayload(), Options{CurrencySymbol: "₹", Watermark: true})

	if doc.Header.Logo.Src != LogoPlaceholder {
		t.Fatalf("expected logo placeholder, got %q", doc.Header.Logo.Src)
	}
	if doc.Header.Period != "Payslip for the month of August 2025" {
		t.Fatalf("unexpected period %q", doc.Header.Period)
	}
	if len(doc.Earnings.Rows) != 7 || len(doc.Deductions.Rows) != 6 {
		t.Fatalf("unexpected table sizes %d/%d", len(doc.Earnings.Rows), len(doc.Deductions.Rows))
	}
	if doc.Earnings.Subtotal.Value != "₹ 30,750.00" {
		t.Fatalf("unexpected earnings subtotal %q", doc.Earnings.Subtotal.Value)
	}
	if doc.Deductions.Subtotal.Value != "₹ 2,220.00" {
		t.Fatalf("unexpected deductions subtotal %q", doc.Deductions.Subtotal.Value)
	}
	if doc.Net.Value != "₹ 28,530.00" {
		t.Fatalf("unexpected net %q", doc.Net.Value)
	}
	if doc.Attendance[4].Label != "Paid Days" || doc.Attendance[4].Value != "24" {
		t.Fatalf("unexpected paid days row %+v", doc.Attendance[4])
	}
	if doc.Watermark == nil || doc.Watermark.Src != WatermarkPlaceholder {
		t.Fatalf("expected watermark placeholder, got %+v", doc.Watermark)
	}
}

func TestRenderWithoutWatermark(t *testing.T) {
	doc := Render(samplePayload(), Options{})
	if doc.Watermark != nil {
		t.Fatal("expected no watermark")
	}
	if doc.Net.Value != "28,530.00" {
		t.Fatalf("expected bare amount without symbol, got %q", doc.Net.Value)
	}
}

func TestWriteHTML(t *testing.T) {
	doc := Render(samplePayload(), Options{CurrencySymbol: "₹"})
	doc.Header.Logo.Src = "data:image/png;base64,AAAA"
	var buf bytes.Buffer
	if err := WriteHTML(&buf, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Source One", "PAYSLIP", "Raj Kumar", "₹ 28,530.00", "Total Deductions", `src="data:image/png;base64,AAAA"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected html to contain %q", want)
		}
	}
	if strings.Contains(out, "watermark.png") {
		t.Fatal("expected no watermark reference")
	}
}

func TestWriteHTMLEscapesInput(t *testing.T) {
	p := samplePayload()
	p.Name = "<script>alert(1)</script>"
	var buf bytes.Buffer
	if err := WriteHTML(&buf, Render(p, Options{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert") {
		t.Fatal("expected employee name to be escaped")
	}
}
