package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"payslip/internal/domain/payslip"
)

const (
	pageMargin  = 15.0
	contentW    = 180.0
	rowH        = 7.0
	fontFamily  = "Helvetica"
	utf8Family  = "payslip"
	logoImage   = "logo"
	markImage   = "watermark"
	markOpacity = 0.08
)

// PDFWriter lays a payslip document out on A4 pages. Without FontPath the
// core Helvetica font is used and the rupee sign is written as "Rs.".
type PDFWriter struct {
	FontPath string
}

func (w PDFWriter) Write(ctx context.Context, doc payslip.Document, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(doc.Header.Title+" "+doc.Header.Period, true)
	pdf.SetCreator(doc.Header.CompanyName, true)

	family := fontFamily
	tr := func(s string) string { return s }
	if w.FontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", w.FontPath)
		pdf.AddUTF8Font(utf8Family, "B", w.FontPath)
		family = utf8Family
	} else {
		cp := pdf.UnicodeTranslatorFromDescriptor("")
		tr = func(s string) string { return cp(strings.ReplaceAll(s, "₹", "Rs.")) }
	}

	if err := registerImage(pdf, logoImage, doc.Header.Logo.Src); err != nil {
		return fmt.Errorf("logo: %w", err)
	}
	hasMark := false
	if doc.Watermark != nil {
		hasMark = registerImage(pdf, markImage, doc.Watermark.Src) == nil
	}

	pdf.SetHeaderFunc(func() {
		if !hasMark {
			return
		}
		pageW, pageH := pdf.GetPageSize()
		size := pageW * 0.6
		pdf.SetAlpha(markOpacity, "Normal")
		pdf.ImageOptions(markImage, (pageW-size)/2, (pageH-size)/2, size, size, false, gofpdf.ImageOptions{}, 0, "")
		pdf.SetAlpha(1, "Normal")
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(family, "", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 5, tr(doc.Footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	writeHeader(pdf, family, tr, doc.Header)
	writeEmployee(pdf, family, tr, doc.Employee)
	writeAttendance(pdf, family, tr, doc.Attendance)
	writeTables(pdf, family, tr, doc.Earnings, doc.Deductions)
	writeNet(pdf, family, tr, doc.Net)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

func registerImage(pdf *gofpdf.Fpdf, name, src string) error {
	data, imageType, err := decodeDataURI(src)
	if err != nil {
		return err
	}
	info := pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if info == nil || !pdf.Ok() {
		err := pdf.Error()
		pdf.ClearError()
		return fmt.Errorf("register image %s: %v", name, err)
	}
	return nil
}

func writeHeader(pdf *gofpdf.Fpdf, family string, tr func(string) string, h payslip.Header) {
	top := pdf.GetY()
	pdf.ImageOptions(logoImage, pageMargin, top, 22, 22, false, gofpdf.ImageOptions{}, 0, "")

	pdf.SetXY(pageMargin+26, top)
	pdf.SetTextColor(31, 58, 95)
	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(contentW-26, 8, tr(h.CompanyName), "", 2, "L", false, 0, "")
	pdf.SetTextColor(90, 90, 90)
	pdf.SetFont(family, "", 9)
	if h.CompanyAddress != "" {
		pdf.CellFormat(contentW-26, 5, tr(h.CompanyAddress), "", 2, "L", false, 0, "")
	}
	pdf.SetTextColor(34, 34, 34)
	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(contentW-26, 6, tr(h.Title+" - "+h.Period), "", 2, "L", false, 0, "")
	pdf.SetFont(family, "", 9)
	pdf.CellFormat(contentW-26, 5, tr("Generated on "+h.Date), "", 2, "L", false, 0, "")

	pdf.SetY(top + 26)
	pdf.SetDrawColor(31, 58, 95)
	pdf.SetLineWidth(0.6)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentW, pdf.GetY())
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Ln(4)
}

func writeEmployee(pdf *gofpdf.Fpdf, family string, tr func(string) string, rows []payslip.Row) {
	const labelW, valueW = 30.0, 60.0
	for i, row := range rows {
		ln := 0
		if i%2 == 1 || i == len(rows)-1 {
			ln = 1
		}
		pdf.SetFont(family, "B", 10)
		pdf.CellFormat(labelW, rowH, tr(row.Label), "1", 0, "L", false, 0, "")
		pdf.SetFont(family, "", 10)
		pdf.CellFormat(valueW, rowH, tr(row.Value), "1", ln, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeAttendance(pdf *gofpdf.Fpdf, family string, tr func(string) string, rows []payslip.Row) {
	if len(rows) == 0 {
		return
	}
	cellW := contentW / float64(len(rows))
	pdf.SetFillColor(241, 244, 248)
	pdf.SetFont(family, "B", 9)
	for i, row := range rows {
		pdf.CellFormat(cellW, rowH, tr(row.Label), "1", lineBreak(i, len(rows)), "C", true, 0, "")
	}
	pdf.SetFont(family, "", 10)
	for i, row := range rows {
		pdf.CellFormat(cellW, rowH, tr(row.Value), "1", lineBreak(i, len(rows)), "C", false, 0, "")
	}
	pdf.Ln(4)
}

func writeTables(pdf *gofpdf.Fpdf, family string, tr func(string) string, left, right payslip.Table) {
	const labelW, amountW = 55.0, 35.0
	pdf.SetFillColor(31, 58, 95)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(labelW, rowH, tr(left.Title), "1", 0, "L", true, 0, "")
	pdf.CellFormat(amountW, rowH, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(labelW, rowH, tr(right.Title), "1", 0, "L", true, 0, "")
	pdf.CellFormat(amountW, rowH, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetTextColor(34, 34, 34)
	pdf.SetFont(family, "", 10)
	n := max(len(left.Rows), len(right.Rows))
	for i := 0; i < n; i++ {
		l, r := rowAt(left.Rows, i), rowAt(right.Rows, i)
		pdf.CellFormat(labelW, rowH, tr(l.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(amountW, rowH, tr(l.Value), "1", 0, "R", false, 0, "")
		pdf.CellFormat(labelW, rowH, tr(r.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(amountW, rowH, tr(r.Value), "1", 1, "R", false, 0, "")
	}

	pdf.SetFillColor(241, 244, 248)
	pdf.SetFont(family, "B", 10)
	pdf.CellFormat(labelW, rowH, tr(left.Subtotal.Label), "1", 0, "L", true, 0, "")
	pdf.CellFormat(amountW, rowH, tr(left.Subtotal.Value), "1", 0, "R", true, 0, "")
	pdf.CellFormat(labelW, rowH, tr(right.Subtotal.Label), "1", 0, "L", true, 0, "")
	pdf.CellFormat(amountW, rowH, tr(right.Subtotal.Value), "1", 1, "R", true, 0, "")
	pdf.Ln(6)
}

func writeNet(pdf *gofpdf.Fpdf, family string, tr func(string) string, net payslip.Row) {
	pdf.SetFillColor(31, 58, 95)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(contentW/2, 12, tr(net.Label), "", 0, "L", true, 0, "")
	pdf.CellFormat(contentW/2, 12, tr(net.Value), "", 1, "R", true, 0, "")
	pdf.SetTextColor(34, 34, 34)
}

func rowAt(rows []payslip.Row, i int) payslip.Row {
	if i < len(rows) {
		return rows[i]
	}
	return payslip.Row{}
}

func lineBreak(i, n int) int {
	if i == n-1 {
		return 1
	}
	return 0
}
