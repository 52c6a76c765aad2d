package payslip

import (
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("payslip").Funcs(template.FuncMap{
	"src": func(s string) template.URL { return template.URL(s) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Header.Title}} - {{.Header.Period}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 24px; }
  .page { position: relative; }
  .watermark { position: fixed; top: 30%; left: 20%; width: 60%; opacity: 0.08; z-index: -1; }
  header { display: flex; align-items: center; gap: 16px; border-bottom: 2px solid #1f3a5f; padding-bottom: 8px; }
  header img { height: 56px; }
  h1 { font-size: 20px; margin: 0; }
  .muted { color: #666; font-size: 12px; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; font-size: 13px; }
  th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: left; }
  td.amount { text-align: right; }
  .columns { display: flex; gap: 12px; }
  .columns > table { flex: 1; }
  tr.subtotal td { font-weight: bold; background: #f1f4f8; }
  .net { margin-top: 16px; padding: 12px; background: #1f3a5f; color: #fff; font-size: 18px; font-weight: bold; }
  footer { margin-top: 24px; font-size: 11px; color: #666; text-align: center; }
</style>
</head>
<body>
<div class="page">
{{if .Watermark}}<img class="watermark" src="{{src .Watermark.Src}}" alt="{{.Watermark.Alt}}">{{end}}
<header>
  <img src="{{src .Header.Logo.Src}}" alt="{{.Header.Logo.Alt}}">
  <div>
    <h1>{{.Header.CompanyName}}</h1>
    {{if .Header.CompanyAddress}}<div class="muted">{{.Header.CompanyAddress}}</div>{{end}}
    <div><strong>{{.Header.Title}}</strong> &middot; {{.Header.Period}}</div>
    <div class="muted">Generated on {{.Header.Date}}</div>
  </div>
</header>
<table>
{{range .Employee}}  <tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
{{end}}</table>
<table>
  <tr>{{range .Attendance}}<th>{{.Label}}</th>{{end}}</tr>
  <tr>{{range .Attendance}}<td>{{.Value}}</td>{{end}}</tr>
</table>
<div class="columns">
{{template "table" .Earnings}}
{{template "table" .Deductions}}
</div>
<div class="net">{{.Net.Label}}: {{.Net.Value}}</div>
<footer>{{.Footer}}</footer>
</div>
</body>
</html>
{{define "table"}}<table>
  <tr><th>{{.Title}}</th><th>Amount</th></tr>
{{range .Rows}}  <tr><td>{{.Label}}</td><td class="amount">{{.Value}}</td></tr>
{{end}}  <tr class="subtotal"><td>{{.Subtotal.Label}}</td><td class="amount">{{.Subtotal.Value}}</td></tr>
</table>{{end}}`))

// WriteHTML writes doc as a standalone HTML page.
func WriteHTML(w io.Writer, doc Document) error {
	return pageTemplate.Execute(w, doc)
}
