package export

import (
	"regexp"
	"strings"
)

const (
	FileSuffix    = "_payslip"
	FileExtension = ".pdf"
	DefaultName   = "employee"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	disallowed    = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// SanitizeName reduces name to [A-Za-z0-9_-]; whitespace runs become one
// underscore.
func SanitizeName(name string) string {
	safe := whitespaceRun.ReplaceAllString(name, "_")
	safe = disallowed.ReplaceAllString(safe, "")
	if safe == "" {
		return DefaultName
	}
	return safe
}

// FileName returns the download name for an employee's payslip.
func FileName(employeeName string) string {
	return SanitizeName(strings.TrimSpace(employeeName)) + FileSuffix + FileExtension
}
