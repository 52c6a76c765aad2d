// Package assets embeds the default payslip images.
package assets

import "embed"

//go:embed *.png
var FS embed.FS
