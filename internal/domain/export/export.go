package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"payslip/internal/domain/payslip"
)

const (
	MailBody       = "Please find attached payslip."
	mailSubjectFmt = "Payslip - %s"
	tempSuffix     = ".tmp"
)

type Exporter struct {
	Assets fs.FS
	Writer DocumentWriter
	Dir    string
	Sharer Sharer
	Mailer Mailer
}

// Export writes doc to <Dir>/<sanitized name>_payslip.pdf, replacing any
// earlier file for the same name, then hands it to the share and mail
// capabilities when requested and available. Share and mail are
// fire-and-forget: their failures are logged and the path is still returned.
func (e *Exporter) Export(ctx context.Context, doc payslip.Document, employeeName string, opts Options) (string, error) {
	if e.Writer == nil {
		return "", ErrNoWriter
	}
	resolved, err := ResolveAssets(ctx, e.Assets, doc)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", err
	}
	tmp := filepath.Join(e.Dir, tempName())
	if err := e.Writer.Write(ctx, resolved, tmp); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("render pdf: %w", err)
	}

	dest := filepath.Join(e.Dir, FileName(employeeName))
	if err := replaceFile(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}

	if opts.Share {
		if e.Sharer != nil && e.Sharer.Available(ctx) {
			if err := e.Sharer.Share(ctx, dest); err != nil {
				slog.Warn("payslip share failed", "path", dest, "err", err)
			}
		} else {
			slog.Debug("share unavailable, skipped", "path", dest)
		}
	}

	if opts.Email {
		if e.Mailer != nil && e.Mailer.Available(ctx) {
			msg := Message{
				Subject:     fmt.Sprintf(mailSubjectFmt, strings.TrimSpace(employeeName)),
				Body:        MailBody,
				Attachments: []string{dest},
			}
			if to := strings.TrimSpace(opts.EmailTo); to != "" {
				msg.To = []string{to}
			}
			if err := e.Mailer.Compose(ctx, msg); err != nil {
				slog.Warn("payslip email failed", "path", dest, "err", err)
			}
		} else {
			slog.Debug("mail composer unavailable, skipped", "path", dest)
		}
	}

	return dest, nil
}

// replaceFile removes dest if present and moves src into its place.
func replaceFile(src, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("remove previous payslip: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("move payslip into place: %w", err)
	}
	return nil
}
