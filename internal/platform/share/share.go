// Package share hands exported files to a shared folder, such as a synced
// drive or a network mount watched by other tools.
package share

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Folder struct {
	Dir string
}

func (f Folder) Available(context.Context) bool {
	if f.Dir == "" {
		return false
	}
	info, err := os.Stat(f.Dir)
	return err == nil && info.IsDir()
}

// Share copies path into the folder under its own base name, replacing an
// earlier copy.
func (f Folder) Share(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	tmp := filepath.Join(f.Dir, "."+uuid.NewString()+".tmp")
	dst, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	target := filepath.Join(f.Dir, filepath.Base(path))
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("share %s: %w", filepath.Base(path), err)
	}
	slog.Info("payslip shared", "target", target)
	return nil
}
