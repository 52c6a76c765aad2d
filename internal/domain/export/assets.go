package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"payslip/internal/domain/payslip"
)

const placeholderPrefix = "file:///assets/"

// ResolveAssets replaces placeholder image paths with inline data URIs read
// from fsys. A missing logo is fatal; a missing watermark is dropped.
func ResolveAssets(ctx context.Context, fsys fs.FS, doc payslip.Document) (payslip.Document, error) {
	if err := ctx.Err(); err != nil {
		return doc, err
	}
	logo, err := inline(fsys, doc.Header.Logo.Src)
	if err != nil {
		return doc, fmt.Errorf("%w: %v", ErrLogoUnavailable, err)
	}
	doc.Header.Logo.Src = logo

	if doc.Watermark != nil {
		src, err := inline(fsys, doc.Watermark.Src)
		if err != nil {
			slog.Debug("watermark omitted", "src", doc.Watermark.Src, "err", err)
			doc.Watermark = nil
		} else {
			wm := *doc.Watermark
			wm.Src = src
			doc.Watermark = &wm
		}
	}
	return doc, nil
}

func inline(fsys fs.FS, src string) (string, error) {
	if strings.HasPrefix(src, "data:") {
		return src, nil
	}
	if fsys == nil {
		return "", fmt.Errorf("no asset source for %s", src)
	}
	name := strings.TrimPrefix(src, placeholderPrefix)
	if name == src || name == "" {
		return "", fmt.Errorf("unsupported asset reference %q", src)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", err
	}
	return "data:" + mimeType(name) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func mimeType(name string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}

// decodeDataURI returns the payload and image type ("PNG" or "JPG") of a
// base64 data URI.
func decodeDataURI(uri string) ([]byte, string, error) {
	meta, encoded, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok || !strings.HasPrefix(uri, "data:") || !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("not a base64 data uri")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", err
	}
	imageType := "PNG"
	if strings.HasPrefix(meta, "image/jpeg") {
		imageType = "JPG"
	}
	return data, imageType, nil
}
