package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"payslip/assets"
	"payslip/internal/domain/payslip"
)

type fakeWriter struct {
	content string
	err     error
	paths   []string
	docs    []payslip.Document
}

func (w *fakeWriter) Write(_ context.Context, doc payslip.Document, path string) error {
	w.paths = append(w.paths, path)
	w.docs = append(w.docs, doc)
	if w.err != nil {
		return w.err
	}
	if !strings.HasPrefix(doc.Header.Logo.Src, "data:image/png;base64,") {
		return errors.New("logo not resolved")
	}
	return os.WriteFile(path, []byte(w.content), 0o644)
}

type fakeSharer struct {
	available bool
	shared    []string
}

func (s *fakeSharer) Available(context.Context) bool { return s.available }
func (s *fakeSharer) Share(_ context.Context, path string) error {
	s.shared = append(s.shared, path)
	return nil
}

type fakeMailer struct {
	available bool
	messages  []Message
	err       error
}

func (m *fakeMailer) Available(context.Context) bool { return m.available }
func (m *fakeMailer) Compose(_ context.Context, msg Message) error {
	m.messages = append(m.messages, msg)
	return m.err
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 31, G: 58, B: 95, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testDocument() payslip.Document {
	return payslip.Render(payslip.Payload{
		CompanyName:   "Source One",
		Month:         "August 2025",
		Date:          "2025-08-31",
		EmployeeID:    "E1",
		Name:          "Raj Kumar",
		Basic:         20000,
		TotalEarnings: 20000,
		NetSalary:     20000,
	}, payslip.Options{CurrencySymbol: "₹", Watermark: true})
}

func TestExportWritesSanitizedFile(t *testing.T) {
	dir := t.TempDir()
	writer := &fakeWriter{content: "new"}
	exp := &Exporter{
		Assets: fstest.MapFS{"logo.png": {Data: testPNG(t)}},
		Writer: writer,
		Dir:    dir,
	}
	path, err := exp.Export(context.Background(), testDocument(), "Raj Kumar!!", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "Raj_Kumar_payslip.pdf" {
		t.Fatalf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "new" {
		t.Fatalf("expected written file, got %q err=%v", data, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the final file, got %d entries", len(entries))
	}
}

func TestExportReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "Raj_Kumar_payslip.pdf")
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	exp := &Exporter{
		Assets: fstest.MapFS{"logo.png": {Data: testPNG(t)}},
		Writer: &fakeWriter{content: "new"},
		Dir:    dir,
	}
	if _, err := exp.Export(context.Background(), testDocument(), "Raj Kumar", Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "new" {
		t.Fatalf("expected replaced content, got %q", data)
	}
}

func TestExportMissingLogoIsFatal(t *testing.T) {
	writer := &fakeWriter{}
	exp := &Exporter{Assets: fstest.MapFS{}, Writer: writer, Dir: t.TempDir()}
	_, err := exp.Export(context.Background(), testDocument(), "Raj", Options{})
	if !errors.Is(err, ErrLogoUnavailable) {
		t.Fatalf("expected ErrLogoUnavailable, got %v", err)
	}
	if len(writer.paths) != 0 {
		t.Fatal("expected no render attempt")
	}
}

func TestExportRenderFailureCleansTemp(t *testing.T) {
	dir := t.TempDir()
	exp := &Exporter{
		Assets: fstest.MapFS{"logo.png": {Data: testPNG(t)}},
		Writer: &fakeWriter{err: errors.New("printer jammed")},
		Dir:    dir,
	}
	_, err := exp.Export(context.Background(), testDocument(), "Raj", Options{})
	if err == nil || !strings.Contains(err.Error(), "printer jammed") {
		t.Fatalf("expected render error, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, got %d entries", len(entries))
	}
}

func TestExportReplaceFailureCleansTemp(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "Raj_payslip.pdf")
	if err := os.MkdirAll(filepath.Join(blocker, "keep"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	exp := &Exporter{
		Assets: fstest.MapFS{"logo.png": {Data: testPNG(t)}},
		Writer: &fakeWriter{content: "pdf"},
		Dir:    dir,
	}
	if _, err := exp.Export(context.Background(), testDocument(), "Raj", Options{}); err == nil {
		t.Fatal("expected error when the destination cannot be replaced")
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if isTempName(e.Name()) {
			t.Fatalf("expected temp file removed, found %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the blocking directory, got %d entries", len(entries))
	}
}

func TestExportEmbeddedAssetsIncludeWatermark(t *testing.T) {
	writer := &fakeWriter{content: "pdf"}
	exp := &Exporter{Assets: assets.FS, Writer: writer, Dir: t.TempDir()}
	if _, err := exp.Export(context.Background(), testDocument(), "Raj", Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.docs) != 1 {
		t.Fatalf("expected one render, got %d", len(writer.docs))
	}
	mark := writer.docs[0].Watermark
	if mark == nil {
		t.Fatal("expected embedded watermark to be resolved")
	}
	data, imageType, err := decodeDataURI(mark.Src)
	if err != nil || imageType != "PNG" {
		t.Fatalf("expected png watermark, got type=%s err=%v", imageType, err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("expected decodable watermark, got %v", err)
	}
}

func TestPDFWriterWithEmbeddedAssets(t *testing.T) {
	doc, err := ResolveAssets(context.Background(), assets.FS, testDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := (PDFWriter{}).Write(context.Background(), doc, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected a pdf file, err=%v", err)
	}
}

func TestExportSharesAndMails(t *testing.T) {
	sharer := &fakeSharer{available: true}
	mailer := &fakeMailer{available: true}
	exp := &Exporter{
		Assets: fstest.MapFS{"logo.png": {Data: testPNG(t)}},
		Writer: &fakeWriter{content: "pdf"},
		Dir:    t.TempDir(),
		Sharer: sharer,
		Mailer: mailer,
	}
	path, err := exp.Export(context.Background(), testDocument(), "Raj Kumar", Options{Share: true, Email: true, EmailTo: "raj@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sharer.shared) != 1 || sharer.shared[0] != path {
		t.Fatalf("expected one share of %s, got %v", path, sharer.shared)
	}
	if len(mailer.messages) != 1 {
		t.Fatalf("expected one mail, got %d", len(mailer.messages))
	}
	msg := mailer.messages[0]
	if msg.Subject != "Payslip - Raj Kumar" || msg.Body != MailBody {
		t.Fatalf("unexpected message %+v", msg)
	}
	if len(msg.To) != 1 || msg.To[0] != "raj@example.com" {
		t.Fatalf("unexpected recipients %v", msg.To)
	}
	if len(msg.Attachments) != 1 || msg.Attachments[0] != path {
		t.Fatalf("unexpected attachments %v", msg.Attachments)
	}
}

func TestExportSkipsUnavailableCapabilities(t *testing.T) {
	sharer := &fakeSharer{available: false}
	mailer := &fakeMailer{available: false}
	exp := &Exporter{
		Assets: fstest.MapFS{"logo.png": {Data: testPNG(t)}},
		Writer: &fakeWriter{content: "pdf"},
		Dir:    t.TempDir(),
		Sharer: sharer,
		Mailer: mailer,
	}
	if _, err := exp.Export(context.Background(), testDocument(), "Raj", Options{Share: true, Email: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sharer.shared) != 0 || len(mailer.messages) != 0 {
		t.Fatal("expected share and mail to be skipped")
	}
}

func TestExportMailFailureStillReturnsPath(t *testing.T) {
	mailer := &fakeMailer{available: true, err: errors.New("smtp down")}
	exp := &Exporter{
		Assets: fstest.MapFS{"logo.png": {Data: testPNG(t)}},
		Writer: &fakeWriter{content: "pdf"},
		Dir:    t.TempDir(),
		Mailer: mailer,
	}
	path, err := exp.Export(context.Background(), testDocument(), "Raj", Options{Email: true})
	if err != nil || path == "" {
		t.Fatalf("expected path despite mail failure, got %q err=%v", path, err)
	}
	if len(mailer.messages[0].To) != 0 {
		t.Fatal("expected no recipients when none given")
	}
}

func TestResolveAssets(t *testing.T) {
	logo := testPNG(t)
	fsys := fstest.MapFS{"logo.png": {Data: logo}, "watermark.png": {Data: logo}}
	doc, err := ResolveAssets(context.Background(), fsys, testDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(doc.Header.Logo.Src, "data:image/png;base64,") {
		t.Fatalf("expected inline logo, got %q", doc.Header.Logo.Src[:20])
	}
	if doc.Watermark == nil || !strings.HasPrefix(doc.Watermark.Src, "data:image/png;base64,") {
		t.Fatal("expected inline watermark")
	}
	data, imageType, err := decodeDataURI(doc.Header.Logo.Src)
	if err != nil || imageType != "PNG" || !bytes.Equal(data, logo) {
		t.Fatalf("expected round trip of logo bytes, type=%s err=%v", imageType, err)
	}
}

func TestResolveAssetsDropsMissingWatermark(t *testing.T) {
	original := testDocument()
	doc, err := ResolveAssets(context.Background(), fstest.MapFS{"logo.png": {Data: testPNG(t)}}, original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Watermark != nil {
		t.Fatal("expected watermark to be omitted")
	}
	if original.Watermark == nil || original.Watermark.Src != payslip.WatermarkPlaceholder {
		t.Fatal("expected input document left untouched")
	}
}

func TestMimeType(t *testing.T) {
	if mimeType("logo.JPG") != "image/jpeg" || mimeType("a.jpeg") != "image/jpeg" || mimeType("x.png") != "image/png" || mimeType("x") != "image/png" {
		t.Fatal("unexpected mime mapping")
	}
}

func TestPDFWriter(t *testing.T) {
	logo := testPNG(t)
	doc, err := ResolveAssets(context.Background(), fstest.MapFS{"logo.png": {Data: logo}, "watermark.png": {Data: logo}}, testDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := (PDFWriter{}).Write(context.Background(), doc, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("expected a pdf file")
	}
}

func TestPDFWriterRejectsUnresolvedLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := (PDFWriter{}).Write(context.Background(), testDocument(), path); err == nil {
		t.Fatal("expected error for placeholder logo")
	}
}
