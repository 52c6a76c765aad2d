package formhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"payslip/assets"
	"payslip/internal/domain/auth"
	"payslip/internal/domain/directory"
	"payslip/internal/domain/export"
	"payslip/internal/domain/form"
	"payslip/internal/domain/payslip"
	"payslip/internal/platform/kv"
)

type stubWriter struct{}

func (stubWriter) Write(_ context.Context, _ payslip.Document, path string) error {
	return os.WriteFile(path, []byte("%PDF-stub"), 0o644)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testEnv struct {
	router http.Handler
	store  *directory.Store
	dir    string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	store := directory.NewStore(kv.NewMemory(), nil)
	controller := form.New(form.Deps{
		Directory: store,
		Exporter:  &export.Exporter{Assets: assets.FS, Writer: stubWriter{}, Dir: dir},
		Settings:  form.Settings{CompanyName: "Source One", CurrencySymbol: "₹", Watermark: true},
		Clock:     func() time.Time { return time.Date(2024, time.August, 10, 9, 0, 0, 0, time.UTC) },
	})
	links := &auth.Operator{Secret: "link-secret", LinkTTL: time.Minute}
	h := NewHandler(controller, assets.FS, dir, links)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	h.RegisterDownloads(r)
	return testEnv{router: r, store: store, dir: dir}
}

func (e testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return rec, env
}

func TestGetForm(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, http.MethodGet, "/form", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view form.View
	if err := json.Unmarshal(body.Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.State.Month != "August" || view.State.Year != "2024" {
		t.Fatalf("expected August 2024, got %+v", view.State)
	}
}

func TestPatchForm(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, http.MethodPatch, "/form", `{"basic":"15000","hra":"6000","epf":"1800"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view form.View
	json.Unmarshal(body.Data, &view)
	if view.Totals.Earnings != 21000 || view.Totals.Net != 19200 {
		t.Fatalf("unexpected totals: %+v", view.Totals)
	}

	rec, body = env.do(t, http.MethodPatch, "/form", `{"salary":"1"}`)
	if rec.Code != http.StatusBadRequest || body.Error == nil || body.Error.Code != "unknown_field" {
		t.Fatalf("expected unknown_field, got %d %+v", rec.Code, body.Error)
	}
}

func TestPeriodAndReset(t *testing.T) {
	env := newTestEnv(t)
	_, body := env.do(t, http.MethodPost, "/form/period", `{"date":"2023-12-01"}`)
	var view form.View
	json.Unmarshal(body.Data, &view)
	if view.State.Month != "December" || view.State.Year != "2023" {
		t.Fatalf("expected December 2023, got %+v", view.State)
	}

	_, body = env.do(t, http.MethodPost, "/form/period", `{"cancelled":true}`)
	json.Unmarshal(body.Data, &view)
	if view.State.Month != "December" {
		t.Fatalf("expected cancel to keep December, got %s", view.State.Month)
	}

	rec, _ := env.do(t, http.MethodPost, "/form/period", `{"date":"soon"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", rec.Code)
	}

	_, body = env.do(t, http.MethodPost, "/form/reset", "")
	json.Unmarshal(body.Data, &view)
	if view.State.Month != "August" {
		t.Fatalf("expected reset to current month, got %s", view.State.Month)
	}
}

func TestPreviewInlinesLogo(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPatch, "/form", `{"name":"Raj <b>"}`)
	rec, _ := env.do(t, http.MethodGet, "/form/preview", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	html := rec.Body.String()
	if !strings.Contains(html, "data:image/png;base64,") {
		t.Fatal("expected inlined logo")
	}
	if strings.Contains(html, "Raj <b>") {
		t.Fatal("expected employee name to be escaped")
	}
}

func TestGenerateValidation(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, http.MethodPost, "/form/generate", "")
	if rec.Code != http.StatusBadRequest || body.Error == nil || body.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %d %+v", rec.Code, body.Error)
	}
	if body.Error.Message != form.MissingIdentityMessage {
		t.Fatalf("expected operator message, got %q", body.Error.Message)
	}
}

func TestGenerateAndDownload(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPatch, "/form", `{"employeeId":"E1","name":"Raj Kumar","basic":"1000"}`)

	rec, body := env.do(t, http.MethodPost, "/form/generate", `{"share":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res generateResponse
	if err := json.Unmarshal(body.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.FileName != "Raj_Kumar_payslip.pdf" || res.DownloadURL == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, ok, _ := env.store.Get(context.Background(), "E1"); !ok {
		t.Fatal("expected employee saved")
	}

	rec, _ = env.do(t, http.MethodGet, strings.TrimPrefix(res.DownloadURL, "/api/v1"), "")
	if rec.Code != http.StatusOK || rec.Body.String() != "%PDF-stub" {
		t.Fatalf("expected file download, got %d %q", rec.Code, rec.Body.String())
	}

	rec, _ = env.do(t, http.MethodGet, "/payslips/Raj_Kumar_payslip.pdf?token=bogus", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rec.Code)
	}
	rec, _ = env.do(t, http.MethodGet, "/payslips/notes.txt", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-payslip name, got %d", rec.Code)
	}
}
