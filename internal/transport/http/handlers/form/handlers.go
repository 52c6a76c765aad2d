package formhandler

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"payslip/internal/domain/export"
	"payslip/internal/domain/form"
	"payslip/internal/domain/payslip"
	"payslip/internal/transport/http/api"
	"payslip/internal/transport/http/middleware"
	"payslip/internal/transport/http/shared"
)

// Links signs and checks per-file download tokens.
type Links interface {
	DownloadToken(fileName string) (string, error)
	VerifyDownload(token, fileName string) error
}

type Handler struct {
	Form         *form.Controller
	Assets       fs.FS
	DocumentsDir string
	Links        Links
}

func NewHandler(controller *form.Controller, assets fs.FS, documentsDir string, links Links) *Handler {
	return &Handler{Form: controller, Assets: assets, DocumentsDir: documentsDir, Links: links}
}

type periodRequest struct {
	Date      string `json:"date"`
	Cancelled bool   `json:"cancelled"`
}

type generateRequest struct {
	Share   *bool  `json:"share"`
	Email   *bool  `json:"email"`
	EmailTo string `json:"emailTo"`
}

type generateResponse struct {
	Path        string `json:"path"`
	FileName    string `json:"fileName"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// RegisterRoutes mounts the operator form routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/form", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Patch("/", h.handlePatch)
		r.Post("/period", h.handlePeriod)
		r.Post("/reset", h.handleReset)
		r.Get("/preview", h.handlePreview)
		r.Post("/generate", h.handleGenerate)
	})
}

// RegisterDownloads mounts the token-authenticated download route. It sits
// outside the operator session check.
func (h *Handler) RegisterDownloads(r chi.Router) {
	r.Get("/payslips/{fileName}", h.handleDownload)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Form.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload map[string]string
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	view, err := h.Form.SetFields(r.Context(), payload)
	if err != nil {
		if errors.Is(err, form.ErrUnknownField) {
			api.FailWithDetails(w, http.StatusBadRequest, "unknown_field", err.Error(), map[string]any{"fields": unknownFields(payload)}, requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "form_update_failed", err.Error(), requestID)
		return
	}
	api.Success(w, view, requestID)
}

func (h *Handler) handlePeriod(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload periodRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	if payload.Cancelled {
		api.Success(w, h.Form.PickPeriod(nil), requestID)
		return
	}
	v := shared.NewValidator()
	date, ok := v.Date("date", payload.Date)
	if !ok {
		v.Reject(w, requestID)
		return
	}
	api.Success(w, h.Form.PickPeriod(&date), requestID)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Form.Reset(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	doc, err := export.ResolveAssets(r.Context(), h.Assets, h.Form.Document())
	if err != nil {
		slog.Error("payslip preview failed", "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "preview_failed", err.Error(), requestID)
		return
	}
	if r.URL.Query().Get("format") == "json" {
		api.Success(w, doc, requestID)
		return
	}
	var buf bytes.Buffer
	if err := payslip.WriteHTML(&buf, doc); err != nil {
		slog.Error("payslip preview render failed", "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "preview_failed", "failed to render preview", requestID)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload generateRequest
	if r.ContentLength != 0 {
		if !shared.DecodeJSON(w, r, &payload, requestID) {
			return
		}
	}
	opts := export.Options{Share: true, EmailTo: strings.TrimSpace(payload.EmailTo)}
	if payload.Share != nil {
		opts.Share = *payload.Share
	}
	if payload.Email != nil {
		opts.Email = *payload.Email
	}

	result, err := h.Form.Generate(r.Context(), opts)
	if err != nil {
		writeGenerateError(w, err, requestID)
		return
	}

	resp := generateResponse{Path: result.Path, FileName: result.FileName}
	if h.Links != nil {
		token, err := h.Links.DownloadToken(result.FileName)
		if err != nil {
			slog.Warn("download link signing failed", "requestId", requestID, "err", err)
		} else {
			resp.DownloadURL = "/api/v1/payslips/" + url.PathEscape(result.FileName) + "?token=" + url.QueryEscape(token)
		}
	}
	api.Success(w, resp, requestID)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := chi.URLParam(r, "fileName")
	if name == "" || name != filepath.Base(name) || !strings.HasSuffix(name, export.FileSuffix+export.FileExtension) {
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", requestID)
		return
	}
	if h.Links == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", requestID)
		return
	}
	if err := h.Links.VerifyDownload(r.URL.Query().Get("token"), name); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_link", "download link is invalid or expired", requestID)
		return
	}

	path := filepath.Join(h.DocumentsDir, name)
	if _, err := os.Stat(path); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", requestID)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}

func writeGenerateError(w http.ResponseWriter, err error, requestID string) {
	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		issues := make([]shared.ValidationIssue, 0, len(verr.Missing))
		for _, field := range verr.Missing {
			issues = append(issues, shared.ValidationIssue{Field: field, Reason: "is required"})
		}
		shared.FailValidation(w, form.MissingIdentityMessage, requestID, issues)
	case errors.Is(err, form.ErrGenerationInProgress):
		api.Fail(w, http.StatusConflict, "generation_in_progress", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "payslip_generate_failed", err.Error(), requestID)
	}
}

func unknownFields(values map[string]string) []string {
	var out []string
	for name := range values {
		if !form.IsField(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
