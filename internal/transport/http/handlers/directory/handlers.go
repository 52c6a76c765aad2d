package directoryhandler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"payslip/internal/domain/directory"
	"payslip/internal/transport/http/api"
	"payslip/internal/transport/http/middleware"
)

type Directory interface {
	Get(ctx context.Context, id string) (directory.Employee, bool, error)
	List(ctx context.Context) ([]directory.Employee, error)
}

type Handler struct {
	Directory Directory
}

func NewHandler(dir Directory) *Handler {
	return &Handler{Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleList)
	r.Get("/employees/{employeeID}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employees, err := h.Directory.List(r.Context())
	if err != nil {
		slog.Error("employee list failed", "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "directory_unavailable", "employee directory unavailable", requestID)
		return
	}
	if employees == nil {
		employees = []directory.Employee{}
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := strings.TrimSpace(chi.URLParam(r, "employeeID"))
	emp, ok, err := h.Directory.Get(r.Context(), id)
	if err != nil {
		slog.Error("employee lookup failed", "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "directory_unavailable", "employee directory unavailable", requestID)
		return
	}
	if !ok {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	api.Success(w, emp, requestID)
}
