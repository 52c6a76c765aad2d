package authhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payslip/internal/domain/auth"
	"payslip/internal/transport/http/api"
	"payslip/internal/transport/http/middleware"
	"payslip/internal/transport/http/shared"
)

type Handler struct {
	Operator *auth.Operator
}

func NewHandler(operator *auth.Operator) *Handler {
	return &Handler{Operator: operator}
}

type loginRequest struct {
	Passcode string `json:"passcode"`
	OTP      string `json:"otp"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if !h.Operator.Enabled() {
		api.Fail(w, http.StatusNotFound, "auth_disabled", "operator authentication is not enabled", requestID)
		return
	}

	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	v.Required("passcode", payload.Passcode, "is required")
	if v.Reject(w, requestID) {
		return
	}

	session, err := h.Operator.Login(payload.Passcode, payload.OTP)
	switch {
	case err == nil:
		api.Success(w, session, requestID)
	case errors.Is(err, auth.ErrOTPRequired):
		api.Fail(w, http.StatusUnauthorized, "otp_required", "one-time code required", requestID)
	case errors.Is(err, auth.ErrOTPInvalid):
		api.Fail(w, http.StatusUnauthorized, "otp_invalid", "invalid one-time code", requestID)
	case errors.Is(err, auth.ErrInvalidCredentials):
		slog.Warn("operator login rejected", "requestId", requestID)
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
	default:
		slog.Error("operator login failed", "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
	}
}
