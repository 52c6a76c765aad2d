package middleware

import (
	"net/http"
	"strings"

	"payslip/internal/requestctx"
	"payslip/internal/transport/http/api"
)

// SessionVerifier checks an operator bearer token.
type SessionVerifier interface {
	Enabled() bool
	VerifySession(token string) error
}

// RequireOperator rejects requests without a valid operator session. When
// operator auth is disabled every request passes through.
func RequireOperator(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil || !verifier.Enabled() {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", GetRequestID(r.Context()))
				return
			}
			if err := verifier.VerifySession(token); err != nil {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid or expired session", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithOperator(r.Context())))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}
