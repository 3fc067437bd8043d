package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/cafephin/dashboard-backend/api/responses"
	pkgerrors "github.com/cafephin/dashboard-backend/pkg/errors"
	"github.com/cafephin/dashboard-backend/pkg/logger"
)

const passcodeHeader = "X-Dashboard-Passcode"

// Passcode gates the report routes behind a shared secret. An empty
// configured passcode disables the check; the dashboard is then only as
// private as its network.
func Passcode(passcode string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if passcode == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(passcodeHeader)
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(passcode)) != 1 {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "missing or invalid dashboard passcode"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
