package middleware

import (
	"fmt"
	"net/http"

	"github.com/cafephin/dashboard-backend/api/responses"
	pkgerrors "github.com/cafephin/dashboard-backend/pkg/errors"
	"github.com/cafephin/dashboard-backend/pkg/logger"
)

// Recoverer converts handler panics into the standard error envelope
// so a bad report request never takes the dashboard API down.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{
							"panic": rec,
							"path":  r.URL.Path,
						})
						logg.Error(ctx, "report handler panicked", err)
					}
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "report handler panicked"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
