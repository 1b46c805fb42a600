package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"building-portal/internal/model"
	"building-portal/pkg/apierror"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				slog.Error("panic recovered", "error", fmt.Sprintf("%v", recovered), "stack", string(debug.Stack()))
				writeEnvelope(w, http.StatusInternalServerError, model.APIResponse{
					Success: false,
					Error: &apierror.Body{
						Code:    apierror.CodeInternal,
						Message: "Unexpected server error",
					},
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
