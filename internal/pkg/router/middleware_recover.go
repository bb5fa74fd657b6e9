package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/shandysiswandi/otpbridge/internal/pkg/stacktrace"
)

//nolint:contextcheck // recover runs with the request context
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:err113,errorlint // sentinel must compare directly
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			stack := debug.Stack()
			if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
				slog.ErrorContext(r.Context(), "panic on the server", "because", rvr, "stack", paths)
			} else {
				slog.ErrorContext(r.Context(), "panic on the server trace debug", "because", rvr, "stack", string(stack))
			}

			// a hijacked websocket connection has no usable response writer
			if r.Header.Get("Upgrade") != "" {
				return
			}
			writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
