package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/sales-master/internal/adapters/http/dto"
)

// Recovery returns the failure trap: middleware that recovers from panics in
// everything it wraps. The panic value and stack are logged; the caller only
// ever sees a 500 with {"error":"Internal Server Error"}. If the response
// headers have already been written, only the log entry is emitted.
//
// It must be the outermost middleware. http.ErrAbortHandler is re-raised so
// net/http can abort the connection as intended.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				value, stack := v, debug.Stack()
				var hp *handlerPanic
				if err, ok := v.(error); ok && errors.As(err, &hp) {
					value, stack = hp.value, hp.stack
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(value)),
					slog.String("stack", string(stack)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", rw.Header().Get(headerRequestID)),
				)

				if !rw.headerWritten {
					dto.WriteFault(rw)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
