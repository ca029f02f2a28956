package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen11/sales-master/internal/adapters/http/dto"
	"github.com/jsamuelsen11/sales-master/internal/platform/logging"
)

// handlerPanic carries a panic raised on the handler goroutine, with the
// stack captured where it happened, back to the request goroutine.
type handlerPanic struct {
	value any
	stack []byte
}

func (p *handlerPanic) Error() string {
	return fmt.Sprintf("handler panic: %v", p.value)
}

// Timeout returns middleware that enforces a request deadline. If the handler
// does not complete within the given duration, a 504 Gateway Timeout problem
// response is written. The context passed to the handler carries the deadline
// so that probes and other I/O can respect it. A non-positive timeout
// disables the middleware.
//
// The handler runs in a separate goroutine and its output is buffered. A
// panic there is re-raised on the request goroutine so Recovery sees it. A
// panic after the 504 was sent has no request goroutine left to reach, so it
// is logged here with the logger carried by the request context.
//
// Health routes are exempt: their probes own their timeouts and the report
// is always answered.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isHealthPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := &timeoutWriter{w: w}
			done := make(chan struct{})
			panicked := make(chan *handlerPanic, 1)

			go func() {
				defer func() {
					v := recover()
					if v == nil {
						return
					}
					p := &handlerPanic{value: v, stack: debug.Stack()}

					tw.mu.Lock()
					defer tw.mu.Unlock()
					if tw.timedOut {
						logLatePanic(r, p)
						return
					}
					panicked <- p
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.flush()
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				dto.WriteErrorResponse(w, r, http.StatusGatewayTimeout, "request timed out")

				// The handler may have panicked between the deadline and
				// taking the lock.
				select {
				case p := <-panicked:
					logLatePanic(r, p)
				default:
				}
			}
		})
	}
}

func logLatePanic(r *http.Request, p *handlerPanic) {
	logging.FromContext(r.Context()).ErrorContext(r.Context(), "panic recovered",
		slog.String("panic", fmt.Sprint(p.value)),
		slog.String("stack", string(p.stack)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", RequestIDFromContext(r.Context())),
		slog.Bool("after_timeout", true),
	)
}

func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// timeoutWriter buffers the response so that the timeout path can safely
// write a 504 if the handler hasn't finished. All writes are guarded by a
// mutex shared between the handler goroutine and the timeout select.
type timeoutWriter struct {
	w           http.ResponseWriter
	mu          sync.Mutex
	header      http.Header
	buf         []byte
	statusCode  int
	wroteHeader bool
	timedOut    bool
}

func (tw *timeoutWriter) Header() http.Header {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.header == nil {
		tw.header = make(http.Header)
	}
	return tw.header
}

// Write returns http.ErrHandlerTimeout once the 504 has been sent.
func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.statusCode = http.StatusOK
		tw.wroteHeader = true
	}
	tw.buf = append(tw.buf, b...)
	return len(b), nil
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.wroteHeader || tw.timedOut {
		return
	}
	tw.statusCode = code
	tw.wroteHeader = true
}

// flush copies the buffered response to the underlying writer. Must be
// called with tw.mu held.
func (tw *timeoutWriter) flush() {
	if tw.header != nil {
		maps.Copy(tw.w.Header(), tw.header)
	}
	if tw.wroteHeader {
		tw.w.WriteHeader(tw.statusCode)
	}
	if len(tw.buf) > 0 {
		_, _ = tw.w.Write(tw.buf)
	}
}
