package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"

	"github.com/jsamuelsen11/sales-master/internal/platform/config"
)

// CORS returns the cross-origin request transform configured by
// server.cors. Request headers are allowed without restriction, matching
// the reflected-headers behavior browsers expect from a public health API.
// Preflight requests are answered here and do not reach the router.
func CORS(cfg config.CORSConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: cfg.AllowedMethods,
		AllowedHeaders: []string{"*"},
		ExposedHeaders: cfg.ExposedHeaders,
	})
	if logger != nil && logger.Enabled(context.Background(), slog.LevelDebug) {
		c.Log = corsLogger{logger: logger}
	}
	return c.Handler
}

// corsLogger routes go-chi/cors decision traces to slog at debug level.
type corsLogger struct {
	logger *slog.Logger
}

func (l corsLogger) Printf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), slog.String("component", "cors"))
}
