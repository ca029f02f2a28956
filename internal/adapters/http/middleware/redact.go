package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
)

// sensitiveHeaders is the set of header names (lowercase) that must be
// redacted before logging. These headers commonly carry credentials.
var sensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"x-auth-token":        true,
	"cookie":              true,
	"set-cookie":          true,
}

// RedactHeaders converts an http.Header map into slog.Attr values sorted by
// header name. Headers whose lowercase name appears in sensitiveHeaders are
// replaced with "[REDACTED]". Multi-value headers are joined with a comma.
func RedactHeaders(headers http.Header) []slog.Attr {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		if sensitiveHeaders[strings.ToLower(key)] {
			attrs = append(attrs, slog.String(key, "[REDACTED]"))
			continue
		}
		attrs = append(attrs, slog.String(key, strings.Join(headers[key], ",")))
	}
	return attrs
}
