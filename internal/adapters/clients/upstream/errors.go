// Package upstream implements status probes for downstream HTTP services
// configured under the upstreams config section. Each probe issues a GET
// against the service's health path through [httpclient.Client], so breaker,
// retry, rate limiting, tracing and header propagation all apply.
package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 64 << 10

var (
	// ErrCircuitOpen is returned without a network call while the client's
	// circuit breaker rejects requests.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrUnavailable marks a 5xx answer from the health endpoint.
	ErrUnavailable = errors.New("upstream unavailable")
)

// StatusError describes a health endpoint that answered with a status of 400
// or above.
type StatusError struct {
	Service string
	Code    int
	Detail  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Service, e.Code, e.Detail)
}

// Unwrap lets callers match 5xx answers with errors.Is(err, ErrUnavailable).
func (e *StatusError) Unwrap() error {
	if e.Code >= http.StatusInternalServerError {
		return ErrUnavailable
	}
	return nil
}

// problemDetail is the subset of an RFC 7807 body used for error detail.
type problemDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// newStatusError builds a StatusError, taking the detail from an RFC 7807
// body when the response carries one and the status text otherwise.
func newStatusError(service string, resp *http.Response) *StatusError {
	detail := http.StatusText(resp.StatusCode)
	if pd := parseProblemDetail(resp); pd.Detail != "" {
		detail = pd.Detail
	} else if pd.Title != "" {
		detail = pd.Title
	}
	return &StatusError{Service: service, Code: resp.StatusCode, Detail: detail}
}

func parseProblemDetail(resp *http.Response) problemDetail {
	if resp.Body == nil {
		return problemDetail{}
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/problem+json") {
		return problemDetail{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return problemDetail{}
	}

	var pd problemDetail
	if err := json.Unmarshal(body, &pd); err != nil {
		return problemDetail{}
	}
	return pd
}
