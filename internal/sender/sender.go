// Package sender exports finished reports to a collection endpoint.
package sender

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/monify-labs/hostreport/pkg/models"
)

var (
	// ErrUnauthorized is returned when the endpoint rejects the token (401).
	ErrUnauthorized = errors.New("authentication failed: invalid or expired token")
	// ErrNoReport is returned for a payload that carries no report.
	ErrNoReport = errors.New("payload has no report")
)

// Sender exports one report payload and returns the endpoint's receipt.
type Sender interface {
	Send(ctx context.Context, payload *models.ReportPayload) (*models.ServerResponse, error)
}

// StatusError is a non-2xx reply other than 401.
type StatusError struct {
	Code       int
	Body       string
	RetryAfter string
}

func (e *StatusError) Error() string {
	switch e.Code {
	case http.StatusBadRequest:
		return fmt.Sprintf("report rejected: %s", e.Body)
	case http.StatusRequestEntityTooLarge:
		return "report too large for endpoint"
	case http.StatusTooManyRequests:
		if e.RetryAfter != "" {
			return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
		}
		return "rate limited"
	default:
		msg := fmt.Sprintf("unexpected status code %d", e.Code)
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	}
}

// Kind labels a report for the endpoint: a normal report or the single
// diagnostic section produced when generation failed.
func Kind(report *models.Report) string {
	if report.Fatal {
		return "diagnostic"
	}
	return "complete"
}

// trimBody keeps error bodies to one readable line.
func trimBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
