package sender

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/google/uuid"

	"github.com/monify-labs/hostreport/internal/config"
	"github.com/monify-labs/hostreport/pkg/models"
)

// HTTPSender posts gzip-compressed JSON reports with bearer authentication.
type HTTPSender struct {
	url    string
	token  string
	client *http.Client
}

// NewHTTPSender creates a sender for url. An empty token sends no
// Authorization header.
func NewHTTPSender(url, token string) *HTTPSender {
	return &HTTPSender{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// NewPayload wraps a report for export under a fresh report ID.
func NewPayload(report *models.Report) *models.ReportPayload {
	return &models.ReportPayload{
		ReportID:  uuid.NewString(),
		Hostname:  report.Hostname,
		Timestamp: report.GeneratedAt,
		Kind:      Kind(report),
		Report:    report,
	}
}

// Send posts payload. The receipt carries the identifier the endpoint
// stored the report under, or the payload's own ID if it returned none.
func (h *HTTPSender) Send(ctx context.Context, payload *models.ReportPayload) (*models.ServerResponse, error) {
	if payload == nil || payload.Report == nil {
		return nil, ErrNoReport
	}

	body, err := compress(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Content-Language", payload.Report.Language)
	req.Header.Set("User-Agent", "hostreport/"+config.Version)
	req.Header.Set("X-Report-ID", payload.ReportID)
	req.Header.Set("X-Report-Kind", payload.Kind)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Code:       resp.StatusCode,
			Body:       trimBody(respBody),
			RetryAfter: resp.Header.Get("Retry-After"),
		}
	}

	return receipt(resp, respBody, payload.ReportID), nil
}

// compress encodes payload as gzip-compressed JSON.
func compress(payload *models.ReportPayload) (io.Reader, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gz).Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress report: %w", err)
	}
	return &buf, nil
}

// receipt builds the response for a 2xx reply. The stored ID comes from
// the JSON body, then from the last segment of a Location header.
func receipt(resp *http.Response, body []byte, reportID string) *models.ServerResponse {
	var out models.ServerResponse
	if len(body) > 0 {
		_ = json.Unmarshal(body, &out)
	}
	if out.Status == "" {
		out.Status = http.StatusText(resp.StatusCode)
	}
	if out.ID == "" {
		if loc := resp.Header.Get("Location"); loc != "" {
			out.ID = path.Base(loc)
		}
	}
	if out.ID == "" {
		out.ID = reportID
	}
	return &out
}
