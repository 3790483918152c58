// ABOUTME: HTTP client adapter for the remote post API.
// ABOUTME: Issues GET/POST/DELETE against a caller-supplied base address and decodes JSON.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request id so client and server logs can be joined.
const RequestIDHeader = "X-Request-ID"

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: remote API returned %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// RemoteClient talks to the post API. It holds no base address of its own;
// every call resolves base + path, so the address can change between calls.
type RemoteClient struct {
	client *http.Client
	logger *zap.Logger
}

// ClientOption configures a RemoteClient.
type ClientOption func(*RemoteClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(r *RemoteClient) {
		r.client = c
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) ClientOption {
	return func(r *RemoteClient) {
		r.logger = l
	}
}

// NewRemoteClient creates a client. Requests have no timeout and are never retried.
func NewRemoteClient(opts ...ClientOption) *RemoteClient {
	r := &RemoteClient{
		client: &http.Client{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get fetches base+path and decodes the JSON response into out.
func (r *RemoteClient) Get(ctx context.Context, base, path string, out any) error {
	req, err := r.newRequest(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return err
	}
	return r.doJSON(req, out)
}

// PostJSON sends body as JSON to base+path and decodes the JSON response into out.
func (r *RemoteClient) PostJSON(ctx context.Context, base, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := r.newRequest(ctx, http.MethodPost, base+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return r.doJSON(req, out)
}

// Delete issues a DELETE to base+path. ok reports whether the status was 2xx;
// the body is discarded. err is only set when no response was received.
func (r *RemoteClient) Delete(ctx context.Context, base, path string) (ok bool, err error) {
	req, err := r.newRequest(ctx, http.MethodDelete, base+path, nil)
	if err != nil {
		return false, err
	}
	resp, err := r.do(req)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

func (r *RemoteClient) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	// The query is escaped before parsing so control bytes in it do not fail the parse.
	if path, query, ok := strings.Cut(rawURL, "?"); ok {
		rawURL = path + "?" + escapeQuery(query)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %q: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

func (r *RemoteClient) do(req *http.Request) (*http.Response, error) {
	r.logger.Debug("api request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", req.Header.Get(RequestIDHeader)),
	)
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote API request failed: %w", err)
	}
	r.logger.Debug("api response",
		zap.String("request_id", req.Header.Get(RequestIDHeader)),
		zap.Int("status", resp.StatusCode),
	)
	return resp, nil
}

func (r *RemoteClient) doJSON(req *http.Request, out any) error {
	resp, err := r.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &StatusError{
			Method: req.Method,
			URL:    req.URL.String(),
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(respBody)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// escapeQuery rewrites a query the way a browser URL parser does: tab, CR and
// LF are removed, other controls, space, '"', '<', '>' and non-ASCII bytes are
// percent-encoded, and everything else (existing escapes, '&', '=') is kept.
func escapeQuery(q string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(q); i++ {
		c := q[i]
		if c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		if c <= 0x20 || c >= 0x7f || c == '"' || c == '<' || c == '>' {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
