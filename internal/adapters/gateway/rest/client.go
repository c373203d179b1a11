package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cashbook-app/cashbook-sync/internal/apperrors"
	"github.com/cashbook-app/cashbook-sync/internal/middleware"
)

// Client is the shared HTTP plumbing for the backend gateways. It relays the
// caller's Authorization header untouched and maps transport and status
// failures onto the application error sentinels.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do executes one request and decodes nothing; callers get the raw body so
// they can unwrap the envelope shapes the backend uses.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := middleware.AuthTokenFromCtx(ctx); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s %s: %v: %w", method, path, err, apperrors.ErrNetwork)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response: %v: %w", method, path, err, apperrors.ErrNetwork)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, statusError(method, path, resp.StatusCode, respBody)
	}
	return respBody, nil
}

func statusError(method, path string, status int, body []byte) error {
	var sentinel error
	switch {
	case status == http.StatusNotFound:
		sentinel = apperrors.ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		sentinel = apperrors.ErrForbidden
	case status == http.StatusConflict:
		sentinel = apperrors.ErrConflict
	case status >= http.StatusInternalServerError:
		sentinel = apperrors.ErrNetwork
	default:
		sentinel = apperrors.ErrValidation
	}

	msg := backendMessage(body)
	if msg != "" {
		return fmt.Errorf("%s %s: backend returned %d: %s: %w", method, path, status, msg, sentinel)
	}
	return fmt.Errorf("%s %s: backend returned %d: %w", method, path, status, sentinel)
}

// backendMessage pulls a human-readable error out of the common backend
// error body shapes.
func backendMessage(body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	for _, m := range []string{parsed.Error, parsed.Message, parsed.Detail} {
		if m != "" {
			return m
		}
	}
	return ""
}
