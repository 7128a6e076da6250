package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable is returned when the generation service answers with a
// non-2xx status.
var ErrUnavailable = errors.New("generation service unavailable")

// Client calls the external PDF generation service: POST /generate with the
// transport JSON, then GET /download/{file_id} for the rendered file.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Attempts bounds retries of transport-level failures.
	Attempts int
	logger   *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: timeout},
		Attempts: 3,
		logger:   slog.Default().With("component", "generator"),
	}
}

type generateResponse struct {
	FileID string `json:"file_id"`
}

// doWithRetry performs the request built by newReq with retry/backoff.
// Only transport errors are retried; any response is returned as is.
func (c *Client) doWithRetry(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	attempts := c.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := newReq()
		if err != nil {
			return nil, err
		}
		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		c.logger.Warn("request failed", "url", req.URL.String(), "attempt", i+1, "error", err)
		// exponential backoff before retrying
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	return c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
}

func (c *Client) doGetWithRetry(ctx context.Context, path string) (*http.Response, error) {
	return c.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	})
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("%s: %w: status %d", op, ErrUnavailable, resp.StatusCode)
	}
	return fmt.Errorf("%s: %w: status %d: %s", op, ErrUnavailable, resp.StatusCode, msg)
}

// Generate submits a resume payload and returns the id of the rendered file.
func (c *Client) Generate(ctx context.Context, payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("generate: encode payload: %w", err)
	}
	resp, err := c.doPostWithRetry(ctx, "/generate", b)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError("generate", resp)
	}
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("generate: decode response: %w", err)
	}
	if out.FileID == "" {
		return "", errors.New("generate: response has no file_id")
	}
	c.logger.Info("resume generated", "file_id", out.FileID)
	return out.FileID, nil
}

// Download fetches a generated file.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := c.doGetWithRetry(ctx, "/download/"+url.PathEscape(fileID))
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError("download", resp)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	return b, nil
}

// Health reports whether the service answers its health endpoint. It does
// not retry.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError("health", resp)
	}
	return nil
}
