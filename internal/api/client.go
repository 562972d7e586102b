// Package api provides the typed HTTP client used by every scenario.
//
// The client issues one live round-trip per call: no retries, no caching,
// no per-call timeout beyond the transport default configured at
// construction. A non-2xx status is not an error; the backend under test
// routinely answers 2xx for operations it never performs, so callers must
// branch on the raw status code or on default-shaped typed results instead
// of trusting transport-level success.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// RawResponse is the HTTP-level outcome of a request: status code plus the
// unparsed body. Used when a typed deserialization of an error body would
// be meaningless and the caller needs to branch on the status instead.
type RawResponse struct {
	StatusCode int
	Body       string
}

// OK reports whether the status code is in the 2xx range.
func (r RawResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client issues requests against a fixed base URL. One Client is
// constructed per scenario and owns its underlying connection for that
// scenario's lifetime; nothing is shared across scenarios.
type Client struct {
	base string
	http *http.Client
	log  *slog.Logger
}

// New creates a client for the given base URL. The timeout applies to the
// whole round-trip; zero means no timeout. A nil logger suppresses request
// logging.
func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.base }

// do performs a single round-trip and reads the full body.
// Transport failures are unrecoverable for the caller: no retry is made.
func (c *Client) do(method, path string, body any) (RawResponse, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return RawResponse{}, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		payload = bytes.NewReader(data)
	}

	url := c.base + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return RawResponse{}, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return RawResponse{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawResponse{}, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	c.log.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	return RawResponse{StatusCode: resp.StatusCode, Body: string(data)}, nil
}

// Decode unmarshals a raw response body into T. A body that does not parse
// as T yields the zero value of T: callers treat default-shaped results as
// a not-found signal rather than a failure. Used by callers that need the
// status code from the raw envelope and the typed body.
func Decode[T any](raw RawResponse) T {
	var v T
	if err := json.Unmarshal([]byte(raw.Body), &v); err != nil {
		var zero T
		return zero
	}
	return v
}

// Get issues a GET and deserializes the response as T.
func Get[T any](c *Client, path string) (T, error) {
	raw, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](raw), nil
}

// GetRaw issues a GET and returns the raw response envelope.
func (c *Client) GetRaw(path string) (RawResponse, error) {
	return c.do(http.MethodGet, path, nil)
}

// Post serializes body as JSON, issues a POST, and deserializes the
// response as T under the same default-on-failure rule as Get.
func Post[T any](c *Client, path string, body any) (T, error) {
	raw, err := c.do(http.MethodPost, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](raw), nil
}

// PostRaw issues a POST and returns the raw response envelope.
func (c *Client) PostRaw(path string, body any) (RawResponse, error) {
	return c.do(http.MethodPost, path, body)
}

// Put serializes body as JSON, issues a PUT, and deserializes the response
// as T.
func Put[T any](c *Client, path string, body any) (T, error) {
	raw, err := c.do(http.MethodPut, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](raw), nil
}

// Delete issues a DELETE and returns the raw response envelope.
// Exactly one request goes out per call.
func (c *Client) Delete(path string) (RawResponse, error) {
	return c.do(http.MethodDelete, path, nil)
}
