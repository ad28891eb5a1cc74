// Package client talks to the EcoIndus site backend over HTTP.
package client

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

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RetryOptions configures retries of the consultation submission
type RetryOptions struct {
	MaxAttempts  uint
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryOptions is one try plus two retries, 200ms then 400ms apart.
var DefaultRetryOptions = RetryOptions{
	MaxAttempts:  3,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     2 * time.Second,
	Multiplier:   2.0,
}

// Client is a struct for communicating with the site backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryOptions
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryOptions replaces the consultation retry policy
func WithRetryOptions(o RetryOptions) Option {
	return func(c *Client) { c.retry = o }
}

// New is a constructor for creating a new Client. baseURL is the backend
// origin, e.g. "https://api.example.com".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		retry: DefaultRetryOptions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend origin the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// statusError carries the HTTP status of a failed call
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("got %d: %s", e.code, e.message)
}

// Is maps statuses onto the package sentinels so callers can use errors.Is.
func (e *statusError) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return true
	case ErrBadRequest:
		return e.code == http.StatusBadRequest
	case ErrUnauthorized:
		return e.code == http.StatusUnauthorized
	case ErrNotFound:
		return e.code == http.StatusNotFound
	case ErrRateLimited:
		return e.code == http.StatusTooManyRequests
	}
	return false
}

func (e *statusError) retryable() bool {
	return e.code >= http.StatusInternalServerError
}

// do sends one request and decodes a 2xx JSON body into out
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, token string, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"url":    u,
	}).Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %v", ErrRequestFailed, err)
	}

	logrus.WithFields(logrus.Fields{
		"code": resp.StatusCode,
		"size": len(b),
	}).Debug("got response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{code: resp.StatusCode, message: errorMessage(b)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrRequestFailed, err)
	}
	return nil
}

// errorMessage extracts the message of the standard error envelope, falling
// back to the raw body.
func errorMessage(b []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return strings.TrimSpace(string(b))
}
