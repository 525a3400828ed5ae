package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxResponseBytes = 5 << 20

// StatusError is returned when a provider answers with a status other than 200
type StatusError struct {
	Provider   string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
}

// HTTPStatus returns the provider's status code
func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

// ResponseBody returns the body the provider answered with
func (e *StatusError) ResponseBody() []byte {
	return e.Body
}

// DecodeError is returned when a provider's body is not the expected JSON
type DecodeError struct {
	Provider string
	Body     []byte
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Provider, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ResponseBody returns the body that failed to decode
func (e *DecodeError) ResponseBody() []byte {
	return e.Body
}

// Request describes one outbound call. At most one of JSON and Form is used.
type Request struct {
	Method string
	URL    string
	Header http.Header
	JSON   any
	Form   url.Values
}

// Client performs single-attempt JSON calls against one provider
type Client struct {
	provider   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// New creates a client. A nil httpClient uses http.DefaultClient.
func New(provider string, httpClient *http.Client, timeout time.Duration, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		provider:   provider,
		httpClient: httpClient,
		timeout:    timeout,
		logger:     logger,
	}
}

// Do sends req and returns the raw body of a 200 response
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("Upstream call failed",
			zap.String("provider", c.provider),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, fmt.Errorf("%s request failed: %w", c.provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", c.provider, err)
	}

	c.logger.Debug("Upstream call completed",
		zap.String("provider", c.provider),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: c.provider, StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}

// DoJSON sends req, decodes a 200 response into out and returns the raw body
func (c *Client) DoJSON(ctx context.Context, req Request, out any) (json.RawMessage, error) {
	body, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, &DecodeError{Provider: c.provider, Body: body, Err: errors.New("invalid JSON")}
	}
	if out != nil {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return nil, &DecodeError{Provider: c.provider, Body: body, Err: err}
		}
	}

	return json.RawMessage(trimmed), nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.JSON != nil:
		payload, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode request: %w", c.provider, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", c.provider, err)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	return httpReq, nil
}
