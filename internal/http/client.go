// Package http provides the HTTP transport for the Orchestrator client:
// request building, authentication injection, retries, and error mapping.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/roboworks-io/uipath-client/internal/constants"
	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

const defaultUserAgent = "uipath-client/1.0"

// TokenManager supplies bearer tokens for outgoing requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// Request represents an HTTP request to the API.
type Request struct {
	Method string
	// Path is resolved against the client base URL unless it is already an
	// absolute URL (feed endpoints live on the base address discovered from
	// the service index).
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents a buffered HTTP response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// StreamResponse represents an HTTP response whose body has not been read.
// The caller owns Body and must close it.
type StreamResponse struct {
	StatusCode    int
	Headers       nethttp.Header
	ContentLength int64
	Body          io.ReadCloser
}

// Client executes API requests against a base URL.
type Client struct {
	baseURL      string
	tokenManager TokenManager
	httpClient   *nethttp.Client
	userAgent    string
	debug        bool
	logger       uipath.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for the client.
func WithLogger(logger uipath.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging. Requires a logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout overrides the default per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryConfig enables retries for transient failures (429, 5xx, and
// connection errors) via retryablehttp.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		retryClient := retryablehttp.NewClient()
		retryClient.RetryMax = retryMax
		retryClient.RetryWaitMin = waitMin
		retryClient.RetryWaitMax = waitMax
		retryClient.Logger = nil

		timeout := c.httpClient.Timeout
		c.httpClient = retryClient.StandardClient()
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new API client. A nil tokenManager sends requests
// without authentication (used by tests).
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		httpClient:   &nethttp.Client{Timeout: constants.DefaultHTTPTimeout},
		userAgent:    defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request, buffers the response body, and maps non-2xx
// responses to *uipath.HTTPError. The Response is returned alongside the
// error so callers can inspect the status.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	c.logRequest(req)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	c.logResponse(req, resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, parseHTTPError(resp.StatusCode, body)
	}

	return resp, nil
}

// Stream executes a request without buffering the body. Non-2xx responses
// are drained, closed, and mapped to *uipath.HTTPError.
func (c *Client) Stream(ctx context.Context, req *Request) (*StreamResponse, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	c.logRequest(req)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
		_ = httpResp.Body.Close()

		return nil, parseHTTPError(httpResp.StatusCode, body)
	}

	return &StreamResponse{
		StatusCode:    httpResp.StatusCode,
		Headers:       httpResp.Header,
		ContentLength: httpResp.ContentLength,
		Body:          httpResp.Body,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// PostForm performs a POST request with a form-encoded body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:  nethttp.MethodPost,
		Path:    path,
		Body:    form,
		Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	})
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*nethttp.Request, error) {
	fullURL := req.Path
	if !strings.HasPrefix(fullURL, "http://") && !strings.HasPrefix(fullURL, "https://") {
		fullURL = c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	}

	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(fullURL, "?") {
			sep = "&"
		}

		fullURL += sep + req.Query.Encode()
	}

	var (
		bodyReader  io.Reader
		contentType string
	)

	switch body := req.Body.(type) {
	case nil:
	case url.Values:
		bodyReader = strings.NewReader(body.Encode())
		contentType = "application/x-www-form-urlencoded"
	case []byte:
		bodyReader = bytes.NewReader(body)
		contentType = "application/json"
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

func (c *Client) logRequest(req *Request) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"path":   req.Path,
	})
}

func (c *Client) logResponse(req *Request, resp *Response) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"path":        req.Path,
		"status_code": resp.StatusCode,
	})
}

// odataErrorBody is the error envelope Orchestrator endpoints return. Both
// the wrapped and flat shapes occur in the wild.
type odataErrorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func parseHTTPError(status int, body []byte) error {
	httpErr := &uipath.HTTPError{
		Status: status,
		Body:   string(body),
	}

	var envelope odataErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Error != nil && envelope.Error.Message != "":
			httpErr.Message = envelope.Error.Message
		case envelope.Message != "":
			httpErr.Message = envelope.Message
		}
	}

	return httpErr
}
