package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/oktakit/okta/internal/auth"
	"github.com/oktakit/okta/internal/constants"
	"github.com/oktakit/okta/pkg/okta"
)

// Client is the HTTP transport shared by every request client. It attaches
// the credential header, runs the interceptor chain, replays rate-limited
// requests, and translates structured error bodies.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	interceptors *okta.InterceptorChain
	authScheme   string
	userAgent    string
	retryMax     int
	debug        bool
	logger       okta.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger okta.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryMax overrides the rate-limit retry ceiling.
func WithRetryMax(retryMax int) Option {
	return func(c *Client) {
		c.retryMax = retryMax
	}
}

// WithAuthScheme sets the Authorization scheme ("Bearer" or "SSWS").
func WithAuthScheme(scheme string) Option {
	return func(c *Client) {
		c.authScheme = scheme
	}
}

// WithRequestInterceptor appends a request interceptor.
func WithRequestInterceptor(interceptor okta.RequestInterceptor) Option {
	return func(c *Client) {
		c.interceptors.AddRequestInterceptor(interceptor)
	}
}

// WithResponseInterceptor appends a response interceptor.
func WithResponseInterceptor(interceptor okta.ResponseInterceptor) Option {
	return func(c *Client) {
		c.interceptors.AddResponseInterceptor(interceptor)
	}
}

// NewClient creates a transport rooted at baseURL. A nil tokenManager sends
// requests without an Authorization header.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		interceptors: okta.NewInterceptorChain(),
		authScheme:   constants.AuthSchemeBearer,
		userAgent:    constants.DefaultUserAgent,
		retryMax:     constants.RateLimitMaxRetries,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.httpClient = client.newRetryableClient()

	return client
}

func (c *Client) newRetryableClient() *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &nethttp.Client{Timeout: constants.DefaultHTTPTimeout}
	retryClient.Logger = nil
	retryClient.RetryMax = c.retryMax
	retryClient.CheckRetry = c.checkRetry
	retryClient.Backoff = c.backoff
	// Surface the final response after retries are exhausted so the error
	// translator sees it.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return retryClient
}

// checkRetry replays only rate-limited requests. Transport errors and every
// other status pass through unchanged.
func (c *Client) checkRetry(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return false, err
	}

	return resp != nil && resp.StatusCode == nethttp.StatusTooManyRequests, nil
}

func (c *Client) backoff(_, _ time.Duration, attemptNum int, resp *nethttp.Response) time.Duration {
	wait := constants.RateLimitDefaultWait
	if resp != nil {
		wait = parseRetryAfter(resp.Header.Get("Retry-After"))
	}

	if c.logger != nil {
		c.logger.Debug("rate limited, retrying request", map[string]interface{}{
			"attempt":     attemptNum + 1,
			"max_retries": c.retryMax,
			"wait":        wait.String(),
		})
	}

	return wait
}

// parseRetryAfter reads a Retry-After header as whole seconds, defaulting to
// one second when the header is missing or non-numeric.
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return constants.RateLimitDefaultWait
	}

	return time.Duration(seconds) * time.Second
}

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Do executes a request and returns the response. Non-2xx responses whose
// bodies match the Okta error shape fail with *okta.APIError; all other
// failures are reported as transport-level errors.
func (c *Client) Do(ctx context.Context, req *Request) (*okta.Response, error) {
	fullURL := c.baseURL + req.Path

	if len(req.Query) > 0 {
		separator := "?"
		if strings.Contains(req.Path, "?") {
			separator = "&"
		}

		fullURL += separator + req.Query.Encode()
	}

	var bodyBytes []byte

	if req.Body != nil {
		var err error

		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	headers := nethttp.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("Content-Type", "application/json")
	headers.Set("User-Agent", c.userAgent)

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting access token: %w", err)
		}

		headers.Set("Authorization", c.authScheme+" "+token)
	}

	interceptReq := &okta.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: headers,
		Body:    bodyBytes,
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": interceptReq.Method,
			"url":    fullURL,
		})
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, interceptReq.Method, fullURL, bodyBytes)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = interceptReq.Headers

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &okta.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      interceptReq.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, interceptReq, resp)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode >= nethttp.StatusBadRequest {
		if apiErr, ok := okta.ParseAPIError(respBody); ok {
			return resp, apiErr
		}

		return resp, okta.RequestError(resp.StatusCode, respBody)
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*okta.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*okta.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*okta.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*okta.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*okta.Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}
