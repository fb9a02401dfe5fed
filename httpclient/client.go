package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/atlaspay/atlaspay-go/logger"
)

const (
	// DefaultTimeout is the default per-attempt request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default maximum number of retries, bounding
	// total transport calls to DefaultMaxRetries+1.
	DefaultMaxRetries = 3

	// DefaultUserAgent identifies the client to the upstream API.
	DefaultUserAgent = "atlaspay-go/1.0"

	// DefaultAPIErrorPrefix is the marker prepended to API error messages.
	DefaultAPIErrorPrefix = "API error: "

	// HeaderXRequestID carries the per-request correlation ID.
	HeaderXRequestID = "X-Request-ID"

	contentTypeJSON = "application/json"
)

// client implements the Client interface.
type client struct {
	httpClient *nethttp.Client
	logger     logger.Logger
	config     *Config
	tokens     TokenProvider
	classifier classifier
	callCount  int64
}

// Builder provides a fluent interface for configuring the client.
type Builder struct {
	config     *Config
	logger     logger.Logger
	tokens     TokenProvider
	httpClient *nethttp.Client
	transport  nethttp.RoundTripper
}

// NewBuilder creates a client builder with default configuration.
func NewBuilder(log logger.Logger) *Builder {
	return &Builder{
		config: &Config{
			Timeout:        DefaultTimeout,
			MaxRetries:     DefaultMaxRetries,
			UserAgent:      DefaultUserAgent,
			APIErrorPrefix: DefaultAPIErrorPrefix,
			DefaultHeaders: make(map[string]string),
		},
		logger: log,
	}
}

// WithBaseURL sets the API base URL all request paths are resolved against.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.BaseURL = strings.TrimSuffix(baseURL, "/")
	return b
}

// WithTimeout sets the per-attempt request timeout.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	if timeout > 0 {
		b.config.Timeout = timeout
	}
	return b
}

// WithMaxRetries sets the retry cap; total attempts are maxRetries+1.
func (b *Builder) WithMaxRetries(maxRetries int) *Builder {
	if maxRetries >= 0 {
		b.config.MaxRetries = maxRetries
	}
	return b
}

// WithUserAgent sets the User-Agent header sent with all requests.
func (b *Builder) WithUserAgent(userAgent string) *Builder {
	if userAgent != "" {
		b.config.UserAgent = userAgent
	}
	return b
}

// WithDefaultHeader adds a header sent with all requests. Per-call headers
// take precedence over defaults.
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	b.config.DefaultHeaders[key] = value
	return b
}

// WithDefaultHeaders adds a set of headers sent with all requests.
func (b *Builder) WithDefaultHeaders(headers map[string]string) *Builder {
	for key, value := range headers {
		b.config.DefaultHeaders[key] = value
	}
	return b
}

// WithDebug enables per-attempt logging of masked headers and bodies.
func (b *Builder) WithDebug(debug bool) *Builder {
	b.config.Debug = debug
	return b
}

// WithAPIErrorPrefix overrides the marker prepended to API error messages.
func (b *Builder) WithAPIErrorPrefix(prefix string) *Builder {
	b.config.APIErrorPrefix = prefix
	return b
}

// WithTokenProvider sets the authentication collaborator supplying bearer
// tokens. A nil provider (or an empty token) leaves requests unauthenticated.
func (b *Builder) WithTokenProvider(tokens TokenProvider) *Builder {
	b.tokens = tokens
	return b
}

// WithProxy routes requests through an HTTP proxy. auth, when non-empty,
// supplies proxy credentials in "user:pass" form.
func (b *Builder) WithProxy(proxyURL, auth string) *Builder {
	b.config.ProxyURL = proxyURL
	b.config.ProxyAuth = auth
	return b
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func (b *Builder) WithHTTPClient(httpClient *nethttp.Client) *Builder {
	b.httpClient = httpClient
	return b
}

// WithTransport replaces the underlying transport while keeping the
// client-managed timeout.
func (b *Builder) WithTransport(transport nethttp.RoundTripper) *Builder {
	b.transport = transport
	return b
}

// Build creates the client with the configured options.
func (b *Builder) Build() (Client, error) {
	if b.config.BaseURL == "" {
		return nil, fmt.Errorf("httpclient: base URL is required")
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &nethttp.Client{}
	}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = b.config.Timeout
	}
	if b.transport != nil {
		httpClient.Transport = b.transport
	}
	if b.config.ProxyURL != "" && b.transport == nil && b.httpClient == nil {
		proxy, err := buildProxyURL(b.config.ProxyURL, b.config.ProxyAuth)
		if err != nil {
			return nil, err
		}
		httpClient.Transport = &nethttp.Transport{Proxy: nethttp.ProxyURL(proxy)}
	}

	log := b.logger
	if log == nil {
		log = logger.Disabled()
	}

	return &client{
		httpClient: httpClient,
		logger:     log,
		config:     b.config,
		tokens:     b.tokens,
		classifier: classifier{apiErrorPrefix: b.config.APIErrorPrefix},
	}, nil
}

func buildProxyURL(rawURL, auth string) (*url.URL, error) {
	proxy, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("httpclient: invalid proxy URL: %w", err)
	}
	if auth != "" {
		user, pass, found := strings.Cut(auth, ":")
		if !found {
			return nil, fmt.Errorf("httpclient: proxy auth must be in user:pass form")
		}
		proxy.User = url.UserPassword(user, pass)
	}
	return proxy, nil
}

// Get performs a GET request.
func (c *client) Get(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, nethttp.MethodGet, path, opts)
}

// Post performs a POST request.
func (c *client) Post(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPost, path, opts)
}

// Put performs a PUT request.
func (c *client) Put(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPut, path, opts)
}

// Patch performs a PATCH request.
func (c *client) Patch(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPatch, path, opts)
}

// Delete performs a DELETE request.
func (c *client) Delete(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, nethttp.MethodDelete, path, opts)
}

// Do executes a request through the retry pipeline. On success it returns
// the response; on exhaustion it returns the response of the final attempt
// (when one exists) alongside the classified typed error.
func (c *client) Do(ctx context.Context, method, path string, opts *RequestOptions) (*Response, error) {
	if err := validateRequest(method, path); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &RequestOptions{}
	}

	reqURL := c.buildRequestURL(path, opts.Query)

	body, err := marshalBody(opts.Body)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	calls := atomic.AddInt64(&c.callCount, 1)
	maxAttempts := c.config.MaxRetries + 1

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		httpReq, err := c.buildRequest(ctx, method, reqURL, body, opts.Headers)
		if err != nil {
			return nil, err
		}

		c.logRequest(httpReq, body, attempt)

		var resp *Response
		httpResp, doErr := c.httpClient.Do(httpReq)
		if doErr == nil {
			resp, doErr = c.readResponse(start, calls, attempt, httpResp)
		}

		if doErr == nil && resp.StatusCode < nethttp.StatusBadRequest {
			c.logResponse(resp)
			return resp, nil
		}

		// A canceled caller context aborts immediately regardless of what
		// the retry policy would decide.
		if ctx.Err() != nil {
			return nil, NewNetworkError("request canceled", ctx.Err())
		}

		cl := c.classifier.classify(resp, doErr)
		decision := decideRetry(attempt, cl, c.config.MaxRetries)
		if !decision.retry {
			typed := cl.toError()
			c.logger.Error().
				Err(typed).
				Str("method", method).
				Str("url", reqURL).
				Int("attempt", attempt).
				Msg("HTTP request failed")
			return resp, typed
		}

		c.logger.Warn().
			Str("method", method).
			Str("url", reqURL).
			Int("attempt", attempt).
			Int("status", cl.statusCode).
			Dur("delay", decision.delay).
			Msg("HTTP request failed, retrying")

		if err := c.sleep(ctx, decision.delay); err != nil {
			return nil, NewNetworkError("request canceled during retry backoff", err)
		}
	}

	// The loop always terminates through an explicit return above; this
	// guards the invariant rather than returning an undefined result.
	return nil, NewNetworkError("request loop exited without a result", nil)
}

func validateRequest(method, path string) error {
	switch method {
	case nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodPut, nethttp.MethodPatch, nethttp.MethodDelete:
	default:
		return NewValidationError("unsupported HTTP method", map[string][]string{
			"method": {fmt.Sprintf("method %q is not supported", method)},
		})
	}
	if path == "" {
		return NewValidationError("request path cannot be empty", map[string][]string{
			"path": {"path is required"},
		})
	}
	return nil
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	if raw, ok := body.([]byte); ok {
		return raw, nil
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, NewValidationError("request body is not serializable", map[string][]string{
			"body": {err.Error()},
		})
	}
	return encoded, nil
}

func (c *client) buildRequestURL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	reqURL := c.config.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	return reqURL
}

// buildRequest constructs the per-attempt http.Request. Headers are merged
// in precedence order: library defaults < configured headers < per-call
// headers < Authorization, so a caller header can never shadow the token.
func (c *client) buildRequest(ctx context.Context, method, reqURL string, body []byte, headers map[string]string) (*nethttp.Request, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, NewNetworkError("failed to create HTTP request", err)
	}

	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("User-Agent", c.config.UserAgent)

	for key, value := range c.config.DefaultHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}
	if httpReq.Header.Get(HeaderXRequestID) == "" {
		httpReq.Header.Set(HeaderXRequestID, uuid.NewString())
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			var clientErr ClientError
			if errors.As(err, &clientErr) {
				return nil, err
			}
			return nil, NewAuthError("failed to obtain bearer token", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return httpReq, nil
}

// readResponse drains and closes the response body and builds a Response.
func (c *client) readResponse(start time.Time, calls int64, attempt int, httpResp *nethttp.Response) (*Response, error) {
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Headers:    httpResp.Header,
		Stats: Stats{
			ElapsedTime: time.Since(start),
			CallCount:   calls,
			Attempts:    attempt,
		},
	}, nil
}

// sleep waits for the backoff delay unless the context is canceled first.
func (c *client) sleep(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *client) logRequest(httpReq *nethttp.Request, body []byte, attempt int) {
	logEvent := c.logger.Info().
		Str("direction", "outbound").
		Str("method", httpReq.Method).
		Str("url", httpReq.URL.String()).
		Int("attempt", attempt)

	if c.config.Debug {
		logEvent = logEvent.Interface("headers", MaskHeaders(flattenHeaders(httpReq.Header)))
		if len(body) > 0 {
			logEvent = logEvent.Bytes("body", MaskBody(body))
		}
	}

	logEvent.Msg("API client request")
}

func (c *client) logResponse(resp *Response) {
	logEvent := c.logger.Info().
		Str("direction", "inbound").
		Int("status", resp.StatusCode).
		Dur("elapsed", resp.Stats.ElapsedTime).
		Int("attempts", resp.Stats.Attempts)

	if c.config.Debug && len(resp.Body) > 0 {
		logEvent = logEvent.Bytes("body", MaskBody(resp.Body))
	}

	logEvent.Msg("API client response")
}

func flattenHeaders(headers nethttp.Header) map[string]string {
	flat := make(map[string]string, len(headers))
	for name, values := range headers {
		flat[name] = strings.Join(values, ", ")
	}
	return flat
}
