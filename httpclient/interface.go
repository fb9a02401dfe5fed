package httpclient

import (
	"context"
	nethttp "net/http"
	"net/url"
	"time"
)

// Client is the transport contract consumed by the resource layer. Every
// call returns either a 2xx/3xx response or one of the typed errors
// defined in errors.go.
type Client interface {
	Get(ctx context.Context, path string, opts *RequestOptions) (*Response, error)
	Post(ctx context.Context, path string, opts *RequestOptions) (*Response, error)
	Put(ctx context.Context, path string, opts *RequestOptions) (*Response, error)
	Patch(ctx context.Context, path string, opts *RequestOptions) (*Response, error)
	Delete(ctx context.Context, path string, opts *RequestOptions) (*Response, error)
	Do(ctx context.Context, method, path string, opts *RequestOptions) (*Response, error)
}

// RequestOptions carries the per-call request data. Caller-supplied maps are
// never mutated; per-attempt augmentation (auth token, defaults) happens on
// the outgoing http.Request only.
type RequestOptions struct {
	// Query is appended to the request URL.
	Query url.Values
	// Body is marshaled to JSON once and re-sent unchanged on every attempt.
	Body any
	// Headers override configured default headers for this call. The
	// Authorization header set by the token provider cannot be overridden.
	Headers map[string]string
}

// Response represents a completed HTTP response with tracking information.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    nethttp.Header
	Stats      Stats
}

// Stats contains request execution statistics.
type Stats struct {
	ElapsedTime time.Duration
	CallCount   int64
	// Attempts is the number of transport calls made for this request,
	// including the one that produced the final outcome.
	Attempts int
}

// TokenProvider supplies the bearer token injected into the Authorization
// header. An empty token means the request goes out unauthenticated. Errors
// that already carry a ClientError type (e.g. auth failures from the token
// endpoint) are propagated to the caller unchanged.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Config holds the transport configuration assembled by the Builder.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	UserAgent      string
	DefaultHeaders map[string]string
	// Debug enables per-attempt logging of masked headers and bodies.
	Debug bool
	// APIErrorPrefix is prepended to every API-originated error message.
	APIErrorPrefix string
	ProxyURL       string
	// ProxyAuth holds proxy credentials in "user:pass" form.
	ProxyAuth string
}
