package atlaspay

import (
	"encoding/json"
	"fmt"
	nethttp "net/http"

	"github.com/atlaspay/atlaspay-go/auth"
	"github.com/atlaspay/atlaspay-go/config"
	"github.com/atlaspay/atlaspay-go/httpclient"
	"github.com/atlaspay/atlaspay-go/logger"
)

// Client is the entry point to the Atlaspay API. Create one with New and
// reach resources through the service fields.
type Client struct {
	http httpclient.Client
	log  logger.Logger

	Customers   *CustomersService
	PixKeys     *PixKeysService
	Deposits    *DepositsService
	Withdrawals *WithdrawalsService
}

// Option customizes the client built by New.
type Option func(*options)

type options struct {
	log        logger.Logger
	tokens     httpclient.TokenProvider
	httpClient *nethttp.Client
}

// WithLogger replaces the logger built from the Log configuration.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithTokenProvider replaces the token provider derived from the API
// credentials in the configuration.
func WithTokenProvider(tokens httpclient.TokenProvider) Option {
	return func(o *options) { o.tokens = tokens }
}

// WithHTTPClient replaces the underlying HTTP client used by the transport.
func WithHTTPClient(httpClient *nethttp.Client) Option {
	return func(o *options) { o.httpClient = httpClient }
}

// New creates a client from the given configuration.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("atlaspay: configuration is required")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	if log == nil {
		log = logger.New(cfg.Log.Level, cfg.Log.Pretty)
	}

	tokens := o.tokens
	if tokens == nil {
		switch {
		case cfg.API.Token != "":
			tokens = auth.StaticToken(cfg.API.Token)
		case cfg.API.ClientID != "":
			tokens = auth.NewTokenManager(cfg.API.ClientID, cfg.API.ClientSecret, cfg.API.BaseURL, o.httpClient)
		}
	}

	builder := httpclient.NewBuilder(log).
		WithBaseURL(cfg.API.BaseURL).
		WithTimeout(cfg.HTTP.Timeout()).
		WithMaxRetries(cfg.HTTP.MaxRetries).
		WithDefaultHeaders(cfg.HTTP.Headers).
		WithDebug(cfg.HTTP.Debug).
		WithTokenProvider(tokens)
	if cfg.HTTP.UserAgent != "" {
		builder = builder.WithUserAgent(cfg.HTTP.UserAgent)
	}
	if cfg.HTTP.ProxyURL != "" {
		builder = builder.WithProxy(cfg.HTTP.ProxyURL, cfg.HTTP.ProxyAuth)
	}
	if o.httpClient != nil {
		builder = builder.WithHTTPClient(o.httpClient)
	}

	transport, err := builder.Build()
	if err != nil {
		return nil, err
	}

	c := &Client{http: transport, log: log}
	c.Customers = &CustomersService{http: transport}
	c.PixKeys = &PixKeysService{http: transport}
	c.Deposits = &DepositsService{http: transport}
	c.Withdrawals = &WithdrawalsService{http: transport}
	return c, nil
}

// decodeData unwraps the API's {success, message, data} envelope.
func decodeData[T any](resp *httpclient.Response) (*T, error) {
	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    T      `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("atlaspay: failed to decode response: %w", err)
	}
	return &envelope.Data, nil
}

// decodeList unwraps the API's paginated {success, data: [...], meta} envelope.
func decodeList[T any](resp *httpclient.Response) ([]T, *PageMeta, error) {
	var envelope struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Data    []T      `json:"data"`
		Meta    PageMeta `json:"meta"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, nil, fmt.Errorf("atlaspay: failed to decode response: %w", err)
	}
	return envelope.Data, &envelope.Meta, nil
}
