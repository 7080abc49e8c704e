package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pkt.systems/pslog"
)

const (
	// DefaultHTTPTimeout bounds ordinary (non-blocking) requests.
	DefaultHTTPTimeout = 15 * time.Second
)

// Client talks to one agent. All fields are fixed at construction; a
// call is a pure function of its arguments plus this configuration, so
// a single Client is safe for any number of concurrent watches.
type Client struct {
	cfg         Config
	transport   Transport
	httpTimeout time.Duration
	logger      pslog.Base

	// httpClient is only consulted during construction; options may
	// populate it before the default transport is built.
	httpClient *http.Client
}

// Option customises client construction.
type Option func(*Client)

// WithLogger supplies a logger for client diagnostics.
// Passing nil falls back to pslog.NoopLogger().
func WithLogger(logger pslog.Base) Option {
	return func(c *Client) {
		if logger == nil {
			c.logger = pslog.NoopLogger()
			return
		}
		c.logger = logger
	}
}

// WithTransport replaces the HTTP transport entirely. The supplied
// implementation owns sockets and TLS; Config.Address and Config.Scheme
// are ignored when this option is used.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithHTTPClient supplies a custom HTTP client/transport stack for the
// default transport. Use this for custom TLS roots, proxies, or
// connection pooling behavior not covered by defaults.
func WithHTTPClient(cli *http.Client) Option {
	return func(c *Client) {
		if cli != nil {
			c.httpClient = cli
		}
	}
}

// WithHTTPTimeout overrides the per-request timeout for non-blocking
// calls. Blocking queries extend this bound by their wait duration.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpTimeout = d
		}
	}
}

// New creates a client from cfg. Pass DefaultConfig() for a local
// plaintext agent, or EnvConfig() to honor CONSUL_HTTP_* variables.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Address == "" {
		cfg.Address = DefaultConfig().Address
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "http"
	}
	if cfg.Scheme != "http" && cfg.Scheme != "https" {
		return nil, fmt.Errorf("consulq: unsupported scheme %q", cfg.Scheme)
	}
	if cfg.Consistency == "" {
		cfg.Consistency = ConsistencyDefault
	}
	if !cfg.Consistency.valid() {
		return nil, fmt.Errorf("consulq: consistency must be default, consistent or stale, got %q", cfg.Consistency)
	}
	c := &Client{
		cfg:         cfg,
		httpTimeout: DefaultHTTPTimeout,
		logger:      pslog.NoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		cli := c.httpClient
		if cli == nil {
			cli = &http.Client{}
			if cfg.Scheme == "https" && cfg.TLSSkipVerify {
				cli.Transport = &http.Transport{
					TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
				}
			}
		}
		c.transport = newHTTPTransport(cfg.Scheme+"://"+cfg.Address, cli)
	}
	c.httpClient = nil
	return c, nil
}

// Config returns a copy of the client's immutable configuration.
func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) logTraceCtx(ctx context.Context, msg string, keyvals ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Trace(msg, keyvals...)
}

func (c *Client) logWarnCtx(ctx context.Context, msg string, keyvals ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(msg, keyvals...)
}

func (c *Client) logErrorCtx(ctx context.Context, msg string, keyvals ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Error(msg, keyvals...)
}

// requestContext bounds an ordinary request by the configured timeout.
func (c *Client) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if c.httpTimeout <= 0 {
		return parent, func() {}
	}
	return context.WithTimeout(parent, c.httpTimeout)
}

// queryContext bounds a read. A blocking query intentionally holds the
// request open for its wait duration, so the deadline is extended to
// wait plus the ordinary timeout (the server may stretch the wait
// slightly to spread wakeups).
func (c *Client) queryContext(parent context.Context, wait time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if c.httpTimeout <= 0 {
		return parent, func() {}
	}
	timeout := c.httpTimeout
	if wait > 0 {
		timeout += wait
	}
	return context.WithTimeout(parent, timeout)
}

// get issues a read. wait is the long-poll wait bound, zero for plain
// reads; it only influences the context deadline, never the parameters.
func (c *Client) get(ctx context.Context, path string, query url.Values, wait time.Duration) (*Envelope, error) {
	c.logTraceCtx(ctx, "client.http.get.start", "path", path)
	reqCtx, cancel := c.queryContext(ctx, wait)
	defer cancel()
	env, err := c.transport.Get(reqCtx, path, query)
	if err != nil {
		return nil, c.transportError(ctx, "get", path, err)
	}
	c.logTraceCtx(ctx, "client.http.get.done", "path", path, "status", env.Status)
	return env, nil
}

func (c *Client) put(ctx context.Context, path string, query url.Values, body []byte) (*Envelope, error) {
	c.logTraceCtx(ctx, "client.http.put.start", "path", path)
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()
	env, err := c.transport.Put(reqCtx, path, query, body)
	if err != nil {
		return nil, c.transportError(ctx, "put", path, err)
	}
	c.logTraceCtx(ctx, "client.http.put.done", "path", path, "status", env.Status)
	return env, nil
}

func (c *Client) delete(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	c.logTraceCtx(ctx, "client.http.delete.start", "path", path)
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()
	env, err := c.transport.Delete(reqCtx, path, query)
	if err != nil {
		return nil, c.transportError(ctx, "delete", path, err)
	}
	c.logTraceCtx(ctx, "client.http.delete.done", "path", path, "status", env.Status)
	return env, nil
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body []byte) (*Envelope, error) {
	c.logTraceCtx(ctx, "client.http.post.start", "path", path)
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()
	env, err := c.transport.Post(reqCtx, path, query, body)
	if err != nil {
		return nil, c.transportError(ctx, "post", path, err)
	}
	c.logTraceCtx(ctx, "client.http.post.done", "path", path, "status", env.Status)
	return env, nil
}

// transportError classifies a transport failure, distinguishing a
// timed-out request from other network errors.
func (c *Client) transportError(ctx context.Context, verb, path string, err error) error {
	if isTimeoutError(err) {
		c.logWarnCtx(ctx, "client.http.timeout", "verb", verb, "path", path, "error", err)
		return fmt.Errorf("consulq: %s %s: %w", verb, path, ErrTimeout)
	}
	c.logErrorCtx(ctx, "client.http.transport_error", "verb", verb, "path", path, "error", err)
	return fmt.Errorf("consulq: %s %s: %w", verb, path, err)
}
