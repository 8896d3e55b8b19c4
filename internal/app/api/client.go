package api

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/observability/metrics"
)

const maxErrorBody = 64 << 10

// Client talks to the claims backend. Credentials are attached by a transport
// installed once in New; call sites never set the Authorization header.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	logger         *zap.Logger
	onUnauthorized func(ctx context.Context)
}

type options struct {
	source         CredentialSource
	transport      http.RoundTripper
	timeout        time.Duration
	logger         *zap.Logger
	onUnauthorized func(ctx context.Context)
}

type Option func(*options)

// WithCredentialSource sets where the bearer credential is read from.
func WithCredentialSource(src CredentialSource) Option {
	return func(o *options) { o.source = src }
}

// WithTransport replaces the base round tripper (tests, proxies).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithUnauthorizedHandler registers the single place that reacts to 401/403.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(o *options) { o.onUnauthorized = fn }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host are required", baseURL)
	}

	o := options{
		transport: http.DefaultTransport,
		timeout:   60 * time.Second,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		baseURL: u,
		http: &http.Client{
			Transport: otelhttp.NewTransport(&bearerTransport{next: o.transport, source: o.source}),
			Timeout:   o.timeout,
		},
		logger:         o.logger,
		onUnauthorized: o.onUnauthorized,
	}, nil
}

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	// anonymous requests carry no credential, and their 401s reject the
	// submitted credentials rather than the session.
	anonymous bool
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return bytes.NewReader(data), nil
}

// do sends r and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	u := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	reqCtx := ctx
	if r.anonymous {
		reqCtx = withoutCredential(ctx)
	}
	req, err := http.NewRequestWithContext(reqCtx, r.method, u.String(), r.body)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", r.op, err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	c.record(ctx, r.op, resp, start)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", r.op, err)
		}
		c.logger.Warn("Backend request failed", zap.String("op", r.op), zap.Error(err))
		return fmt.Errorf("%s: %w: %w", r.op, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: r.op, Status: resp.StatusCode, Message: readMessage(resp.Body)}
		if errors.Is(apiErr, ErrUnauthorized) && !r.anonymous && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		c.logger.Debug("Backend returned error",
			zap.String("op", r.op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", r.op, err)
	}
	return nil
}

func (c *Client) record(ctx context.Context, op string, resp *http.Response, start time.Time) {
	status := "error"
	if resp != nil {
		status = http.StatusText(resp.StatusCode)
	}
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("status", status),
	)
	m := metrics.Get()
	m.BackendRequestsTotal.Add(ctx, 1, attrs)
	m.BackendRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}

// readMessage extracts {"message": "..."} bodies and falls back to plain text.
func readMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(data))
}
