package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/octabyte/hostel-gommon/otel"
	otellogger "github.com/octabyte/hostel-gommon/otel/logger"
	"github.com/octabyte/hostel-gommon/otel/metrics"
	"github.com/octabyte/hostel-gommon/session"
	"github.com/octabyte/hostel-gommon/utils"
	ctxutil "github.com/octabyte/hostel-gommon/utils/context"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	HeaderContentType = "Content-Type"
	HeaderAuth        = "Authorization"
	HeaderRequestID   = "X-Request-ID"
	contentTypeJSON   = "application/json"
)

// Client talks to the hostel-management API on behalf of one session.
type Client struct {
	cfg          Config
	http         *resty.Client
	session      *session.Manager
	alerter      Alerter
	navigator    Navigator
	newRequestID func() string
}

type Option func(*Client)

// WithHTTPClient makes resty send requests through h.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = resty.NewWithClient(h)
		}
	}
}

func WithAlerter(a Alerter) Option {
	return func(c *Client) {
		if a != nil {
			c.alerter = a
		}
	}
}

func WithNavigator(n Navigator) Option {
	return func(c *Client) {
		if n != nil {
			c.navigator = n
		}
	}
}

func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.newRequestID = gen
		}
	}
}

// New builds a client for cfg. sess is the session the client authenticates
// with and clears on rejection; nil gives the client a private in-memory one.
func New(cfg Config, sess *session.Manager, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	if sess == nil {
		sess = session.NewManager(session.NewMemoryStore())
	}

	c := &Client{
		cfg:          cfg,
		session:      sess,
		alerter:      logAlerter{},
		navigator:    logNavigator{},
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if c.http == nil {
		c.http = otel.NewTracedRestyClient(baseURL)
	} else {
		c.http.SetBaseURL(baseURL).OnBeforeRequest(otel.WithTraceHeaders)
	}
	c.http.
		SetLogger(restyLogger{}).
		SetDisableWarn(true)
	if cfg.Timeout > 0 {
		c.http.SetTimeout(cfg.Timeout)
	}

	return c, nil
}

func (c *Client) Session() *session.Manager {
	return c.session
}

func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Request sends one JSON request to path (relative to the base URL) and
// triages the response. Method defaults to GET; a nil body sends no body.
//
// Transport failures raise an alert, a 401 ends the session and navigates to
// the login page, any other non-2xx is logged. All of them return Failed.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) Result {
	return c.do(ctx, method, path, path, body)
}

// call expands the single {id} placeholder of route with the escaped id. An
// empty id fails without sending anything.
func (c *Client) call(ctx context.Context, method, route, id string, body interface{}) Result {
	path := route
	if strings.Contains(route, "{id}") {
		if id == "" {
			otellogger.WarnCtx(ctx, "hostel api request missing path id", zap.String("method", method), zap.String("route", route))
			return Failed
		}
		path = strings.Replace(route, "{id}", url.PathEscape(id), 1)
	}
	return c.do(ctx, method, route, path, body)
}

func (c *Client) do(ctx context.Context, method, route, path string, body interface{}) Result {
	if method == "" {
		method = http.MethodGet
	}

	ctx, finish := otel.StartHTTPSpan(ctx, c.cfg.ServiceName, clientName, method+" "+route, method, c.http.BaseURL, path)
	metrics.IncrementInFlightRequests(ctx, method, route)
	defer metrics.DecrementInFlightRequests(ctx, method, route)
	start := time.Now()

	requestID, ok := ctxutil.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = c.newRequestID()
	}
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderContentType, contentTypeJSON).
		SetHeader(HeaderRequestID, requestID)
	if token := c.bearerToken(ctx); token != "" {
		req.SetHeader(HeaderAuth, utils.BearerHeader(token))
	}
	if body != nil {
		payload, err := utils.BodyToBytes(body)
		if err != nil {
			err = fmt.Errorf("failed to encode request body: %w", err)
			finish(0, err)
			metrics.RecordRequest(ctx, method, route, 0, metrics.OutcomeTransportError, time.Since(start))
			return c.transportFailure(ctx, err, fields)
		}
		req.SetBody(payload)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		finish(0, err)
		metrics.RecordRequest(ctx, method, route, 0, metrics.OutcomeTransportError, time.Since(start))
		return c.transportFailure(ctx, err, fields)
	}

	status := resp.StatusCode()
	raw := resp.Body()
	fields = append(fields, zap.Int("status", status))

	switch {
	case status == http.StatusUnauthorized:
		finish(status, nil)
		metrics.RecordRequest(ctx, method, route, status, metrics.OutcomeUnauthorized, time.Since(start))
		return c.unauthorized(ctx, fields)

	case status < 200 || status >= 300:
		finish(status, nil)
		metrics.RecordRequest(ctx, method, route, status, metrics.OutcomeHTTPError, time.Since(start))
		otellogger.WarnCtx(ctx, "hostel api request unsuccessful", append(fields, bodyFields(raw)...)...)
		return Failed
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && !gjson.ValidBytes(raw) {
		err := errors.New("response body is not valid JSON")
		finish(status, err)
		metrics.RecordRequest(ctx, method, route, status, metrics.OutcomeTransportError, time.Since(start))
		return c.transportFailure(ctx, err, fields)
	}

	finish(status, nil)
	metrics.RecordRequest(ctx, method, route, status, metrics.OutcomeSuccess, time.Since(start))
	otellogger.DebugCtx(ctx, "hostel api request succeeded", fields...)
	if len(raw) == 0 {
		return succeeded(status, nil)
	}
	return succeeded(status, raw)
}

// bearerToken prefers a token put on the context for this one call over the
// session token.
func (c *Client) bearerToken(ctx context.Context) string {
	if token, ok := ctxutil.GetTokenFromContext(ctx); ok {
		return token
	}
	return c.session.Token()
}

func (c *Client) transportFailure(ctx context.Context, err error, fields []zap.Field) Result {
	otellogger.ErrorCtx(ctx, "hostel api request failed", err, fields...)
	c.alerter.Alert(ctx, fmt.Sprintf("Network error: %v", err))
	return Failed
}

func (c *Client) unauthorized(ctx context.Context, fields []zap.Field) Result {
	otellogger.WarnCtx(ctx, "session rejected by hostel api, logging out", fields...)
	if err := c.session.Invalidate(ctx); err != nil {
		otellogger.ErrorCtx(ctx, "failed to clear rejected session", err, fields...)
	}
	c.navigator.Navigate(ctx, c.cfg.LoginPath)
	return Failed
}

// bodyFields describes an error body for the log. Bodies are usually JSON
// with an "error" key, but proxies and crashes produce HTML or plain text.
func bodyFields(raw []byte) []zap.Field {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if !gjson.ValidBytes(raw) {
		return []zap.Field{zap.String("body_text", truncate(string(raw), 512))}
	}
	fields := []zap.Field{zap.String("body", string(raw))}
	if msg := gjson.GetBytes(raw, "error").String(); msg != "" {
		fields = append(fields, zap.String("api_error", msg))
	}
	return fields
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
