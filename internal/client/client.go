package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
	"github.com/noah-isme/sma-adp-console/pkg/middleware/requestid"
)

const defaultMaxBodyBytes = 10 << 20

// TokenSource yields the bearer token for outgoing requests, or "" when the
// user is not signed in.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Observer receives outbound request measurements.
type Observer interface {
	ObserveUpstreamRequest(method, endpoint string, status int, duration time.Duration)
}

// Config groups client dependencies.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     TokenSource
	Validator  *validator.Validate
	Logger     *zap.Logger
	Metrics    Observer
	// MaxBodyBytes caps response bodies; defaults to 10 MiB.
	MaxBodyBytes int64
}

// Request describes one REST call relative to the configured base URL.
type Request struct {
	Method string
	Path   string
	// Endpoint is the route template used as the metrics label; defaults to Path.
	Endpoint string
	Query    url.Values
	Body     interface{}
	// Auth requires a token and fails before any network I/O without one.
	// When false a token is still attached if available.
	Auth bool
	// NotFoundMessage replaces the generic message on a 404 without a body message.
	NotFoundMessage string
}

// Client is the single REST client every store talks through.
type Client struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	validator *validator.Validate
	logger    *zap.Logger
	metrics   Observer
	maxBody   int64
}

// New constructs a Client with sane defaults.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	validate := cfg.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      httpClient,
		tokens:    cfg.Tokens,
		validator: validate,
		logger:    logger,
		metrics:   cfg.Metrics,
		maxBody:   maxBody,
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs the request and decodes a successful JSON body into out, which
// is then validated against its `validate` tags. out may be nil.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	if req.Body != nil {
		if err := c.validate(req.Body); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
		}
	}

	token := ""
	if c.tokens != nil {
		token = c.tokens.Token(ctx)
	}
	if req.Auth && token == "" {
		return appErrors.ErrAuthTokenMissing
	}

	httpReq, err := c.newRequest(ctx, req, token)
	if err != nil {
		return err
	}

	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.Path
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		c.observe(req.Method, endpoint, 0, duration)
		c.logger.Debug("upstream request failed",
			zap.String("method", req.Method),
			zap.String("endpoint", endpoint),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, transportMessage(ctx, err))
	}
	defer resp.Body.Close()

	c.observe(req.Method, endpoint, resp.StatusCode, duration)
	c.logger.Debug("upstream request",
		zap.String("method", req.Method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
		zap.String("request_id", httpReq.Header.Get(requestid.Header)),
	)

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, resp.StatusCode, transportMessage(ctx, err))
	}
	if int64(len(body)) > c.maxBody {
		e := appErrors.Clone(appErrors.ErrResponseTooLarge, fmt.Sprintf("Response too large: exceeds %d bytes", c.maxBody))
		e.Status = resp.StatusCode
		return e
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return httpError(resp.StatusCode, body, req.NotFoundMessage)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrDecode.Code, resp.StatusCode, "Invalid response from server")
		}
	}
	if err := c.validate(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInvalidResponse.Code, resp.StatusCode, "Invalid response from server: "+validationMessage(err))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request, token string) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unable to encode request body")
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestid.Header, requestid.New())
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

func (c *Client) observe(method, endpoint string, status int, duration time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveUpstreamRequest(method, endpoint, status, duration)
	}
}

// validate checks struct (or pointer to struct) values only.
func (c *Client) validate(v interface{}) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return c.validator.Struct(rv.Interface())
}

// httpError builds the error for a non-2xx response. The message comes from
// the body's "error" (string or {message}) or "message" field, then the
// per-request not-found message, then the generic status message.
func httpError(status int, body []byte, notFoundMessage string) error {
	message := serverMessage(body)
	if message == "" && status == http.StatusNotFound && notFoundMessage != "" {
		message = notFoundMessage
	}
	if message == "" {
		message = appErrors.HTTPStatusMessage(status)
	}
	e := appErrors.Clone(appErrors.ErrHTTP, message)
	e.Status = status
	return e
}

func serverMessage(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if raw, ok := payload["error"]; ok {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
			return nested.Message
		}
	}
	if raw, ok := payload["message"]; ok {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil && strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

func transportMessage(ctx context.Context, err error) string {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr.Error()
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
