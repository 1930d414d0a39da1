package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/evercare/planhub/internal/common"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// AccessToken must return "" when no usable (non-expired) token exists.
// Clear removes persisted tokens; the client calls it when the server answers
// with an authentication error.
type TokenSource interface {
	AccessToken(ctx context.Context) string
	Clear(ctx context.Context) error
}

// RequestConfig carries per-call options.
type RequestConfig struct {
	// SkipAuth suppresses the Authorization header (login, register,
	// refresh, password reset, invitation validation).
	SkipAuth bool

	// Params are query parameters; entries with empty values are omitted.
	Params map[string]string

	// Header holds extra request headers merged over the defaults.
	Header http.Header
}

// RequestOption mutates a RequestConfig.
type RequestOption func(*RequestConfig)

// WithSkipAuth disables the Authorization header for this call.
func WithSkipAuth() RequestOption {
	return func(cfg *RequestConfig) { cfg.SkipAuth = true }
}

// WithParams sets query parameters; empty values are dropped at send time.
func WithParams(params map[string]string) RequestOption {
	return func(cfg *RequestConfig) { cfg.Params = params }
}

// WithHeader adds a request header.
func WithHeader(key, value string) RequestOption {
	return func(cfg *RequestConfig) {
		if cfg.Header == nil {
			cfg.Header = http.Header{}
		}
		cfg.Header.Add(key, value)
	}
}

// RequestInterceptor transforms an outgoing request. Interceptors run in
// registration order, each receiving the previous one's output.
type RequestInterceptor func(*http.Request) (*http.Request, error)

// ResponseInterceptor observes every received HTTP response (success or
// error status) before the client interprets it.
type ResponseInterceptor func(*http.Response)

// ErrorInterceptor transforms or observes every failure (typed API errors
// and network errors) before it is returned to the caller.
type ErrorInterceptor func(error) error

type interceptorEntry[T any] struct {
	id int
	fn T
}

// Client is the PlanHub HTTP API client core. Resource methods
// (participants, invoices, plans, ...) are defined in sibling files and all
// funnel through do.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource

	mu     sync.Mutex
	nextID int
	reqIc  []interceptorEntry[RequestInterceptor]
	respIc []interceptorEntry[ResponseInterceptor]
	errIc  []interceptorEntry[ErrorInterceptor]
}

// New creates a client for the API at baseURL. tokens may be nil for a
// client that only calls public endpoints.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
	}
}

// AddRequestInterceptor appends fn to the request chain and returns a
// function that unregisters it.
func (c *Client) AddRequestInterceptor(fn RequestInterceptor) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.reqIc = append(c.reqIc, interceptorEntry[RequestInterceptor]{id: id, fn: fn})
	return func() { c.removeRequestInterceptor(id) }
}

// AddResponseInterceptor appends fn to the response chain and returns a
// function that unregisters it.
func (c *Client) AddResponseInterceptor(fn ResponseInterceptor) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.respIc = append(c.respIc, interceptorEntry[ResponseInterceptor]{id: id, fn: fn})
	return func() { c.removeResponseInterceptor(id) }
}

// AddErrorInterceptor appends fn to the error chain and returns a function
// that unregisters it.
func (c *Client) AddErrorInterceptor(fn ErrorInterceptor) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.errIc = append(c.errIc, interceptorEntry[ErrorInterceptor]{id: id, fn: fn})
	return func() { c.removeErrorInterceptor(id) }
}

func (c *Client) removeRequestInterceptor(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.reqIc {
		if e.id == id {
			c.reqIc = append(c.reqIc[:i], c.reqIc[i+1:]...)
			return
		}
	}
}

func (c *Client) removeResponseInterceptor(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.respIc {
		if e.id == id {
			c.respIc = append(c.respIc[:i], c.respIc[i+1:]...)
			return
		}
	}
}

func (c *Client) removeErrorInterceptor(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.errIc {
		if e.id == id {
			c.errIc = append(c.errIc[:i], c.errIc[i+1:]...)
			return
		}
	}
}

// Get issues GET path and decodes the JSON response into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues POST path with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues PUT path with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts...)
}

// Patch issues PATCH path with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPatch, path, body, out, opts...)
}

// Delete issues DELETE path.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// wireErrorBody matches the error envelope the API produces:
// {message|error, code?, details|errors?}.
type wireErrorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details map[string][]string `json:"details"`
	Errors  map[string][]string `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	cfg := RequestConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	req, err := c.buildRequest(ctx, method, path, body, &cfg)
	if err != nil {
		return err
	}

	for _, e := range c.requestInterceptors() {
		req, err = e.fn(req)
		if err != nil {
			return c.applyErrorInterceptors(err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response reached us at all: transport failure.
		return c.applyErrorInterceptors(&NetworkError{Err: err})
	}
	defer resp.Body.Close()

	for _, e := range c.responseInterceptors() {
		e.fn(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.applyErrorInterceptors(c.errorFromResponse(ctx, resp))
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, method, path string, body any, cfg *RequestConfig) (*http.Request, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	if len(cfg.Params) > 0 {
		values := url.Values{}
		for k, v := range cfg.Params {
			if v == "" {
				continue
			}
			values.Set(k, v)
		}
		if encoded := values.Encode(); encoded != "" {
			fullURL += "?" + encoded
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, vs := range cfg.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if !cfg.SkipAuth && c.tokens != nil {
		if token := c.tokens.AccessToken(ctx); token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	return req, nil
}

// errorFromResponse turns a non-2xx response into a typed *APIError. An
// authentication error additionally clears the token store: the single
// transport-level "forced logout" in the system.
func (c *Client) errorFromResponse(ctx context.Context, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var wire wireErrorBody
	message := ""
	if err := json.Unmarshal(data, &wire); err == nil {
		if wire.Message != "" {
			message = wire.Message
		} else if wire.Error != "" {
			message = wire.Error
		}
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	details := wire.Details
	if details == nil {
		details = wire.Errors
	}

	apiErr := Classify(resp.StatusCode, message, wire.Code, details)
	if apiErr.Kind == KindRateLimit {
		if s := resp.Header.Get("Retry-After"); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				apiErr.RetryAfter = n
			}
		}
	}

	if apiErr.Kind == KindAuthentication && c.tokens != nil {
		_ = c.tokens.Clear(ctx)
	}

	return apiErr
}

func (c *Client) applyErrorInterceptors(err error) error {
	for _, e := range c.errorInterceptors() {
		err = e.fn(err)
	}
	return err
}

func (c *Client) requestInterceptors() []interceptorEntry[RequestInterceptor] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]interceptorEntry[RequestInterceptor], len(c.reqIc))
	copy(out, c.reqIc)
	return out
}

func (c *Client) responseInterceptors() []interceptorEntry[ResponseInterceptor] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]interceptorEntry[ResponseInterceptor], len(c.respIc))
	copy(out, c.respIc)
	return out
}

func (c *Client) errorInterceptors() []interceptorEntry[ErrorInterceptor] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]interceptorEntry[ErrorInterceptor], len(c.errIc))
	copy(out, c.errIc)
	return out
}
