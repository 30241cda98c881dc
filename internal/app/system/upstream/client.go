// Package upstream is the client for the dealership REST API, the system of
// record for every business entity shown in the console.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// forwardedHeaders are copied verbatim from the browser request.
var forwardedHeaders = []string{"Authorization", "Content-Type", "Accept"}

// Request describes one call to the upstream API.
type Request struct {
	Method string
	Path   string // relative to the base URL, e.g. "/businessentry/42"
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Result is a completed upstream exchange, whatever its status code.
type Result struct {
	Status      int
	ContentType string
	Body        []byte
	JSON        bool // Content-Type names application/json and Body parses
}

// OK reports a 2xx status.
func (r Result) OK() bool { return r.Status >= 200 && r.Status < 300 }

// Client talks to the upstream API. It is safe for concurrent use.
type Client struct {
	rc      *resty.Client
	baseURL string
	timeout time.Duration
	log     *zap.Logger
}

// New builds a client for baseURL. Calls are never retried; a failed call
// surfaces immediately.
//
// timeout bounds only calls whose context has no deadline. A per-call
// deadline, shorter or longer, always wins.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	base := strings.TrimRight(baseURL, "/")
	rc := resty.New().
		SetBaseURL(base).
		SetRetryCount(0).
		SetLogger(logger.Sugar())

	return &Client{rc: rc, baseURL: base, timeout: timeout, log: logger}
}

// bound applies the client timeout to ctx when ctx carries no deadline.
func (c *Client) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Forward performs req and returns the upstream status and body. The error,
// when non-nil, is always a *Failure.
func (c *Client) Forward(ctx context.Context, req Request) (Result, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	rr := c.rc.R().
		SetContext(ctx).
		SetHeader("Cache-Control", "no-store")

	for _, name := range forwardedHeaders {
		if v := req.Header.Get(name); v != "" {
			rr.SetHeader(name, v)
		}
	}
	if len(req.Query) > 0 {
		rr.SetQueryParamsFromValues(req.Query)
	}
	if len(req.Body) > 0 {
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(req.Method, req.Path)
	if err != nil {
		return Result{}, &Failure{Reason: ReasonTransport, Err: fmt.Errorf("%s %s: %w", req.Method, req.Path, err)}
	}

	res := Result{
		Status:      resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}
	if IsJSON(res.ContentType) {
		if len(bytes.TrimSpace(res.Body)) > 0 && !gjson.ValidBytes(res.Body) {
			return Result{}, &Failure{Reason: ReasonDecode, Err: fmt.Errorf("%s %s: invalid JSON body", req.Method, req.Path)}
		}
		res.JSON = true
	}
	return res, nil
}

// GetJSON performs an authenticated GET and decodes the payload into out.
// Non-2xx answers come back as *StatusError.
func (c *Client) GetJSON(ctx context.Context, path, token string, query url.Values, out any) error {
	h := http.Header{}
	h.Set("Accept", "application/json")
	if token != "" {
		h.Set("Authorization", BearerToken(token))
	}

	res, err := c.Forward(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Header: h})
	if err != nil {
		return err
	}
	if !res.OK() {
		return &StatusError{Status: res.Status, Message: MessageOf(res.Body)}
	}
	if !res.JSON {
		return &Failure{Reason: ReasonDecode, Err: fmt.Errorf("GET %s: unexpected content type %q", path, res.ContentType)}
	}
	return DecodeData(res.Body, out)
}

// Ping reports whether the upstream answers HTTP at all. Any status counts.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	if _, err := c.rc.R().SetContext(ctx).Execute(http.MethodHead, "/"); err != nil {
		return &Failure{Reason: ReasonTransport, Err: err}
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.rc.GetClient().CloseIdleConnections()
}

// IsJSON reports whether a Content-Type value names JSON.
func IsJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

// BearerToken formats token as an Authorization value, leaving values that
// already carry a scheme alone.
func BearerToken(token string) string {
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return token
	}
	return "Bearer " + token
}

// MessageOf returns the string "message" field of a JSON body, or "".
func MessageOf(body []byte) string {
	m := gjson.GetBytes(body, "message")
	if m.Type != gjson.String {
		return ""
	}
	return m.String()
}
