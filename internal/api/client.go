package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// TokenSource supplies the bearer token for authenticated calls. The
// session store implements it; tests substitute a literal.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource backed by a fixed string.
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

// Client talks to the document-management backend. All mutating calls
// are bearer-authenticated; login/OTP are the only anonymous endpoints.
type Client struct {
	http   *resty.Client
	tokens TokenSource
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTokens sets the bearer token source.
func WithTokens(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// NewClient builds a Client for the given base URL. There is no retry
// policy: every failed request is terminal for that attempt and needs a
// new user-triggered action.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url scheme must be http or https, got %q", u.Scheme)
	}

	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// authRequest returns a request with the bearer header set, failing
// fast when no token is available so an unauthenticated call is never
// sent to the backend.
func (c *Client) authRequest() (*resty.Request, error) {
	if c.tokens == nil {
		return nil, ErrNoToken
	}
	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoToken
	}
	return c.http.R().SetAuthToken(token), nil
}

// checkResponse maps a non-2xx response onto the error taxonomy.
func (c *Client) checkResponse(resource string, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	status := resp.StatusCode()
	if status == 401 || status == 403 {
		c.logger.Warn("request rejected", "resource", resource, "status", status)
		return ErrUnauthorized
	}
	msg := serverMessage(resp.Body())
	c.logger.Error("request failed", "resource", resource, "status", status, "message", msg)
	return &APIError{Status: status, Resource: resource, Message: msg}
}

// serverMessage pulls the human-readable message out of an error body,
// falling back to the raw body when it is not the usual {"message": ...}.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
