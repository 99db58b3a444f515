package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// TokenSource provides the bearer token for authenticated calls.
// An empty token means no session is stored.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource backed by a fixed string, used for tests and
// for one-off calls with an explicit token.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

// Client talks to the portal API. All methods take a context and return
// explicit errors; responses are decoded JSON. The client holds no job
// state of its own.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
}

// NewClient creates a Client for the given base URL. The timeout bounds
// every request; a request that would otherwise never resolve fails
// instead of leaving the caller waiting.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// NewClientWithHTTP creates a Client with a custom http.Client.
func NewClientWithHTTP(baseURL string, tokens TokenSource, httpc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		tokens:  tokens,
	}
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any       // JSON-encoded when non-nil
	raw    io.Reader // pre-encoded body (multipart); overrides body
	ctype  string    // content type for raw bodies
	noAuth bool      // skip the Authorization header (login, magic links)
}

// do executes a request and decodes the JSON response into out (when out is
// non-nil). Non-2xx responses are mapped to the error taxonomy: session
// expiration yields ErrSessionExpired, everything else a *RequestError.
func (c *Client) do(ctx context.Context, req request, out any) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	ctype := ""
	if req.raw != nil {
		body = req.raw
		ctype = req.ctype
	} else if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		ctype = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if ctype != "" {
		httpReq.Header.Set("Content-Type", ctype)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", ulid.Make().String())

	if !req.noAuth {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("read session token: %w", err)
		}
		if token == "" {
			return ErrNotAuthenticated
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.responseError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// responseError maps a non-2xx response onto the error taxonomy.
func (c *Client) responseError(resp *http.Response) error {
	msg := readErrorMessage(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w", resp.Request.URL.Path, ErrSessionExpired)
	}
	if (resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusForbidden) && isExpiredMessage(msg) {
		return fmt.Errorf("%s: %w", resp.Request.URL.Path, ErrSessionExpired)
	}

	return &RequestError{StatusCode: resp.StatusCode, Message: msg}
}

// readErrorMessage extracts a human message from an error response body.
// The server sends either {"message": ...} or {"error": ...}; anything
// else falls back to the raw text, truncated.
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 8192))
	if err != nil || len(data) == 0 {
		return ""
	}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}

	text := strings.TrimSpace(string(data))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
