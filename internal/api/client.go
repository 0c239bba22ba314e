package api

// Package api is the single channel through which entity reads and writes
// reach the platform's REST backend. Every call attaches a bearer token
// sourced fresh from the credential provider and normalizes HTTP failures
// into typed errors. No retries, no timeouts beyond the HTTP client's own,
// no request queuing: every call is independent and fires immediately.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/internlink/console/internal/errors"
	"github.com/internlink/console/internal/ports"
)

// fallbackMessage is used when an error body carries no extractable message.
const fallbackMessage = "Request failed"

// maxErrorBody caps how much of an error response is read for message
// extraction.
const maxErrorBody = 64 << 10

// TokenSource supplies a fresh bearer token per request, or
// ports.ErrNoSession when signed out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Config holds Client settings.
type Config struct {
	// BaseURL of the REST backend.
	BaseURL string

	// MessageExpr is the JMESPath expression locating the human-readable
	// message inside backend error bodies. Defaults to "message".
	MessageExpr string

	// HTTPClient is optional and defaults to a 30s-timeout client.
	HTTPClient *http.Client
}

// Client is the data access client.
type Client struct {
	baseURL     string
	tokens      TokenSource
	httpClient  *http.Client
	messageExpr jmespath.JMESPath
}

// New constructs a Client.
func New(cfg Config, tokens TokenSource) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api: base URL is required")
	}
	if tokens == nil {
		return nil, errors.New("api: token source is required")
	}

	expr := cfg.MessageExpr
	if expr == "" {
		expr = "message"
	}
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("api: compile message expression: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		tokens:      tokens,
		httpClient:  httpClient,
		messageExpr: compiled,
	}, nil
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, out)
}

// Patch issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPatch, endpoint, body, out)
}

// Delete issues a DELETE and decodes the response into out when non-nil.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, out)
}

// do is the single request path shared by all verbs, guaranteeing uniform
// auth-header and error handling.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	// The token is fetched fresh per call: tokens expire and refresh
	// transparently at the provider, so caching one across calls would
	// eventually send a stale bearer. Absent token means the call proceeds
	// unauthenticated and the server stays the final authority.
	token, err := c.tokens.Token(ctx)
	switch {
	case err == nil && token != "":
		req.Header.Set("Authorization", "Bearer "+token)
	case err != nil && !errors.Is(err, ports.ErrNoSession):
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "fetch bearer token")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeHTTP, fallbackMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeHTTP, fallbackMessage)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeHTTP, "decode response body")
	}
	return nil
}

// errorFromResponse builds the typed error for a non-success status. The
// backend's error bodies optionally carry a message field; when the body is
// not JSON or the field is missing, the generic fallback is used.
func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := fallbackMessage
	var parsed any
	if json.Unmarshal(raw, &parsed) == nil {
		if found, err := c.messageExpr.Search(parsed); err == nil {
			if s, ok := found.(string); ok && s != "" {
				message = s
			}
		}
	}

	return apperrors.HTTP(resp.StatusCode, message)
}
