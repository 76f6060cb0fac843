package clientcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/sagarc03/text2kv"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs operations against a text2kv server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()

	c := &Client{
		config: &Config{
			Server: strings.TrimSuffix(cfg.Server, "/"),
			Token:  cfg.Token,
		},
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Get reads the value stored under name.
func (c *Client) Get(ctx context.Context, name string) (*GetResult, error) {
	name, err := objectName(name, c.config.Token)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}

	body, header, err := c.do(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}

	return &GetResult{
		Name:  name,
		Value: body,
		Size:  len(body),
		ETag:  header.Get("ETag"),
	}, nil
}

// Put writes a text or b64 payload under name. The server reads the value
// back before answering, so the result holds what is actually stored.
func (c *Client) Put(ctx context.Context, opts PutOptions) (*PutResult, error) {
	name, err := objectName(opts.Name, c.config.Token)
	if err != nil {
		return nil, fmt.Errorf("put: %w", err)
	}

	query := url.Values{}
	switch {
	case opts.Text != "":
		query.Set("text", opts.Text)
	case opts.B64 != "":
		query.Set("b64", opts.B64)
	default:
		return nil, fmt.Errorf("put %s: %w", name, ErrEmptyPayload)
	}

	body, _, err := c.do(ctx, name, query)
	if err != nil {
		return nil, fmt.Errorf("put %s: %w", name, err)
	}

	return &PutResult{
		Name:  name,
		Value: body,
		Size:  len(body),
	}, nil
}

// Script downloads one of the updater scripts. kind must be
// text2kv.RouteScriptBat or text2kv.RouteScriptSh.
func (c *Client) Script(ctx context.Context, kind text2kv.RouteKind) (*ScriptResult, error) {
	var scriptPath string
	switch kind {
	case text2kv.RouteScriptBat:
		scriptPath = text2kv.PathScriptBat
	case text2kv.RouteScriptSh:
		scriptPath = text2kv.PathScriptSh
	default:
		return nil, fmt.Errorf("script: unsupported kind %s", kind)
	}

	body, header, err := c.do(ctx, scriptPath, nil)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", scriptPath, err)
	}

	return &ScriptResult{
		FileName: attachmentName(header.Get("Content-Disposition"), path.Base(scriptPath)),
		Content:  body,
		Size:     len(body),
	}, nil
}

// ConfigPage fetches the HTML config view.
func (c *Client) ConfigPage(ctx context.Context) (string, error) {
	body, _, err := c.do(ctx, text2kv.PathConfig, nil)
	if err != nil {
		return "", fmt.Errorf("config page: %w", err)
	}
	return body, nil
}

// do issues a GET for the given server-relative path with the token and
// any extra query values attached.
func (c *Client) do(ctx context.Context, name string, query url.Values) (string, http.Header, error) {
	if query == nil {
		query = url.Values{}
	}
	if c.config.Token != "" {
		query.Set("token", c.config.Token)
	}

	target := c.config.Server + "/" + escapePath(name)
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", nil, parseServerError(resp.StatusCode, body)
	}

	return string(body), resp.Header, nil
}

// objectName normalizes name the way the server does and rejects names
// that resolve to a reserved route.
func objectName(name, token string) (string, error) {
	normalized := text2kv.NormalizeName(name)
	if normalized == "" {
		return "", ErrEmptyName
	}
	if text2kv.Resolve(normalized, token).Kind != text2kv.RouteObject {
		return "", fmt.Errorf("%w: %s", ErrReservedName, normalized)
	}
	return normalized, nil
}

// escapePath escapes each segment of p, keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// attachmentName returns the filename parameter of a Content-Disposition
// header, or fallback when there is none.
func attachmentName(disposition, fallback string) string {
	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil || params["filename"] == "" {
		return fallback
	}
	return params["filename"]
}

// parseServerError wraps a non-200 response.
func parseServerError(statusCode int, body []byte) error {
	return &APIError{
		StatusCode: statusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when nothing is stored under the name (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrUnauthorized is returned when the token is rejected (403).
	ErrUnauthorized = &APIError{StatusCode: http.StatusForbidden}

	// ErrBadRequest is returned for an invalid object name (400).
	ErrBadRequest = &APIError{StatusCode: http.StatusBadRequest}

	// ErrServer is returned for decode, verification and store failures (500).
	ErrServer = &APIError{StatusCode: http.StatusInternalServerError}
)
