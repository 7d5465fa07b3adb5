package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrJigi/mechhive-assignment-app/pkg/config"
	pkgerrors "github.com/MrJigi/mechhive-assignment-app/pkg/errors"
)

const (
	apiKeyHeader              = "x-api-key"
	defaultTimeout            = 10 * time.Second
	errorBodyReadLimit  int64 = 1024
	responseBodyMaxSize int64 = 4 << 20
)

// Client is the gateway to the remote catalog API. It can be constructed
// unconfigured; every call then fails fast with a configuration error so the
// caller can fall through to the offline catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the catalog gateway from config.
func NewClient(cfg config.UpstreamConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

// IsReady reports whether the gateway has both a base URL and a credential.
// It has no side effects.
func (c *Client) IsReady() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

// Get issues a GET against the given endpoint, decodes the JSON payload into
// out, and maps every failure mode onto the pipeline error taxonomy. Empty
// parameter values are dropped from the query string.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if !c.IsReady() {
		return pkgerrors.New(pkgerrors.CodeConfiguration, "upstream base URL or API key missing")
	}

	reqURL := c.buildURL(endpoint, params)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return pkgerrors.Wrap(pkgerrors.CodeUpstreamTimeout, err, fmt.Sprintf("catalog request exceeded %s", c.timeout))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute catalog request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.New(pkgerrors.CodeUpstreamStatus, fmt.Sprintf("catalog responded %d", resp.StatusCode)).
			WithDetails(map[string]any{"status": resp.StatusCode, "body": strings.TrimSpace(string(msg))})
	}

	// Body is read as text first so an empty or truncated payload surfaces as
	// a parse error instead of a generic decode failure.
	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyMaxSize))
	if err != nil {
		if isTimeout(err) {
			return pkgerrors.Wrap(pkgerrors.CodeUpstreamTimeout, err, "read catalog response")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog response")
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeUpstreamParse, "empty response body")
	}
	if trimmed[0] != '{' {
		return pkgerrors.New(pkgerrors.CodeUpstreamParse, "top-level payload is not an object")
	}
	if err := json.Unmarshal([]byte(trimmed), out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstreamParse, err, "decode catalog response")
	}

	return nil
}

func (c *Client) buildURL(endpoint string, params url.Values) string {
	endpoint = strings.TrimLeft(strings.TrimSpace(endpoint), "/")
	full := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	filtered := url.Values{}
	for key, values := range params {
		for _, value := range values {
			if value != "" {
				filtered.Add(key, value)
			}
		}
	}
	if encoded := filtered.Encode(); encoded != "" {
		if strings.Contains(full, "?") {
			return full + "&" + encoded
		}
		return full + "?" + encoded
	}
	return full
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
