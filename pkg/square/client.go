package square

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

	"github.com/sethvargo/go-retry"

	"github.com/cafephin/dashboard-backend/pkg/config"
	pkgerrors "github.com/cafephin/dashboard-backend/pkg/errors"
	"github.com/cafephin/dashboard-backend/pkg/logger"
	"github.com/cafephin/dashboard-backend/pkg/metrics"
)

const (
	sandboxEnv    = "sandbox"
	productionEnv = "production"

	responseBodyReadLimit int64 = 1 << 16
	retryBaseDelay              = 250 * time.Millisecond
)

var (
	errAccessTokenRequired = errors.New("square access token is required")
	errInvalidSquareEnv    = fmt.Errorf("square environment must be %q or %q", sandboxEnv, productionEnv)
	errLoggerRequired      = errors.New("square logger is required")
)

var baseURLs = map[string]string{
	sandboxEnv:    "https://connect.squareupsandbox.com",
	productionEnv: "https://connect.squareup.com",
}

// Client talks to Square's REST API with centralized auth, pagination,
// bounded retry, logging, and error mapping. Responses are decoded from raw
// JSON rather than generated SDK types so the report layer can normalize the
// inconsistent field naming the labor API returns.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	environment string
	version     string
	pageLimit   int
	maxRetries  int
	logger      *logger.Logger
	metrics     *metrics.UpstreamMetrics
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

// WithBaseURL overrides the environment-derived base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithMetrics attaches upstream request metrics.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient initializes the Square client and validates the credentials.
func NewClient(ctx context.Context, cfg config.SquareConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	accessToken := strings.TrimSpace(cfg.AccessToken)
	if accessToken == "" {
		return nil, errAccessTokenRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageLimit := cfg.PageLimit
	if pageLimit <= 0 || pageLimit > 100 {
		pageLimit = 100
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURLs[env],
		accessToken: accessToken,
		environment: env,
		version:     strings.TrimSpace(cfg.Version),
		pageLimit:   pageLimit,
		maxRetries:  cfg.MaxRetries,
		logger:      logg,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	logg.Info(ctx, "square client initialized")
	return c, nil
}

// Environment reports the normalized Square environment.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// StatusError carries a non-2xx upstream response for diagnostics. It
// satisfies pkgerrors.UpstreamStatusError so the body survives to the logs
// and, via error details, to the 502 response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("square returned status %d", e.Status)
}

func (e *StatusError) UpstreamStatus() int  { return e.Status }
func (e *StatusError) UpstreamBody() string { return e.Body }

// do issues one Square request with bounded retry on 5xx/429/network
// failures. 4xx responses are terminal.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, resource string) error {
	backoff := retry.WithMaxRetries(uint64(c.maxRetries), retry.NewFibonacci(retryBaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.doOnce(ctx, method, path, query, body, out, resource)
		if err == nil {
			return nil
		}
		if isRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any, resource string) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode square request")
		}
		reqBody = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build square request")
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.version != "" {
		req.Header.Set("Square-Version", c.version)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(resource, 0, time.Since(start))
		c.log(ctx, "error", resource, map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("square %s request failed", resource))
	}
	defer resp.Body.Close()

	payload, readErr := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	c.metrics.ObserveRequest(resource, resp.StatusCode, time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := &StatusError{Status: resp.StatusCode, Body: string(payload)}
		c.log(ctx, "error", resource, map[string]any{
			"error":  statusErr.Error(),
			"status": resp.StatusCode,
			"body":   string(payload),
		})
		return pkgerrors.
			Wrap(pkgerrors.CodeUpstream, statusErr, fmt.Sprintf("square %s request failed", resource)).
			WithDetails(map[string]any{
				"upstream_status": resp.StatusCode,
				"upstream_body":   rawOrString(payload),
			})
	}

	if readErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, readErr, fmt.Sprintf("read square %s response", resource))
	}
	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("decode square %s response", resource))
		}
	}
	return nil
}

func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status >= http.StatusInternalServerError ||
			statusErr.Status == http.StatusTooManyRequests
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstream {
		return false
	}
	// Upstream-coded errors without a status are transport failures.
	return true
}

func (c *Client) log(ctx context.Context, phase, resource string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"resource": resource,
		"phase":    phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, fmt.Sprintf("square %s", resource), errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("square %s", phase))
	}
}

// rawOrString keeps JSON bodies structured in error details and falls back
// to the raw string for anything else.
func rawOrString(payload []byte) any {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return ""
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	return string(trimmed)
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = sandboxEnv
	}
	switch env {
	case sandboxEnv, productionEnv:
		return env, nil
	default:
		return "", errInvalidSquareEnv
	}
}
