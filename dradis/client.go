package dradis

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// acceptHeader selects version 1 of the Dradis Pro API.
const acceptHeader = "application/vnd.dradisproapi; v=1"

// defaultUserAgent identifies the library when no override is configured.
const defaultUserAgent = "godradis"

// Client is a high-level client for the Dradis Pro API.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
	userAgent  string
	insecure   bool
}

// New creates a new Client for the given Dradis instance.
// The apiToken is sent as an Authorization header on every request.
func New(baseURL, apiToken string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("dradis: baseURL is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}
	if cfg.insecure {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	userAgent := cfg.userAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:    baseURL,
		token:      apiToken,
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout sets a timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		cfg.timeout = d
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cfg *clientConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithInsecureSkipVerify disables TLS certificate verification, for
// instances running with self-signed certificates.
func WithInsecureSkipVerify() Option {
	return func(cfg *clientConfig) error {
		cfg.insecure = true
		return nil
	}
}

// doJSON executes an HTTP request and decodes the JSON response into dst.
// A projectID > 0 adds the Dradis-Project-Id header required by
// project-scoped endpoints. If the response has an error status, it
// returns an *APIError.
func (c *Client) doJSON(ctx context.Context, method, url, operation string, projectID int, body io.Reader, dst any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req, projectID)

	c.logger.InfoContext(ctx, "API request", "operation", operation, "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "API response", "operation", operation, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(operation, resp)
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

// doMultipart uploads the named files as a multipart/form-data POST, one
// files[] part per file, and decodes the JSON response into dst. The
// Content-Type is set by the multipart writer, not the JSON default.
func (c *Client) doMultipart(ctx context.Context, url, operation string, projectID int, paths []string, dst any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s: read %s: %w", operation, path, err)
		}
		part, err := writer.CreateFormFile("files[]", baseName(path))
		if err != nil {
			return fmt.Errorf("%s: build form: %w", operation, err)
		}
		if _, err := part.Write(data); err != nil {
			return fmt.Errorf("%s: build form: %w", operation, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%s: build form: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setCommonHeaders(req, projectID)

	c.logger.InfoContext(ctx, "API request", "operation", operation, "method", http.MethodPost, "url", url, "files", len(paths))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(operation, resp)
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

func (c *Client) setCommonHeaders(req *http.Request, projectID int) {
	req.Header.Set("Authorization", "Token token="+c.token)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	if projectID > 0 {
		req.Header.Set("Dradis-Project-Id", strconv.Itoa(projectID))
	}
}

func (c *Client) errorFromResponse(operation string, resp *http.Response) error {
	respBody, _ := io.ReadAll(resp.Body)
	var remote errorResponse
	if json.Unmarshal(respBody, &remote) == nil && remote.Message != "" {
		return newAPIError(operation, resp.StatusCode, remote.Message)
	}
	msg := string(respBody)
	if msg == "" {
		msg = resp.Status
	}
	return newAPIError(operation, resp.StatusCode, msg)
}

// baseName returns the final element of a slash- or backslash-separated
// path, so uploads keep their local filename.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ReadAPIToken reads the first line of a file (e.g. .dradis-api-token)
// and returns it trimmed.
func ReadAPIToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])
	return line, nil
}
