package kv

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-Id"

// Client talks to the KV Storage REST API. It holds no mutable state and is
// safe for concurrent use.
type Client struct {
	apiKey    string
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *zap.Logger
}

// Ensure Client always satisfies the Store interface at compile time.
var _ Store = (*Client)(nil)

// New creates a client for the production endpoint with default settings.
func New(apiKey string) *Client {
	c, _ := NewClient(Config{APIKey: apiKey})
	return c
}

// NewClient creates a client from cfg. It performs no network activity.
func NewClient(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q must be an absolute http(s) URL", ErrInvalidConfig, base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.TimeoutSeconds
		if timeout <= 0 {
			timeout = 30
		}
		httpClient = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(base, "/"),
		userAgent: userAgent,
		http:      httpClient,
		logger:    logger,
	}, nil
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

// Get retrieves the value stored under key in namespace.
func (c *Client) Get(ctx context.Context, namespace, key string) (*GetResult, error) {
	path, err := keyPath(namespace, key)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	fields, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	value, ok := fields["value"]
	if !ok {
		return nil, fmt.Errorf("%w: response has no \"value\" field", ErrDeserialization)
	}

	return &GetResult{Value: value}, nil
}

// Put stores value under key in namespace. Value must be encodable with
// encoding/json; a json.RawMessage is sent as is. The success body is not
// validated: PutResult.Message is empty unless the server sent a string message.
func (c *Client) Put(ctx context.Context, namespace, key string, value any) (*PutResult, error) {
	path, err := keyPath(namespace, key)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(struct {
		Value any `json:"value"`
	}{Value: value})
	if err != nil {
		return nil, errors.Join(ErrSerialization, err)
	}

	body, err := c.do(ctx, http.MethodPut, path, nil, payload)
	if err != nil {
		return nil, err
	}

	return &PutResult{Message: putMessage(body)}, nil
}

// putMessage extracts the confirmation message from a Put response. The value
// is already stored once a 2xx arrives, so any other body shape yields "".
func putMessage(body []byte) string {
	var doc struct {
		Message json.RawMessage `json:"message"`
	}
	if json.Unmarshal(body, &doc) != nil {
		return ""
	}

	var message string
	if json.Unmarshal(doc.Message, &message) != nil {
		return ""
	}
	return message
}

// Delete removes key from namespace.
func (c *Client) Delete(ctx context.Context, namespace, key string) error {
	path, err := keyPath(namespace, key)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// List returns the keys of namespace. The prefix query parameter is only sent
// when prefix is not empty.
func (c *Client) List(ctx context.Context, namespace, prefix string) (*ListResult, error) {
	if err := validateSegment("namespace", namespace); err != nil {
		return nil, err
	}

	var query url.Values
	if prefix != "" {
		query = url.Values{"prefix": []string{prefix}}
	}

	body, err := c.do(ctx, http.MethodGet, "/v1/"+url.PathEscape(namespace), query, nil)
	if err != nil {
		return nil, err
	}

	fields, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	raw, ok := fields["keys"]
	if !ok || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: response has no \"keys\" array", ErrDeserialization)
	}

	var entries []KeyEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Join(ErrDeserialization, err)
	}

	result := &ListResult{
		Keys:    make([]string, 0, len(entries)),
		Entries: entries,
	}
	for _, e := range entries {
		result.Keys = append(result.Keys, e.Key)
	}

	return result, nil
}

// ListNamespaces returns the namespaces visible to the API key.
func (c *Client) ListNamespaces(ctx context.Context) ([]NamespaceInfo, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/namespaces", nil, nil)
	if err != nil {
		return nil, err
	}

	fields, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	raw, ok := fields["namespaces"]
	if !ok || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: response has no \"namespaces\" array", ErrDeserialization)
	}

	var namespaces []NamespaceInfo
	if err := json.Unmarshal(raw, &namespaces); err != nil {
		return nil, errors.Join(ErrDeserialization, err)
	}

	return namespaces, nil
}

// do performs one round trip and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("kv request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrTransport, fmt.Errorf("failed to read response body: %w", err))
	}

	c.logger.Debug("kv request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp.StatusCode, body)
	}

	return body, nil
}

// decodeObject decodes a JSON object body into its top-level fields.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errors.Join(ErrDeserialization, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: response body is not a JSON object", ErrDeserialization)
	}
	return fields, nil
}

func keyPath(namespace, key string) (string, error) {
	if err := validateSegment("namespace", namespace); err != nil {
		return "", err
	}
	if err := validateSegment("key", key); err != nil {
		return "", err
	}
	return "/v1/" + url.PathEscape(namespace) + "/" + url.PathEscape(key), nil
}

// validateSegment rejects values that would change the shape of the request path.
func validateSegment(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, name)
	}
	if strings.Contains(value, "/") {
		return fmt.Errorf("%w: %s %q must not contain '/'", ErrValidation, name, value)
	}
	if value == "." || value == ".." {
		return fmt.Errorf("%w: %s must not be a dot segment", ErrValidation, name)
	}
	return nil
}
