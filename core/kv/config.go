package kv

import (
	"net/http"

	"go.uber.org/zap"
)

// DefaultBaseURL is the production endpoint of the KV Storage API.
const DefaultBaseURL = "https://api.kv.vberkoz.com"

// DefaultUserAgent identifies this client to the server.
const DefaultUserAgent = "kv-storage-go/1.0"

// Config holds configuration for the KV Storage client.
type Config struct {
	// APIKey is the bearer token sent with every request.
	APIKey string `mapstructure:"api_key" default:""`
	// BaseURL is the root URL of the API, without the /v1 suffix.
	BaseURL string `mapstructure:"base_url" default:"https://api.kv.vberkoz.com"`
	// TimeoutSeconds bounds a single request including reading the response body.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent overrides the User-Agent header.
	UserAgent string `mapstructure:"user_agent" default:"kv-storage-go/1.0"`

	// HTTPClient replaces the default transport. TimeoutSeconds is ignored when set.
	HTTPClient *http.Client `mapstructure:"-"`
	// Logger receives one debug entry per request. Defaults to a no-op logger.
	Logger *zap.Logger `mapstructure:"-"`
}
