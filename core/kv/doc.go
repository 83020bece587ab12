// Package kv is the Go client for the KV Storage REST API.
//
// A Client maps four logical operations onto single HTTP round trips against
// a namespaced resource path, authenticating every request with a static
// bearer token:
//
//   - Get: GET /v1/{namespace}/{key}, returns {"value": ...}
//   - Put: PUT /v1/{namespace}/{key} with {"value": ...}
//   - Delete: DELETE /v1/{namespace}/{key}
//   - List: GET /v1/{namespace}[?prefix=...], returns {"keys": [...]}
//
// The client keeps no state beyond its configuration. It does not cache,
// retry or batch requests; every failure is returned to the caller exactly once.
//
// # Errors
//
// Failures are classified with sentinel errors usable with errors.Is:
//
//   - ErrValidation: empty or '/'-containing namespace or key, rejected before any request.
//   - ErrSerialization: the value passed to Put cannot be JSON encoded, no request is sent.
//   - ErrTransport: no HTTP response was received (DNS, connection, timeout, cancellation).
//   - ErrHTTP: any non-2xx response. The concrete *HTTPError carries the status and body.
//   - ErrDeserialization: a 2xx body is not JSON or lacks the expected field.
//
// # Usage
//
//	client, err := kv.NewClient(kv.Config{APIKey: os.Getenv("KV_API_KEY")})
//	if err != nil {
//	    return err
//	}
//	if _, err := client.Put(ctx, "app", "user:1", map[string]any{"name": "Ada"}); err != nil {
//	    return err
//	}
//	res, err := client.Get(ctx, "app", "user:1")
//	if kv.IsNotFound(err) {
//	    // key is absent
//	}
package kv
