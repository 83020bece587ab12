// Package store implements the emulator of the KV Storage API.
//
// It serves the same wire protocol as the hosted service so the client, the
// CLI and the backup feature can run against a local process:
//
//   - GET /v1/namespaces : namespaces holding at least one key.
//   - GET /v1/:namespace : keys of a namespace, optionally filtered by ?prefix=.
//   - GET /v1/:namespace/:key : {"value": ...} or 404.
//   - PUT /v1/:namespace/:key : stores {"value": ...}, answers 201.
//   - DELETE /v1/:namespace/:key : removes the key, answers 204.
//
// Namespaces must match [a-z0-9-]{1,50}, keys [a-zA-Z0-9:_.-]{1,255}, and
// encoded values are limited to 400KB. Errors are returned as
// {"error": "...", "statusCode": N}.
//
// # Components
//
//   - Repository: MemoryRepository (default) or SQLRepository (GORM, MySQL/SQLite).
//   - Service: validation on top of a Repository.
//   - Handler: Fiber handlers mapping service errors to HTTP statuses.
//   - Local: the Service behind the kv.Store interface, used by in-process backups.
//   - Feature: registers the routes with the loader.
package store
