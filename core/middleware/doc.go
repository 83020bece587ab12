// Package middleware contains HTTP middleware for the emulator's Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - Auth: validates the "Authorization: Bearer <key>" header against the configured API keys.
//   - RayID: assigns every request an ID (reusing the client's X-Request-Id when present),
//     injecting it into the context and response headers for tracing.
//
// These middleware components are registered globally or per-route group in the
// serve command.
package middleware
