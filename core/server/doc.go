// Package server holds the emulator HTTP server configuration and constants.
//
// While the serve command handles the server startup, this package defines the
// configuration structure and valid values for server settings, such as the
// supported storage backends.
//
// # Configuration
//
// The Config struct defines the HTTP port, the comma separated list of accepted
// API keys and the storage backend (memory, sql).
package server
