// Package logging configures slog for the API server and the sync worker.
//
// Both processes log JSON to stdout. LOG_LEVEL=debug turns on debug output;
// any other value means info. Request handlers derive a per-request logger
// with WithRequestID so entries can be joined on the X-Request-ID header.
package logging
