// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers: request logging
via log/slog, JSON response/error envelopes, request-body parsing, CORS
for the dashboard front end, and client IP extraction behind proxies.
*/
package middleware
