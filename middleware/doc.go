// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /api/health", middleware.WithLogging(m, handler))

Logs request start and completion with a request id (taken from
X-Request-ID or generated) and records the route pattern in metrics.

# Access Gate

	middleware.RequireAuth(resolver, handler)
	middleware.RequireAuth(resolver, middleware.RequireAdmin(admins, handler))

RequireAuth answers 401 without a valid bearer token and stores the user
for UserFromContext. RequireAdmin answers 403 for users outside the
allow-list.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.WriteError(w, r, err)

WriteError maps apperr codes to status codes and hides internal detail.
*/
package middleware
