// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Chillville Awards API.

	handler, err := router.NewRouter(db, cfg, metrics.New())

# Endpoints

Public:

	GET /api/health
	GET /api/auth/me
	GET /api/auth/discord/url
	GET /api/categories
	GET /api/categories/{id}
	GET /api/votes/stats/{categoryId}

Authenticated:

	GET  /api/votes/my-votes
	POST /api/votes/submit

Admin:

	POST   /api/categories
	PUT    /api/categories/{id}
	DELETE /api/categories/{id}
	POST   /api/categories/{categoryId}/nominees
	PUT    /api/categories/{categoryId}/nominees/{nomineeId}
	DELETE /api/categories/{categoryId}/nominees/{nomineeId}
	GET    /api/votes/stats

Metrics:

	GET /metrics
*/
package router
