// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

Routes use Go 1.22+ method and pattern matching on the standard mux.
Every domain route is wrapped in request logging; /metrics serves the
prometheus registry passed in from main.

	mux := router.NewRouter(led, rub, cfg, m, reg)

The literal /projects/summary route takes precedence over the
/projects/{project}/... wildcards, so "summary" is not a usable project
name in URLs — an accepted quirk of the path layout.
*/
package router
