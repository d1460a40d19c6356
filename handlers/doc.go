// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the tallyboard API.

# Handler Types

Each handler is a struct with ledger, rubric, config, and metrics
dependencies, created via constructors:

	votingHandler := handlers.NewVotingHandler(led, rub, cfg, m)

  - VotingHandler: rubric definition and vote submission
  - DashboardHandler: summaries, record views, exports, destructive clears

# Submission Flow

The voting form fetches the rubric, collects raw scores, and submits:

	GET  /rubric → rubric definition (scale, categories, weights)
	POST /votes  → Submit (project via body or ?project= deep link)

Submit validates the project and voter names and that exactly the
rubric's criteria are scored, computes the weighted total, appends one
immutable record, and returns a receipt. A voter re-submitting simply
appends again; the dashboard's Clean view keeps their latest record.

# Dashboard Flow

	GET /projects                        → project switcher contents
	GET /projects/summary                → cross-project overview table
	GET /projects/{project}/summary      → aggregate stats + QR vote link
	GET /projects/{project}/votes        → records (?view=clean|history)
	GET /projects/{project}/export       → CSV download (UTF-8 with BOM)

Each request reads the whole ledger and derives its view; auto-refresh
is the client's polling loop, hinted by refresh_seconds in the summary.

# Destructive Operations

	DELETE /votes?confirm=true                     → wipe everything
	DELETE /projects/{project}/votes?confirm=true  → wipe one project

Both refuse to run without confirm=true.
*/
package handlers
