// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the tallyboard API server.

Tallyboard is a live-polling service for weighted-rubric reviews:
reviewers score a project against a fixed rubric from their phones, and
a dashboard aggregates the results in near-real-time. Votes persist in
a single flat CSV file; the latest submission per voter wins.

# Starting the Server

The server runs with defaults out of the box:

	go run main.go

Or with flags:

	go run main.go -p 4152 -d vote_data.csv -u https://vote.example.org

# Configuration

Optional settings (flag / env):

  - PORT (-p): server port (default: 4152)
  - DATA_FILE (-d): ledger CSV path (default: vote_data.csv)
  - TALLY_RUBRIC (-r): rubric YAML file; a default rubric is compiled in
  - BASE_URL (-u): public voting-form URL used in QR links
  - REFRESH_SECONDS (-refresh): dashboard auto-refresh hint (default: 3)

A .env file in the working directory is loaded at startup.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - rubric: weighted scoring engine, scale variants, classification
  - ledger: append-only CSV vote store with latest-wins reduction
  - handlers: HTTP request handlers (voting, dashboard)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - metrics: prometheus counters
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
