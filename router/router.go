// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/tallyboard/cliparse"
	"github.com/danielhkuo/tallyboard/handlers"
	"github.com/danielhkuo/tallyboard/ledger"
	"github.com/danielhkuo/tallyboard/metrics"
	"github.com/danielhkuo/tallyboard/middleware"
	"github.com/danielhkuo/tallyboard/rubric"
)

func NewRouter(led *ledger.Ledger, rub *rubric.Rubric, cfg cliparse.Config, m *metrics.Metrics, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(led, rub, cfg, m)
	dashboardHandler := handlers.NewDashboardHandler(led, rub, cfg, m)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Submission flow (public)
	mux.HandleFunc("GET /rubric", middleware.WithLogging(votingHandler.GetRubric))
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.Submit))

	// Dashboard flow (operator)
	mux.HandleFunc("GET /projects", middleware.WithLogging(dashboardHandler.ListProjects))
	mux.HandleFunc("GET /projects/summary", middleware.WithLogging(dashboardHandler.Overview))
	mux.HandleFunc("GET /projects/{project}/summary", middleware.WithLogging(dashboardHandler.ProjectSummary))
	mux.HandleFunc("GET /projects/{project}/votes", middleware.WithLogging(dashboardHandler.GetVotes))
	mux.HandleFunc("GET /projects/{project}/export", middleware.WithLogging(dashboardHandler.Export))

	// Destructive operations (explicit confirmation required)
	mux.HandleFunc("DELETE /votes", middleware.WithLogging(dashboardHandler.ClearAll))
	mux.HandleFunc("DELETE /projects/{project}/votes", middleware.WithLogging(dashboardHandler.ClearProject))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tallyboard API v1"))
	})

	return mux
}
