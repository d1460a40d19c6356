// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/tallyboard/cliparse"
	"github.com/danielhkuo/tallyboard/ledger"
	"github.com/danielhkuo/tallyboard/metrics"
	"github.com/danielhkuo/tallyboard/middleware"
	"github.com/danielhkuo/tallyboard/models"
	"github.com/danielhkuo/tallyboard/rubric"
)

// qrService generates QR images for vote links. Delegated integration;
// only the URL is built here.
const qrService = "https://api.qrserver.com/v1/create-qr-code/"

type DashboardHandler struct {
	ledger  *ledger.Ledger
	rubric  *rubric.Rubric
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewDashboardHandler(led *ledger.Ledger, rub *rubric.Rubric, cfg cliparse.Config, m *metrics.Metrics) *DashboardHandler {
	return &DashboardHandler{ledger: led, rubric: rub, cfg: cfg, metrics: m}
}

// ListProjects handles GET /projects
func (h *DashboardHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.ledger.Projects()
	if err != nil {
		h.ledgerError(w, err, "list projects")
		return
	}
	if projects == nil {
		projects = []string{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProjectsResponse{Projects: projects})
}

// Overview handles GET /projects/summary
// One row per project: reduced voter count, mean score, most recent vote.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	projects, err := h.ledger.Projects()
	if err != nil {
		h.ledgerError(w, err, "overview")
		return
	}

	rows := []models.ProjectOverview{}
	for _, project := range projects {
		recs, err := h.ledger.Reduce(project)
		if err != nil {
			h.ledgerError(w, err, "overview")
			return
		}
		summary := ledger.Aggregate(recs, h.rubric)

		row := models.ProjectOverview{
			Project:    project,
			VoterCount: summary.Count,
			MeanScore:  summary.MeanScore,
		}
		if len(recs) > 0 {
			// Reduce output is ordered by timestamp ascending.
			row.LastVoteAt = recs[len(recs)-1].SubmittedAt
			row.LastVote = humanize.Time(row.LastVoteAt)
		}
		rows = append(rows, row)
	}
	h.metrics.IncDashboardReads()

	middleware.JSONResponse(w, http.StatusOK, models.OverviewResponse{Projects: rows})
}

// ProjectSummary handles GET /projects/{project}/summary
// With no votes yet this still returns 200 with a zero count: the
// dashboard shows a waiting state and keeps polling.
func (h *DashboardHandler) ProjectSummary(w http.ResponseWriter, r *http.Request) {
	project := r.PathValue("project")
	if project == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project is required")
		return
	}

	recs, err := h.ledger.Reduce(project)
	if err != nil {
		h.ledgerError(w, err, "summary")
		return
	}
	h.metrics.IncDashboardReads()

	voteURL, qrURL := shareLinks(h.cfg.BaseURL, project)

	middleware.JSONResponse(w, http.StatusOK, models.ProjectSummaryResponse{
		Project:        project,
		Summary:        ledger.Aggregate(recs, h.rubric),
		VoteURL:        voteURL,
		QRURL:          qrURL,
		RefreshSeconds: h.cfg.RefreshSeconds,
	})
}

// GetVotes handles GET /projects/{project}/votes?view=clean|history
func (h *DashboardHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	project := r.PathValue("project")
	if project == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project is required")
		return
	}

	view, recs, err := h.fetchView(r, project)
	if err != nil {
		if errors.Is(err, errBadView) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		h.ledgerError(w, err, "votes")
		return
	}
	h.metrics.IncDashboardReads()

	if recs == nil {
		recs = []models.VoteRecord{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.VotesResponse{
		Project: project,
		View:    view,
		Count:   len(recs),
		Votes:   recs,
	})
}

// Export handles GET /projects/{project}/export?view=clean|history
// The download carries a UTF-8 BOM so spreadsheet apps open it cleanly.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	project := r.PathValue("project")
	if project == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project is required")
		return
	}

	view, recs, err := h.fetchView(r, project)
	if err != nil {
		if errors.Is(err, errBadView) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		h.ledgerError(w, err, "export")
		return
	}

	data, err := ledger.EncodeCSV(recs, h.rubric.CriterionNames())
	if err != nil {
		slog.Error("failed to encode export", "error", err, "project", project)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate export")
		return
	}
	h.metrics.IncExportsGenerated()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(project, view)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

// ClearAll handles DELETE /votes?confirm=true
// Destroys the whole ledger, every project. Requires explicit
// confirmation.
func (h *DashboardHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "clearing all vote data is irreversible; pass ?confirm=true")
		return
	}

	if err := h.ledger.Clear(); err != nil {
		slog.Error("failed to clear ledger", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.Info("ledger cleared")
	middleware.JSONResponse(w, http.StatusOK, models.ClearResponse{
		Cleared: true,
		Message: "All vote data cleared",
	})
}

// ClearProject handles DELETE /projects/{project}/votes?confirm=true
func (h *DashboardHandler) ClearProject(w http.ResponseWriter, r *http.Request) {
	project := r.PathValue("project")
	if project == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project is required")
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "clearing a project's votes is irreversible; pass ?confirm=true")
		return
	}

	if err := h.ledger.ClearProject(project); err != nil {
		slog.Error("failed to clear project", "error", err, "project", project)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.Info("project cleared", "project", project)
	middleware.JSONResponse(w, http.StatusOK, models.ClearResponse{
		Cleared: true,
		Message: "Votes cleared for project " + project,
	})
}

var errBadView = errors.New("view must be 'clean' or 'history'")

func (h *DashboardHandler) fetchView(r *http.Request, project string) (string, []models.VoteRecord, error) {
	view := r.URL.Query().Get("view")
	if view == "" {
		view = models.ViewClean
	}

	switch view {
	case models.ViewClean:
		recs, err := h.ledger.Reduce(project)
		return view, recs, err
	case models.ViewHistory:
		recs, err := h.ledger.History(project)
		return view, recs, err
	default:
		return view, nil, errBadView
	}
}

// ledgerError reports a failed ledger read. A corrupt file is a real
// problem and its detail goes to the client; it is never silently
// retried away.
func (h *DashboardHandler) ledgerError(w http.ResponseWriter, err error, op string) {
	h.metrics.IncLedgerReadFailures()
	slog.Error("ledger read failed", "op", op, "error", err)

	if errors.Is(err, ledger.ErrCorrupt) {
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger read failed: "+err.Error())
}

// shareLinks builds the voting deep link for a project and the QR image
// URL pointing at it. The project rides as a percent-encoded query
// parameter.
func shareLinks(baseURL, project string) (voteURL, qrURL string) {
	voteURL = strings.TrimRight(baseURL, "/") + "/?project=" + url.QueryEscape(project)
	qrURL = qrService + "?size=150x150&data=" + url.QueryEscape(voteURL)
	return voteURL, qrURL
}

func exportFilename(project, view string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, project)
	return sanitized + "_" + view + ".csv"
}
