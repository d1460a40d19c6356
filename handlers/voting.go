// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/tallyboard/cliparse"
	"github.com/danielhkuo/tallyboard/ledger"
	"github.com/danielhkuo/tallyboard/metrics"
	"github.com/danielhkuo/tallyboard/middleware"
	"github.com/danielhkuo/tallyboard/models"
	"github.com/danielhkuo/tallyboard/rubric"
)

type VotingHandler struct {
	ledger  *ledger.Ledger
	rubric  *rubric.Rubric
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewVotingHandler(led *ledger.Ledger, rub *rubric.Rubric, cfg cliparse.Config, m *metrics.Metrics) *VotingHandler {
	return &VotingHandler{ledger: led, rubric: rub, cfg: cfg, metrics: m}
}

// GetRubric handles GET /rubric
// The voting form renders its sliders from this definition.
func (h *VotingHandler) GetRubric(w http.ResponseWriter, r *http.Request) {
	resp := models.RubricResponse{
		Scale:      string(h.rubric.Scale),
		DefaultRaw: h.rubric.Scale.DefaultRaw(),
		MaxRaw:     h.rubric.Scale.Max(),
		Step:       h.rubric.Scale.Step(),
	}
	for _, cat := range h.rubric.Categories {
		rc := models.RubricCategory{Name: cat.Name, Weight: cat.Weight()}
		for _, cr := range cat.Criteria {
			rc.Criteria = append(rc.Criteria, models.RubricCriterion{Name: cr.Name, Weight: cr.Weight})
		}
		resp.Categories = append(resp.Categories, rc)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Submit handles POST /votes
// The project may come from the body or from the ?project= query
// parameter carried by the QR deep link. It is never defaulted: a vote
// without an explicit project would risk being misfiled.
func (h *VotingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Project == "" {
		req.Project = r.URL.Query().Get("project")
	}
	if req.Project == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project is required (body field or ?project= parameter)")
		return
	}
	if req.Voter == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter name is required")
		return
	}

	// Every rubric criterion must be scored, and nothing else. The form
	// pre-fills all sliders, so a partial submission is a client bug.
	known := make(map[string]bool)
	for _, name := range h.rubric.CriterionNames() {
		known[name] = true
		if _, ok := req.Scores[name]; !ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, "missing score for criterion: "+name)
			return
		}
	}
	for name := range req.Scores {
		if !known[name] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown criterion: "+name)
			return
		}
	}

	weighted, total := h.rubric.Score(req.Scores)
	now := time.Now().Truncate(time.Second)

	rec := models.VoteRecord{
		Project:     req.Project,
		Voter:       req.Voter,
		SubmittedAt: now,
		Scores:      weighted,
		Total:       total,
		Feedback:    req.Feedback,
	}

	if err := h.ledger.Append(rec); err != nil {
		// Surface the underlying I/O error; the submitter retries manually.
		slog.Error("failed to append vote", "error", err, "project", req.Project, "voter", req.Voter)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.metrics.IncVotesSubmitted()

	classification := rubric.Classify(total)
	slog.Info("vote recorded", "project", req.Project, "voter", req.Voter, "total", total, "classification", classification)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		ReceiptID:      uuid.NewString(),
		Project:        req.Project,
		Voter:          req.Voter,
		Total:          total,
		Classification: classification,
		SubmittedAt:    now,
		Message:        "Vote recorded. You can close this page.",
	})
}
