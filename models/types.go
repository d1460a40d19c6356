package models

import "time"

// Classification labels for a total score
const (
	ClassRecommend   = "Recommend"
	ClassConditional = "Conditional"
	ClassReject      = "Reject"
)

// Record views
const (
	ViewClean   = "clean"
	ViewHistory = "history"
)

// Request types

type SubmitVoteRequest struct {
	Project  string             `json:"project"`
	Voter    string             `json:"voter"`
	Scores   map[string]float64 `json:"scores"` // criterion name -> raw score
	Feedback string             `json:"feedback,omitempty"`
}

// Response types

type SubmitVoteResponse struct {
	ReceiptID      string    `json:"receipt_id"`
	Project        string    `json:"project"`
	Voter          string    `json:"voter"`
	Total          float64   `json:"total_score"`
	Classification string    `json:"classification"`
	SubmittedAt    time.Time `json:"submitted_at"`
	Message        string    `json:"message"`
}

type RubricResponse struct {
	Scale      string           `json:"scale"`
	DefaultRaw float64          `json:"default_raw"`
	MaxRaw     float64          `json:"max_raw"`
	Step       float64          `json:"step"`
	Categories []RubricCategory `json:"categories"`
}

type RubricCategory struct {
	Name     string            `json:"name"`
	Weight   float64           `json:"weight"`
	Criteria []RubricCriterion `json:"criteria"`
}

type RubricCriterion struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type ProjectsResponse struct {
	Projects []string `json:"projects"`
}

type VotesResponse struct {
	Project string       `json:"project"`
	View    string       `json:"view"`
	Count   int          `json:"count"`
	Votes   []VoteRecord `json:"votes"`
}

type ProjectSummaryResponse struct {
	Project        string  `json:"project"`
	Summary        Summary `json:"summary"`
	VoteURL        string  `json:"vote_url"`
	QRURL          string  `json:"qr_url"`
	RefreshSeconds int     `json:"refresh_seconds"`
}

type ProjectOverview struct {
	Project    string    `json:"project"`
	VoterCount int       `json:"voter_count"`
	MeanScore  float64   `json:"mean_score"`
	LastVoteAt time.Time `json:"last_vote_at"`
	LastVote   string    `json:"last_vote"` // humanized, e.g. "3 minutes ago"
}

type OverviewResponse struct {
	Projects []ProjectOverview `json:"projects"`
}

type ClearResponse struct {
	Cleared bool   `json:"cleared"`
	Message string `json:"message"`
}

// Domain types

// VoteRecord is a single immutable submission. Scores holds weighted
// per-criterion scores (raw score normalized to [0,1], times the
// criterion weight), keyed by criterion name.
type VoteRecord struct {
	Project     string             `json:"project"`
	Voter       string             `json:"voter"`
	SubmittedAt time.Time          `json:"submitted_at"`
	Scores      map[string]float64 `json:"scores"`
	Total       float64            `json:"total_score"`
	Feedback    string             `json:"feedback,omitempty"`
}

// Summary is the aggregate of a reduced (latest-per-voter) record set.
type Summary struct {
	Count                int                   `json:"count"`
	MeanScore            float64               `json:"mean_score"`
	Classification       string                `json:"classification"`
	Color                string                `json:"color"`
	ClassificationCounts map[string]int        `json:"classification_counts"`
	Categories           []CategoryAchievement `json:"categories"`
}

// CategoryAchievement is how much of a category's maximum weight the
// averaged votes achieved, as a percentage.
type CategoryAchievement struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
	Percent  float64 `json:"percent"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
