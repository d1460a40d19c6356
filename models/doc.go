// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitVoteRequest: project, voter, raw scores per criterion, feedback

# Response Types

Types for JSON responses:

  - SubmitVoteResponse: receipt_id, total_score, classification
  - RubricResponse: scale, default raw value, categories and weights
  - ProjectSummaryResponse: aggregate summary plus vote/QR links
  - VotesResponse: clean or history records for a project
  - ProjectsResponse, OverviewResponse: project listing and cross-project table
  - ClearResponse: acknowledgment of a destructive clear
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - VoteRecord: one immutable submission (weighted scores and total)
  - Summary: aggregate over a reduced record set
  - CategoryAchievement: per-category achievement percentage

# Constants

Classification labels:

	ClassRecommend   = "Recommend"
	ClassConditional = "Conditional"
	ClassReject      = "Reject"

Record views:

	ViewClean   = "clean"
	ViewHistory = "history"
*/
package models
