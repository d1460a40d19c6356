// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the append-only vote store.

# Backing Store

Votes persist in one flat CSV file (UTF-8, header row):

	Project, Voter, Timestamp, <criterion...>, Total Score, Feedback

Timestamps are local time at second resolution (2006-01-02 15:04:05).
Records are never updated or deleted individually; a voter correcting
their vote appends a new record with a later timestamp.

Every mutation rewrites the file to a temp sibling and renames it into
place, serialized by a mutex, so a concurrent reader never sees a torn
file. Reads load the whole file and filter in memory.

# Views

	History(project)  every record, newest first (audit/export)
	Reduce(project)   latest record per voter ("Clean" view)
	Projects()        distinct project names

Reduce breaks identical-timestamp ties by append order: the record
appended later wins.

# Aggregation

	summary := ledger.Aggregate(cleanRecords, rub)

yields voter count, mean total, classification of the mean, counts per
classification, and per-category achievement percentages.

# Legacy Files

Files written by earlier schema versions may lack the Project,
Timestamp, or Feedback columns. They still parse: such records get the
sentinel project "default" and the zero timestamp, and the file is
upgraded to the current schema on the next append.

# Failure Modes

A missing file is an empty ledger (expected before the first vote). A
file that exists but cannot be parsed is ErrCorrupt and is always
surfaced, never swallowed. Other read errors are retried briefly with
backoff before failing.
*/
package ledger
