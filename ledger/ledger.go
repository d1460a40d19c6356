// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/danielhkuo/tallyboard/models"
)

var (
	// ErrCorrupt marks a ledger file that exists but cannot be parsed.
	// Unlike a missing file this is never treated as benign.
	ErrCorrupt = errors.New("ledger file is unparseable")
)

// TimeLayout is the persisted timestamp format: local time, second
// resolution.
const TimeLayout = "2006-01-02 15:04:05"

// LegacyProject is the sentinel project assigned to records from files
// written before the Project column existed.
const LegacyProject = "default"

// Transient read failures (a file mid-rename by another process) are
// retried with a short backoff before giving up.
const (
	readAttempts = 3
	readBackoff  = 50 * time.Millisecond
)

// Ledger is the append-only store of vote records, persisted as a flat
// delimited file. Records are immutable once written; a correction is a
// new record for the same (project, voter) with a later timestamp.
//
// All mutations rewrite the file to a temp sibling and rename it over
// the original, serialized by a mutex. Reads are derived: load the
// whole file, filter in memory.
type Ledger struct {
	path     string
	criteria []string // column order for writes

	mu sync.Mutex
}

// New returns a ledger backed by the file at path. criteria fixes the
// per-criterion column order used when writing; reads take their
// columns from the file header itself.
func New(path string, criteria []string) *Ledger {
	return &Ledger{path: path, criteria: criteria}
}

// Path returns the backing file location.
func (l *Ledger) Path() string {
	return l.path
}

// Append adds one record and persists the store. The file is created
// with a header row if absent; a legacy-schema file is upgraded to the
// current schema as a side effect of the rewrite.
func (l *Ledger) Append(rec models.VoteRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec.SubmittedAt = rec.SubmittedAt.Truncate(time.Second)

	recs, err := l.load()
	if err != nil {
		return err
	}
	recs = append(recs, rec)
	return l.persist(recs)
}

// History returns every record for project, newest timestamp first.
// Records sharing a timestamp keep their append order.
func (l *Ledger) History(project string) ([]models.VoteRecord, error) {
	recs, err := l.load()
	if err != nil {
		return nil, err
	}

	out := filterProject(recs, project)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

// Reduce returns the Clean view: for each voter with any record under
// project, only their most recent submission. Ties on identical
// timestamps go to the later-appended record. Output is ordered by
// winning timestamp ascending, then voter name.
func (l *Ledger) Reduce(project string) ([]models.VoteRecord, error) {
	recs, err := l.load()
	if err != nil {
		return nil, err
	}
	return reduce(filterProject(recs, project)), nil
}

// Projects returns the distinct project names in the ledger, sorted.
func (l *Ledger) Projects() ([]string, error) {
	recs, err := l.load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var projects []string
	for _, r := range recs {
		if !seen[r.Project] {
			seen[r.Project] = true
			projects = append(projects, r.Project)
		}
	}
	sort.Strings(projects)
	return projects, nil
}

// Clear destroys the backing store. Irreversible; wipes every project.
func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := os.Remove(l.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}
	return nil
}

// ClearProject rewrites the store without the given project's records.
// Other projects are untouched.
func (l *Ledger) ClearProject(project string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	recs, err := l.load()
	if err != nil {
		return err
	}

	kept := recs[:0]
	for _, r := range recs {
		if r.Project != project {
			kept = append(kept, r)
		}
	}
	return l.persist(kept)
}

// reduce applies latest-wins de-duplication to records already filtered
// to one project. Input must be in append order.
func reduce(recs []models.VoteRecord) []models.VoteRecord {
	latest := make(map[string]models.VoteRecord)
	for _, r := range recs {
		prev, ok := latest[r.Voter]
		// >= so that equal timestamps resolve to the later append
		if !ok || !r.SubmittedAt.Before(prev.SubmittedAt) {
			latest[r.Voter] = r
		}
	}

	out := make([]models.VoteRecord, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.Before(out[j].SubmittedAt)
		}
		return out[i].Voter < out[j].Voter
	})
	return out
}

func filterProject(recs []models.VoteRecord, project string) []models.VoteRecord {
	var out []models.VoteRecord
	for _, r := range recs {
		if r.Project == project {
			out = append(out, r)
		}
	}
	return out
}

// load reads the whole store. A missing file is an empty ledger, not an
// error. Transient I/O failures are retried; a parse failure is
// surfaced immediately as ErrCorrupt.
func (l *Ledger) load() ([]models.VoteRecord, error) {
	var lastErr error
	for attempt := 0; attempt < readAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(readBackoff << (attempt - 1))
		}

		data, err := os.ReadFile(l.path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			lastErr = err
			continue
		}

		recs, err := decode(data)
		if err != nil {
			return nil, err
		}
		return recs, nil
	}
	return nil, fmt.Errorf("ledger read failed after %d attempts: %w", readAttempts, lastErr)
}

// persist writes all records to a temp file in the ledger's directory
// and renames it over the backing file, so readers never observe a
// partial write.
func (l *Ledger) persist(recs []models.VoteRecord) error {
	data, err := encode(recs, l.criteria)
	if err != nil {
		return err
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".tallyboard-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger: %w", err)
	}

	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}
