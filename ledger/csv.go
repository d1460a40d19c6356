// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/danielhkuo/tallyboard/models"
)

// Fixed column names. Every other header column is a criterion.
const (
	colProject   = "Project"
	colVoter     = "Voter"
	colTimestamp = "Timestamp"
	colTotal     = "Total Score"
	colFeedback  = "Feedback"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encode renders records in the current schema:
// Project, Voter, Timestamp, <criteria...>, Total Score, Feedback.
func encode(recs []models.VoteRecord, criteria []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(criteria)+5)
	header = append(header, colProject, colVoter, colTimestamp)
	header = append(header, criteria...)
	header = append(header, colTotal, colFeedback)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to encode ledger header: %w", err)
	}

	for _, rec := range recs {
		row := make([]string, 0, len(header))
		row = append(row, rec.Project, rec.Voter, rec.SubmittedAt.Format(TimeLayout))
		for _, name := range criteria {
			row = append(row, formatScore(rec.Scores[name]))
		}
		row = append(row, formatScore(rec.Total), rec.Feedback)
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to encode ledger row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return buf.Bytes(), nil
}

// decode parses a ledger file in the current or any legacy schema.
// Legacy files lack the Project, Timestamp, or Feedback columns; those
// records get the sentinel project and the zero (minimum) timestamp so
// they still reduce and aggregate correctly.
func decode(data []byte) ([]models.VoteRecord, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(data))

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: bad header: %v", ErrCorrupt, err)
	}

	idx := map[string]int{colProject: -1, colVoter: -1, colTimestamp: -1, colTotal: -1, colFeedback: -1}
	var criteria []string
	var criteriaIdx []int
	for i, name := range header {
		if _, fixed := idx[name]; fixed {
			idx[name] = i
			continue
		}
		criteria = append(criteria, name)
		criteriaIdx = append(criteriaIdx, i)
	}
	if idx[colVoter] == -1 {
		return nil, fmt.Errorf("%w: no Voter column in header %v", ErrCorrupt, header)
	}

	var recs []models.VoteRecord
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupt, line, err)
		}

		rec, err := decodeRow(row, idx, criteria, criteriaIdx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorrupt, line, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func decodeRow(row []string, idx map[string]int, criteria []string, criteriaIdx []int) (models.VoteRecord, error) {
	rec := models.VoteRecord{
		Project: LegacyProject,
		Scores:  make(map[string]float64, len(criteria)),
	}

	if i := idx[colProject]; i >= 0 {
		rec.Project = row[i]
	}
	rec.Voter = row[idx[colVoter]]

	if i := idx[colTimestamp]; i >= 0 && row[i] != "" {
		ts, err := time.ParseInLocation(TimeLayout, row[i], time.Local)
		if err != nil {
			return rec, fmt.Errorf("bad timestamp %q: %v", row[i], err)
		}
		rec.SubmittedAt = ts
	}

	for n, name := range criteria {
		v, err := strconv.ParseFloat(row[criteriaIdx[n]], 64)
		if err != nil {
			return rec, fmt.Errorf("bad score for %q: %v", name, err)
		}
		rec.Scores[name] = v
	}

	if i := idx[colTotal]; i >= 0 {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return rec, fmt.Errorf("bad total score: %v", err)
		}
		rec.Total = v
	} else {
		for _, v := range rec.Scores {
			rec.Total += v
		}
	}

	if i := idx[colFeedback]; i >= 0 {
		rec.Feedback = row[i]
	}
	return rec, nil
}

// EncodeCSV renders records for download: the current schema prefixed
// with a UTF-8 BOM so spreadsheet apps pick up the encoding.
func EncodeCSV(recs []models.VoteRecord, criteria []string) ([]byte, error) {
	body, err := encode(recs, criteria)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, utf8BOM...), body...), nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
