// Package views derives filtered, sorted and flagged views from a record
// snapshot. Every function is pure: records pass through untouched, time
// is an explicit argument, and nothing here talks to storage.
package views

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/mjcarter/shortlist/internal/model"
)

// staleAfter is how long an application may sit in Applied or
// ApplicationReceived before it is flagged as unanswered.
const staleAfter = 30 * 24 * time.Hour

// Query selects records for Filter.
type Query struct {
	// SearchTerm matches case-insensitively against the record's text
	// fields, its full status history, its interview fields and its
	// rating. Empty matches everything.
	SearchTerm string

	// StatusFilters matches against the current status only.
	// Empty means no status filtering.
	StatusFilters []model.Status

	// IncludeArchived includes records whose archived flag is set.
	// Archived records are excluded from default views regardless of
	// their status.
	IncludeArchived bool
}

var fold = cases.Fold()

// Filter returns the records matching q, preserving input order.
func Filter(records []*model.ApplicationRecord, q Query) []*model.ApplicationRecord {
	term := fold.String(strings.TrimSpace(q.SearchTerm))

	out := []*model.ApplicationRecord{}
	for _, r := range records {
		if r.Archived && !q.IncludeArchived {
			continue
		}
		if len(q.StatusFilters) > 0 && !statusIn(r.CurrentStatus(), q.StatusFilters) {
			continue
		}
		if term != "" && !strings.Contains(searchText(r), term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// searchText concatenates every searchable field of a record, case-folded.
func searchText(r *model.ApplicationRecord) string {
	var b strings.Builder
	b.WriteString(r.CompanyName)
	b.WriteByte(' ')
	b.WriteString(r.JobTitle)
	b.WriteByte(' ')
	b.WriteString(r.JobDescription)
	b.WriteByte(' ')
	b.WriteString(r.ApplicationMethod)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(r.Rating))
	for _, e := range r.StatusHistory {
		b.WriteByte(' ')
		b.WriteString(string(e.Status))
		if e.InterviewDateTime != nil {
			b.WriteByte(' ')
			b.WriteString(e.InterviewDateTime.Format(time.RFC3339))
		}
		if e.InterviewLocation != "" {
			b.WriteByte(' ')
			b.WriteString(e.InterviewLocation)
		}
	}
	if r.InterviewDateTime != nil {
		b.WriteByte(' ')
		b.WriteString(r.InterviewDateTime.Format(time.RFC3339))
	}
	if r.InterviewLocation != "" {
		b.WriteByte(' ')
		b.WriteString(r.InterviewLocation)
	}
	return fold.String(b.String())
}

func statusIn(s model.Status, set []model.Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

// SortByFirstEntryDesc returns the records ordered by creation-entry
// timestamp, most recently created first. Used for the main list and
// export. The input slice is not modified.
func SortByFirstEntryDesc(records []*model.ApplicationRecord) []*model.ApplicationRecord {
	out := make([]*model.ApplicationRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return firstTimestamp(out[i]).After(firstTimestamp(out[j]))
	})
	return out
}

// UpcomingInterviews returns the records whose current status is
// InterviewScheduled, ordered by creation-entry timestamp ascending.
// Ordering follows application age, not the interview date itself.
func UpcomingInterviews(records []*model.ApplicationRecord) []*model.ApplicationRecord {
	out := []*model.ApplicationRecord{}
	for _, r := range records {
		if r.CurrentStatus() == model.StatusInterviewScheduled {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return firstTimestamp(out[i]).Before(firstTimestamp(out[j]))
	})
	return out
}

func firstTimestamp(r *model.ApplicationRecord) time.Time {
	if e := r.FirstEntry(); e != nil {
		return e.Timestamp
	}
	return time.Time{}
}

// Attention is the result of NeedsAttention.
type Attention struct {
	Needs  bool
	Reason string
}

// Attention reasons.
const (
	ReasonInterviewCompleted = "interview completed"
	ReasonNoResponse         = "no response"
)

// NeedsAttention flags records the user should act on:
//   - an InterviewScheduled record whose interview time has passed
//   - an Applied or ApplicationReceived record unanswered for more than
//     30 days
//
// now is the caller's wall clock at evaluation time, never cached.
func NeedsAttention(r *model.ApplicationRecord, now time.Time) Attention {
	current := r.CurrentEntry()
	if current == nil {
		return Attention{}
	}

	switch current.Status {
	case model.StatusInterviewScheduled:
		dt := current.InterviewDateTime
		if dt == nil {
			dt = r.InterviewDateTime
		}
		if dt != nil && dt.Before(now) {
			return Attention{Needs: true, Reason: ReasonInterviewCompleted}
		}
	case model.StatusApplied, model.StatusApplicationReceived:
		if now.Sub(current.Timestamp) > staleAfter {
			return Attention{Needs: true, Reason: ReasonNoResponse}
		}
	}
	return Attention{}
}
