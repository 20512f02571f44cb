package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjcarter/shortlist/internal/model"
)

func day(d int) time.Time {
	return time.Date(2025, time.May, d, 10, 0, 0, 0, time.UTC)
}

func record(id int64, company string, created time.Time, statuses ...model.Status) *model.ApplicationRecord {
	r := &model.ApplicationRecord{ID: id, CompanyName: company, JobTitle: "Engineer"}
	ts := created
	for _, s := range statuses {
		r.StatusHistory = append(r.StatusHistory, model.HistoryEntry{Status: s, Timestamp: ts})
		ts = ts.Add(24 * time.Hour)
	}
	return r
}

func TestFilter_DefaultsReturnActiveRecords(t *testing.T) {
	archived := record(2, "Initech", day(2), model.StatusApplied)
	archived.Archived = true
	records := []*model.ApplicationRecord{
		record(1, "Acme", day(1), model.StatusApplied),
		archived,
		record(3, "Globex", day(3), model.StatusBookmarked),
	}

	got := Filter(records, Query{})
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	got = Filter(records, Query{IncludeArchived: true})
	assert.Len(t, got, 3, "archive toggle is the only active criterion")
}

func TestFilter_StatusMatchesCurrentOnly(t *testing.T) {
	records := []*model.ApplicationRecord{
		// History contains Applied, but current status is NoResponse.
		record(1, "Acme", day(1), model.StatusApplied, model.StatusNoResponse),
		record(2, "Globex", day(2), model.StatusApplied),
	}

	got := Filter(records, Query{StatusFilters: []model.Status{model.StatusApplied}})
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilter_SearchTerm(t *testing.T) {
	dt := day(20)
	interview := record(1, "Acme", day(1), model.StatusApplied, model.StatusInterviewScheduled)
	interview.StatusHistory[1].InterviewDateTime = &dt
	interview.StatusHistory[1].InterviewLocation = "Lisbon HQ"
	plain := record(2, "Globex Industries", day(2), model.StatusApplied)
	plain.Rating = 4
	records := []*model.ApplicationRecord{interview, plain}

	tests := []struct {
		name   string
		term   string
		wantID int64
	}{
		{"company, case-insensitive", "gLoBeX", 2},
		{"historical status value", "interviewscheduled", 1},
		{"interview location", "lisbon", 1},
		{"rating as text", "4", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, Query{SearchTerm: tt.term})
			require.Len(t, got, 1, "term %q", tt.term)
			assert.Equal(t, tt.wantID, got[0].ID)
		})
	}

	assert.Len(t, Filter(records, Query{SearchTerm: "zzz"}), 0)
	assert.Len(t, Filter(records, Query{SearchTerm: ""}), 2)
}

func TestSortByFirstEntryDesc(t *testing.T) {
	records := []*model.ApplicationRecord{
		record(1, "Oldest", day(1), model.StatusApplied, model.StatusNoResponse),
		record(2, "Newest", day(9), model.StatusApplied),
		record(3, "Middle", day(5), model.StatusApplied),
	}

	got := SortByFirstEntryDesc(records)
	require.Len(t, got, 3)
	assert.Equal(t, "Newest", got[0].CompanyName)
	assert.Equal(t, "Middle", got[1].CompanyName)
	assert.Equal(t, "Oldest", got[2].CompanyName)

	// Later history entries must not affect the creation-entry ordering.
	assert.Equal(t, int64(1), got[2].ID)

	// Input untouched.
	assert.Equal(t, int64(1), records[0].ID)
}

func TestUpcomingInterviews_OrderedByApplicationAge(t *testing.T) {
	early := record(1, "Early", day(1), model.StatusApplied, model.StatusInterviewScheduled)
	late := record(2, "Late", day(8), model.StatusApplied, model.StatusInterviewScheduled)
	// Interview date inverted relative to application age: ordering must
	// still follow the creation entry.
	lateDT, earlyDT := day(10), day(25)
	early.StatusHistory[1].InterviewDateTime = &earlyDT
	late.StatusHistory[1].InterviewDateTime = &lateDT
	done := record(3, "Done", day(3), model.StatusApplied, model.StatusInterviewScheduled, model.StatusOfferReceived)

	got := UpcomingInterviews([]*model.ApplicationRecord{late, done, early})
	require.Len(t, got, 2)
	assert.Equal(t, "Early", got[0].CompanyName)
	assert.Equal(t, "Late", got[1].CompanyName)
}

func TestNeedsAttention_StaleApplication(t *testing.T) {
	applied := record(1, "Acme", day(1), model.StatusApplied)

	at29 := day(1).Add(29 * 24 * time.Hour)
	assert.Equal(t, Attention{}, NeedsAttention(applied, at29))

	at31 := day(1).Add(31 * 24 * time.Hour)
	assert.Equal(t, Attention{Needs: true, Reason: ReasonNoResponse}, NeedsAttention(applied, at31))

	received := record(2, "Globex", day(1), model.StatusApplicationReceived)
	assert.Equal(t, Attention{Needs: true, Reason: ReasonNoResponse}, NeedsAttention(received, at31))
}

func TestNeedsAttention_CompletedInterview(t *testing.T) {
	r := record(1, "Acme", day(1), model.StatusApplied, model.StatusInterviewScheduled)
	dt := day(10)
	r.StatusHistory[1].InterviewDateTime = &dt

	assert.Equal(t, Attention{}, NeedsAttention(r, day(9)))
	assert.Equal(t,
		Attention{Needs: true, Reason: ReasonInterviewCompleted},
		NeedsAttention(r, day(11)))
}

func TestNeedsAttention_OtherStatusesQuiet(t *testing.T) {
	now := day(1).Add(90 * 24 * time.Hour)
	for _, s := range []model.Status{
		model.StatusBookmarked, model.StatusNoResponse, model.StatusNotAccepted,
		model.StatusOfferReceived, model.StatusOfferAccepted, model.StatusArchived,
	} {
		r := record(1, "Acme", day(1), s)
		assert.Equal(t, Attention{}, NeedsAttention(r, now), "status %s", s)
	}
}
