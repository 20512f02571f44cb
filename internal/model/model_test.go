package model

import (
	"encoding/json"
	"testing"
	"time"
)

func ts(day int) time.Time {
	return time.Date(2025, time.March, day, 9, 30, 0, 0, time.UTC)
}

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.Valid() {
			t.Errorf("declared status %q reported invalid", s)
		}
	}
	for _, s := range []Status{"", "applied", "Rejected", "OFFER"} {
		if s.Valid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}

func TestCurrentStatusIsLastEntry(t *testing.T) {
	r := &ApplicationRecord{
		ID:          1,
		CompanyName: "Acme",
		JobTitle:    "Engineer",
		StatusHistory: []HistoryEntry{
			{Status: StatusApplied, Timestamp: ts(1)},
			{Status: StatusNoResponse, Timestamp: ts(10)},
		},
	}
	if got := r.CurrentStatus(); got != StatusNoResponse {
		t.Errorf("CurrentStatus() = %q, want %q", got, StatusNoResponse)
	}
	if got := r.FirstEntry().Status; got != StatusApplied {
		t.Errorf("FirstEntry().Status = %q, want %q", got, StatusApplied)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  ApplicationRecord
		wantErr bool
	}{
		{
			name: "valid single entry",
			record: ApplicationRecord{ID: 1, CompanyName: "Acme", JobTitle: "Dev",
				StatusHistory: []HistoryEntry{{Status: StatusBookmarked, Timestamp: ts(1)}}},
		},
		{
			name:    "empty history",
			record:  ApplicationRecord{ID: 2},
			wantErr: true,
		},
		{
			name: "unknown status",
			record: ApplicationRecord{ID: 3,
				StatusHistory: []HistoryEntry{{Status: "Ghosted", Timestamp: ts(1)}}},
			wantErr: true,
		},
		{
			name: "timestamp regression",
			record: ApplicationRecord{ID: 4,
				StatusHistory: []HistoryEntry{
					{Status: StatusApplied, Timestamp: ts(5)},
					{Status: StatusNoResponse, Timestamp: ts(2)},
				}},
			wantErr: true,
		},
		{
			name: "rating out of range",
			record: ApplicationRecord{ID: 5, Rating: 9,
				StatusHistory: []HistoryEntry{{Status: StatusApplied, Timestamp: ts(1)}}},
			wantErr: true,
		},
		{
			name: "equal timestamps allowed",
			record: ApplicationRecord{ID: 6,
				StatusHistory: []HistoryEntry{
					{Status: StatusApplied, Timestamp: ts(3)},
					{Status: StatusWithdrawn, Timestamp: ts(3)},
				}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	dt := ts(12)
	r := &ApplicationRecord{
		ID: 7, CompanyName: "Acme", JobTitle: "Dev",
		InterviewDateTime: &dt,
		StatusHistory: []HistoryEntry{
			{Status: StatusApplied, Timestamp: ts(1)},
			{Status: StatusInterviewScheduled, Timestamp: ts(8), InterviewDateTime: &dt},
		},
	}
	c := r.Clone()
	c.StatusHistory[0].Status = StatusWithdrawn
	*c.InterviewDateTime = ts(20)
	*c.StatusHistory[1].InterviewDateTime = ts(20)

	if r.StatusHistory[0].Status != StatusApplied {
		t.Error("clone shares history slice with original")
	}
	if !r.InterviewDateTime.Equal(ts(12)) {
		t.Error("clone shares top-level interview pointer with original")
	}
	if !r.StatusHistory[1].InterviewDateTime.Equal(ts(12)) {
		t.Error("clone shares entry interview pointer with original")
	}
}

func TestJSONShape(t *testing.T) {
	dt := ts(15)
	r := ApplicationRecord{
		ID: 42, CompanyName: "Initech", JobTitle: "Staff Engineer",
		Rating: 4,
		StatusHistory: []HistoryEntry{
			{Status: StatusApplied, Timestamp: ts(1)},
			{Status: StatusInterviewScheduled, Timestamp: ts(10),
				InterviewDateTime: &dt, InterviewLocation: "HQ", InterviewType: InterviewOnsite},
		},
		InterviewDateTime: &dt,
		InterviewLocation: "HQ",
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal into map: %v", err)
	}
	for _, key := range []string{"id", "companyName", "jobTitle", "rating", "statusHistory", "interviewDateTime", "interviewLocation"} {
		if _, ok := m[key]; !ok {
			t.Errorf("serialized record missing key %q", key)
		}
	}
	// omitempty keeps absent optionals off the wire
	for _, key := range []string{"jobUrl", "payRange", "archived"} {
		if _, ok := m[key]; ok {
			t.Errorf("serialized record unexpectedly contains empty key %q", key)
		}
	}

	var back ApplicationRecord
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("round-trip unmarshal: %v", err)
	}
	if back.CurrentStatus() != StatusInterviewScheduled {
		t.Errorf("round-trip current status = %q", back.CurrentStatus())
	}
	if !back.StatusHistory[1].InterviewDateTime.Equal(dt) {
		t.Error("round-trip lost interview datetime")
	}
}
