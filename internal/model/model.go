// Package model defines the application-tracking data model: the closed
// status enumeration, timestamped history entries, and the persisted
// ApplicationRecord shape.
//
// The JSON tags on these types are the persistence and export contract.
// Records round-trip field-for-field through the store and through bulk
// export/import, so tag names must never change once released.
package model

import (
	"fmt"
	"time"
)

// Status is one stage of the application lifecycle.
// The set is closed; every status a record can hold is declared here.
type Status string

const (
	StatusBookmarked          Status = "Bookmarked"
	StatusApplied             Status = "Applied"
	StatusApplicationReceived Status = "ApplicationReceived"
	StatusInterviewScheduled  Status = "InterviewScheduled"
	StatusNoResponse          Status = "NoResponse"
	StatusNotAccepted         Status = "NotAccepted"
	StatusOfferReceived       Status = "OfferReceived"
	StatusOfferAccepted       Status = "OfferAccepted"
	StatusOfferDeclined       Status = "OfferDeclined"
	StatusWithdrawn           Status = "Withdrawn"
	StatusArchived            Status = "Archived"
)

// AllStatuses lists every status in display order.
// The slice must not be mutated by callers.
var AllStatuses = []Status{
	StatusBookmarked,
	StatusApplied,
	StatusApplicationReceived,
	StatusInterviewScheduled,
	StatusNoResponse,
	StatusNotAccepted,
	StatusOfferReceived,
	StatusOfferAccepted,
	StatusOfferDeclined,
	StatusWithdrawn,
	StatusArchived,
}

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusBookmarked, StatusApplied, StatusApplicationReceived,
		StatusInterviewScheduled, StatusNoResponse, StatusNotAccepted,
		StatusOfferReceived, StatusOfferAccepted, StatusOfferDeclined,
		StatusWithdrawn, StatusArchived:
		return true
	}
	return false
}

// InterviewType categorizes how an interview is conducted.
type InterviewType string

const (
	InterviewOnsite InterviewType = "Onsite"
	InterviewRemote InterviewType = "Remote"
	InterviewPhone  InterviewType = "Phone"
)

// Valid reports whether t is a known interview type. The empty string is
// valid: interview type is optional on a history entry.
func (t InterviewType) Valid() bool {
	switch t {
	case "", InterviewOnsite, InterviewRemote, InterviewPhone:
		return true
	}
	return false
}

// HistoryEntry is one timestamped status occurrence in a record's history.
// Interview fields are populated only for InterviewScheduled entries.
type HistoryEntry struct {
	Status            Status        `json:"status"`
	Timestamp         time.Time     `json:"timestamp"`
	InterviewDateTime *time.Time    `json:"interviewDateTime,omitempty"`
	InterviewLocation string        `json:"interviewLocation,omitempty"`
	InterviewType     InterviewType `json:"interviewType,omitempty"`
	InterviewLink     string        `json:"interviewLink,omitempty"`
	InterviewPhone    string        `json:"interviewPhone,omitempty"`
	Interviewers      string        `json:"interviewers,omitempty"`
}

// InterviewDetails carries the interview metadata required to schedule or
// reschedule an interview. DateTime is mandatory; the rest is optional.
type InterviewDetails struct {
	DateTime     time.Time
	Location     string
	Type         InterviewType
	Link         string
	Phone        string
	Interviewers string
}

// Apply copies the details onto an entry, leaving Status and Timestamp alone.
func (d InterviewDetails) Apply(e *HistoryEntry) {
	dt := d.DateTime
	e.InterviewDateTime = &dt
	e.InterviewLocation = d.Location
	e.InterviewType = d.Type
	e.InterviewLink = d.Link
	e.InterviewPhone = d.Phone
	e.Interviewers = d.Interviewers
}

// ApplicationRecord is one tracked job application.
//
// The current status is always the status of the last history entry.
// Archived is a reversible visibility flag, orthogonal to status; it is
// distinct from the one-way terminal Archived status.
//
// InterviewDateTime and InterviewLocation at the top level mirror the most
// recent InterviewScheduled entry for quick display; they are cleared when
// an undo moves the record off InterviewScheduled.
type ApplicationRecord struct {
	ID                int64          `json:"id"`
	CompanyName       string         `json:"companyName"`
	JobTitle          string         `json:"jobTitle"`
	JobType           string         `json:"jobType,omitempty"`
	JobURL            string         `json:"jobUrl,omitempty"`
	JobDescription    string         `json:"jobDescription,omitempty"`
	ApplicationMethod string         `json:"applicationMethod,omitempty"`
	Rating            int            `json:"rating"`
	Location          string         `json:"location,omitempty"`
	PayRange          string         `json:"payRange,omitempty"`
	StatusHistory     []HistoryEntry `json:"statusHistory"`
	InterviewDateTime *time.Time     `json:"interviewDateTime,omitempty"`
	InterviewLocation string         `json:"interviewLocation,omitempty"`
	Archived          bool           `json:"archived,omitempty"`
}

// CurrentEntry returns the last history entry, or nil for an (invalid)
// record with empty history.
func (r *ApplicationRecord) CurrentEntry() *HistoryEntry {
	if len(r.StatusHistory) == 0 {
		return nil
	}
	return &r.StatusHistory[len(r.StatusHistory)-1]
}

// CurrentStatus returns the status of the last history entry.
// Returns the empty Status for a record with empty history.
func (r *ApplicationRecord) CurrentStatus() Status {
	e := r.CurrentEntry()
	if e == nil {
		return ""
	}
	return e.Status
}

// FirstEntry returns the creation entry, or nil for empty history.
func (r *ApplicationRecord) FirstEntry() *HistoryEntry {
	if len(r.StatusHistory) == 0 {
		return nil
	}
	return &r.StatusHistory[0]
}

// Clone returns a deep copy. Projections and callers receive clones so the
// controller's cached records are never aliased.
func (r *ApplicationRecord) Clone() *ApplicationRecord {
	c := *r
	c.StatusHistory = make([]HistoryEntry, len(r.StatusHistory))
	copy(c.StatusHistory, r.StatusHistory)
	if r.InterviewDateTime != nil {
		dt := *r.InterviewDateTime
		c.InterviewDateTime = &dt
	}
	for i := range c.StatusHistory {
		if src := r.StatusHistory[i].InterviewDateTime; src != nil {
			dt := *src
			c.StatusHistory[i].InterviewDateTime = &dt
		}
	}
	return &c
}

// Validate checks the record invariants: non-empty history, every status a
// member of the closed set, and non-decreasing history timestamps.
func (r *ApplicationRecord) Validate() error {
	if len(r.StatusHistory) == 0 {
		return fmt.Errorf("record %d: statusHistory must not be empty", r.ID)
	}
	var prev time.Time
	for i, e := range r.StatusHistory {
		if !e.Status.Valid() {
			return fmt.Errorf("record %d: unknown status %q at history index %d", r.ID, e.Status, i)
		}
		if e.Timestamp.IsZero() {
			return fmt.Errorf("record %d: zero timestamp at history index %d", r.ID, i)
		}
		if i > 0 && e.Timestamp.Before(prev) {
			return fmt.Errorf("record %d: history timestamp regresses at index %d", r.ID, i)
		}
		prev = e.Timestamp
		if !e.InterviewType.Valid() {
			return fmt.Errorf("record %d: unknown interview type %q at history index %d", r.ID, e.InterviewType, i)
		}
	}
	if r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("record %d: rating %d outside 0-5", r.ID, r.Rating)
	}
	return nil
}
