// Package ledger implements the append-only status history attached to
// each application record.
//
// A ledger is never reordered and never rewritten wholesale. The only
// permitted mutations are appending a new terminal entry, replacing the
// terminal entry in place (interview reschedules), and undoing the
// terminal entry. The creation entry can never be undone, so a ledger is
// never empty.
package ledger

import (
	"errors"
	"fmt"

	"github.com/mjcarter/shortlist/internal/model"
)

// ErrUndoCreationEntry is returned when an undo would leave the ledger
// empty. The creation entry is permanent.
var ErrUndoCreationEntry = errors.New("cannot undo the creation entry")

// ErrEmptyLedger is returned when an operation requires at least one entry.
var ErrEmptyLedger = errors.New("ledger has no entries")

// Ledger is an ordered, append-only sequence of history entries.
// The zero value is an empty ledger; callers seed it with New.
type Ledger struct {
	entries []model.HistoryEntry
}

// New creates a ledger seeded with the creation entry.
func New(creation model.HistoryEntry) *Ledger {
	return &Ledger{entries: []model.HistoryEntry{creation}}
}

// FromEntries wraps an existing history sequence. The slice is copied.
func FromEntries(entries []model.HistoryEntry) *Ledger {
	copied := make([]model.HistoryEntry, len(entries))
	copy(copied, entries)
	return &Ledger{entries: copied}
}

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Last returns the terminal entry, or an error for an empty ledger.
func (l *Ledger) Last() (model.HistoryEntry, error) {
	if len(l.entries) == 0 {
		return model.HistoryEntry{}, ErrEmptyLedger
	}
	return l.entries[len(l.entries)-1], nil
}

// Append adds entry after the current terminal entry. Timestamps must be
// non-decreasing: insertion order is chronological order.
func (l *Ledger) Append(entry model.HistoryEntry) error {
	if n := len(l.entries); n > 0 {
		if entry.Timestamp.Before(l.entries[n-1].Timestamp) {
			return fmt.Errorf("append %s: timestamp %s precedes terminal entry %s",
				entry.Status, entry.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
				l.entries[n-1].Timestamp.Format("2006-01-02T15:04:05Z07:00"))
		}
	}
	l.entries = append(l.entries, entry)
	return nil
}

// ReplaceLast overwrites the terminal entry in place. Used for interview
// reschedules, where the status does not change and no new entry may be
// appended (interview-round counts are derived from entry counts).
func (l *Ledger) ReplaceLast(entry model.HistoryEntry) error {
	if len(l.entries) == 0 {
		return ErrEmptyLedger
	}
	l.entries[len(l.entries)-1] = entry
	return nil
}

// UndoLast removes the terminal entry and returns the new terminal entry.
// Fails with ErrUndoCreationEntry when only the creation entry remains.
func (l *Ledger) UndoLast() (model.HistoryEntry, error) {
	if len(l.entries) == 0 {
		return model.HistoryEntry{}, ErrEmptyLedger
	}
	if len(l.entries) == 1 {
		return model.HistoryEntry{}, ErrUndoCreationEntry
	}
	l.entries = l.entries[:len(l.entries)-1]
	return l.entries[len(l.entries)-1], nil
}

// Entries returns a copy of the full sequence in insertion order.
func (l *Ledger) Entries() []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
