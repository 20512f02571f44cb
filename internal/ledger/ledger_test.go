package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/mjcarter/shortlist/internal/model"
)

func entry(s model.Status, day int) model.HistoryEntry {
	return model.HistoryEntry{Status: s, Timestamp: time.Date(2025, time.April, day, 12, 0, 0, 0, time.UTC)}
}

func TestAppendPreservesOrder(t *testing.T) {
	l := New(entry(model.StatusApplied, 1))
	if err := l.Append(entry(model.StatusNoResponse, 10)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Append(entry(model.StatusInterviewScheduled, 20)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got := l.Entries()
	want := []model.Status{model.StatusApplied, model.StatusNoResponse, model.StatusInterviewScheduled}
	if len(got) != len(want) {
		t.Fatalf("Entries() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Status != want[i] {
			t.Errorf("entry %d status = %s, want %s", i, got[i].Status, want[i])
		}
	}
}

func TestAppendRejectsTimestampRegression(t *testing.T) {
	l := New(entry(model.StatusApplied, 10))
	if err := l.Append(entry(model.StatusWithdrawn, 5)); err == nil {
		t.Fatal("Append with regressing timestamp must fail")
	}
	if l.Len() != 1 {
		t.Errorf("failed append mutated ledger: len = %d", l.Len())
	}
}

func TestAppendAllowsEqualTimestamps(t *testing.T) {
	l := New(entry(model.StatusApplied, 10))
	if err := l.Append(entry(model.StatusWithdrawn, 10)); err != nil {
		t.Fatalf("equal timestamps must be allowed: %v", err)
	}
}

func TestReplaceLast(t *testing.T) {
	l := New(entry(model.StatusApplied, 1))
	_ = l.Append(entry(model.StatusInterviewScheduled, 5))

	dt := time.Date(2025, time.April, 9, 15, 0, 0, 0, time.UTC)
	replacement := entry(model.StatusInterviewScheduled, 5)
	replacement.InterviewDateTime = &dt
	replacement.InterviewLocation = "Remote"

	if err := l.ReplaceLast(replacement); err != nil {
		t.Fatalf("ReplaceLast: %v", err)
	}
	if l.Len() != 2 {
		t.Errorf("ReplaceLast changed length: %d", l.Len())
	}
	last, err := l.Last()
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if last.InterviewLocation != "Remote" || last.InterviewDateTime == nil {
		t.Error("ReplaceLast did not take effect")
	}
}

func TestUndoLast(t *testing.T) {
	l := New(entry(model.StatusApplied, 1))
	_ = l.Append(entry(model.StatusInterviewScheduled, 5))

	current, err := l.UndoLast()
	if err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if current.Status != model.StatusApplied {
		t.Errorf("UndoLast returned %s, want Applied", current.Status)
	}
	if l.Len() != 1 {
		t.Errorf("len after undo = %d, want 1", l.Len())
	}
}

func TestUndoCreationEntryFails(t *testing.T) {
	l := New(entry(model.StatusBookmarked, 1))
	_, err := l.UndoLast()
	if !errors.Is(err, ErrUndoCreationEntry) {
		t.Fatalf("undo on single-entry ledger: got %v, want ErrUndoCreationEntry", err)
	}
	if l.Len() != 1 {
		t.Error("failed undo mutated ledger")
	}
}

func TestUndoThenReapplyRestoresShape(t *testing.T) {
	l := New(entry(model.StatusApplied, 1))
	_ = l.Append(entry(model.StatusNoResponse, 8))
	before := l.Len()
	beforeLast, _ := l.Last()

	if _, err := l.UndoLast(); err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if err := l.Append(entry(model.StatusNoResponse, 8)); err != nil {
		t.Fatalf("re-append: %v", err)
	}

	if l.Len() != before {
		t.Errorf("len after undo+reapply = %d, want %d", l.Len(), before)
	}
	last, _ := l.Last()
	if last.Status != beforeLast.Status {
		t.Errorf("status after undo+reapply = %s, want %s", last.Status, beforeLast.Status)
	}
}

func TestFromEntriesCopies(t *testing.T) {
	src := []model.HistoryEntry{entry(model.StatusApplied, 1)}
	l := FromEntries(src)
	src[0].Status = model.StatusWithdrawn
	last, _ := l.Last()
	if last.Status != model.StatusApplied {
		t.Error("FromEntries aliased the caller's slice")
	}
}
