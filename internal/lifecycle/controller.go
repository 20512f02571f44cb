// Package lifecycle orchestrates every mutation of application records:
// it validates requested transitions against the status graph, appends to
// the record's history ledger, and writes through to the selected store.
//
// The controller holds an in-memory snapshot of the store. The store is
// the source of truth: every mutating operation persists before the
// snapshot advances, and Load rebuilds the snapshot entirely from the
// store. A failed write never advances the snapshot.
//
// Concurrency: the controller assumes a single logical writer. Callers
// must serialize mutating operations per record id; the controller does
// not take a per-record lock. Snapshot reads are safe at any time and
// reflect the last completed write the caller awaited.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mjcarter/shortlist/internal/graph"
	"github.com/mjcarter/shortlist/internal/ledger"
	"github.com/mjcarter/shortlist/internal/model"
	"github.com/mjcarter/shortlist/internal/store"
)

// RecordStore is the persistence surface the controller writes through.
// Satisfied by *store.Store; tests substitute doubles.
type RecordStore interface {
	GetAll(ctx context.Context) ([]*model.ApplicationRecord, error)
	Add(ctx context.Context, r *model.ApplicationRecord) error
	Update(ctx context.Context, r *model.ApplicationRecord) error
	Delete(ctx context.Context, id int64) error
}

var _ RecordStore = (*store.Store)(nil)

// Controller coordinates validation, history appends, and persistence.
type Controller struct {
	store RecordStore
	log   *slog.Logger
	now   func() time.Time

	mu     sync.Mutex
	cache  map[int64]*model.ApplicationRecord
	nextID int64
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock used to stamp history entries.
// Tests use a fixed clock for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger overrides the controller's logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// New creates a Controller over the given store handle. The handle is
// chosen once per session (live or sandbox) and never swapped.
func New(s RecordStore, opts ...Option) *Controller {
	c := &Controller{
		store: s,
		log:   slog.Default(),
		now:   time.Now,
		cache: make(map[int64]*model.ApplicationRecord),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load rebuilds the in-memory snapshot from the store. Call once after
// construction and whenever a full refresh is wanted.
func (c *Controller) Load(ctx context.Context) error {
	records, err := c.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[int64]*model.ApplicationRecord, len(records))
	c.nextID = 0
	for _, r := range records {
		c.cache[r.ID] = r
		if r.ID > c.nextID {
			c.nextID = r.ID
		}
	}
	c.log.Debug("snapshot loaded", "records", len(records))
	return nil
}

// Records returns clones of every record in the snapshot, ordered by id.
// The result is safe to hand to projections; mutating it never touches
// the snapshot.
func (c *Controller) Records() []*model.ApplicationRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*model.ApplicationRecord, 0, len(c.cache))
	for _, r := range c.cache {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a clone of one record.
func (c *Controller) Get(id int64) (*model.ApplicationRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.cache[id]
	if !ok {
		return nil, notFound(id)
	}
	return r.Clone(), nil
}

// Draft carries the caller-supplied fields for a new record.
type Draft struct {
	CompanyName       string
	JobTitle          string
	JobType           string
	JobURL            string
	JobDescription    string
	ApplicationMethod string
	Rating            int
	Location          string
	PayRange          string

	// InitialStatus must be Bookmarked or Applied.
	InitialStatus model.Status
}

// Create assigns a fresh id, seeds a single-entry history stamped now,
// persists the record, and returns a clone of the stored record.
func (c *Controller) Create(ctx context.Context, d Draft) (*model.ApplicationRecord, error) {
	if d.InitialStatus != model.StatusBookmarked && d.InitialStatus != model.StatusApplied {
		return nil, &Error{
			Code:    ErrCodeInvalidOperation,
			Message: fmt.Sprintf("initial status must be Bookmarked or Applied, got %q", d.InitialStatus),
		}
	}

	c.mu.Lock()
	id := c.nextID + 1
	c.mu.Unlock()

	r := &model.ApplicationRecord{
		ID:                id,
		CompanyName:       d.CompanyName,
		JobTitle:          d.JobTitle,
		JobType:           d.JobType,
		JobURL:            d.JobURL,
		JobDescription:    d.JobDescription,
		ApplicationMethod: d.ApplicationMethod,
		Rating:            clampRating(d.Rating),
		Location:          d.Location,
		PayRange:          d.PayRange,
		StatusHistory: ledger.New(model.HistoryEntry{
			Status:    d.InitialStatus,
			Timestamp: c.now(),
		}).Entries(),
	}

	if err := c.store.Add(ctx, r); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	c.mu.Lock()
	c.cache[r.ID] = r
	if r.ID > c.nextID {
		c.nextID = r.ID
	}
	c.mu.Unlock()

	c.log.Info("record created", "op", uuid.NewString(), "id", r.ID, "status", d.InitialStatus)
	return r.Clone(), nil
}

// TransitionResult is the outcome of RequestTransition.
//
// NeedsDetails reports phase one of the two-phase interview protocol: the
// transition is valid but requires interview details before it commits.
// No mutation has occurred; the caller resubmits with details.
type TransitionResult struct {
	Record       *model.ApplicationRecord
	NeedsDetails bool
}

// RequestTransition moves a record to newStatus.
//
// The transition must be an edge of the status graph, with one controller
// extension: InterviewScheduled re-enters itself, modelling a further
// interview round as a new history entry.
//
// Scheduling an interview without details does not mutate; it returns
// NeedsDetails=true and the caller resubmits with details (phase two).
func (c *Controller) RequestTransition(ctx context.Context, id int64, newStatus model.Status, details *model.InterviewDetails) (TransitionResult, error) {
	c.mu.Lock()
	rec, ok := c.cache[id]
	if !ok {
		c.mu.Unlock()
		return TransitionResult{}, notFound(id)
	}
	current := rec.CurrentStatus()
	updated := rec.Clone()
	c.mu.Unlock()

	reentry := current == model.StatusInterviewScheduled && newStatus == model.StatusInterviewScheduled
	if !graph.CanTransition(current, newStatus) && !reentry {
		return TransitionResult{}, &Error{
			Code:     ErrCodeInvalidTransition,
			Message:  "status not reachable from current status",
			RecordID: id,
			From:     current,
			To:       newStatus,
		}
	}

	if newStatus == model.StatusInterviewScheduled && details == nil {
		// Phase one: eligible, but the controller never defaults
		// interview fields silently.
		return TransitionResult{NeedsDetails: true}, nil
	}

	entry := model.HistoryEntry{Status: newStatus, Timestamp: c.now()}
	if newStatus == model.StatusInterviewScheduled {
		details.Apply(&entry)
	}

	led := ledger.FromEntries(updated.StatusHistory)
	if err := led.Append(entry); err != nil {
		return TransitionResult{}, &Error{
			Code:     ErrCodeInvalidOperation,
			Message:  err.Error(),
			RecordID: id,
		}
	}
	updated.StatusHistory = led.Entries()

	if newStatus == model.StatusInterviewScheduled {
		dt := details.DateTime
		updated.InterviewDateTime = &dt
		updated.InterviewLocation = details.Location
	}

	if err := c.store.Update(ctx, updated); err != nil {
		return TransitionResult{}, fmt.Errorf("persist transition: %w", err)
	}

	c.mu.Lock()
	c.cache[id] = updated
	c.mu.Unlock()

	c.log.Info("transition applied", "op", uuid.NewString(), "id", id, "from", current, "to", newStatus)
	return TransitionResult{Record: updated.Clone()}, nil
}

// EditInterviewDetails rewrites the current interview entry in place.
// Permitted only while the current status is InterviewScheduled. No entry
// is appended: rescheduling must not inflate interview-round counts.
func (c *Controller) EditInterviewDetails(ctx context.Context, id int64, details model.InterviewDetails) (*model.ApplicationRecord, error) {
	c.mu.Lock()
	rec, ok := c.cache[id]
	if !ok {
		c.mu.Unlock()
		return nil, notFound(id)
	}
	updated := rec.Clone()
	c.mu.Unlock()

	if updated.CurrentStatus() != model.StatusInterviewScheduled {
		return nil, &Error{
			Code:     ErrCodeInvalidOperation,
			Message:  fmt.Sprintf("cannot edit interview details while %s", updated.CurrentStatus()),
			RecordID: id,
		}
	}

	led := ledger.FromEntries(updated.StatusHistory)
	last, err := led.Last()
	if err != nil {
		return nil, &Error{Code: ErrCodeInvalidOperation, Message: err.Error(), RecordID: id}
	}
	details.Apply(&last)
	if err := led.ReplaceLast(last); err != nil {
		return nil, &Error{Code: ErrCodeInvalidOperation, Message: err.Error(), RecordID: id}
	}
	updated.StatusHistory = led.Entries()
	dt := details.DateTime
	updated.InterviewDateTime = &dt
	updated.InterviewLocation = details.Location

	if err := c.store.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("persist interview edit: %w", err)
	}

	c.mu.Lock()
	c.cache[id] = updated
	c.mu.Unlock()

	c.log.Info("interview rescheduled", "op", uuid.NewString(), "id", id)
	return updated.Clone(), nil
}

// Undo removes the terminal history entry. The creation entry cannot be
// undone. When the record leaves InterviewScheduled, the cached top-level
// interview fields are cleared; when it lands back on an earlier
// InterviewScheduled entry, they are restored from that entry.
func (c *Controller) Undo(ctx context.Context, id int64) (*model.ApplicationRecord, error) {
	c.mu.Lock()
	rec, ok := c.cache[id]
	if !ok {
		c.mu.Unlock()
		return nil, notFound(id)
	}
	updated := rec.Clone()
	c.mu.Unlock()

	led := ledger.FromEntries(updated.StatusHistory)
	current, err := led.UndoLast()
	if err != nil {
		return nil, &Error{Code: ErrCodeInvalidOperation, Message: err.Error(), RecordID: id}
	}
	updated.StatusHistory = led.Entries()

	if current.Status == model.StatusInterviewScheduled {
		if current.InterviewDateTime != nil {
			dt := *current.InterviewDateTime
			updated.InterviewDateTime = &dt
		} else {
			updated.InterviewDateTime = nil
		}
		updated.InterviewLocation = current.InterviewLocation
	} else {
		updated.InterviewDateTime = nil
		updated.InterviewLocation = ""
	}

	if err := c.store.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("persist undo: %w", err)
	}

	c.mu.Lock()
	c.cache[id] = updated
	c.mu.Unlock()

	c.log.Info("transition undone", "op", uuid.NewString(), "id", id, "now", current.Status)
	return updated.Clone(), nil
}

// ToggleArchive flips the archived visibility flag. History is untouched;
// the flag is orthogonal to status and fully reversible, unlike the
// terminal Archived status.
func (c *Controller) ToggleArchive(ctx context.Context, id int64) (*model.ApplicationRecord, error) {
	c.mu.Lock()
	rec, ok := c.cache[id]
	if !ok {
		c.mu.Unlock()
		return nil, notFound(id)
	}
	updated := rec.Clone()
	c.mu.Unlock()

	updated.Archived = !updated.Archived

	if err := c.store.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("persist archive toggle: %w", err)
	}

	c.mu.Lock()
	c.cache[id] = updated
	c.mu.Unlock()

	c.log.Info("archive toggled", "op", uuid.NewString(), "id", id, "archived", updated.Archived)
	return updated.Clone(), nil
}

// SetRating sets the record's rating, clamped to 0-5.
func (c *Controller) SetRating(ctx context.Context, id int64, rating int) (*model.ApplicationRecord, error) {
	c.mu.Lock()
	rec, ok := c.cache[id]
	if !ok {
		c.mu.Unlock()
		return nil, notFound(id)
	}
	updated := rec.Clone()
	c.mu.Unlock()

	updated.Rating = clampRating(rating)

	if err := c.store.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("persist rating: %w", err)
	}

	c.mu.Lock()
	c.cache[id] = updated
	c.mu.Unlock()

	return updated.Clone(), nil
}

// Delete permanently removes a record. Irreversible, distinct from
// archiving.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	_, ok := c.cache[id]
	c.mu.Unlock()
	if !ok {
		return notFound(id)
	}

	if err := c.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	c.mu.Lock()
	delete(c.cache, id)
	c.mu.Unlock()

	c.log.Info("record deleted", "op", uuid.NewString(), "id", id)
	return nil
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
