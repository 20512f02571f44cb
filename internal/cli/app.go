package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mjcarter/shortlist/internal/config"
	"github.com/mjcarter/shortlist/internal/lifecycle"
	"github.com/mjcarter/shortlist/internal/model"
	"github.com/mjcarter/shortlist/internal/store"
	"github.com/mjcarter/shortlist/internal/views"
)

// session wires a command to the selected store and a loaded controller.
type session struct {
	manager *store.Manager
	store   *store.Store
	ctrl    *lifecycle.Controller
}

// openSession opens the store selected by the global flags and loads the
// controller snapshot. Callers must Close.
func openSession(ctx context.Context, opts *RootOptions) (*session, error) {
	cfg := config.Config{DataDir: opts.DataDir}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, WrapExitError(ExitCommandError, "data directory unavailable", err)
	}

	manager := store.NewManager(opts.DataDir)
	st, err := manager.Get(opts.Mode())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}

	ctrl := lifecycle.New(st)
	if err := ctrl.Load(ctx); err != nil {
		manager.Close()
		return nil, WrapExitError(ExitCommandError, "failed to load records", err)
	}
	return &session{manager: manager, store: st, ctrl: ctrl}, nil
}

func (s *session) Close() error {
	return s.manager.Close()
}

// Mode returns the store mode selected by the global flags.
func (o *RootOptions) Mode() store.Mode {
	if o.Sandbox {
		return store.Sandbox
	}
	return store.Live
}

// formatter builds the output formatter for a command.
func (o *RootOptions) formatter(w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: w}
}

// domainError converts engine failures into exit-coded CLI errors.
// Lifecycle rejections are domain failures (exit 1); storage problems are
// command errors (exit 2).
func domainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrStorageUnavailable),
		errors.Is(err, store.ErrTransactionFailed):
		return WrapExitError(ExitCommandError, "storage failure", err)
	default:
		return WrapExitError(ExitFailure, "operation rejected", err)
	}
}

// parseID parses a record id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid record id %q", arg))
	}
	return id, nil
}

// whenLayouts are the accepted --at layouts, tried in order.
var whenLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"}

// parseWhen parses an interview date-time flag.
func parseWhen(s string) (time.Time, error) {
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewExitError(ExitCommandError,
		fmt.Sprintf("invalid date-time %q (use 2006-01-02T15:04 or RFC 3339)", s))
}

// renderRecords writes the one-line-per-record table.
func renderRecords(w io.Writer, records []*model.ApplicationRecord, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(w, "no records")
		return
	}
	for _, r := range records {
		renderLine(w, r, now)
	}
	fmt.Fprintf(w, "%d record(s)\n", len(records))
}

func renderLine(w io.Writer, r *model.ApplicationRecord, now time.Time) {
	var flags []string
	if r.Archived {
		flags = append(flags, "archived")
	}
	if a := views.NeedsAttention(r, now); a.Needs {
		flags = append(flags, "! "+a.Reason)
	}
	suffix := ""
	if len(flags) > 0 {
		suffix = "  [" + strings.Join(flags, ", ") + "]"
	}
	fmt.Fprintf(w, "#%-4d %-24s %-24s %-20s %s%s\n",
		r.ID, clip(r.CompanyName, 24), clip(r.JobTitle, 24), r.CurrentStatus(),
		r.FirstEntry().Timestamp.Format("2006-01-02"), suffix)
}

// renderRecord writes the full detail view, history included.
func renderRecord(w io.Writer, r *model.ApplicationRecord) {
	fmt.Fprintf(w, "#%d %s - %s\n", r.ID, r.CompanyName, r.JobTitle)
	fmt.Fprintf(w, "  status:  %s\n", r.CurrentStatus())
	if r.Rating > 0 {
		fmt.Fprintf(w, "  rating:  %s\n", strings.Repeat("*", r.Rating))
	}
	if r.Location != "" {
		fmt.Fprintf(w, "  location: %s\n", r.Location)
	}
	if r.InterviewDateTime != nil {
		fmt.Fprintf(w, "  interview: %s", r.InterviewDateTime.Format("2006-01-02 15:04"))
		if r.InterviewLocation != "" {
			fmt.Fprintf(w, " @ %s", r.InterviewLocation)
		}
		fmt.Fprintln(w)
	}
	if r.Archived {
		fmt.Fprintln(w, "  archived: yes")
	}
	fmt.Fprintln(w, "  history:")
	for _, e := range r.StatusHistory {
		fmt.Fprintf(w, "    %s  %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Status)
	}
}

// upcomingActive returns the non-archived records awaiting an interview,
// oldest application first.
func upcomingActive(s *session) []*model.ApplicationRecord {
	return views.UpcomingInterviews(views.Filter(s.ctrl.Records(), views.Query{}))
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
