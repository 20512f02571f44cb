package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjcarter/shortlist/internal/model"
	"github.com/mjcarter/shortlist/internal/views"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Search   string
	Statuses []string
	Archived bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked applications",
		Long: `List tracked applications, most recently created first. Archived
records are hidden unless --archived is given.

Example:
  shortlist list
  shortlist list --status Applied --status NoResponse
  shortlist list --search acme --archived`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "free-text search across record fields and history")
	cmd.Flags().StringArrayVar(&opts.Statuses, "status", nil, "filter by current status (repeatable)")
	cmd.Flags().BoolVar(&opts.Archived, "archived", false, "include archived records")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	statusFilters := make([]model.Status, 0, len(opts.Statuses))
	for _, s := range opts.Statuses {
		status := model.Status(s)
		if !status.Valid() {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown status %q (valid: %s)", s, statusList()))
		}
		statusFilters = append(statusFilters, status)
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	records := views.SortByFirstEntryDesc(views.Filter(s.ctrl.Records(), views.Query{
		SearchTerm:      opts.Search,
		StatusFilters:   statusFilters,
		IncludeArchived: opts.Archived,
	}))

	now := time.Now()
	return opts.formatter(cmd.OutOrStdout()).Success(records, func(w io.Writer) {
		renderRecords(w, records, now)
	})
}
