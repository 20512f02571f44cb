package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewUpcomingCommand creates the upcoming command.
func NewUpcomingCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List applications with a scheduled interview",
		Long: `List applications whose current status is InterviewScheduled,
oldest application first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			records := upcomingActive(s)
			return rootOpts.formatter(cmd.OutOrStdout()).Success(records, func(w io.Writer) {
				if len(records) == 0 {
					fmt.Fprintln(w, "no interviews scheduled")
					return
				}
				for _, r := range records {
					fmt.Fprintf(w, "#%-4d %-24s %-24s", r.ID, clip(r.CompanyName, 24), clip(r.JobTitle, 24))
					if r.InterviewDateTime != nil {
						fmt.Fprintf(w, " %s", r.InterviewDateTime.Format("2006-01-02 15:04"))
					}
					if r.InterviewLocation != "" {
						fmt.Fprintf(w, " @ %s", r.InterviewLocation)
					}
					fmt.Fprintln(w)
				}
			})
		},
	}
	return cmd
}
