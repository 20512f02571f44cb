package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewArchiveCommand creates the archive command.
func NewArchiveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Toggle a record's archived flag",
		Long: `Toggle a record's archived flag. Archived records keep their status
and history but are hidden from default views; running archive again
unhides them. This is distinct from the terminal Archived status.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := openSession(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			record, err := s.ctrl.ToggleArchive(ctx, id)
			if err != nil {
				return domainError(err)
			}
			return rootOpts.formatter(cmd.OutOrStdout()).Success(record, func(w io.Writer) {
				state := "unarchived"
				if record.Archived {
					state = "archived"
				}
				fmt.Fprintf(w, "#%d %s - %s: %s\n", record.ID, record.CompanyName, record.JobTitle, state)
			})
		},
	}
	return cmd
}
