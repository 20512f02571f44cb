package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewUndoCommand creates the undo command.
func NewUndoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Undo the most recent status change",
		Long: `Undo the most recent status change, restoring the previous status.
The original entry a record was created with cannot be undone.`,
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

			record, err := s.ctrl.Undo(ctx, id)
			if err != nil {
				return domainError(err)
			}
			return rootOpts.formatter(cmd.OutOrStdout()).Success(record, func(w io.Writer) {
				renderRecord(w, record)
			})
		},
	}
	return cmd
}
