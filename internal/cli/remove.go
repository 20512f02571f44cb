package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// RemoveOptions holds flags for the rm command.
type RemoveOptions struct {
	*RootOptions
	Yes bool
}

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RemoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Permanently delete a record",
		Long: `Permanently delete a record, history included. This cannot be
undone; use archive to hide a record instead. Requires --yes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !opts.Yes {
				return NewExitError(ExitCommandError, "deletion is permanent; pass --yes to confirm")
			}

			ctx := cmd.Context()
			s, err := openSession(ctx, opts.RootOptions)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.ctrl.Delete(ctx, id); err != nil {
				return domainError(err)
			}
			return opts.formatter(cmd.OutOrStdout()).Success(map[string]any{"deleted": id}, func(w io.Writer) {
				fmt.Fprintf(w, "#%d deleted\n", id)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm permanent deletion")
	return cmd
}
