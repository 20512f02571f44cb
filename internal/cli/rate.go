package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

// NewRateCommand creates the rate command.
func NewRateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rate <id> <rating>",
		Short:         "Set a record's interest rating (0-5)",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid rating %q", args[1]))
			}

			ctx := cmd.Context()
			s, err := openSession(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			record, err := s.ctrl.SetRating(ctx, id, rating)
			if err != nil {
				return domainError(err)
			}
			return rootOpts.formatter(cmd.OutOrStdout()).Success(record, func(w io.Writer) {
				fmt.Fprintf(w, "#%d rating set to %d\n", record.ID, record.Rating)
			})
		},
	}
	return cmd
}
