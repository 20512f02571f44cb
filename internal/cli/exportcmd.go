package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mjcarter/shortlist/internal/export"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export all records as JSON",
		Long: `Export all records, archived included, as a JSON array. Writes to
stdout when no file is given. The output re-imports losslessly.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			records := s.ctrl.Records()

			if len(args) == 0 {
				if err := export.Export(cmd.OutOrStdout(), records); err != nil {
					return WrapExitError(ExitCommandError, "export failed", err)
				}
				return nil
			}

			f, err := os.Create(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot create export file", err)
			}
			defer f.Close()
			if err := export.Export(f, records); err != nil {
				return WrapExitError(ExitCommandError, "export failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d record(s) to %s\n", len(records), args[0])
			return nil
		},
	}
	return cmd
}
