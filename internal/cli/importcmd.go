package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mjcarter/shortlist/internal/export"
	"github.com/mjcarter/shortlist/internal/store"
)

// importSummary reports what an import did.
type importSummary struct {
	Imported int `json:"imported"`
	Invalid  int `json:"invalid"`
	Skipped  int `json:"skipped"` // ids that already exist
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import records from a JSON export",
		Long: `Import records from a JSON export. Records that fail validation
and records whose id already exists are skipped and reported; the rest
import normally.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runImport(cmd *cobra.Command, opts *RootOptions, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open import file", err)
	}
	defer f.Close()

	res, err := export.Import(f)
	if err != nil {
		return WrapExitError(ExitCommandError, "import failed", err)
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	summary := importSummary{Invalid: len(res.Dropped)}
	for _, d := range res.Dropped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipping element %d: %s\n", d.Index, d.Reason)
	}
	for _, r := range res.Records {
		err := s.store.Add(ctx, r)
		switch {
		case errors.Is(err, store.ErrDuplicateKey):
			summary.Skipped++
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping record %d: id already exists\n", r.ID)
		case err != nil:
			return WrapExitError(ExitCommandError, "import write failed", err)
		default:
			summary.Imported++
		}
	}

	return opts.formatter(cmd.OutOrStdout()).Success(summary, func(w io.Writer) {
		fmt.Fprintf(w, "imported %d record(s), %d invalid, %d duplicate(s) skipped\n",
			summary.Imported, summary.Invalid, summary.Skipped)
	})
}
