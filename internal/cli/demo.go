package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjcarter/shortlist/internal/seed"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	Count int
	Seed  int64
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Reseed the sandbox store with demo data",
		Long: `Wipe the sandbox store and fill it with synthesized demo records.
Only works with --sandbox; the live store is never touched.

Example:
  shortlist --sandbox demo
  shortlist --sandbox demo --count 40`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Count, "count", 20, "number of demo records")
	cmd.Flags().Int64Var(&opts.Seed, "seed", seed.DefaultSeed, "random seed for reproducible data")

	return cmd
}

func runDemo(cmd *cobra.Command, opts *DemoOptions) error {
	if !opts.Sandbox {
		return NewExitError(ExitCommandError, "demo reseeds the sandbox; re-run with --sandbox")
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	records := seed.Generate(opts.Count, opts.Seed, time.Now())
	if err := seed.Reseed(ctx, s.store, records); err != nil {
		return domainError(err)
	}

	return opts.formatter(cmd.OutOrStdout()).Success(map[string]any{"seeded": len(records)}, func(w io.Writer) {
		fmt.Fprintf(w, "sandbox reseeded with %d record(s)\n", len(records))
	})
}
