package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjcarter/shortlist/internal/model"
	"github.com/mjcarter/shortlist/internal/views"
)

// attentionItem pairs a record with the reason it needs attention.
type attentionItem struct {
	Record *model.ApplicationRecord `json:"record"`
	Reason string                   `json:"reason"`
}

// NewAttentionCommand creates the attention command.
func NewAttentionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attention",
		Short: "List applications that need a follow-up",
		Long: `List applications that need a follow-up: interviews whose date has
passed, and applications unanswered for more than 30 days.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			now := time.Now()
			items := []attentionItem{}
			for _, r := range views.Filter(s.ctrl.Records(), views.Query{}) {
				if a := views.NeedsAttention(r, now); a.Needs {
					items = append(items, attentionItem{Record: r, Reason: a.Reason})
				}
			}

			return rootOpts.formatter(cmd.OutOrStdout()).Success(items, func(w io.Writer) {
				if len(items) == 0 {
					fmt.Fprintln(w, "nothing needs attention")
					return
				}
				for _, item := range items {
					fmt.Fprintf(w, "#%-4d %-24s %-24s %s\n",
						item.Record.ID, clip(item.Record.CompanyName, 24),
						clip(item.Record.JobTitle, 24), item.Reason)
				}
			})
		},
	}
	return cmd
}
