package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mjcarter/shortlist/internal/model"
)

// InterviewOptions holds flags for the interview command.
type InterviewOptions struct {
	*RootOptions
	At           string
	Location     string
	Type         string
	Link         string
	Phone        string
	Interviewers string
}

// NewInterviewCommand creates the interview command.
func NewInterviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InterviewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "interview <id>",
		Short: "Reschedule or correct the current interview",
		Long: `Reschedule or correct the current interview in place. The record
must currently be InterviewScheduled. Unlike "move <id>
InterviewScheduled", no new interview round is recorded.

Example:
  shortlist interview 3 --at 2025-09-15T10:00 --location "Video call" --link https://meet.example/xyz`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterview(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "interview date-time (required)")
	cmd.Flags().StringVar(&opts.Location, "location", "", "interview location")
	cmd.Flags().StringVar(&opts.Type, "type", "", "interview type (Onsite|Remote|Phone)")
	cmd.Flags().StringVar(&opts.Link, "link", "", "interview call link")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "interview phone number")
	cmd.Flags().StringVar(&opts.Interviewers, "interviewers", "", "interviewer names")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func runInterview(cmd *cobra.Command, opts *InterviewOptions, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	at, err := parseWhen(opts.At)
	if err != nil {
		return err
	}
	t := model.InterviewType(opts.Type)
	if !t.Valid() {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown interview type %q", opts.Type))
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	record, err := s.ctrl.EditInterviewDetails(ctx, id, model.InterviewDetails{
		DateTime:     at,
		Location:     opts.Location,
		Type:         t,
		Link:         opts.Link,
		Phone:        opts.Phone,
		Interviewers: opts.Interviewers,
	})
	if err != nil {
		return domainError(err)
	}

	return opts.formatter(cmd.OutOrStdout()).Success(record, func(w io.Writer) {
		renderRecord(w, record)
	})
}
