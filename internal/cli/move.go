package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mjcarter/shortlist/internal/graph"
	"github.com/mjcarter/shortlist/internal/lifecycle"
	"github.com/mjcarter/shortlist/internal/model"
)

// MoveOptions holds flags for the move command.
type MoveOptions struct {
	*RootOptions
	At           string
	Location     string
	Type         string
	Link         string
	Phone        string
	Interviewers string
}

// NewMoveCommand creates the move command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move an application to a new status",
		Long: `Move an application to a new status. The move must follow the
status graph; moving to InterviewScheduled requires interview details
(--at at minimum). Moving an interviewed application to
InterviewScheduled again records a further interview round.

Example:
  shortlist move 3 NoResponse
  shortlist move 3 InterviewScheduled --at 2025-09-12T14:00 --location "HQ, 4th floor"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "interview date-time (required for InterviewScheduled)")
	cmd.Flags().StringVar(&opts.Location, "location", "", "interview location")
	cmd.Flags().StringVar(&opts.Type, "type", "", "interview type (Onsite|Remote|Phone)")
	cmd.Flags().StringVar(&opts.Link, "link", "", "interview call link")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "interview phone number")
	cmd.Flags().StringVar(&opts.Interviewers, "interviewers", "", "interviewer names")

	return cmd
}

func runMove(cmd *cobra.Command, opts *MoveOptions, idArg, statusArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	newStatus := model.Status(statusArg)
	if !newStatus.Valid() {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("unknown status %q (valid: %s)", statusArg, statusList()))
	}

	details, err := opts.interviewDetails()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.ctrl.RequestTransition(ctx, id, newStatus, details)
	if err != nil {
		return moveError(err)
	}
	if res.NeedsDetails {
		// Phase one of the two-phase protocol: the move is valid but
		// cannot commit without interview details.
		return NewExitError(ExitFailure,
			"interview details required: re-run with --at (and optional --location, --type, ...)")
	}

	return opts.formatter(cmd.OutOrStdout()).Success(res.Record, func(w io.Writer) {
		renderRecord(w, res.Record)
	})
}

// interviewDetails builds InterviewDetails from the flags, nil when --at
// was not given.
func (o *MoveOptions) interviewDetails() (*model.InterviewDetails, error) {
	if o.At == "" {
		return nil, nil
	}
	at, err := parseWhen(o.At)
	if err != nil {
		return nil, err
	}
	t := model.InterviewType(o.Type)
	if !t.Valid() {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("unknown interview type %q", o.Type))
	}
	return &model.InterviewDetails{
		DateTime:     at,
		Location:     o.Location,
		Type:         t,
		Link:         o.Link,
		Phone:        o.Phone,
		Interviewers: o.Interviewers,
	}, nil
}

// moveError augments invalid-transition failures with the moves that
// would have been accepted.
func moveError(err error) error {
	var le *lifecycle.Error
	if errors.As(err, &le) && le.Code == lifecycle.ErrCodeInvalidTransition {
		return WrapExitError(ExitFailure,
			fmt.Sprintf("cannot move from %s to %s (valid moves: %s)", le.From, le.To, nextMoves(le.From)), err)
	}
	return domainError(err)
}

func statusList() string {
	names := make([]string, len(model.AllStatuses))
	for i, s := range model.AllStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// nextMoves renders the valid targets for a status, for help text.
func nextMoves(s model.Status) string {
	next := graph.Next(s)
	if len(next) == 0 {
		return "none"
	}
	names := make([]string, len(next))
	for i, n := range next {
		names[i] = string(n)
	}
	return strings.Join(names, ", ")
}
