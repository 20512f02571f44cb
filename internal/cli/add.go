package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mjcarter/shortlist/internal/lifecycle"
	"github.com/mjcarter/shortlist/internal/model"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Company     string
	Title       string
	JobType     string
	URL         string
	Description string
	Method      string
	Rating      int
	Location    string
	PayRange    string
	Bookmark    bool
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a new application",
		Long: `Track a new application. The record starts as Applied, or as
Bookmarked with --bookmark for a job you have not applied to yet.

Example:
  shortlist add --company "Acme Corp" --title "Backend Engineer"
  shortlist add --company "Globex" --title "SRE" --bookmark --url https://globex.example/jobs/42`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Company, "company", "", "company name (required)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "job title (required)")
	cmd.Flags().StringVar(&opts.JobType, "type", "", "job type (e.g. Full-time)")
	cmd.Flags().StringVar(&opts.URL, "url", "", "job posting URL")
	cmd.Flags().StringVar(&opts.Description, "description", "", "job description")
	cmd.Flags().StringVar(&opts.Method, "method", "", "application method")
	cmd.Flags().IntVar(&opts.Rating, "rating", 0, "interest rating 0-5")
	cmd.Flags().StringVar(&opts.Location, "location", "", "job location")
	cmd.Flags().StringVar(&opts.PayRange, "pay", "", "pay range")
	cmd.Flags().BoolVar(&opts.Bookmark, "bookmark", false, "start as Bookmarked instead of Applied")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func runAdd(cmd *cobra.Command, opts *AddOptions) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	initial := model.StatusApplied
	if opts.Bookmark {
		initial = model.StatusBookmarked
	}

	record, err := s.ctrl.Create(ctx, lifecycle.Draft{
		CompanyName:       opts.Company,
		JobTitle:          opts.Title,
		JobType:           opts.JobType,
		JobURL:            opts.URL,
		JobDescription:    opts.Description,
		ApplicationMethod: opts.Method,
		Rating:            opts.Rating,
		Location:          opts.Location,
		PayRange:          opts.PayRange,
		InitialStatus:     initial,
	})
	if err != nil {
		return domainError(err)
	}

	return opts.formatter(cmd.OutOrStdout()).Success(record, func(w io.Writer) {
		renderRecord(w, record)
	})
}
