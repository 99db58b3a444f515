package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terpdesk/terpdesk/internal/report"
)

// NewReportCmd creates the 'report' command for completion reports.
// Validation runs locally; an invalid form never reaches the network.
func NewReportCmd(a *App) *cobra.Command {
	var form report.Form
	var miles, rate float64

	cmd := &cobra.Command{
		Use:   "report <job-id>",
		Short: "Submit a completion report",
		Long: `Submit the post-appointment completion report for a job.

Times are local HH:MM. Attach files with repeated --file flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}

			if cmd.Flags().Changed("miles") {
				form.MileageMiles = &miles
			}
			if cmd.Flags().Changed("rate") {
				form.MileageRate = &rate
			}

			sub, err := form.Submission()
			if err != nil {
				return fmt.Errorf("report not submitted:\n%w", err)
			}

			if err := a.client.SubmitCompletionReport(cmd.Context(), args[0], sub); err != nil {
				return a.handleAPIError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Completion report submitted for job %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Result, "result", "", "Outcome: completed, no_show, cancelled, partial")
	cmd.Flags().StringVar(&form.PickupTime, "pickup", "", "Pickup time (HH:MM)")
	cmd.Flags().StringVar(&form.DropoffTime, "dropoff", "", "Dropoff time (HH:MM)")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "Appointment notes")
	cmd.Flags().Float64Var(&miles, "miles", 0, "Mileage driven")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Mileage rate in $/mile")
	cmd.Flags().StringArrayVar(&form.Attachments, "file", nil, "File to attach (repeatable)")

	return cmd
}
