package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/terpdesk/terpdesk/internal/api"
	"github.com/terpdesk/terpdesk/internal/earnings"
	"github.com/terpdesk/terpdesk/internal/jobstatus"
	"github.com/terpdesk/terpdesk/internal/timefmt"
)

// NewAcceptCmd creates the 'accept' command. A mileage request rides along
// with the accept; the entered rate is clamped to the federal ceiling.
func NewAcceptCmd(a *App) *cobra.Command {
	var miles, rate float64

	cmd := &cobra.Command{
		Use:   "accept <job-id>",
		Short: "Accept an offered job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			if cmd.Flags().Changed("rate") && !cmd.Flags().Changed("miles") {
				return fmt.Errorf("--rate requires --miles")
			}

			var opts api.AcceptOptions
			if cmd.Flags().Changed("miles") {
				opts.MileageMiles = &miles
				effective := earnings.ClampMileageRate(rate)
				if effective != rate {
					fmt.Fprintf(cmd.ErrOrStderr(), "mileage rate clamped to %.2f $/mile\n", effective)
				}
				opts.MileageRate = &effective
			}

			job, err := a.client.AcceptJob(cmd.Context(), args[0], opts)
			if err != nil {
				return a.handleAPIError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Accepted job %s\n", jobRef(job))
			return nil
		},
	}

	cmd.Flags().Float64Var(&miles, "miles", 0, "Mileage to request")
	cmd.Flags().Float64Var(&rate, "rate", earnings.MileageRateCap, "Mileage rate in $/mile")

	return cmd
}

// NewDeclineCmd creates the 'decline' command.
func NewDeclineCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decline <job-id>",
		Short: "Decline an offered job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			if err := a.client.DeclineJob(cmd.Context(), args[0]); err != nil {
				return a.handleAPIError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Declined job %s\n", args[0])
			return nil
		},
	}
}

// NewIndicateCmd creates the 'indicate' command for signaling interest on
// an open job.
func NewIndicateCmd(a *App) *cobra.Command {
	var notAvailable bool

	cmd := &cobra.Command{
		Use:   "indicate <job-id>",
		Short: "Indicate availability for an open job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			if err := a.client.IndicateAvailability(cmd.Context(), args[0], !notAvailable); err != nil {
				return a.handleAPIError(err)
			}
			if notAvailable {
				fmt.Fprintf(cmd.OutOrStdout(), "Marked not available for job %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Indicated availability for job %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&notAvailable, "not", false, "Withdraw availability instead")

	return cmd
}

// NewConfirmCmd creates the 'confirm' command for confirming an assigned
// job ahead of its start.
func NewConfirmCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <job-id>",
		Short: "Confirm availability for an assigned job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			if err := a.client.ConfirmAvailability(cmd.Context(), args[0]); err != nil {
				return a.handleAPIError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Confirmed job %s\n", args[0])
			return nil
		},
	}
}

// NewUnassignCmd creates the 'unassign' command. Eligibility is checked
// client-side first so an obviously rejected request never leaves the
// machine; the server enforces the same rule regardless.
func NewUnassignCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <job-id>",
		Short: "Remove yourself from an assigned job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}

			job, err := a.client.Job(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}
			if ok, reason := a.classify.UnassignEligibility(job, time.Now()); !ok {
				switch reason {
				case jobstatus.UnassignTooClose:
					return fmt.Errorf("cannot unassign: job starts within 48 hours")
				default:
					return fmt.Errorf("cannot unassign: job is not in an assignable status (%s)", job.Status)
				}
			}

			if err := a.client.UnassignJob(cmd.Context(), args[0]); err != nil {
				return a.handleAPIError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unassigned from job %s\n", args[0])
			return nil
		},
	}
}

// NewStartCmd creates the 'start' command for the on-site timer.
func NewStartCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start <job-id>",
		Short: "Start the job timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			job, err := a.client.StartJob(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started job %s\n", jobRef(job))
			return nil
		},
	}
}

// NewEndCmd creates the 'end' command, printing the elapsed time the
// server recorded.
func NewEndCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "end <job-id>",
		Short: "End the job timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			job, err := a.client.EndJob(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ended job %s", jobRef(job))
			if job.ActualDurationMinutes != nil {
				fmt.Fprintf(cmd.OutOrStdout(), " after %s", timefmt.Clock(time.Duration(*job.ActualDurationMinutes)*time.Minute))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "Remember to submit your completion report within 24 hours.")
			return nil
		},
	}
}

func jobRef(job *api.Job) string {
	if job.JobNumber != "" {
		return job.JobNumber
	}
	return job.ID
}
