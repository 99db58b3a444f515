package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/terpdesk/terpdesk/internal/timefmt"
)

// NewLinkCmd creates the 'link' command group for magic-link job actions.
// These act on a single job via the emailed token and need no session.
func NewLinkCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Act on a job via a magic-link token",
		Long: `Act on one job using the token from a portal email, without signing in.
The token scopes what can be done and to which job.`,
	}

	cmd.AddCommand(
		newLinkShowCmd(a),
		newLinkConfirmCmd(a),
		newLinkStartCmd(a),
		newLinkEndCmd(a),
	)

	return cmd
}

func newLinkShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <token>",
		Short: "Show the linked job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			job, err := a.client.MagicLinkJob(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}

			now := time.Now()
			var b strings.Builder
			fmt.Fprintf(&b, "%s  %s\n", headingStyle.Render("Job "+jobRef(job)), statusBadge(job.Status))
			fmt.Fprintf(&b, "  When:      %s\n", scheduleLabel(job, a.loc, now))
			if job.Language != "" {
				fmt.Fprintf(&b, "  Language:  %s\n", job.Language)
			}
			if job.Location != "" {
				fmt.Fprintf(&b, "  Location:  %s\n", job.Location)
			}
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
}

func newLinkConfirmCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <token>",
		Short: "Confirm the linked job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			if err := a.client.MagicLinkConfirm(cmd.Context(), args[0]); err != nil {
				return a.handleAPIError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Job confirmed.")
			return nil
		},
	}
}

func newLinkStartCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start <token>",
		Short: "Start the linked job's timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			job, err := a.client.MagicLinkStart(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started job %s\n", jobRef(job))
			return nil
		},
	}
}

func newLinkEndCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "end <token>",
		Short: "End the linked job's timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			job, err := a.client.MagicLinkEnd(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ended job %s", jobRef(job))
			if job.ActualDurationMinutes != nil {
				fmt.Fprintf(cmd.OutOrStdout(), " after %s", timefmt.Clock(time.Duration(*job.ActualDurationMinutes)*time.Minute))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
