package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/terpdesk/terpdesk/internal/earnings"
)

// NewEarningsCmd creates the 'earnings' command. Totals come from the
// server aggregation; per-job figures use the shared estimator so amounts
// match every other screen.
func NewEarningsCmd(a *App) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "earnings",
		Short: "Show your earnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}

			summary, err := a.client.Earnings(cmd.Context(), period)
			if err != nil {
				return a.handleAPIError(err)
			}

			now := time.Now()
			var b strings.Builder
			fmt.Fprintf(&b, "%s\n", headingStyle.Render("Earnings ("+summary.Period+")"))
			fmt.Fprintf(&b, "  Total:    %s\n", paidStyle.Render(earnings.FormatUSD(summary.TotalEarnings)))
			fmt.Fprintf(&b, "  Hours:    %.2f\n", summary.TotalHours)
			if summary.TotalMileage > 0 {
				fmt.Fprintf(&b, "  Mileage:  %s\n", earnings.FormatUSD(summary.TotalMileage))
			}
			fmt.Fprintf(&b, "  Jobs:     %d\n", summary.JobCount)

			if len(summary.Jobs) > 0 {
				b.WriteString("\n")
				renderJobList(&b, "Jobs in period", summary.Jobs, a.loc, now)
			}

			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "month", "Period: week, month, year, all")

	return cmd
}
