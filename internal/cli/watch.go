package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/terpdesk/terpdesk/internal/cli/tui"
)

// NewWatchCmd creates the 'watch' command: the live dashboard.
func NewWatchCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live job dashboard",
		Long: `Open the live dashboard: upcoming jobs, pending actions, open jobs, and
history, refreshed automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("watch needs an interactive terminal; use 'terpdesk jobs' instead")
			}

			pollEvery, err := a.cfg.PollIntervalDuration()
			if err != nil {
				return err
			}
			clockEvery, err := a.cfg.ClockIntervalDuration()
			if err != nil {
				return err
			}

			profile, err := a.store.Profile()
			if err != nil {
				return err
			}

			model := tui.NewModel(tui.Deps{
				Client:     a.client,
				Classifier: a.classify,
				Cache:      a.cache,
				Location:   a.loc,
				PollEvery:  pollEvery,
				ClockEvery: clockEvery,
				Profile:    profile,
			})

			if err := a.store.SetLastScreen("watch"); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: saving screen state failed: %v\n", err)
			}

			p := tea.NewProgram(model, tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}

			if m, ok := final.(*tui.Model); ok && m.SessionExpired {
				return a.handleAPIError(m.Err)
			}
			return nil
		},
	}
}
