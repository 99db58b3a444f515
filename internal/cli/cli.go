package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/terpdesk/terpdesk/internal/api"
	"github.com/terpdesk/terpdesk/internal/config"
	"github.com/terpdesk/terpdesk/internal/jobstatus"
	"github.com/terpdesk/terpdesk/internal/poll"
	"github.com/terpdesk/terpdesk/internal/session"
)

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Wired lazily on first use (see ensure)
	cfg      *config.Config
	store    *session.Store
	client   *api.Client
	classify *jobstatus.Classifier
	cache    *poll.Cache
	loc      *time.Location

	// Flags
	configPath string

	// Version information
	version string
	commit  string
	date    string
}

// New creates a new CLI application
func New() *App {
	app := &App{}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.version = version
	a.commit = commit
	a.date = date
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "terpdesk",
		Short: "Interpreter job portal",
		Long: `terpdesk is a terminal portal for interpreters: view and accept job
assignments, confirm and work jobs, submit completion reports, and
track earnings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		// Bare invocation restores the last-visited screen, like the portal
		// reopening where the user left off.
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensure(); err != nil {
				return err
			}
			screen, err := a.store.LastScreen()
			if err != nil {
				return err
			}
			name := "jobs"
			if screen == "watch" {
				name = "watch"
			}
			sub, _, err := cmd.Root().Find([]string{name})
			if err != nil {
				return err
			}
			// Find does not set the child's context; the closures read it
			// for every request.
			sub.SetContext(cmd.Context())
			return sub.RunE(sub, nil)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.store != nil {
				return a.store.Close()
			}
			return nil
		},
	}

	a.rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Config file path (default ~/.terpdesk.yaml)")

	a.rootCmd.AddCommand(
		NewLoginCmd(a),
		NewLogoutCmd(a),
		NewJobsCmd(a),
		NewAvailableCmd(a),
		NewShowCmd(a),
		NewAcceptCmd(a),
		NewDeclineCmd(a),
		NewIndicateCmd(a),
		NewConfirmCmd(a),
		NewUnassignCmd(a),
		NewStartCmd(a),
		NewEndCmd(a),
		NewReportCmd(a),
		NewEarningsCmd(a),
		NewLinkCmd(a),
		NewWatchCmd(a),
		NewVersionCmd(a),
	)
}

// ensure wires config, session store, API client, classifier, and the
// shared query cache. Safe to call more than once.
func (a *App) ensure() error {
	if a.client != nil {
		return nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	store, err := session.Open(cfg.SessionPath)
	if err != nil {
		return err
	}
	timeout, err := cfg.RequestTimeoutDuration()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.loc = loc
	a.store = store
	a.client = api.NewClient(cfg.APIURL, store, timeout)
	a.classify = jobstatus.New(loc)
	a.cache = poll.NewCache()
	return nil
}

// handleAPIError maps request failures to user-facing behavior. Session
// expiration clears local state (guarded so concurrent triggers run the
// sequence once) and points the user at login; other failures pass through
// with the server message and remain retryable.
func (a *App) handleAPIError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrSessionExpired) {
		a.store.HandleExpiry(func() {
			fmt.Fprintln(a.rootCmd.ErrOrStderr(), "Your session has expired and you have been signed out.")
			if clearErr := a.store.Clear(); clearErr != nil {
				fmt.Fprintf(a.rootCmd.ErrOrStderr(), "warning: clearing session failed: %v\n", clearErr)
			}
		})
		return fmt.Errorf("session expired: run 'terpdesk login'")
	}
	if errors.Is(err, api.ErrNotAuthenticated) {
		return fmt.Errorf("not logged in: run 'terpdesk login'")
	}
	return err
}
