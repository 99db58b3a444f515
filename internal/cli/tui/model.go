package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/terpdesk/terpdesk/internal/api"
	"github.com/terpdesk/terpdesk/internal/jobstatus"
	"github.com/terpdesk/terpdesk/internal/poll"
)

// Tab identifies a dashboard pane.
type Tab int

const (
	TabUpcoming Tab = iota
	TabActions
	TabAvailable
	TabHistory
)

var tabTitles = []string{"Upcoming", "Actions", "Available", "History"}

// Alert is the dismissible blocking prompt for business-critical
// conditions: overdue reports and unconfirmed imminent jobs.
type Alert struct {
	Key   string // identifies the condition so a dismissal sticks
	Title string
	Body  string
}

// Deps are the dashboard's wired collaborators.
type Deps struct {
	Client     *api.Client
	Classifier *jobstatus.Classifier
	Cache      *poll.Cache
	Location   *time.Location
	PollEvery  time.Duration
	ClockEvery time.Duration
	Profile    *api.Profile
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	deps   Deps
	Styles Styles

	// State
	Tab       Tab
	Mine      []api.Job
	Available []api.Job
	Counts    map[jobstatus.Bucket]int
	Action    jobstatus.Action
	Loading   bool
	Spinner   spinner.Model
	Notice    string
	Alert     *Alert
	dismissed map[string]bool
	Now       time.Time
	Width     int
	Height    int

	// Control
	Quitting       bool
	SessionExpired bool
	Err            error
}

// NewModel creates the dashboard model.
func NewModel(deps Deps) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &Model{
		deps:      deps,
		Styles:    DefaultStyles(),
		Loading:   true,
		Spinner:   sp,
		dismissed: make(map[string]bool),
		Counts:    make(map[jobstatus.Bucket]int),
		Now:       time.Now(),
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		m.fetchCmd(),
		clockTickCmd(m.deps.ClockEvery),
		pollTickCmd(m.deps.PollEvery),
	)
}

// ClockTickMsg drives elapsed/countdown re-rendering.
type ClockTickMsg time.Time

func clockTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return ClockTickMsg(t)
	})
}

// PollTickMsg drives the list refresh.
type PollTickMsg time.Time

func pollTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return PollTickMsg(t)
	})
}

// JobsLoadedMsg carries a refreshed snapshot of both lists.
type JobsLoadedMsg struct {
	Mine      []api.Job
	Available []api.Job
}

// FetchFailedMsg reports a refresh failure. The dashboard stays up with
// stale data; the next poll retries.
type FetchFailedMsg struct {
	Err error
}

// fetchCmd loads both lists through the shared cache, so a dashboard and a
// concurrently running command observing the same endpoint share one
// in-flight request.
func (m *Model) fetchCmd() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx := context.Background()

		mineVal, err := deps.Cache.Get(ctx, poll.Key("my-jobs"), deps.PollEvery, func(ctx context.Context) (any, error) {
			list, err := deps.Client.MyJobs(ctx, api.MyJobsOptions{Limit: 100})
			if err != nil {
				return nil, err
			}
			return list.Jobs, nil
		})
		if err != nil {
			return FetchFailedMsg{Err: err}
		}

		availVal, err := deps.Cache.Get(ctx, poll.Key("available"), deps.PollEvery, func(ctx context.Context) (any, error) {
			list, err := deps.Client.AvailableJobs(ctx, api.AvailableFilters{})
			if err != nil {
				return nil, err
			}
			return list.Jobs, nil
		})
		if err != nil {
			return FetchFailedMsg{Err: err}
		}

		return JobsLoadedMsg{
			Mine:      mineVal.([]api.Job),
			Available: availVal.([]api.Job),
		}
	}
}
