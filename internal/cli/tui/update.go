package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/terpdesk/terpdesk/internal/api"
)

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			return m, cmd
		}

	case ClockTickMsg:
		m.Now = time.Time(msg)
		if m.Quitting {
			return m, nil
		}
		// Status depends on wall-clock time, not just data changes.
		m.reclassify()
		return m, clockTickCmd(m.deps.ClockEvery)

	case PollTickMsg:
		if m.Quitting {
			return m, nil
		}
		return m, tea.Batch(m.fetchCmd(), pollTickCmd(m.deps.PollEvery))

	case JobsLoadedMsg:
		m.Mine = msg.Mine
		m.Available = msg.Available
		m.Loading = false
		m.Notice = ""
		m.reclassify()
		m.maybeRaiseAlert()

	case FetchFailedMsg:
		m.Loading = false
		if errors.Is(msg.Err, api.ErrSessionExpired) || errors.Is(msg.Err, api.ErrNotAuthenticated) {
			// Handled once, outside the event loop.
			if !m.SessionExpired {
				m.SessionExpired = true
				m.Err = msg.Err
				m.Quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		m.Notice = fmt.Sprintf("refresh failed: %v", msg.Err)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.Quitting = true
		return m, tea.Quit

	case "esc":
		if m.Alert != nil {
			// Always dismissible; the condition will not re-raise.
			m.dismissed[m.Alert.Key] = true
			m.Alert = nil
		}

	case "tab", "right":
		m.Tab = (m.Tab + 1) % Tab(len(tabTitles))

	case "shift+tab", "left":
		m.Tab = (m.Tab + Tab(len(tabTitles)) - 1) % Tab(len(tabTitles))

	case "1", "2", "3", "4":
		m.Tab = Tab(int(msg.String()[0] - '1'))

	case "r":
		m.deps.Cache.InvalidateAll()
		m.Loading = true
		return m, tea.Batch(m.Spinner.Tick, m.fetchCmd())
	}

	return m, nil
}

// reclassify recomputes counts and the next action from the current lists
// and clock. Pure derivation; safe to run on every tick.
func (m *Model) reclassify() {
	m.Counts = m.deps.Classifier.Counts(m.Mine, m.Now)
	m.Action = m.deps.Classifier.NextAction(m.Mine, m.Now)
}

// maybeRaiseAlert surfaces at most one blocking prompt for the two
// business-critical conditions. Dismissed alerts stay dismissed for the
// session.
func (m *Model) maybeRaiseAlert() {
	if m.Alert != nil {
		return
	}
	c := m.deps.Classifier
	for i := range m.Mine {
		job := &m.Mine[i]
		if c.ReportOverdue(job, m.Now) {
			key := "report:" + job.ID
			if m.dismissed[key] {
				continue
			}
			m.Alert = &Alert{
				Key:   key,
				Title: "Completion report overdue",
				Body:  fmt.Sprintf("The report for job %s is more than 24 hours overdue.\nSubmit it with: terpdesk report %s", jobNumber(job), job.ID),
			}
			return
		}
		if c.StartingSoonUnconfirmed(job, m.Now) {
			key := "confirm:" + job.ID
			if m.dismissed[key] {
				continue
			}
			m.Alert = &Alert{
				Key:   key,
				Title: "Unconfirmed job starting soon",
				Body:  fmt.Sprintf("Job %s starts within 2 hours and is not confirmed.\nConfirm it with: terpdesk confirm %s", jobNumber(job), job.ID),
			}
			return
		}
	}
}

func jobNumber(job *api.Job) string {
	if job.JobNumber != "" {
		return job.JobNumber
	}
	return job.ID
}

// actionList selects the jobs shown on the Actions tab.
func (m *Model) actionList() []api.Job {
	c := m.deps.Classifier
	var out []api.Job
	for i := range m.Mine {
		job := &m.Mine[i]
		if c.ReportOverdue(job, m.Now) || c.ReportDue(job, m.Now) ||
			c.NeedsConfirmationUrgent(job, m.Now) || c.StartingSoonUnconfirmed(job, m.Now) {
			out = append(out, *job)
		}
	}
	return out
}

// historyList selects the jobs shown on the History tab.
func (m *Model) historyList() []api.Job {
	var out []api.Job
	for i := range m.Mine {
		if m.deps.Classifier.CompletedHistory(&m.Mine[i]) {
			out = append(out, m.Mine[i])
		}
	}
	return out
}

// tabCount is the badge figure for a tab.
func (m *Model) tabCount(tab Tab) int {
	switch tab {
	case TabUpcoming:
		return len(m.deps.Classifier.Upcoming(m.Mine, m.Now))
	case TabActions:
		return len(m.actionList())
	case TabAvailable:
		return len(m.Available)
	case TabHistory:
		return len(m.historyList())
	}
	return 0
}
