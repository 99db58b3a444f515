package tui

import (
	"fmt"
	"strings"

	"github.com/terpdesk/terpdesk/internal/api"
	"github.com/terpdesk/terpdesk/internal/earnings"
	"github.com/terpdesk/terpdesk/internal/jobstatus"
	"github.com/terpdesk/terpdesk/internal/timefmt"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderBanner())
	b.WriteString("\n\n")
	b.WriteString(m.renderTab())

	if m.Notice != "" {
		b.WriteString("\n")
		b.WriteString(m.Styles.Notice.Render("  " + m.Notice))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())

	if m.Alert != nil {
		b.WriteString("\n\n")
		b.WriteString(m.renderAlert())
	}

	return b.String()
}

// renderHeader renders the title line with profile and wall clock
func (m *Model) renderHeader() string {
	title := m.Styles.Title.Render("Terpdesk")

	who := ""
	if m.deps.Profile != nil && m.deps.Profile.Name != "" {
		who = m.Styles.Profile.Render(m.deps.Profile.Name)
	}

	clock := m.Styles.Clock.Render(m.Now.In(m.deps.Location).Format("Mon Jan 2 15:04:05"))

	if m.Loading {
		return fmt.Sprintf("%s  %s  %s %s", title, who, clock, m.Spinner.View())
	}
	return fmt.Sprintf("%s  %s  %s", title, who, clock)
}

// renderTabs renders the tab bar with per-tab badge counts
func (m *Model) renderTabs() string {
	var parts []string
	for i, title := range tabTitles {
		tab := Tab(i)
		label := fmt.Sprintf("%d:%s", i+1, title)
		if n := m.tabCount(tab); n > 0 {
			label += " " + m.Styles.Badge.Render(fmt.Sprintf("(%d)", n))
		}
		if tab == m.Tab {
			parts = append(parts, m.Styles.TabActive.Render(label))
		} else {
			parts = append(parts, m.Styles.Tab.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// renderBanner phrases the single most important next step.
func (m *Model) renderBanner() string {
	ref := func(job *api.Job) string {
		if job == nil {
			return ""
		}
		return jobNumber(job)
	}

	switch m.Action.Kind {
	case jobstatus.ActionStartingSoon:
		start, _ := m.Action.Job.ScheduledStart(m.deps.Location)
		return m.Styles.BannerUrgent.Render(fmt.Sprintf("  Job %s starts %s", ref(m.Action.Job), timefmt.Until(start.Sub(m.Now))))
	case jobstatus.ActionInProgress:
		return m.Styles.Banner.Render(fmt.Sprintf("  Job %s is in progress", ref(m.Action.Job)))
	case jobstatus.ActionReportOverdue:
		return m.Styles.BannerUrgent.Render(fmt.Sprintf("  Completion report for job %s is overdue", ref(m.Action.Job)))
	case jobstatus.ActionReportDue:
		return m.Styles.Banner.Render(fmt.Sprintf("  Completion report for job %s is due", ref(m.Action.Job)))
	case jobstatus.ActionConfirm:
		return m.Styles.Banner.Render(fmt.Sprintf("  Job %s needs your confirmation", ref(m.Action.Job)))
	default:
		return m.Styles.RowDim.Render("  No pending actions")
	}
}

// renderTab renders the list for the selected tab
func (m *Model) renderTab() string {
	var jobs []api.Job
	var empty string

	switch m.Tab {
	case TabUpcoming:
		jobs = m.deps.Classifier.Upcoming(m.Mine, m.Now)
		empty = "No upcoming jobs"
	case TabActions:
		jobs = m.actionList()
		empty = "Nothing needs your attention"
	case TabAvailable:
		jobs = m.Available
		empty = "No jobs available to claim"
	case TabHistory:
		jobs = m.historyList()
		empty = "No completed jobs yet"
	}

	if len(jobs) == 0 {
		return m.Styles.RowDim.Render("  "+empty) + "\n"
	}

	var b strings.Builder
	for i := range jobs {
		b.WriteString(m.renderJob(&jobs[i]))
		b.WriteString("\n")
	}
	return b.String()
}

// renderJob renders a single job row
func (m *Model) renderJob(job *api.Job) string {
	number := m.Styles.RowNumber.Render(jobNumber(job))

	descriptor := job.Language
	if job.ServiceType != "" {
		descriptor += " / " + job.ServiceType
	}
	where := job.Location
	if job.Remote {
		where = "remote"
	}

	parts := []string{number, m.scheduleCell(job), descriptor, where, m.earningsCell(job)}
	return "  " + strings.Join(parts, "  ")
}

// scheduleCell shows a live countdown for upcoming starts and a running
// elapsed timer for jobs already underway.
func (m *Model) scheduleCell(job *api.Job) string {
	if job.Status == api.StatusInProgress && job.StartedAt != nil {
		return m.Styles.OK.Render("elapsed " + timefmt.Elapsed(*job.StartedAt, m.Now))
	}

	start, ok := job.ScheduledStart(m.deps.Location)
	if !ok {
		return m.Styles.RowDim.Render("N/A")
	}
	if start.After(m.Now) {
		countdown := timefmt.Until(start.Sub(m.Now))
		if start.Sub(m.Now) <= jobstatus.StartingSoonWindow {
			countdown = m.Styles.Urgent.Render(countdown)
		}
		return fmt.Sprintf("%s (%s)", start.Format("Jan 2 15:04"), countdown)
	}
	return start.Format("Jan 2 15:04")
}

// earningsCell shows the amount, marking actual payments so they are never
// mistaken for estimates.
func (m *Model) earningsCell(job *api.Job) string {
	est := earnings.ForJob(job)
	switch {
	case est.Paid():
		return m.Styles.Paid.Render(earnings.FormatUSD(est.Amount) + " paid")
	case est.Source == earnings.SourceNone:
		return m.Styles.RowDim.Render(earnings.FormatUSD(0) + " (rate not set)")
	default:
		return earnings.FormatUSD(est.Amount) + " est."
	}
}

// renderAlert renders the dismissible modal box
func (m *Model) renderAlert() string {
	content := m.Styles.AlertTitle.Render(m.Alert.Title) + "\n\n" +
		m.Alert.Body + "\n\n" +
		m.Styles.RowDim.Render("esc to dismiss")
	return m.Styles.AlertBox.Render(content)
}

// renderFooter renders the help text
func (m *Model) renderFooter() string {
	keys := []string{
		m.Styles.FooterKey.Render("tab") + " switch",
		m.Styles.FooterKey.Render("r") + " refresh",
		m.Styles.FooterKey.Render("q") + " quit",
	}
	return m.Styles.Footer.Render("  " + strings.Join(keys, "  "))
}
