package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wigilabs/timeledger/internal/auth"
	"github.com/wigilabs/timeledger/internal/config"
	"github.com/wigilabs/timeledger/internal/ledger"
	"github.com/wigilabs/timeledger/internal/models"
	"github.com/wigilabs/timeledger/internal/report"
)

type reportDoneMsg struct {
	path string
	err  error
}

type reportsState int

const (
	reportsMenu reportsState = iota
	reportsPickProject
)

type reportKind int

const (
	reportWeekThis reportKind = iota
	reportWeekLast
	reportProjectDetail
	reportOverview
)

type reportChoice struct {
	kind  reportKind
	title string
}

// ReportsModel is the PDF export view.
type ReportsModel struct {
	store *ledger.Store
	cfg   *config.Config
	sess  *auth.Session

	choices []reportChoice
	cursor  int

	state         reportsState
	pickable      []models.Project
	projectCursor int

	result      string
	resultIsErr bool
	running     bool
}

// NewReportsModel creates the reports view.
func NewReportsModel(store *ledger.Store, cfg *config.Config, sess *auth.Session) ReportsModel {
	choices := []reportChoice{
		{kind: reportWeekThis, title: "Weekly timesheet (this week)"},
		{kind: reportWeekLast, title: "Weekly timesheet (last week)"},
		{kind: reportProjectDetail, title: "Project detail…"},
	}
	if sess.Manager {
		choices = append(choices, reportChoice{kind: reportOverview, title: "Global status overview"})
	}
	return ReportsModel{store: store, cfg: cfg, sess: sess, choices: choices}
}

// capturesInput reports whether the project picker owns the keyboard.
func (m ReportsModel) capturesInput() bool {
	return m.state == reportsPickProject
}

// Update handles report view messages.
func (m ReportsModel) Update(msg tea.Msg) (ReportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportDoneMsg:
		m.running = false
		if msg.err != nil {
			m.result = msg.err.Error()
			m.resultIsErr = true
			return m, nil
		}
		m.result = fmt.Sprintf("written to %s", msg.path)
		m.resultIsErr = false
		return m, nil

	case projectsLoadedMsg:
		// Reuse the projects load for the picker list.
		if msg.err == nil {
			m.pickable = msg.projects
		}
		return m, nil

	case tea.KeyMsg:
		if m.running {
			return m, nil
		}
		if m.state == reportsPickProject {
			return m.updatePicker(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			return m.run(m.choices[m.cursor].kind)
		}
	}
	return m, nil
}

func (m ReportsModel) updatePicker(msg tea.KeyMsg) (ReportsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = reportsMenu
	case "up", "k":
		if m.projectCursor > 0 {
			m.projectCursor--
		}
	case "down", "j":
		if m.projectCursor < len(m.pickable)-1 {
			m.projectCursor++
		}
	case "enter":
		if len(m.pickable) == 0 {
			m.state = reportsMenu
			return m, nil
		}
		code := m.pickable[m.projectCursor].Code
		m.state = reportsMenu
		m.running = true
		return m, m.exportDetail(code)
	}
	return m, nil
}

func (m ReportsModel) run(kind reportKind) (ReportsModel, tea.Cmd) {
	switch kind {
	case reportWeekThis, reportWeekLast:
		weekStart := ledger.WeekStart(time.Now())
		if kind == reportWeekLast {
			weekStart = weekStart.AddDate(0, 0, -7)
		}
		m.running = true
		return m, m.exportWeekly(weekStart)
	case reportProjectDetail:
		m.state = reportsPickProject
		m.projectCursor = 0
		store, username := m.store, m.sess.Username
		return m, func() tea.Msg {
			projects, err := store.ProjectsFor(username)
			return projectsLoadedMsg{projects: projects, err: err}
		}
	case reportOverview:
		m.running = true
		return m, m.exportOverview()
	}
	return m, nil
}

func (m ReportsModel) exportWeekly(weekStart time.Time) tea.Cmd {
	store, cfg, username := m.store, m.cfg, m.sess.Username
	return func() tea.Msg {
		matrix, err := store.WeeklySummary(username, weekStart)
		if err != nil {
			return reportDoneMsg{err: err}
		}
		path := filepath.Join(cfg.ReportsDir,
			fmt.Sprintf("timesheet_%s_%s.pdf", username, weekStart.Format("2006-01-02")))
		if err := report.Weekly(path, username, matrix, report.Options{LogoPath: cfg.LogoPath}); err != nil {
			return reportDoneMsg{err: err}
		}
		return reportDoneMsg{path: path}
	}
}

func (m ReportsModel) exportDetail(code string) tea.Cmd {
	store, cfg, username := m.store, m.cfg, m.sess.Username
	return func() tea.Msg {
		detail, err := store.DetailedEntries(code, username)
		if err != nil {
			return reportDoneMsg{err: err}
		}
		path := filepath.Join(cfg.ReportsDir, fmt.Sprintf("project_%s.pdf", code))
		if err := report.Detail(path, username, detail, report.Options{LogoPath: cfg.LogoPath}); err != nil {
			return reportDoneMsg{err: err}
		}
		return reportDoneMsg{path: path}
	}
}

func (m ReportsModel) exportOverview() tea.Cmd {
	store, cfg, username := m.store, m.cfg, m.sess.Username
	return func() tea.Msg {
		projects, err := store.StatusOverview(username)
		if err != nil {
			return reportDoneMsg{err: err}
		}
		now := time.Now()
		path := filepath.Join(cfg.ReportsDir, fmt.Sprintf("status_%s.pdf", now.Format("2006-01-02")))
		if err := report.Status(path, projects, now, report.Options{LogoPath: cfg.LogoPath}); err != nil {
			return reportDoneMsg{err: err}
		}
		return reportDoneMsg{path: path}
	}
}

// View renders the reports view.
func (m ReportsModel) View(width, height int) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	var lines []string

	if m.state == reportsPickProject {
		lines = append(lines, headerStyle.Render("Pick a project"), "")
		if len(m.pickable) == 0 {
			lines = append(lines, mutedStyle.Render("no projects to report on"))
		}
		for i, p := range m.pickable {
			line := fmt.Sprintf("%-10s %s", p.Code, p.Name)
			style := rowStyle
			if i == m.projectCursor {
				style = selectedStyle
				line = "▸ " + line
			} else {
				line = "  " + line
			}
			lines = append(lines, style.Render(line))
		}
		lines = append(lines, "", mutedStyle.Render("enter: export   esc: back"))
	} else {
		lines = append(lines, headerStyle.Render("Export a PDF report"), "")
		for i, choice := range m.choices {
			line := choice.title
			style := rowStyle
			if i == m.cursor {
				style = selectedStyle
				line = "▸ " + line
			} else {
				line = "  " + line
			}
			lines = append(lines, style.Render(line))
		}
		lines = append(lines, "", mutedStyle.Render("enter: export"))
	}

	lines = append(lines, "")
	if m.running {
		lines = append(lines, mutedStyle.Render("exporting…"))
	} else if m.result != "" {
		color := ColorSuccess
		if m.resultIsErr {
			color = ColorError
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.result))
	}

	return panelStyle(width, height).Render(strings.Join(lines, "\n"))
}
