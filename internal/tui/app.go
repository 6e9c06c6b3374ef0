package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wigilabs/timeledger/internal/auth"
)

type screen int

const (
	screenLogin screen = iota
	screenDashboard
)

type tab int

const (
	tabProjects tab = iota
	tabTracker
	tabReports
)

var tabTitles = []string{"Projects", "Time Tracker", "Reports"}

// AppModel is the top-level model: a login gate followed by a
// three-destination sidebar dashboard.
type AppModel struct {
	deps   Deps
	width  int
	height int

	screen    screen
	activeTab tab
	session   *auth.Session
	fatalErr  error

	login    LoginModel
	projects ProjectsModel
	tracker  TrackerModel
	reports  ReportsModel
}

// NewAppModel builds the dashboard, opening on the login gate when no
// session is persisted.
func NewAppModel(deps Deps) AppModel {
	m := AppModel{
		deps:  deps,
		login: NewLoginModel(deps.Store, deps.Cfg),
	}
	if deps.Session != nil {
		m.enterDashboard(deps.Session)
	}
	return m
}

func (m *AppModel) enterDashboard(sess *auth.Session) {
	m.screen = screenDashboard
	m.session = sess
	m.projects = NewProjectsModel(m.deps.Store, sess)
	m.tracker = NewTrackerModel(m.deps.Store, sess)
	m.reports = NewReportsModel(m.deps.Store, m.deps.Cfg, sess)
	m.activeTab = tabTracker
}

// Init starts the initial data loads.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenDashboard {
		return tea.Batch(m.projects.load(), m.tracker.load())
	}
	return nil
}

// Update routes messages to the active screen and view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loggedInMsg:
		m.enterDashboard(msg.sess)
		return m, tea.Batch(m.projects.load(), m.tracker.load())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenLogin {
			if msg.String() == "esc" {
				return m, tea.Quit
			}
			break
		}

		// Dashboard-wide keys, suppressed while a form owns the input.
		if !m.capturesInput() {
			switch msg.String() {
			case "q", "esc":
				return m, tea.Quit
			case "ctrl+l":
				_ = auth.Clear(m.deps.Cfg.SessionPath())
				m.screen = screenLogin
				m.session = nil
				m.login = NewLoginModel(m.deps.Store, m.deps.Cfg)
				return m, nil
			case "1":
				return m.switchTab(tabProjects)
			case "2":
				return m.switchTab(tabTracker)
			case "3":
				return m.switchTab(tabReports)
			case "tab":
				return m.switchTab((m.activeTab + 1) % 3)
			}
		}
	}

	return m.route(msg)
}

func (m AppModel) switchTab(t tab) (tea.Model, tea.Cmd) {
	m.activeTab = t
	switch t {
	case tabProjects:
		return m, m.projects.load()
	case tabTracker:
		return m, m.tracker.load()
	}
	return m, nil
}

func (m AppModel) capturesInput() bool {
	switch m.activeTab {
	case tabProjects:
		return m.projects.capturesInput()
	case tabReports:
		return m.reports.capturesInput()
	}
	return false
}

func (m AppModel) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.screen == screenLogin {
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}

	// Data messages go to their owning view regardless of the active
	// tab; key messages go to the active tab only.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		switch m.activeTab {
		case tabProjects:
			m.projects, cmd = m.projects.Update(msg)
		case tabTracker:
			m.tracker, cmd = m.tracker.Update(msg)
		case tabReports:
			m.reports, cmd = m.reports.Update(msg)
		}
		return m, cmd
	}

	var cmds []tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	cmds = append(cmds, cmd)
	m.tracker, cmd = m.tracker.Update(msg)
	cmds = append(cmds, cmd)
	m.reports, cmd = m.reports.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.screen == screenLogin {
		return m.login.View(m.width, m.height)
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2 // help bar + gap

	sidebar := m.renderSidebar(contentHeight)
	sidebarWidth := lipgloss.Width(sidebar)
	contentWidth := m.width - sidebarWidth - 2

	var content string
	switch m.activeTab {
	case tabProjects:
		content = m.projects.View(contentWidth, contentHeight)
	case tabTracker:
		content = m.tracker.View(contentWidth, contentHeight)
	case tabReports:
		content = m.reports.View(contentWidth, contentHeight)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", content)
	return lipgloss.JoinVertical(lipgloss.Left, main, helpBar)
}

func (m AppModel) renderSidebar(height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	userStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))
	activeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDisabledText))

	user := m.session.Username
	if m.session.Manager {
		user += " ★"
	}

	lines := []string{
		titleStyle.Render("timeledger"),
		userStyle.Render(user),
		"",
	}
	for i, title := range tabTitles {
		marker := "  "
		style := inactiveStyle
		if tab(i) == m.activeTab {
			marker = "▸ "
			style = activeStyle
		}
		lines = append(lines, style.Render(marker+title))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Height(height - 2).
		Render(strings.Join(lines, "\n"))
}

func (m AppModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	return helpStyle.Render(" 1/2/3: navigate   tab: next   ctrl+l: logout   q: quit")
}
