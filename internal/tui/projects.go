package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wigilabs/timeledger/internal/auth"
	"github.com/wigilabs/timeledger/internal/ledger"
	"github.com/wigilabs/timeledger/internal/models"
	"github.com/wigilabs/timeledger/internal/parser"
)

type projectsLoadedMsg struct {
	projects []models.Project
	err      error
}

type projectActionMsg struct {
	text string
	err  error
}

type projectsState int

const (
	projectsBrowse projectsState = iota
	projectsCreate
	projectsAdjust
)

// ProjectsModel is the project registration and adjustment view.
type ProjectsModel struct {
	store *ledger.Store
	sess  *auth.Session

	projects []models.Project
	cursor   int
	state    projectsState

	// Form state, shared by the create and adjust forms.
	inputs     []textinput.Model
	focusIndex int

	adjustDir    ledger.Direction
	adjustFinish bool

	status      string
	statusIsErr bool
}

// NewProjectsModel creates the projects view.
func NewProjectsModel(store *ledger.Store, sess *auth.Session) ProjectsModel {
	return ProjectsModel{
		store:     store,
		sess:      sess,
		adjustDir: ledger.AddWork,
	}
}

// load fetches the visible projects.
func (m ProjectsModel) load() tea.Cmd {
	store, username := m.store, m.sess.Username
	return func() tea.Msg {
		projects, err := store.ProjectsFor(username)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

// capturesInput reports whether a form owns the keyboard.
func (m ProjectsModel) capturesInput() bool {
	return m.state != projectsBrowse
}

// Update handles messages for the projects view.
func (m ProjectsModel) Update(msg tea.Msg) (ProjectsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusIsErr = true
			return m, nil
		}
		m.projects = msg.projects
		if m.cursor >= len(m.projects) {
			m.cursor = 0
		}
		return m, nil

	case projectActionMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusIsErr = true
			return m, nil
		}
		m.status = msg.text
		m.statusIsErr = false
		m.state = projectsBrowse
		return m, m.load()

	case tea.KeyMsg:
		switch m.state {
		case projectsBrowse:
			return m.updateBrowse(msg)
		case projectsCreate, projectsAdjust:
			return m.updateForm(msg)
		}
	}
	return m, nil
}

func (m ProjectsModel) updateBrowse(msg tea.KeyMsg) (ProjectsModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}
	case "r":
		return m, m.load()
	case "n":
		m.state = projectsCreate
		m.inputs = newFormInputs("project code", "project name", "allocated hours (e.g. 40 or 12h30m)")
		m.focusIndex = 0
		m.status = ""
	case "a":
		if len(m.projects) == 0 {
			break
		}
		m.state = projectsAdjust
		m.inputs = newFormInputs("hours (e.g. 2.5 or 2h30m)")
		m.focusIndex = 0
		m.adjustDir = ledger.AddWork
		m.adjustFinish = false
		m.status = ""
	case "c":
		if len(m.projects) == 0 {
			break
		}
		code := m.projects[m.cursor].Code
		store := m.store
		actor := m.sess.Username
		return m, func() tea.Msg {
			stored, replayed, err := store.ReconcileProject(actor, code)
			if err != nil {
				return projectActionMsg{err: err}
			}
			if stored == replayed {
				return projectActionMsg{text: fmt.Sprintf("%s is consistent (%.2fh remaining)", code, stored)}
			}
			return projectActionMsg{text: fmt.Sprintf("%s repaired: %.2fh → %.2fh", code, stored, replayed)}
		}
	}
	return m, nil
}

func (m ProjectsModel) updateForm(msg tea.KeyMsg) (ProjectsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = projectsBrowse
		m.status = ""
		return m, nil
	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = len(m.inputs) - 1
		}
		m.focusIndex = (m.focusIndex + step) % len(m.inputs)
		for i := range m.inputs {
			if i == m.focusIndex {
				m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, nil
	case "left", "right":
		if m.state == projectsAdjust {
			if m.adjustDir == ledger.AddWork {
				m.adjustDir = ledger.RemoveWork
			} else {
				m.adjustDir = ledger.AddWork
			}
			return m, nil
		}
	case "ctrl+f":
		if m.state == projectsAdjust {
			m.adjustFinish = !m.adjustFinish
			return m, nil
		}
	case "enter":
		if m.state == projectsCreate {
			return m.submitCreate()
		}
		return m.submitAdjust()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m ProjectsModel) submitCreate() (ProjectsModel, tea.Cmd) {
	code := strings.TrimSpace(m.inputs[0].Value())
	name := strings.TrimSpace(m.inputs[1].Value())
	hours, err := parser.ParseHours(m.inputs[2].Value())
	if err != nil {
		m.status = err.Error()
		m.statusIsErr = true
		return m, nil
	}
	if code == "" || name == "" {
		m.status = "code and name are required"
		m.statusIsErr = true
		return m, nil
	}

	store, owner := m.store, m.sess.Username
	return m, func() tea.Msg {
		project, err := store.CreateProject(owner, code, name, hours)
		if err != nil {
			return projectActionMsg{err: err}
		}
		return projectActionMsg{text: fmt.Sprintf("registered %s with %.2fh", project.Code, project.AllocatedHours)}
	}
}

func (m ProjectsModel) submitAdjust() (ProjectsModel, tea.Cmd) {
	hours, err := parser.ParseHours(m.inputs[0].Value())
	if err != nil {
		m.status = err.Error()
		m.statusIsErr = true
		return m, nil
	}

	store, actor := m.store, m.sess.Username
	code := m.projects[m.cursor].Code
	dir, finalize := m.adjustDir, m.adjustFinish
	return m, func() tea.Msg {
		project, err := store.Adjust(actor, code, hours, dir, finalize)
		if err != nil {
			return projectActionMsg{err: err}
		}
		return projectActionMsg{text: fmt.Sprintf("%s adjusted, %.2fh remaining", project.Code, project.RemainingHours)}
	}
}

// View renders the projects view.
func (m ProjectsModel) View(width, height int) string {
	switch m.state {
	case projectsCreate:
		return m.renderForm(width, height, "New project", []string{
			"enter: save   tab: next field   esc: cancel",
		})
	case projectsAdjust:
		dir := "add work (remaining goes down)"
		if m.adjustDir == ledger.RemoveWork {
			dir = "remove work (remaining goes up)"
		}
		finish := "no"
		if m.adjustFinish {
			finish = "yes"
		}
		return m.renderForm(width, height,
			fmt.Sprintf("Adjust %s", m.projects[m.cursor].Code),
			[]string{
				fmt.Sprintf("direction: %s   finish project: %s", dir, finish),
				"enter: apply   ←/→: direction   ctrl+f: toggle finish   esc: cancel",
			})
	}
	return m.renderBrowse(width, height)
}

func (m ProjectsModel) renderBrowse(width, height int) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	var lines []string
	lines = append(lines, headerStyle.Render(fmt.Sprintf("%-10s %-24s %-10s %9s %9s  %s",
		"CODE", "NAME", "OWNER", "ALLOC", "REMAIN", "STATE")))

	if len(m.projects) == 0 {
		lines = append(lines, mutedStyle.Render("no projects yet, press n to register one"))
	}
	for i, p := range m.projects {
		state := "open"
		if p.Finished {
			state = "finished"
		}
		name := p.Name
		if len(name) > 22 {
			name = name[:19] + "..."
		}
		line := fmt.Sprintf("%-10s %-24s %-10s %9.2f %9.2f  %s",
			p.Code, name, p.Owner, p.AllocatedHours, p.RemainingHours, state)
		style := rowStyle
		if p.Finished {
			style = mutedStyle
		}
		if i == m.cursor {
			style = selectedStyle
			line = "▸ " + line
		} else {
			line = "  " + line
		}
		lines = append(lines, style.Render(line))
	}

	lines = append(lines, "")
	lines = append(lines, m.renderStatus())
	lines = append(lines, mutedStyle.Render("n: new   a: adjust   c: reconcile   r: refresh"))

	return panelStyle(width, height).Render(strings.Join(lines, "\n"))
}

func (m ProjectsModel) renderForm(width, height int, title string, footer []string) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))

	lines := []string{titleStyle.Render(title), ""}
	for i := range m.inputs {
		lines = append(lines, m.inputs[i].View())
	}
	lines = append(lines, "")
	lines = append(lines, m.renderStatus())
	for _, f := range footer {
		lines = append(lines, mutedStyle.Render(f))
	}

	return panelStyle(width, height).Render(strings.Join(lines, "\n"))
}

func (m ProjectsModel) renderStatus() string {
	if m.status == "" {
		return ""
	}
	color := ColorSuccess
	if m.statusIsErr {
		color = ColorError
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.status)
}

// newFormInputs builds a focused-first column of text inputs.
func newFormInputs(placeholders ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 64
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}
	return inputs
}

// panelStyle is the bordered content card shared by all views.
func panelStyle(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Width(width - 2).
		Height(height - 2)
}
