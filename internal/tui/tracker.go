package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wigilabs/timeledger/internal/auth"
	"github.com/wigilabs/timeledger/internal/ledger"
	"github.com/wigilabs/timeledger/internal/models"
)

type trackerLoadedMsg struct {
	open   []models.Project
	active *models.User
	err    error
}

type trackerActionMsg struct {
	text string
	err  error
}

// trackerTickMsg refreshes the elapsed display once a second while a
// timer runs.
type trackerTickMsg struct{}

// TrackerModel is the start/stop timer view.
type TrackerModel struct {
	store *ledger.Store
	sess  *auth.Session

	open   []models.Project
	cursor int

	// active mirrors the persisted working state; nil when idle.
	active  *models.User
	elapsed time.Duration

	status      string
	statusIsErr bool
}

// NewTrackerModel creates the tracker view.
func NewTrackerModel(store *ledger.Store, sess *auth.Session) TrackerModel {
	return TrackerModel{store: store, sess: sess}
}

// load fetches open projects and the persisted timer state.
func (m TrackerModel) load() tea.Cmd {
	store, username := m.store, m.sess.Username
	return func() tea.Msg {
		open, err := store.OpenProjectsFor(username)
		if err != nil {
			return trackerLoadedMsg{err: err}
		}
		active, err := store.ActiveTimer(username)
		if err != nil {
			return trackerLoadedMsg{err: err}
		}
		return trackerLoadedMsg{open: open, active: active}
	}
}

func tickOnce() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return trackerTickMsg{}
	})
}

// Update handles tracker messages.
func (m TrackerModel) Update(msg tea.Msg) (TrackerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trackerLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusIsErr = true
			return m, nil
		}
		m.open = msg.open
		m.active = msg.active
		if m.cursor >= len(m.open) {
			m.cursor = 0
		}
		if m.active != nil {
			m.elapsed = time.Since(*m.active.WorkingSince)
			return m, tickOnce()
		}
		return m, nil

	case trackerActionMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusIsErr = true
			return m, nil
		}
		m.status = msg.text
		m.statusIsErr = false
		return m, m.load()

	case trackerTickMsg:
		if m.active == nil {
			return m, nil
		}
		m.elapsed = time.Since(*m.active.WorkingSince)
		return m, tickOnce()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.open)-1 {
				m.cursor++
			}
		case "r":
			return m, m.load()
		case "enter", "s":
			if m.active != nil {
				return m, m.stop()
			}
			return m, m.start()
		}
	}
	return m, nil
}

func (m TrackerModel) start() tea.Cmd {
	if len(m.open) == 0 {
		return nil
	}
	store, username := m.store, m.sess.Username
	code := m.open[m.cursor].Code
	return func() tea.Msg {
		if err := store.StartTimer(username, code); err != nil {
			return trackerActionMsg{err: err}
		}
		return trackerActionMsg{text: fmt.Sprintf("started tracking %s", code)}
	}
}

func (m TrackerModel) stop() tea.Cmd {
	store, username := m.store, m.sess.Username
	return func() tea.Msg {
		entry, err := store.StopTimer(username)
		if err != nil {
			return trackerActionMsg{err: err}
		}
		return trackerActionMsg{
			text: fmt.Sprintf("booked %.2fh on %s", entry.DurationHours, entry.ProjectCode),
		}
	}
}

// View renders the tracker view.
func (m TrackerModel) View(width, height int) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	bigStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))

	var lines []string
	if m.active != nil {
		lines = append(lines,
			headerStyle.Render("⏱  TRACKING"),
			"",
			bigStyle.Render(fmt.Sprintf("%s  %s", *m.active.ActiveProjectCode, formatElapsed(m.elapsed))),
			mutedStyle.Render(fmt.Sprintf("since %s", m.active.WorkingSince.Format("15:04:05"))),
			"",
			mutedStyle.Render("s: stop and book the hours"),
		)
	} else {
		lines = append(lines, headerStyle.Render("Start a timer"), "")
		if len(m.open) == 0 {
			lines = append(lines, mutedStyle.Render("no open projects, register one under Projects"))
		}
		for i, p := range m.open {
			line := fmt.Sprintf("%-10s %-26s %8.2fh left", p.Code, p.Name, p.RemainingHours)
			style := rowStyle
			if i == m.cursor {
				style = selectedStyle
				line = "▸ " + line
			} else {
				line = "  " + line
			}
			lines = append(lines, style.Render(line))
		}
		lines = append(lines, "", mutedStyle.Render("enter/s: start   r: refresh"))
	}

	lines = append(lines, "", m.renderStatus())

	return panelStyle(width, height).Render(strings.Join(lines, "\n"))
}

func (m TrackerModel) renderStatus() string {
	if m.status == "" {
		return ""
	}
	color := ColorSuccess
	if m.statusIsErr {
		color = ColorError
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.status)
}

func formatElapsed(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
