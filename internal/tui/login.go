package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wigilabs/timeledger/internal/auth"
	"github.com/wigilabs/timeledger/internal/config"
	"github.com/wigilabs/timeledger/internal/ledger"
)

// loggedInMsg switches the app to the dashboard after a successful
// login or registration.
type loggedInMsg struct {
	sess *auth.Session
}

type loginFailedMsg struct {
	err error
}

type loginMode int

const (
	modeLogin loginMode = iota
	modeRegister
)

// LoginModel is the login/register gate shown until a session exists.
type LoginModel struct {
	store *ledger.Store
	cfg   *config.Config

	inputs     [2]textinput.Model
	focusIndex int
	mode       loginMode
	errMsg     string
	submitting bool
}

// NewLoginModel creates the login gate.
func NewLoginModel(store *ledger.Store, cfg *config.Config) LoginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword

	return LoginModel{
		store:  store,
		cfg:    cfg,
		inputs: [2]textinput.Model{username, password},
	}
}

// Update handles login screen input.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginFailedMsg:
		m.submitting = false
		m.errMsg = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
			return m.refocus(), nil
		case "shift+tab", "up":
			m.focusIndex = (m.focusIndex + len(m.inputs) - 1) % len(m.inputs)
			return m.refocus(), nil
		case "ctrl+r":
			if m.mode == modeLogin {
				m.mode = modeRegister
			} else {
				m.mode = modeLogin
			}
			m.errMsg = ""
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m LoginModel) refocus() LoginModel {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()
	if username == "" || password == "" {
		m.errMsg = "username and password are required"
		return m, nil
	}

	m.submitting = true
	m.errMsg = ""
	store, cfg, mode := m.store, m.cfg, m.mode
	return m, func() tea.Msg {
		var err error
		if mode == modeRegister {
			_, err = store.Register(username, password)
			if err != nil {
				return loginFailedMsg{err: err}
			}
		}
		user, err := store.Login(username, password)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		if err := auth.Save(cfg.SessionPath(), cfg.SessionSecret, user); err != nil {
			return loginFailedMsg{err: fmt.Errorf("failed to save session: %w", err)}
		}
		return loggedInMsg{sess: &auth.Session{Username: user.Username, Manager: user.Manager}}
	}
}

// View renders the centered login card.
func (m LoginModel) View(width, height int) string {
	title := "timeledger"
	action := "Sign in"
	hint := "ctrl+r: create a new account"
	if m.mode == modeRegister {
		action = "Create account"
		hint = "ctrl+r: back to sign in"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	actionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText))

	lines := []string{
		titleStyle.Render(title),
		"",
		actionStyle.Render(action),
		"",
		m.inputs[0].View(),
		m.inputs[1].View(),
		"",
	}

	if m.submitting {
		lines = append(lines, hintStyle.Render("…"))
	} else if m.errMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		lines = append(lines, errStyle.Render(m.errMsg))
	} else {
		lines = append(lines, hintStyle.Render(hint))
	}
	lines = append(lines, hintStyle.Render("enter: submit   esc: quit"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 3).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
