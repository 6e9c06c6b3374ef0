package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wigilabs/timeledger/internal/auth"
	"github.com/wigilabs/timeledger/internal/config"
	"github.com/wigilabs/timeledger/internal/ledger"
)

// Deps carries everything the dashboard needs from the command layer.
type Deps struct {
	Store *ledger.Store
	Cfg   *config.Config
	// Session is the persisted login, nil when nobody is logged in;
	// the dashboard then opens on the login gate.
	Session *auth.Session
}

// Run starts the full-screen dashboard.
func Run(deps Deps) error {
	model := NewAppModel(deps)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(AppModel); ok && m.fatalErr != nil {
		return fmt.Errorf("dashboard error: %w", m.fatalErr)
	}
	return nil
}
