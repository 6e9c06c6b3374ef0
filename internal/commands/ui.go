package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wigilabs/timeledger/internal/auth"
	"github.com/wigilabs/timeledger/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive dashboard",
	Long: `Open the full-screen dashboard: login gate, project
registration, the start/stop tracker and PDF exports in one place.`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		// An existing session skips the login gate.
		sess, _ := auth.Load(a.cfg.SessionPath(), a.cfg.SessionSecret)

		deps := tui.Deps{
			Store:   a.store,
			Cfg:     a.cfg,
			Session: sess,
		}
		if err := tui.Run(deps); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}
