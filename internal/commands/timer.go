package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [project-code]",
	Short: "Start tracking time on a project",
	Long: `Start tracking time on a project. One timer runs per user;
starting while one is already running is an error, not an overwrite.

Examples:
  timeledger start P1`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := a.store.StartTimer(sess.Username, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏱️  Started tracking time on %s at %s\n", args[0], time.Now().Format("15:04:05"))
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running timer and book the hours",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		entry, err := a.store.StopTimer(sess.Username)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		project, err := a.store.GetProject(entry.ProjectCode)
		if err != nil {
			fmt.Printf("⏹️  Stopped, booked %s on %s\n", formatHours(entry.DurationHours), entry.ProjectCode)
			return
		}
		fmt.Printf("⏹️  Stopped, booked %s on %s, %.2f hours remaining\n",
			formatHours(entry.DurationHours), project.Code, project.RemainingHours)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current timer state",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		user, err := a.store.ActiveTimer(sess.Username)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if user == nil {
			fmt.Println("No timer running")
			return
		}

		elapsed := time.Since(*user.WorkingSince)
		fmt.Printf("⏱️  Tracking %s since %s (%s elapsed)\n",
			*user.ActiveProjectCode,
			user.WorkingSince.Format("15:04:05"),
			formatDuration(elapsed))
	}),
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}

// formatHours renders fractional hours for terminal output.
func formatHours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}
