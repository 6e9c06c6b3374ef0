package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wigilabs/timeledger/internal/parser"
	"github.com/wigilabs/timeledger/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export PDF reports",
}

var reportWeekCmd = &cobra.Command{
	Use:   "week [this|last|dd/mm/yyyy]",
	Short: "Export the weekly timesheet grid",
	Long: `Export the weekly timesheet grid: one row per project, one
column per weekday, landscape A4.

Examples:
  timeledger report week
  timeledger report week last
  timeledger report week 03/08/2026
  timeledger report week --user bob   (managers only)`,
	Args: cobra.MaximumNArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		username := sess.Username
		if flagUser, _ := cmd.Flags().GetString("user"); flagUser != "" && flagUser != sess.Username {
			if !sess.Manager {
				fmt.Println("Error: only managers can export other users' timesheets")
				return
			}
			username = flagUser
		}

		selector := ""
		if len(args) == 1 {
			selector = args[0]
		}
		weekStart, err := parser.ParseWeek(selector, time.Now())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		matrix, err := a.store.WeeklySummary(username, weekStart)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		path := filepath.Join(a.cfg.ReportsDir,
			fmt.Sprintf("timesheet_%s_%s.pdf", username, weekStart.Format("2006-01-02")))
		if err := report.Weekly(path, username, matrix, a.reportOptions()); err != nil {
			fmt.Printf("Error: failed to write report: %v\n", err)
			return
		}
		fmt.Printf("📄 Weekly timesheet written to %s\n", path)
	}),
}

var reportProjectCmd = &cobra.Command{
	Use:   "project [code]",
	Short: "Export the per-project detail listing",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		username := sess.Username
		if flagUser, _ := cmd.Flags().GetString("user"); flagUser != "" && flagUser != sess.Username {
			if !sess.Manager {
				fmt.Println("Error: only managers can export other users' project reports")
				return
			}
			username = flagUser
		}

		detail, err := a.store.DetailedEntries(args[0], username)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		path := filepath.Join(a.cfg.ReportsDir, fmt.Sprintf("project_%s.pdf", detail.Project.Code))
		if err := report.Detail(path, username, detail, a.reportOptions()); err != nil {
			fmt.Printf("Error: failed to write report: %v\n", err)
			return
		}
		fmt.Printf("📄 Project report written to %s\n", path)
	}),
}

var reportOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Export the global project status (managers only)",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		projects, err := a.store.StatusOverview(sess.Username)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		now := time.Now()
		path := filepath.Join(a.cfg.ReportsDir, fmt.Sprintf("status_%s.pdf", now.Format("2006-01-02")))
		if err := report.Status(path, projects, now, a.reportOptions()); err != nil {
			fmt.Printf("Error: failed to write report: %v\n", err)
			return
		}
		fmt.Printf("📄 Status overview written to %s\n", path)
	}),
}

func (a *app) reportOptions() report.Options {
	return report.Options{LogoPath: a.cfg.LogoPath}
}

func init() {
	reportWeekCmd.Flags().String("user", "", "Export for another user (managers only)")
	reportProjectCmd.Flags().String("user", "", "Export for another user (managers only)")

	reportCmd.AddCommand(reportWeekCmd)
	reportCmd.AddCommand(reportProjectCmd)
	reportCmd.AddCommand(reportOverviewCmd)
}
