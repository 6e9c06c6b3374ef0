package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wigilabs/timeledger/internal/ledger"
	"github.com/wigilabs/timeledger/internal/parser"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects and hour budgets",
}

var projectAddCmd = &cobra.Command{
	Use:   "add [code] [name]",
	Short: "Register a new project with an allocated hour budget",
	Long: `Register a new project with an allocated hour budget.

Examples:
  timeledger project add P1 "Website redesign" --hours 40
  timeledger project add INT-7 "Internal tooling" --hours 12h30m`,
	Args: cobra.MinimumNArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		hoursInput, _ := cmd.Flags().GetString("hours")
		hours, err := parser.ParseHours(hoursInput)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		name := strings.Join(args[1:], " ")
		project, err := a.store.CreateProject(sess.Username, args[0], name, hours)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Project %s \"%s\" registered with %.2f hours\n",
			project.Code, project.Name, project.AllocatedHours)
	}),
}

var projectListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List visible projects",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		projects, err := a.store.ProjectsFor(sess.Username)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(projects) == 0 {
			fmt.Println("No projects yet. Use 'timeledger project add' to register one.")
			return
		}

		fmt.Printf("%-10s %-30s %-12s %10s %10s %s\n",
			"CODE", "NAME", "OWNER", "ALLOCATED", "REMAINING", "STATE")
		fmt.Println(strings.Repeat("-", 80))
		for _, p := range projects {
			state := "open"
			if p.Finished {
				state = "finished"
			}
			name := p.Name
			if len(name) > 28 {
				name = name[:25] + "..."
			}
			fmt.Printf("%-10s %-30s %-12s %10.2f %10.2f %s\n",
				p.Code, name, p.Owner, p.AllocatedHours, p.RemainingHours, state)
		}
	}),
}

var projectAdjustCmd = &cobra.Command{
	Use:   "adjust [code] [hours]",
	Short: "Manually correct a project's remaining balance",
	Long: `Manually correct a project's remaining balance.

"--add" books extra consumed hours (remaining goes down),
"--remove" returns hours to the budget (remaining goes up).
The adjustment is journaled like any other ledger entry.

Examples:
  timeledger project adjust P1 2h30m --add
  timeledger project adjust P1 5 --remove
  timeledger project adjust P1 0.5 --add --finish`,
	Args: cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		hours, err := parser.ParseHours(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		add, _ := cmd.Flags().GetBool("add")
		remove, _ := cmd.Flags().GetBool("remove")
		if add == remove {
			fmt.Println("Error: pass exactly one of --add or --remove")
			return
		}
		dir := ledger.AddWork
		if remove {
			dir = ledger.RemoveWork
		}
		finalize, _ := cmd.Flags().GetBool("finish")

		project, err := a.store.Adjust(sess.Username, args[0], hours, dir, finalize)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ %s adjusted, remaining balance: %.2f hours\n", project.Code, project.RemainingHours)
		if project.Finished {
			fmt.Printf("Project %s is now finished\n", project.Code)
		}
	}),
}

var projectReconcileCmd = &cobra.Command{
	Use:   "reconcile [code]",
	Short: "Recompute the remaining balance from the journal",
	Long: `Recompute the remaining balance by replaying the journal and
overwrite the stored running total when the two have drifted apart.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		stored, replayed, err := a.store.ReconcileProject(sess.Username, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if stored == replayed {
			fmt.Printf("✅ %s is consistent: %.2f hours remaining\n", args[0], stored)
			return
		}
		fmt.Printf("⚠️  %s drifted: stored %.2f, journal says %.2f, repaired\n", args[0], stored, replayed)
	}),
}

func init() {
	projectAddCmd.Flags().String("hours", "", "Allocated hour budget (e.g. 40, 12h30m)")
	_ = projectAddCmd.MarkFlagRequired("hours")

	projectAdjustCmd.Flags().Bool("add", false, "Book extra consumed hours")
	projectAdjustCmd.Flags().Bool("remove", false, "Return hours to the budget")
	projectAdjustCmd.Flags().Bool("finish", false, "Mark the project finished")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAdjustCmd)
	projectCmd.AddCommand(projectReconcileCmd)
}
