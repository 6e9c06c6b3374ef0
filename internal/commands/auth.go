package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wigilabs/timeledger/internal/auth"
)

var registerCmd = &cobra.Command{
	Use:   "register [username]",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		password := passwordFromFlagOrPrompt(cmd)
		if password == "" {
			fmt.Println("Error: password cannot be empty")
			return
		}

		user, err := a.store.Register(args[0], password)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Account '%s' created. Log in with 'timeledger login %s'\n", user.Username, user.Username)
	}),
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and persist the session",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		password := passwordFromFlagOrPrompt(cmd)

		user, err := a.store.Login(args[0], password)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := auth.Save(a.cfg.SessionPath(), a.cfg.SessionSecret, user); err != nil {
			fmt.Printf("Error: failed to save session: %v\n", err)
			return
		}

		role := ""
		if user.Manager {
			role = " (manager)"
		}
		fmt.Printf("✅ Logged in as %s%s\n", user.Username, role)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the persisted session",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if err := auth.Clear(a.cfg.SessionPath()); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("Logged out")
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		sess, err := a.session()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if sess.Manager {
			fmt.Printf("%s (manager)\n", sess.Username)
		} else {
			fmt.Println(sess.Username)
		}
	}),
}

// passwordFromFlagOrPrompt returns the --password flag value, or reads a
// line from stdin. The prompt does not hide input: credentials here are
// shared-team convenience, not a security boundary.
func passwordFromFlagOrPrompt(cmd *cobra.Command) string {
	if password, _ := cmd.Flags().GetString("password"); password != "" {
		return password
	}
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func init() {
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
}
