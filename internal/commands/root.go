package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wigilabs/timeledger/internal/auth"
	"github.com/wigilabs/timeledger/internal/config"
	"github.com/wigilabs/timeledger/internal/db"
	"github.com/wigilabs/timeledger/internal/ledger"
	"github.com/wigilabs/timeledger/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "timeledger",
	Short: "Team time tracking against project hour budgets",
	Long: `timeledger tracks working time against per-project hour budgets.
Register projects, start and stop a work timer, adjust balances and
export PDF timesheets, all from the terminal.`,
}

// app bundles what every command needs after setup.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	gdb   *gorm.DB
	store *ledger.Store
}

// setup loads config, opens the log file and the database.
func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		log = logging.Nop()
	}
	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:   cfg,
		log:   log,
		gdb:   gdb,
		store: ledger.New(gdb, log),
	}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
	_ = db.Close(a.gdb)
}

// session returns the logged-in user or an error telling them to log in.
func (a *app) session() (*auth.Session, error) {
	sess, err := auth.Load(a.cfg.SessionPath(), a.cfg.SessionSecret)
	if err != nil {
		return nil, fmt.Errorf("not logged in. Use 'timeledger login <username>' first")
	}
	return sess, nil
}

// withApp wraps a command function so setup/teardown happen around it.
func withApp(fn func(*app, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := setup()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer a.close()
		fn(a, cmd, args)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("timeledger %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(versionCmd)
}
