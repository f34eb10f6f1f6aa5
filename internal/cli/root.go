package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kracgan/student-management-frontend/internal/config"
	"github.com/kracgan/student-management-frontend/internal/logging"
)

var (
	flagDB        string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the smf CLI.
func NewRootCmd() *cobra.Command {
	// Env (and .env) provide the defaults; flags override.
	envCfg := config.FromEnv()

	root := &cobra.Command{
		Use:   "smf",
		Short: "Student management web front end",
		Long:  "smf serves the student management web UI and manages its session store.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(flagLogLevel, flagLogFormat)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagDB, "db", envCfg.DBPath, "Session database path (default ~/.smf/sessions.db)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", envCfg.LogLevel, "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", envCfg.LogFormat, "Log format (text, json)")

	root.AddCommand(
		newServeCmd(),
		newSessionsCmd(),
		newPingCmd(),
	)

	return root
}
