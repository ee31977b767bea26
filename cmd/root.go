package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gdocs-cli/gdocs/internal/logging"
)

// rootCmd represents the base command for the gdocs application
var rootCmd = &cobra.Command{
	Use:   "gdocs",
	Short: "Manage Google Docs from the command line",
	Long: `gdocs is a command-line tool for Google Docs and Drive.

It authenticates with OAuth against one or more Google accounts, stores
credentials in the system keyring, and exposes document, content, table
and sharing operations. Every command supports --json for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := logging.WithOperation(logging.Setup(verboseFlag), cmd.Name())
		slog.SetDefault(logger)
	},
}

// Global flags, shared by every subcommand.
var (
	jsonFlag    bool
	accountFlag string
	verboseFlag bool
)

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gdocs version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Output machine-readable JSON")
	rootCmd.PersistentFlags().StringVar(&accountFlag, "account", "", "Google account email to act as (overrides GDOCS_ACCOUNT and the default account)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newDocCmd())
	rootCmd.AddCommand(newContentCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newDrivesCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gdocs version",
		Run: func(cmd *cobra.Command, args []string) {
			printer().Success("gdocs version %s", version)
		},
	}
}
