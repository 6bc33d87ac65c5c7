package cmd

import (
	"context"

	logger "github.com/PolarWolf314/ejgo/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "ejgo",
		Short: "ejgo - encrypted secrets files you can commit",
		Long: `ejgo keeps secrets in JSON files that are safe to commit to version control.

Keys and structure stay readable while each secret value is encrypted to the
public key the file declares in "_public_key". Anyone can add or change a
secret with the public key alone; decrypting needs the matching private key
from the key directory.

Usage:
  ejgo <command> [flags]

Run 'ejgo help <command>' for more details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(envCmd)
	RootCmd.AddCommand(kubeSecretsCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global flag variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetKeygenCommandState()
	resetEncryptCommandState()
	resetKeyFlags()
	resetOutputFlags()
	resetConfigCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed marker of every flag so values set by
// one test do not leak into the next.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) { flag.Changed = false }
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
