package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ejgo/internal/workflows"
)

var envTrimUnderscore bool

func init() {
	addKeyFlags(envCmd)
	addOutputFlag(envCmd, "out", "write the exports to FILE rather than stdout")
	envCmd.Flags().BoolVar(&envTrimUnderscore, "trim-underscore", false, "strip one leading underscore from variable names")
}

var envCmd = &cobra.Command{
	Use:   "env FILE",
	Short: "Print the environment section as shell exports",
	Long: `Decrypts FILE and prints one "export NAME=VALUE" line for each string
member of its top-level "environment" object. Values are quoted for POSIX
shells.

Examples:
  eval "$(ejgo env secrets.ejson)"
  ejgo env secrets.ejson --out .envrc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting env command")
		Logger.Debugf("Flags: keydir=%q, key-from-stdin=%t, out=%q, trim-underscore=%t",
			keyFlags.keyDir, keyFlags.fromStdin, outputPath, envTrimUnderscore)

		keys, err := keyOptions(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage(err))
			return err
		}

		result, err := workflows.Env(cmd.Context(), workflows.EnvOptions{
			KeyOptions:     keys,
			File:           args[0],
			TrimUnderscore: envTrimUnderscore,
		})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage(err))
			return err
		}
		warnAll(result.Warnings, result.AuditErr)

		Logger.Infof("Exporting %d variables", len(result.Names))
		return writeRendered(cmd, result.Data)
	},
}
