package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ejgo/internal/workflows"
)

func init() {
	addKeyFlags(decryptCmd)
	addOutputFlag(decryptCmd, "output", "write the decrypted file to FILE rather than stdout")
}

var decryptCmd = &cobra.Command{
	Use:     "decrypt FILE",
	Aliases: []string{"d"},
	Short:   "Decrypt a secrets file",
	Long: `Decrypts every encrypted value of FILE and prints the whole document.
The file itself is not modified.

The private key is read from <keydir>/<public key>, where the public key is
the file's "_public_key", or from stdin with --key-from-stdin.

Examples:
  ejgo decrypt secrets.ejson
  ejgo decrypt secrets.ejson -o secrets.json
  cat private.key | ejgo decrypt --key-from-stdin secrets.ejson`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		Logger.Debugf("Flags: keydir=%q, key-from-stdin=%t, output=%q", keyFlags.keyDir, keyFlags.fromStdin, outputPath)

		keys, err := keyOptions(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage(err))
			return err
		}

		result, err := workflows.Decrypt(cmd.Context(), workflows.DecryptOptions{
			KeyOptions: keys,
			File:       args[0],
		})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage(err))
			return err
		}
		warnAll(result.Warnings, result.AuditErr)

		if result.KeyPath != "" {
			Logger.Infof("Decrypted with private key %s", result.KeyPath)
		}
		return writeRendered(cmd, result.Data)
	},
}
