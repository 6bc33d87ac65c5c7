package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ejgo/internal/ui"
	"github.com/PolarWolf314/ejgo/internal/workflows"
)

var (
	keygenKeyDir string
	keygenWrite  bool
)

func init() {
	keygenCmd.Flags().StringVar(&keygenKeyDir, "keydir", "", "directory to write the private key to (default $EJSON_KEYDIR, config keydir or /opt/ejson/keys)")
	keygenCmd.Flags().BoolVarP(&keygenWrite, "write", "w", false, "write the private key to the key directory instead of printing it")
}

func resetKeygenCommandState() {
	keygenKeyDir = ""
	keygenWrite = false
}

var keygenCmd = &cobra.Command{
	Use:     "keygen",
	Aliases: []string{"g"},
	Short:   "Generate a new key pair",
	Long: `Generates a new Curve25519 key pair.

The public key goes in the "_public_key" member of a secrets file. Without
--write the private key is printed as well; with --write it is stored in the
key directory under the public key's name and only the public key is printed.

Examples:
  # Print a new key pair
  ejgo keygen

  # Store the private key in the key directory
  ejgo keygen --write --keydir ~/.ejson/keys`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")
		Logger.Debugf("Flags: keydir=%q, write=%t", keygenKeyDir, keygenWrite)

		result, err := workflows.Keygen(cmd.Context(), workflows.KeygenOptions{
			KeyDir: keygenKeyDir,
			Write:  keygenWrite,
		})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Failed("Failed to generate key pair", err))
			return err
		}
		warnAll(nil, result.AuditErr)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Public Key:")
		fmt.Fprintln(out, result.PublicKey)

		if !keygenWrite {
			fmt.Fprintln(out, "Private Key:")
			fmt.Fprintln(out, result.PrivateKey)
			return nil
		}

		Logger.Infof("Private key written to %s", result.KeyPath)
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Succeeded("Private key for "+ui.Key.Sprint(result.PublicKey)+" written to "+ui.Path.Sprint(result.KeyPath)))
		return nil
	},
}
