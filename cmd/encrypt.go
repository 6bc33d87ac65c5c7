package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ejgo/internal/ui"
	"github.com/PolarWolf314/ejgo/internal/utils"
	"github.com/PolarWolf314/ejgo/internal/workflows"
)

var (
	encryptCompact bool
	encryptDryRun  bool
)

func init() {
	encryptCmd.Flags().BoolVar(&encryptCompact, "compact", false, "fold multi-line values onto one line before encrypting")
	encryptCmd.Flags().BoolVar(&encryptDryRun, "dry-run", false, "encrypt in memory and report without writing files")
}

func resetEncryptCommandState() {
	encryptCompact = false
	encryptDryRun = false
}

var encryptCmd = &cobra.Command{
	Use:     "encrypt FILE...",
	Aliases: []string{"e"},
	Short:   "Encrypt one or more secrets files in place",
	Long: `Encrypts every plaintext value of each file to the public key the file
declares in "_public_key". Keys starting with an underscore keep their value
in plaintext, and values that are already encrypted are left alone.

Arguments may be files, directories (searched for *.ejson and *.json) or
globs, including ** patterns. A file is only rewritten when all of its values
encrypted; a failing file does not stop the others.

Examples:
  # Encrypt a single file
  ejgo encrypt secrets.ejson

  # Encrypt every secrets file below deploy/
  ejgo encrypt 'deploy/**/*.ejson'

  # Preview without writing
  ejgo encrypt --dry-run config/`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		Logger.Debugf("Flags: compact=%t, dry-run=%t, args=%v", encryptCompact, encryptDryRun, args)

		spinner, cleanup := startSpinner(cmd.OutOrStdout(), "Encrypting secrets files...")
		defer cleanup()

		result, err := workflows.Encrypt(cmd.Context(), workflows.EncryptOptions{
			FilePatterns: args,
			Compact:      encryptCompact,
			DryRun:       encryptDryRun,
		})

		var lines []string
		if result != nil {
			warnAll(nil, result.AuditErr)
			paths := make([]string, 0, len(result.Files))
			for _, f := range result.Files {
				Logger.Debugf("Encrypted %s to public key %s", f.Path, ui.Key.Sprint(f.PublicKey))
				paths = append(paths, f.Path)
				if result.DryRun {
					lines = append(lines, ui.Warning.Sprint("[dry-run]")+fmt.Sprintf(" Would write %d bytes to %s", f.Bytes, f.Path))
				} else {
					lines = append(lines, fmt.Sprintf("Wrote %d bytes to %s", f.Bytes, f.Path))
				}
			}
			if result.DryRun && len(paths) > 0 {
				lines = append(lines, ui.Warning.Sprint("[dry-run]")+
					fmt.Sprintf(" No files were modified. %d %s would be rewritten:", len(paths), utils.Plural(len(paths), "file"))+
					utils.FormatPaths(paths))
			}
		}

		if err != nil {
			Logger.Errorf("Encrypt failed: %v", err)
			var merr *multierror.Error
			if errors.As(err, &merr) {
				lines = append(lines, ui.Error.Sprint(ui.ErrorMark)+fmt.Sprintf(" Failed to encrypt %d %s:", len(merr.Errors), utils.Plural(len(merr.Errors), "file")))
				for _, e := range merr.Errors {
					lines = append(lines, failureMessage(e))
				}
			} else {
				lines = append(lines, failureMessage(err))
			}
			spinner.FinalMSG = strings.Join(lines, "\n")
			return err
		}

		Logger.Infof("Encrypt command completed successfully. Encrypted %d files", len(result.Files))
		spinner.FinalMSG = strings.Join(lines, "\n")
		return nil
	},
}
