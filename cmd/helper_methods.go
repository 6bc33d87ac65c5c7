package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/ejgo/internal/errors"
	"github.com/PolarWolf314/ejgo/internal/ui"
	"github.com/PolarWolf314/ejgo/internal/utils"
	"github.com/PolarWolf314/ejgo/internal/workflows"
)

// startSpinner creates and starts a spinner on stderr with the given message.
// The spinner only runs when stderr is a terminal and neither verbose nor
// debug output is enabled, so it never interleaves with log lines or ends
// up in redirected output. Returns the spinner and a function that should be
// deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function calls ui.EnsureNewline() on the final message and prints it to
// out.
func startSpinner(out io.Writer, message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	active := !verbose && !debug && utils.IsStderrTerminal()
	if active {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Cleared so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if active {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}

// failureMessage turns a workflow error into the lines shown to the user.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Failed("No secrets files found", err) + "\n" +
			ui.Hint("Pass a file, a directory or a glob such as "+ui.Code.Sprint("'**/*.ejson'"))
	case errors.Is(err, kerrors.ErrMissingPublicKey):
		return ui.Failed("The file does not declare a valid "+ui.Highlight.Sprint("_public_key"), err) + "\n" +
			ui.Hint("Generate one with "+ui.Code.Sprint("ejgo keygen")+" and add it to the file")
	case errors.Is(err, kerrors.ErrKeyNotFound):
		return ui.Failed("No private key found for this file", err) + "\n" +
			ui.Hint("Use "+ui.Flag.Sprint("--keydir")+", "+ui.Flag.Sprint("--key-from-stdin")+" or set "+ui.Code.Sprint("EJSON_KEYDIR"))
	case errors.Is(err, kerrors.ErrInvalidKey):
		return ui.Failed("The private key is not 64 hex characters", err)
	case errors.Is(err, kerrors.ErrInvalidPlaintext):
		return ui.Failed("A value decrypted to invalid UTF-8", err)
	case errors.Is(err, kerrors.ErrDecryptionFailed):
		return ui.Failed("Failed to decrypt the file. Is this the right private key?", err)
	case errors.Is(err, kerrors.ErrInvalidDocument):
		return ui.Failed("The file is not a JSON object", err)
	case errors.Is(err, kerrors.ErrSectionNotFound):
		return ui.Failed("The file has no section to render", err)
	default:
		return ui.Failed("Command failed", err)
	}
}

// keyFlags are shared by the commands that decrypt.
var keyFlags struct {
	keyDir    string
	fromStdin bool
}

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&keyFlags.keyDir, "keydir", "", "directory holding private keys (default $EJSON_KEYDIR, config keydir or /opt/ejson/keys)")
	cmd.Flags().BoolVar(&keyFlags.fromStdin, "key-from-stdin", false, "read the private key from stdin")
}

func resetKeyFlags() {
	keyFlags.keyDir = ""
	keyFlags.fromStdin = false
}

// keyOptions builds workflow key options from the flags, reading the private
// key from the command's stdin when asked to.
func keyOptions(cmd *cobra.Command) (workflows.KeyOptions, error) {
	opts := workflows.KeyOptions{KeyDir: keyFlags.keyDir}
	if !keyFlags.fromStdin {
		return opts, nil
	}

	var (
		data []byte
		err  error
	)
	if in := cmd.InOrStdin(); in != os.Stdin {
		data, err = utils.ReadAllNonEmpty(in)
	} else {
		data, err = utils.ReadStdin()
	}
	if err != nil {
		return opts, err
	}

	Logger.Debugf("Read %d bytes of private key from stdin", len(data))
	opts.PrivateKeyData = data
	return opts, nil
}

// outputPath is the -o flag shared by the commands that render documents.
var outputPath string

func addOutputFlag(cmd *cobra.Command, name, usage string) {
	cmd.Flags().StringVarP(&outputPath, name, "o", "", usage)
}

func resetOutputFlags() {
	outputPath = ""
}

// warnAll logs workflow warnings and a failed audit write, neither of which
// fails the command.
func warnAll(warnings []string, auditErr error) {
	for _, w := range warnings {
		Logger.Warnf("%s", w)
	}
	if auditErr != nil {
		Logger.Warnf("Failed to write audit log: %v", auditErr)
	}
}

// writeRendered writes rendered output to the -o file, or to stdout.
func writeRendered(cmd *cobra.Command, data []byte) error {
	if err := utils.WriteOutput(cmd.OutOrStdout(), outputPath, data); err != nil {
		return err
	}
	if outputPath != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Succeeded("Wrote "+ui.Path.Sprint(outputPath)))
	}
	return nil
}
