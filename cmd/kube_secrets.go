package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ejgo/internal/workflows"
)

func init() {
	addKeyFlags(kubeSecretsCmd)
	addOutputFlag(kubeSecretsCmd, "out", "write the manifests to FILE rather than stdout")
}

var kubeSecretsCmd = &cobra.Command{
	Use:   "kube-secrets FILE",
	Short: "Print the kubernetes section as Secret manifests",
	Long: `Decrypts FILE and prints a v1 Secret manifest for each object under its
top-level "kubernetes" member. The object's key names the Secret, its string
members become the Secret's data and "_namespace" sets its namespace.

Examples:
  ejgo kube-secrets secrets.ejson | kubectl apply -f -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting kube-secrets command")
		Logger.Debugf("Flags: keydir=%q, key-from-stdin=%t, out=%q", keyFlags.keyDir, keyFlags.fromStdin, outputPath)

		keys, err := keyOptions(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage(err))
			return err
		}

		result, err := workflows.KubeSecrets(cmd.Context(), workflows.KubeSecretsOptions{
			KeyOptions: keys,
			File:       args[0],
		})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureMessage(err))
			return err
		}
		warnAll(result.Warnings, result.AuditErr)

		Logger.Infof("Rendered secrets: %v", result.Names)
		return writeRendered(cmd, result.Data)
	},
}
