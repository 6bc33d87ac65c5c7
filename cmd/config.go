package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ejgo/internal/configs"
	"github.com/PolarWolf314/ejgo/internal/ui"
)

var errConfigExists = errors.New("config file already exists")

var (
	configShowJSON   bool
	configInitKeyDir string
	configInitAudit  string
	configInitForce  bool

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage ejgo configuration",
		Long: `Provides commands for managing the user configuration file.

Examples:
  # Show the effective settings and where they come from
  ejgo config show

  # Create a config file with a custom key directory
  ejgo config init --keydir ~/.ejson/keys`,
	}
)

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")

	configInitCmd.Flags().StringVar(&configInitKeyDir, "keydir", "", "key directory to store in the config")
	configInitCmd.Flags().StringVar(&configInitAudit, "audit-log", "", "JSON lines file to record operations in")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func resetConfigCommandState() {
	configShowJSON = false
	configInitKeyDir = ""
	configInitAudit = ""
	configInitForce = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		settings, err := configs.ResolveSettings("")
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Failed("Failed to load configuration", err))
			return err
		}

		_, statErr := os.Stat(settings.ConfigPath)
		exists := statErr == nil
		Logger.Debugf("Config file %s exists=%t", settings.ConfigPath, exists)

		out := cmd.OutOrStdout()
		if configShowJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				ConfigPath   string `json:"config_path"`
				ConfigExists bool   `json:"config_exists"`
				KeyDir       string `json:"keydir"`
				KeyDirSource string `json:"keydir_source"`
				AuditLog     string `json:"audit_log,omitempty"`
			}{settings.ConfigPath, exists, settings.KeyDir, string(settings.KeyDirSource), settings.AuditLog})
		}

		configState := ""
		if !exists {
			configState = " " + ui.Muted.Sprint("not found")
		}
		auditLog := ui.Muted.Sprint("disabled")
		if settings.AuditLog != "" {
			auditLog = ui.Path.Sprint(settings.AuditLog)
		}

		fmt.Fprintf(out, "Config file:    %s%s\n", ui.Path.Sprint(settings.ConfigPath), configState)
		fmt.Fprintf(out, "Key directory:  %s %s\n", ui.Path.Sprint(settings.KeyDir), ui.Muted.Sprint(settings.KeyDirSource))
		fmt.Fprintf(out, "Audit log:      %s\n", auditLog)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		Logger.Debugf("Flags: keydir=%q, audit-log=%q, force=%t", configInitKeyDir, configInitAudit, configInitForce)

		path, err := configs.ConfigPath()
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Failed("Failed to locate the config file", err))
			return err
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Failed("A config file already exists at "+ui.Path.Sprint(path), nil)+"\n"+
				ui.Hint("Run "+ui.Code.Sprint("ejgo config init --force")+" to overwrite it"))
			return errConfigExists
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Failed("Failed to check the config file", err))
			return err
		}

		config := &configs.Config{KeyDir: configInitKeyDir, AuditLog: configInitAudit}
		if err := configs.SaveConfig(path, config); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Failed("Failed to write the config file", err))
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Succeeded("Config written to "+ui.Path.Sprint(path)))
		return nil
	},
}
