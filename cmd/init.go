package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jfmyers9/playlog/internal/config"
	"github.com/jfmyers9/playlog/internal/render"
	"github.com/jfmyers9/playlog/pkg/trackapi"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the playlog config file",
	Long: `Write ~/.config/playlog/config.yaml.

Existing settings are kept unless a flag overrides them. Settings can
also come from the environment: PLAYLOG_API_URL, PLAYLOG_REQUEST_TIMEOUT,
PLAYLOG_ROW_FORMAT, PLAYLOG_LOG_LEVEL, PLAYLOG_LOG_FILE.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("api-url", "", "Tracks API base URL, e.g. http://localhost:6789/api")
	initCmd.Flags().Int("request-timeout", -1, "Per-request timeout in seconds (0 disables)")
	initCmd.Flags().String("row-format", "", "Row template for 'playlog page' text output")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Load existing config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if timeout, _ := cmd.Flags().GetInt("request-timeout"); timeout >= 0 {
		cfg.RequestTimeout = time.Duration(timeout) * time.Second
	}
	if rowFormat, _ := cmd.Flags().GetString("row-format"); rowFormat != "" {
		cfg.RowFormat = rowFormat
	}

	// Validate before writing
	if _, err := trackapi.NewClient(trackapi.Config{BaseURL: cfg.APIURL}); err != nil {
		return err
	}
	if _, err := render.NewText(cfg.RowFormat); err != nil {
		return fmt.Errorf("invalid row format: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", filepath.Join(config.GetConfigDir(), "config.yaml"))
	fmt.Fprintf(cmd.OutOrStdout(), "API URL: %s\n", cfg.APIURL)
	return nil
}
