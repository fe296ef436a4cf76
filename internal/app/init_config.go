package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andyballingall/gitstamp/internal/config"
)

// NewInitConfigCmd returns a new cobra command for writing a default configuration file.
func NewInitConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   InitConfigCmdName + " [dirpath]",
		Short: "Create a default " + config.ConfigFile,
		Long:  `Write a commented default configuration file into the given directory (default: --dir, or the working directory).`,
		Args:  cobra.MaximumNArgs(1),
		Example: `
gitstamp init-config
gitstamp init-config ./my-repo
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirpath := "."
			if f := cmd.Flag("dir"); f != nil && f.Value.String() != "" {
				dirpath = f.Value.String()
			}
			if len(args) > 0 {
				dirpath = args[0]
			}

			configPath := filepath.Join(dirpath, config.ConfigFile)

			// 1. Check if config file already exists
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("configuration already exists: %s", configPath)
			}

			// 2. Write default config
			//nolint:gosec // config is committed alongside the source
			if err := os.WriteFile(configPath, []byte(config.DefaultConfigContent), 0o644); err != nil {
				return fmt.Errorf("failed to write configuration file: %w", err)
			}

			cmd.Printf("Successfully created %s\n", configPath)
			return nil
		},
	}

	return cmd
}
