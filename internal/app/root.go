package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/andyballingall/gitstamp/internal/config"
	"github.com/andyballingall/gitstamp/internal/fs"
	"github.com/andyballingall/gitstamp/internal/repo"
	"github.com/andyballingall/gitstamp/internal/runner"
	"github.com/andyballingall/gitstamp/internal/version"
)

// Version and Commit identify the gitstamp build, set at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

const InitConfigCmdName = "init-config"

var LongDescription = `
gitstamp reads the latest git tag and the HEAD commit of a repository so a build
can embed them. Run without a command it prints "<version> <commit>".

If the repository has no tags it prints "` + repo.NoTagMessage + `" and exits with status 1.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stdout, stderr io.Writer, env fs.EnvProvider) *cobra.Command {
	var debug bool
	var dir pathValue
	var configPath pathValue

	rootCmd := &cobra.Command{
		Use:           "gitstamp",
		Short:         "Resolve the latest git tag and HEAD commit for a build",
		Version:       version.Info{Version: Version, Commit: Commit}.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help, completion and init-config commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) || cmd.Name() == InitConfigCmdName {
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}

			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				return nil
			}

			logger, closer, err := setupLogger(stderr, ll, env.Get(LogEnvVar))
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}
			if closer != nil {
				lazy.AddCloser(closer)
			}

			// 2. Build Dependencies
			repoDir, err := fs.CanonicalDir(dir.String())
			if err != nil {
				return fmt.Errorf("invalid repository directory: %w", err)
			}

			cfgPath, required := config.Locate(configPath.String(), env.Get(config.ConfigEnvVar), repoDir)
			cfg, err := config.New(cfgPath, required)
			if err != nil {
				return err
			}
			if cfg.Path != "" {
				logger.Debug("using configuration file", "file", cfg.Path)
			}

			r := runner.NewExecRunner(logger, cfg.Timeout)
			gitter := repo.NewCLIGitter(cfg, r, repoDir)

			// 3. Hydrate the Lazy Wrapper
			lazy.SetInner(NewCLIManager(logger, cfg, gitter, repoDir, stdout))

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return lazy.Resolve(cmd.Context(), version.FormatText)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().VarP(&dir, "dir", "C", "Repository directory (defaults to the working directory)")
	rootCmd.PersistentFlags().Var(&configPath, "config", "Configuration file (overrides "+config.ConfigEnvVar+")")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	// Subcommands
	rootCmd.AddCommand(NewResolveCmd(lazy))
	rootCmd.AddCommand(NewTagCmd(lazy))
	rootCmd.AddCommand(NewCommitCmd(lazy))
	rootCmd.AddCommand(NewWriteCmd(lazy))
	rootCmd.AddCommand(NewCheckCmd(lazy))
	rootCmd.AddCommand(NewWatchCmd(lazy))
	rootCmd.AddCommand(NewInitConfigCmd())

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
