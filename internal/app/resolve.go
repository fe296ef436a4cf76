package app

import (
	"github.com/spf13/cobra"

	"github.com/andyballingall/gitstamp/internal/version"
)

func NewResolveCmd(mgr Manager) *cobra.Command {
	format := formatValue(version.FormatText)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the latest tag and the HEAD commit",
		Long: `
Print the latest tag and the full hash of HEAD. The latest tag is the last line
of 'git tag' output, ordered according to the tagSort configuration property.`,
		Args: cobra.NoArgs,
		Example: `
  gitstamp resolve
  gitstamp resolve --format json
  go build -ldflags "$(gitstamp resolve --format ldflags)" ./cmd/app
  eval "$(gitstamp resolve --format env)"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.Resolve(cmd.Context(), version.Format(format))
		},
	}

	cmd.Flags().VarP(&format, "format", "f", "Output format: text, json, env, ldflags or table")

	return cmd
}
