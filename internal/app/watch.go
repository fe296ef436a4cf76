package app

import (
	"github.com/spf13/cobra"
)

func NewWatchCmd(mgr Manager) *cobra.Command {
	var file pathValue

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep a stamp file up to date as commits and tags are made",
		Long: `
Write the stamp file, then rewrite it whenever HEAD, a branch or a tag changes.
Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.WatchStamp(cmd.Context(), file.String(), nil)
		},
	}

	cmd.Flags().VarP(&file, "file", "o", "Stamp file to maintain")

	return cmd
}
