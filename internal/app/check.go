package app

import (
	"github.com/spf13/cobra"
)

func NewCheckCmd(mgr Manager) *cobra.Command {
	var file pathValue

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify a stamp file matches the repository",
		Long: `
Validate a stamp file written by 'gitstamp write' and fail if its version or commit
no longer match the repository. Use it in CI to catch a committed stamp file that
was not regenerated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.CheckStamp(cmd.Context(), file.String())
		},
	}

	cmd.Flags().VarP(&file, "file", "o", "Stamp file to check")

	return cmd
}
