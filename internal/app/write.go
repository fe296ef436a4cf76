package app

import (
	"github.com/spf13/cobra"
)

func NewWriteCmd(mgr Manager) *cobra.Command {
	var file pathValue

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write the resolved version and commit to a JSON stamp file",
		Long: `
Resolve the latest tag and HEAD commit and write them to a JSON stamp file which a
build can embed (for example with go:embed). Relative paths are resolved against
the repository directory. Defaults to the stampFile configuration property.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.WriteStamp(cmd.Context(), file.String())
		},
	}

	cmd.Flags().VarP(&file, "file", "o", "Stamp file to write")

	return cmd
}
