package app

import (
	"github.com/spf13/cobra"
)

// NewTagCmd returns a new cobra command printing only the latest tag.
func NewTagCmd(mgr Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "tag",
		Short: "Print the latest tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.PrintTag(cmd.Context())
		},
	}
}
