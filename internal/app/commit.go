package app

import (
	"github.com/spf13/cobra"
)

// NewCommitCmd returns a new cobra command printing only the HEAD commit.
// It does not require the repository to have any tags.
func NewCommitCmd(mgr Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "commit",
		Short: "Print the full hash of HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.PrintCommit(cmd.Context())
		},
	}
}
