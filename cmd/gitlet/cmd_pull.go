package main

import (
	"github.com/odvcencio/gitlet/pkg/remote"
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull <remote> <branch>",
		Short: "Fetch a remote branch and merge it into the current branch",
		Args:  exactOperands(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				report, err := remote.Pull(r, st, args[0], args[1])
				if err != nil {
					return err
				}
				printMergeReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
}
