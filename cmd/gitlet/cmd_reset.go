package main

import (
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <commit>",
		Short: "Check out a commit and move the current branch to it",
		Args:  exactOperands(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				return r.Reset(st, args[0])
			})
		},
	}
}
