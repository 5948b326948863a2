package main

import (
	"github.com/odvcencio/gitlet/pkg/remote"
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push <remote> <branch>",
		Short: "Copy a branch and its history to a remote",
		Args:  exactOperands(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				_, err := remote.Push(r, st, args[0], args[1])
				return err
			})
		},
	}
}
