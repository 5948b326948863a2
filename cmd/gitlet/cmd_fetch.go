package main

import (
	"github.com/odvcencio/gitlet/pkg/remote"
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <remote> <branch>",
		Short: "Copy a remote branch's history into <remote>/<branch>",
		Args:  exactOperands(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				_, err := remote.Fetch(r, st, args[0], args[1])
				return err
			})
		},
	}
}
