package main

import (
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch <name>",
		Short: "Create a branch at the current head",
		Args:  exactOperands(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				return r.CreateBranch(st, args[0])
			})
		},
	}
}

func newRmBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-branch <name>",
		Short: "Delete a branch pointer",
		Args:  exactOperands(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				return r.DeleteBranch(st, args[0])
			})
		},
	}
}
