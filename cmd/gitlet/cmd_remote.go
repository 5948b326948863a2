package main

import (
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newAddRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-remote <name> <path>",
		Short: "Register another repository's .gitlet directory as a remote",
		Args:  exactOperands(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				return r.AddRemote(st, args[0], args[1])
			})
		},
	}
}

func newRmRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-remote <name>",
		Short: "Forget a remote",
		Args:  exactOperands(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				return r.RemoveRemote(st, args[0])
			})
		},
	}
}
