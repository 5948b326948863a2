package main

import (
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Stage a file for the next commit",
		Args:  exactOperands(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				return r.Add(st, args[0])
			})
		},
	}
}
