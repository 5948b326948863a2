package main

import (
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a new gitlet repository in the current directory",
		Args:  exactOperands(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := repo.Init(".")
			return err
		},
	}
}
