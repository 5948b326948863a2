package main

import (
	"fmt"
	"io"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch>",
		Short: "Merge a branch into the current branch",
		Args:  exactOperands(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				report, err := r.Merge(st, args[0])
				if err != nil {
					return err
				}
				printMergeReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
}

func printMergeReport(w io.Writer, report *repo.MergeReport) {
	switch {
	case report.Kind == repo.MergeAlreadyAncestor:
		fmt.Fprintln(w, "Given branch is an ancestor of the current branch.")
	case report.Kind == repo.MergeFastForward:
		fmt.Fprintln(w, "Current branch fast-forwarded.")
	case report.HasConflicts:
		fmt.Fprintln(w, "Encountered a merge conflict.")
	}
}
