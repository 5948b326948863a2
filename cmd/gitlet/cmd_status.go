package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show branches, staged files and working tree changes",
		Args:  exactOperands(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			st, err := r.Load()
			if err != nil {
				return err
			}
			s, err := r.Status(st)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "=== Branches ===")
			for _, b := range s.Branches {
				if b == s.Current {
					fmt.Fprintf(out, "*%s\n", b)
				} else {
					fmt.Fprintln(out, b)
				}
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "=== Staged Files ===")
			for _, f := range s.Staged {
				fmt.Fprintln(out, f)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "=== Removed Files ===")
			for _, f := range s.Removed {
				fmt.Fprintln(out, f)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "=== Modifications Not Staged For Commit ===")
			for _, e := range s.Unstaged {
				fmt.Fprintf(out, "%s (%s)\n", e.Path, e.Status)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, "=== Untracked Files ===")
			for _, f := range s.Untracked {
				fmt.Fprintln(out, f)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
