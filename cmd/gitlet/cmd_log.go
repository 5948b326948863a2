package main

import (
	"fmt"
	"io"
	"time"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

const logDateFormat = "Mon Jan 2 15:04:05 2006 -0700"

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the history of the current branch",
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
			entries, err := r.Log(st)
			if err != nil {
				return err
			}
			printLog(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func newGlobalLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "global-log",
		Short: "Show every commit ever made",
		Args:  exactOperands(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			entries, err := r.GlobalLog()
			if err != nil {
				return err
			}
			printLog(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <message>",
		Short: "Print the ids of all commits with the given message",
		Args:  exactOperands(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			ids, err := r.Find(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}

func printLog(w io.Writer, entries []repo.LogEntry) {
	for _, e := range entries {
		c := e.Commit
		fmt.Fprintln(w, "===")
		fmt.Fprintf(w, "commit %s\n", e.Hash)
		if c.IsMerge() {
			fmt.Fprintf(w, "Merge: %s %s\n", c.Parent.Short(7), c.MergeParent.Short(7))
		}
		fmt.Fprintf(w, "Date: %s\n", time.Unix(0, c.Timestamp).Local().Format(logDateFormat))
		if c.Signature != "" {
			fmt.Fprintln(w, "Signed: yes")
		}
		fmt.Fprintln(w, c.Message)
		fmt.Fprintln(w)
	}
}
