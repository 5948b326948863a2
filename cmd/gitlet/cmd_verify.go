package main

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify every stored object and the history behind each branch",
		Args:  exactOperands(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}

			report, err := r.Store.Verify()
			if err != nil {
				return err
			}

			st, err := r.Load()
			if err != nil {
				return err
			}
			heads := make([]object.Hash, 0, len(st.Heads))
			for _, h := range st.Heads {
				heads = append(heads, h)
			}
			if _, err := r.Store.ReachableSet(heads); err != nil {
				return err
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"ok: verified %d commit(s), %d blob(s)\n",
				report.Commits,
				report.Blobs,
			)
			return nil
		},
	}
}

func newVerifyCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-commit <commit>",
		Short: "Check the SSH signature of a commit",
		Args:  exactOperands(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			id, err := r.FindCommit(args[0])
			if err != nil {
				return err
			}
			c, err := r.Store.GetCommit(id)
			if err != nil {
				return err
			}
			pub, err := verifyCommitSignature(c)
			if err != nil {
				return fmt.Errorf("verify-commit %s: %w", id.Short(12), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Good %s signature for commit %s (%s)\n",
				pub.Type(), id.Short(12), ssh.FingerprintSHA256(pub))
			return nil
		},
	}
}
