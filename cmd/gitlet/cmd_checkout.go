package main

import (
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

// checkout accepts three forms:
//
//	checkout -- <file>
//	checkout <commit> -- <file>
//	checkout <branch>
func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout [<commit>] -- <file> | checkout <branch>",
		Short: "Restore a file from a commit, or switch branches",
		Args: func(cmd *cobra.Command, args []string) error {
			switch dash := cmd.ArgsLenAtDash(); {
			case dash == -1 && len(args) == 1:
			case dash == 0 && len(args) == 1:
			case dash == 1 && len(args) == 2:
			default:
				return errIncorrectOperands
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				switch dash {
				case -1:
					return r.CheckoutBranch(st, args[0])
				case 0:
					return r.CheckoutFile(st, "", args[0])
				default:
					return r.CheckoutFile(st, args[0], args[1])
				}
			})
		},
	}
}
