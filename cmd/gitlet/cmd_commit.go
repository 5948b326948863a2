package main

import (
	"strings"

	"github.com/odvcencio/gitlet/pkg/repo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var sign bool
	var signKey string

	cmd := &cobra.Command{
		Use:   "commit <message>",
		Short: "Record the staged changes as a new commit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errIncorrectOperands
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var message string
			if len(args) == 1 {
				message = args[0]
			}
			return withState(cmd, func(r *repo.Repo, st *repo.State) error {
				keyPath := strings.TrimSpace(signKey)
				if keyPath == "" && r.Config != nil {
					keyPath = r.Config.Commit.SigningKey
				}
				if sign || keyPath != "" {
					signer, resolved, err := newSSHCommitSigner(keyPath)
					if err != nil {
						return err
					}
					r.Signer = signer
					log.Debugf("signing commit with %s", resolved)
				}
				_, err := r.Commit(st, message)
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&sign, "sign", "S", false, "sign the commit with an SSH key (default key from ~/.ssh)")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "SSH private key used to sign the commit")

	return cmd
}
