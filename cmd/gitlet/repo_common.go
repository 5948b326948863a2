package main

import (
	"github.com/odvcencio/gitlet/pkg/repo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// openRepo opens the repository containing the working directory and
// applies its log level unless --verbose was given.
func openRepo(cmd *cobra.Command) (*repo.Repo, error) {
	r, err := repo.Open(".")
	if err != nil {
		return nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose && r.Config != nil {
		if lvl, err := log.ParseLevel(r.Config.Log.Level); err == nil {
			log.SetLevel(lvl)
		} else {
			log.Warnf("ignoring log level %q in config: %v", r.Config.Log.Level, err)
		}
	}
	return r, nil
}

// withState loads the repository state, runs fn and saves the state only
// if fn succeeded.
func withState(cmd *cobra.Command, fn func(r *repo.Repo, st *repo.State) error) error {
	r, err := openRepo(cmd)
	if err != nil {
		return err
	}
	st, err := r.Load()
	if err != nil {
		return err
	}
	if err := fn(r, st); err != nil {
		return err
	}
	return r.Save(st)
}
