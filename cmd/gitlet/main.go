package main

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	errNoCommand         = errors.New("Please enter a command.")
	errNoSuchCommand     = errors.New("No command with that name exists.")
	errIncorrectOperands = errors.New("Incorrect operands.")
)

func main() {
	os.Exit(run())
}

// run executes one gitlet command from os.Args and returns the process exit
// code.
func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "gitlet",
		Short:         "A small snapshot version-control system",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			log.SetLevel(log.WarnLevel)
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoCommand
			}
			return errNoSuchCommand
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug traces to stderr")
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newInitCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newRmCmd())
	root.AddCommand(newCommitCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newGlobalLogCmd())
	root.AddCommand(newFindCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newCheckoutCmd())
	root.AddCommand(newBranchCmd())
	root.AddCommand(newRmBranchCmd())
	root.AddCommand(newResetCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newAddRemoteCmd())
	root.AddCommand(newRmRemoteCmd())
	root.AddCommand(newPushCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newPullCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newVerifyCommitCmd())
	return root
}

// exactOperands rejects any operand count other than n.
func exactOperands(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errIncorrectOperands
		}
		return nil
	}
}
