package repo

import "errors"

// Domain errors. Their messages are shown to the user verbatim, so callers
// return them unwrapped and compare with errors.Is.
var (
	ErrNotInitialized     = errors.New("Not in an initialized Gitlet directory.")
	ErrAlreadyInitialized = errors.New("A Gitlet version-control system already exists in the current directory.")

	ErrFileNotFound      = errors.New("File does not exist.")
	ErrNothingToRemove   = errors.New("No reason to remove the file.")
	ErrEmptyMessage      = errors.New("Please enter a commit message.")
	ErrNothingStaged     = errors.New("No changes added to the commit.")
	ErrOutsideRepository = errors.New("File is outside the repository.")

	ErrBranchAlreadyExists       = errors.New("A branch with that name already exists.")
	ErrNoSuchBranch              = errors.New("A branch with that name does not exist.")
	ErrCannotRemoveCurrentBranch = errors.New("Cannot remove the current branch.")
	ErrAlreadyOnBranch           = errors.New("No need to checkout the current branch.")
	ErrNoSuchCheckoutBranch      = errors.New("No such branch exists.")
	ErrInvalidBranchName         = errors.New("Invalid branch name.")

	ErrNoSuchCommit        = errors.New("No commit with that id exists.")
	ErrAmbiguousCommitID   = errors.New("Commit id prefix is ambiguous.")
	ErrFileNotInCommit     = errors.New("File does not exist in that commit.")
	ErrNoCommitWithMessage = errors.New("Found no commit with that message.")

	ErrUntrackedFileInWay = errors.New("There is an untracked file in the way; delete it, or add and commit it first.")
	ErrUncommittedChanges = errors.New("You have uncommitted changes.")
	ErrMergeWithSelf      = errors.New("Cannot merge a branch with itself.")

	ErrRemoteAlreadyExists     = errors.New("A remote with that name already exists.")
	ErrRemoteNotFound          = errors.New("A remote with that name does not exist.")
	ErrRemoteDirectoryNotFound = errors.New("Remote directory not found.")
	ErrNoSuchRemoteBranch      = errors.New("That remote does not have that branch.")
	ErrNeedsPull               = errors.New("Please pull down remote changes before pushing.")
	ErrTrackingBranchConflict  = errors.New("A local branch name conflicts with the remote-tracking branch.")
)
