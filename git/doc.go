// Package git manages the local branches of a repository by shelling out to
// the git binary.
//
// Core types:
//   - Context: a repository opened with NewContext (or created with Init)
//   - CommandRunner: executes git; ExecRunner in production, MockRunner in tests
//
// Example usage:
//
//	repo, err := git.NewContext(".")
//	if errors.Is(err, git.ErrNotGitRepo) {
//		repo, err = git.Init(".")
//	}
//
//	exists, err := repo.BranchExists(name)
//	if exists {
//		err = repo.Checkout(name)
//	} else {
//		err = repo.CreateAndCheckout(name)
//	}
package git
