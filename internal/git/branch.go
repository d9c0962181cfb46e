package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// CheckoutBranch ensures refs/heads/<branchName> exists, pointing at the
// current HEAD commit if it has to be created, then checks it out and moves
// HEAD to it. A branch that already exists is reused as-is, so the
// operation is idempotent.
func (g *Git) CheckoutBranch(branchName string) error {
	repo, err := g.handle()
	if err != nil {
		return err
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("%w: resolving HEAD: %w", ErrReferenceLookup, err)
	}
	if _, err := repo.CommitObject(head.Hash()); err != nil {
		return fmt.Errorf("%w: HEAD does not point at a commit: %w", ErrReferenceLookup, err)
	}

	branchRef := plumbing.NewBranchReferenceName(branchName)
	_, err = repo.Reference(branchRef, false)
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		ref := plumbing.NewHashReference(branchRef, head.Hash())
		if err := repo.Storer.SetReference(ref); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrBranchCreate, branchName, err)
		}
		g.logger.Debug("created branch", zap.String("branch", branchName))
	case err != nil:
		return fmt.Errorf("%w: %s: %w", ErrBranchCreate, branchName, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBranchCreate, branchName, err)
	}
	if err := wt.Checkout(&gogit.CheckoutOptions{Branch: branchRef}); err != nil {
		return fmt.Errorf("%w: checking out %s: %w", ErrBranchCreate, branchName, err)
	}

	g.logger.Debug("checked out branch", zap.String("branch", branchName))
	return nil
}
