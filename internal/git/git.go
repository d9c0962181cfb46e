// Package git implements the version-control pipeline eureka runs to
// persist an idea: open the configured repository, ensure and check out the
// idea branch, stage the idea log, commit it, and push the branch to origin.
package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"go.uber.org/zap"
)

// IdeaFile is the tracked file ideas are appended to. Add always stages
// this path and nothing else.
const IdeaFile = "README.md"

// Management is the operation set the rest of eureka uses to persist an
// idea. The production implementation is Git; tests substitute a double.
type Management interface {
	// Open opens an existing repository at path. It must be called, and
	// succeed, before any other operation.
	Open(path string) error

	// CheckoutBranch ensures a local branch exists and checks it out.
	// Calling it twice with the same name is safe.
	CheckoutBranch(branchName string) error

	// Add stages IdeaFile into the index.
	Add() error

	// Commit commits the index with the given subject and returns the
	// new commit's hash. The repository must already contain at least
	// one commit.
	Commit(subject string) (string, error)

	// Push pushes refs/heads/<branchName> to the same branch on origin.
	Push(branchName string) error
}

// Git owns the open repository handle. A Git value starts unopened; Open
// transitions it to the open state and every other operation requires that
// state. One Git value serves one run against one repository and must not
// be shared across goroutines.
type Git struct {
	repo       *gogit.Repository
	sshKeyPath string
	logger     *zap.Logger
}

// New returns an unopened Git. sshKeyPath is the private key used for the
// ssh credential fallback during push.
func New(sshKeyPath string, logger *zap.Logger) *Git {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Git{sshKeyPath: sshKeyPath, logger: logger}
}

// Open opens an existing repository at path. The repository is never
// created implicitly.
func (g *Git) Open(path string) error {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRepoAccess, path, err)
	}

	g.repo = repo
	g.logger.Debug("opened repository", zap.String("path", path))
	return nil
}

// handle returns the open repository, or ErrNotInitialized before a
// successful Open.
func (g *Git) handle() (*gogit.Repository, error) {
	if g.repo == nil {
		return nil, ErrNotInitialized
	}
	return g.repo, nil
}
