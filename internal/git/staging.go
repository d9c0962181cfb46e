package git

import (
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
)

// Add stages IdeaFile into the index and writes the index out.
func (g *Git) Add() error {
	repo, err := g.handle()
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndex, err)
	}
	if _, err := wt.Add(IdeaFile); err != nil {
		return fmt.Errorf("%w: staging %s: %w", ErrIndex, IdeaFile, err)
	}
	return nil
}

// Commit writes the index as a tree and commits it with the given subject.
// The commit's single parent is the commit HEAD pointed at immediately
// before the call, and author and committer are taken from the
// repository's configured identity. The repository must already contain at
// least one commit; eureka assumes the initial commit was made when the
// idea repository was set up.
func (g *Git) Commit(subject string) (string, error) {
	repo, err := g.handle()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: no prior commit: %w", ErrReferenceLookup, err)
	}
	parent, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("%w: no prior commit: %w", ErrReferenceLookup, err)
	}

	sig, err := g.signature()
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIndex, err)
	}
	hash, err := wt.Commit(subject, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
		Parents:   []plumbing.Hash{parent.Hash},
	})
	if err != nil {
		return "", fmt.Errorf("%w: writing commit: %w", ErrIndex, err)
	}

	g.logger.Debug("created commit",
		zap.String("hash", hash.String()),
		zap.String("subject", subject))

	return hash.String(), nil
}

// signature builds the commit identity from the repository's merged
// configuration (local, global, system), the same lookup git itself does.
func (g *Git) signature() (*object.Signature, error) {
	cfg, err := g.repo.ConfigScoped(gitconfig.SystemScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignature, err)
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return nil, fmt.Errorf("%w: user.name and user.email are not set", ErrSignature)
	}
	return &object.Signature{
		Name:  cfg.User.Name,
		Email: cfg.User.Email,
		When:  time.Now(),
	}, nil
}
