// Package testhelpers builds real temporary git repositories for tests,
// shelling out to the git binary so fixtures behave exactly like the
// repositories eureka operates on.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// IdeaFileName mirrors the tracked file eureka stages and commits.
const IdeaFileName = "README.md"

// GitRepo is a git repository rooted in a temporary directory.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a repository in dir with branch main and a test
// identity configured. No initial commit is made; call CommitIdea (or
// WriteIdeaFile plus git add/commit) to create history.
func NewGitRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "init", "-b", "main", dir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	repo := &GitRepo{Dir: dir}
	if err := repo.runGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.runGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	return repo, nil
}

// runGitCommand executes a git command in the repository directory.
// GIT_CONFIG_GLOBAL=/dev/null keeps the host's global config out of tests.
func (r *GitRepo) runGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	return cmd.Run()
}

// runGitCommandAndGetOutput executes a git command and returns its trimmed
// output.
func (r *GitRepo) runGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	return r.runGitCommand(args...)
}

// WriteIdeaFile writes content to the repository's idea file without
// staging it.
func (r *GitRepo) WriteIdeaFile(content string) error {
	path := filepath.Join(r.Dir, IdeaFileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write idea file: %w", err)
	}
	return nil
}

// CommitIdea writes content to the idea file, stages it and commits with
// the given message.
func (r *GitRepo) CommitIdea(content, message string) error {
	if err := r.WriteIdeaFile(content); err != nil {
		return err
	}
	if err := r.runGitCommand("add", IdeaFileName); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-m", message)
}

// CreateBareRemote creates a bare sibling repository and wires it up as
// the remote named name. Returns the bare repository's path.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bareDir := r.Dir + "-" + name + ".git"

	cmd := exec.Command("git", "init", "--bare", bareDir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}

	if err := r.runGitCommand("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}
	return bareDir, nil
}

// CurrentBranchName returns the checked-out branch name.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.runGitCommandAndGetOutput("branch", "--show-current")
}

// HeadSymbolicRef returns the full reference name HEAD points at,
// e.g. refs/heads/ideas.
func (r *GitRepo) HeadSymbolicRef() (string, error) {
	return r.runGitCommandAndGetOutput("symbolic-ref", "HEAD")
}

// GetRevision returns the SHA of a revision.
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.runGitCommandAndGetOutput("rev-parse", rev)
}

// LocalBranches returns the repository's local branch names.
func (r *GitRepo) LocalBranches() ([]string, error) {
	output, err := r.runGitCommandAndGetOutput("branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	var branches []string
	for _, line := range strings.Split(output, "\n") {
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// CommitSubject returns the subject line of a revision's commit message.
func (r *GitRepo) CommitSubject(rev string) (string, error) {
	return r.runGitCommandAndGetOutput("log", "-1", "--format=%s", rev)
}

// FileStatus returns the two-letter porcelain status for a path, or an
// empty string when the path is clean. The status columns are
// position-sensitive, so the output is not trimmed.
func (r *GitRepo) FileStatus(path string) (string, error) {
	cmd := exec.Command("git", "status", "--porcelain", "--", path)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	line := strings.TrimRight(string(output), "\n")
	if len(line) < 2 {
		return "", nil
	}
	return line[:2], nil
}
