package git_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eurekahq/eureka/internal/git"
)

func TestAdd(t *testing.T) {
	t.Run("stages the idea file", func(t *testing.T) {
		repo := newTestRepo(t)
		require.NoError(t, repo.CommitIdea("# Ideas", "initial-msg"))
		require.NoError(t, repo.WriteIdeaFile("# Ideas\n- idea #1"))

		g := git.New("", nil)
		require.NoError(t, g.Open(repo.Dir))

		before, err := repo.FileStatus(git.IdeaFile)
		require.NoError(t, err)
		require.Equal(t, " M", before)

		require.NoError(t, g.Add())

		after, err := repo.FileStatus(git.IdeaFile)
		require.NoError(t, err)
		require.Equal(t, "M ", after)
	})

	t.Run("stages an untracked idea file", func(t *testing.T) {
		repo := newTestRepo(t)
		require.NoError(t, repo.RunGitCommand("commit", "--allow-empty", "-m", "initial-msg"))
		require.NoError(t, repo.WriteIdeaFile("# Ideas"))

		g := git.New("", nil)
		require.NoError(t, g.Open(repo.Dir))
		require.NoError(t, g.Add())

		status, err := repo.FileStatus(git.IdeaFile)
		require.NoError(t, err)
		require.Equal(t, "A ", status)
	})
}

func TestCommit(t *testing.T) {
	t.Run("commits the staged idea with a single parent", func(t *testing.T) {
		repo := newTestRepo(t)
		require.NoError(t, repo.CommitIdea("# Ideas", "initial-msg"))

		parentSHA, err := repo.GetRevision("HEAD")
		require.NoError(t, err)

		g := git.New("", nil)
		require.NoError(t, g.Open(repo.Dir))

		require.NoError(t, repo.WriteIdeaFile("# Ideas\n- idea #1"))
		require.NoError(t, g.Add())

		hash, err := g.Commit("idea #1")
		require.NoError(t, err)

		headSHA, err := repo.GetRevision("HEAD")
		require.NoError(t, err)
		require.Equal(t, headSHA, hash)

		subject, err := repo.CommitSubject("HEAD")
		require.NoError(t, err)
		require.Equal(t, "idea #1", subject)

		gotParent, err := repo.GetRevision("HEAD^")
		require.NoError(t, err)
		require.Equal(t, parentSHA, gotParent)
	})

	t.Run("fails on a repository without commits", func(t *testing.T) {
		repo := newTestRepo(t)
		require.NoError(t, repo.WriteIdeaFile("# Ideas"))

		g := git.New("", nil)
		require.NoError(t, g.Open(repo.Dir))
		require.NoError(t, g.Add())

		_, err := g.Commit("idea #1")
		require.ErrorIs(t, err, git.ErrReferenceLookup)
	})

	t.Run("fails without a configured identity", func(t *testing.T) {
		// keep the host's global/system git config out of the signature lookup
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_CONFIG_HOME", home)

		repo := newTestRepo(t)
		require.NoError(t, repo.CommitIdea("# Ideas", "initial-msg"))
		require.NoError(t, repo.RunGitCommand("config", "--unset", "user.name"))
		require.NoError(t, repo.RunGitCommand("config", "--unset", "user.email"))

		g := git.New("", nil)
		require.NoError(t, g.Open(repo.Dir))

		require.NoError(t, repo.WriteIdeaFile("# Ideas\n- idea #1"))
		require.NoError(t, g.Add())

		_, err := g.Commit("idea #1")
		require.ErrorIs(t, err, git.ErrSignature)
	})
}

