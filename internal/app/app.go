// Package app wires eureka's collaborators into the idea capture flow:
// read the configuration, collect the idea, then commit and push it.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eurekahq/eureka/internal/config"
	"github.com/eurekahq/eureka/internal/git"
	"github.com/eurekahq/eureka/internal/input"
	"github.com/eurekahq/eureka/internal/output"
	"github.com/eurekahq/eureka/internal/program"
)

// Options selects which of eureka's flows a run executes.
type Options struct {
	// ClearConfig removes the stored configuration instead of capturing
	// an idea.
	ClearConfig bool

	// View opens the idea log in the pager instead of capturing an idea.
	View bool

	// Branch is the branch ideas are committed and pushed to.
	Branch string
}

// App holds eureka's collaborators. NewGit is a factory so the git handle
// can be constructed once the ssh key path is known; tests inject a double
// through it.
type App struct {
	NewGit   func(sshKeyPath string) git.Management
	Prompter input.Prompter
	Printer  *output.Printer
	Program  program.Runner
	Logger   *zap.Logger
}

// Run executes one eureka invocation.
func (a *App) Run(opts Options) error {
	if opts.ClearConfig {
		if err := config.Clear(); err != nil {
			return err
		}
		a.Printer.Success("Configuration cleared")
		return nil
	}

	cfg, err := a.ensureConfig()
	if err != nil {
		return err
	}
	ideaPath := filepath.Join(cfg.RepoPath, git.IdeaFile)

	if opts.View {
		return a.Program.OpenPager(ideaPath)
	}

	summary, err := a.Prompter.IdeaSummary()
	if err != nil {
		return err
	}

	g := a.NewGit(cfg.SSHKeyPath)
	if err := g.Open(cfg.RepoPath); err != nil {
		return err
	}
	if err := g.CheckoutBranch(opts.Branch); err != nil {
		return err
	}

	if err := a.Program.OpenEditor(ideaPath); err != nil {
		return err
	}

	if err := g.Add(); err != nil {
		return err
	}
	hash, err := g.Commit(summary)
	if err != nil {
		return err
	}
	a.Logger.Debug("committed idea", zap.String("hash", hash))

	a.Printer.Println("Pushing your idea..")
	if err := g.Push(opts.Branch); err != nil {
		return err
	}

	a.Printer.Success(fmt.Sprintf("Your idea is stored on %s", opts.Branch))
	return nil
}

// ensureConfig loads the stored configuration, running first-time setup
// when none exists.
func (a *App) ensureConfig() (*config.Config, error) {
	if config.Exists() {
		return config.Load()
	}

	a.Printer.SetupBanner()

	repoPath, err := a.Prompter.RepoPath()
	if err != nil {
		return nil, err
	}
	keyPath, err := a.Prompter.SSHKeyPath(defaultSSHKeyPath())
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{RepoPath: repoPath, SSHKeyPath: keyPath}
	if err := cfg.Save(); err != nil {
		return nil, err
	}

	a.Logger.Debug("saved configuration",
		zap.String("repo", cfg.RepoPath),
		zap.String("sshKey", cfg.SSHKeyPath))
	return cfg, nil
}

func defaultSSHKeyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ssh", "id_rsa")
}
