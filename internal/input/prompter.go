// Package input collects the user's answers: the idea summary and the
// first-time setup paths.
package input

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
)

// Prompter asks the user for input. Tests substitute a double.
type Prompter interface {
	// IdeaSummary asks for the one-line commit subject of the idea.
	IdeaSummary() (string, error)

	// RepoPath asks for the absolute path of the idea repository.
	RepoPath() (string, error)

	// SSHKeyPath asks for the private key used when pushing, with a
	// pre-filled default.
	SSHKeyPath(defaultPath string) (string, error)
}

// SurveyPrompter prompts on the terminal.
type SurveyPrompter struct{}

func (SurveyPrompter) IdeaSummary() (string, error) {
	var summary string
	prompt := &survey.Input{
		Message: "Idea summary (used as commit subject)",
	}
	if err := survey.AskOne(prompt, &summary, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return summary, nil
}

func (SurveyPrompter) RepoPath() (string, error) {
	var path string
	prompt := &survey.Input{
		Message: "Absolute path to your idea repository",
	}
	err := survey.AskOne(prompt, &path,
		survey.WithValidator(survey.Required),
		survey.WithValidator(absolutePath))
	if err != nil {
		return "", err
	}
	return path, nil
}

func (SurveyPrompter) SSHKeyPath(defaultPath string) (string, error) {
	var path string
	prompt := &survey.Input{
		Message: "Path to the ssh key used for pushing",
		Default: defaultPath,
	}
	err := survey.AskOne(prompt, &path,
		survey.WithValidator(survey.Required),
		survey.WithValidator(absolutePath))
	if err != nil {
		return "", err
	}
	return path, nil
}

func absolutePath(val interface{}) error {
	path, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", val)
	}
	if !filepath.IsAbs(path) {
		return errors.New("path must be absolute")
	}
	return nil
}
