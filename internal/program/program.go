// Package program spawns the external programs eureka hands the terminal
// to: the editor for writing an idea and the pager for viewing the log.
package program

import (
	"fmt"
	"os"
	"os/exec"
)

// Runner opens external programs on a file. Tests substitute a double.
type Runner interface {
	OpenEditor(path string) error
	OpenPager(path string) error
}

// Access runs the programs named by $EDITOR and $PAGER, with vi and less
// as fallbacks.
type Access struct{}

func (Access) OpenEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return run(editor, path)
}

func (Access) OpenPager(path string) error {
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = "less"
	}
	return run(pager, path)
}

// run executes the program attached to the caller's terminal and blocks
// until it exits.
func run(program, path string) error {
	cmd := exec.Command(program, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", program, err)
	}
	return nil
}
