// Package output renders eureka's terminal messages.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4dca7d"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f46251"))
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ccbf1"))
)

// Printer writes styled messages, dropping the styling when the
// destination is not a terminal.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter returns a Printer for out. Color is enabled only when out is
// a TTY.
func NewPrinter(out io.Writer) *Printer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{out: out, color: color}
}

// Println writes an unstyled line.
func (p *Printer) Println(text string) {
	fmt.Fprintln(p.out, text)
}

// Success writes a line in the success style.
func (p *Printer) Success(text string) {
	fmt.Fprintln(p.out, p.render(successStyle, text))
}

// Error writes a line in the error style.
func (p *Printer) Error(text string) {
	fmt.Fprintln(p.out, p.render(errorStyle, text))
}

// SetupBanner introduces the first-time setup flow.
func (p *Printer) SetupBanner() {
	p.Println(p.render(bannerStyle, "First time setup"))
	p.Println("")
	p.Println("eureka stores your ideas in a git repository of your choice and")
	p.Println("pushes every idea to its origin remote. The repository needs an")
	p.Println("initial commit and a configured origin before eureka can use it.")
	p.Println("")
}

func (p *Printer) render(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}
