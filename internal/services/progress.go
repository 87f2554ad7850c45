package services

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Colors for terminal output.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Summary renders a human-readable report of a completed generation run: the
// number of projects/workspaces described, the side effects that will be
// applied, and any warnings collected along the way. Generation is
// synchronous end to end (spec.md §5 — "no suspension points are observable
// at component boundaries"), so there is no render loop here, only a final
// printout.
type Summary struct {
	Projects   int
	Workspaces int
	SideEffect int
	Warnings   []string
}

// Print writes the summary to stdout, wrapping long warning lines to the
// detected terminal width (falling back to 80 columns when not a TTY).
func (s Summary) Print() {
	width := terminalWidth()

	fmt.Printf("%s%s✓%s generated %d project(s), %d workspace(s), %d side effect(s)\n",
		Bold, Green, Reset, s.Projects, s.Workspaces, s.SideEffect)

	if len(s.Warnings) == 0 {
		return
	}
	fmt.Printf("%s%d warning(s):%s\n", Yellow, len(s.Warnings), Reset)
	for _, w := range s.Warnings {
		fmt.Println(wrapLine("  "+Dim+"- "+w+Reset, width))
	}
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapLine is a best-effort soft wrap; it does not attempt to break on
// color escape boundaries since warning text itself never contains escapes.
func wrapLine(line string, width int) string {
	if width <= 0 || len(line) <= width {
		return line
	}
	var b strings.Builder
	for len(line) > width {
		cut := strings.LastIndex(line[:width], " ")
		if cut <= 0 {
			cut = width
		}
		b.WriteString(line[:cut])
		b.WriteString("\n    ")
		line = strings.TrimLeft(line[cut:], " ")
	}
	b.WriteString(line)
	return b.String()
}
