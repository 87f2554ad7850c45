// Package services carries the collaborators the generation core needs but
// does not own: a warning reporter, the active OS user name, and (in tests)
// deterministic stand-ins for both.
//
// A single Services value is threaded through every public operation instead
// of package-level globals, so tests can pin the user name and capture
// warnings without touching real global state.
package services

import (
	"fmt"
	"os"
	"os/user"
)

// Reporter receives warnings emitted by recoverable errors (spec.md §7).
// Warnings never abort generation; they are collected for the human-facing
// summary printed after the run.
type Reporter interface {
	Warn(message string)
}

// Services bundles the collaborators threaded through the core.
type Services struct {
	Reporter Reporter
	UserName func() string
}

// Default returns a Services value wired to the real OS user and a reporter
// that writes warnings to stderr.
func Default() *Services {
	return &Services{
		Reporter: &StderrReporter{},
		UserName: osUserName,
	}
}

func osUserName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}

// StderrReporter is the default Reporter; it writes each warning to stderr
// immediately, unbuffered.
type StderrReporter struct{}

// Warn implements Reporter.
func (StderrReporter) Warn(message string) {
	fmt.Fprintf(os.Stderr, "warning: %s\n", message)
}

// CollectingReporter accumulates warnings in memory instead of printing them;
// tests, generate.Validate, and the generate_workspace MCP tool use this to
// inspect what was reported.
type CollectingReporter struct {
	Warnings []string
}

// Warn implements Reporter.
func (c *CollectingReporter) Warn(message string) {
	c.Warnings = append(c.Warnings, message)
}
