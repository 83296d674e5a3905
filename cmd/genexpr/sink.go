package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"genexpr/internal/geneval"
)

var (
	styleFatal = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	styleBacktrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleWarnPolicy = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
)

// consoleSink renders geneval diagnostics to stderr with lipgloss styling,
// and counts fatals so callers can decide an exit code.
type consoleSink struct {
	fatalCount int
}

func newConsoleSink() *consoleSink { return &consoleSink{} }

func (s *consoleSink) Fatal(message string, backtrace []string) {
	s.fatalCount++
	fmt.Fprintln(os.Stderr, styleFatal.Render("error: ")+message)
	if len(backtrace) > 0 {
		fmt.Fprintln(os.Stderr, styleBacktrace.Render("  while evaluating: "+strings.Join(backtrace, " -> ")))
	}
}

func (s *consoleSink) PolicyWarning(policyName, message string) {
	fmt.Fprintln(os.Stderr, styleWarnPolicy.Render("warning: ")+fmt.Sprintf("policy %s: %s", policyName, message))
}

var _ geneval.DiagnosticSink = (*consoleSink)(nil)
