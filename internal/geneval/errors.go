package geneval

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every fatal condition in this package wraps one of
// these with fmt.Errorf("...: %w", ...) so callers can match with
// errors.Is without parsing message text.
var (
	ErrUnknownIdentifier  = errors.New("unknown generator-expression identifier")
	ErrArity              = errors.New("wrong number of parameters")
	ErrNonLiteralInput    = errors.New("parameter must be literal text")
	ErrNotBinaryTarget    = errors.New("requires a binary target context")
	ErrBadInteger         = errors.New("malformed integer literal")
	ErrBadVersion         = errors.New("malformed version literal")
	ErrNotForBuildsystem  = errors.New("only valid during buildsystem evaluation")
	ErrNotLinkable        = errors.New("target is not linkable")
	ErrNotSharedLibrary   = errors.New("target is not a shared library")
	ErrUnknownTarget      = errors.New("no such target")
	ErrBadPropertyName    = errors.New("invalid property name")
	ErrSelfReference      = errors.New("self-referencing property")
	ErrLinkLibraryCycle   = errors.New("recursion over link libraries")
	ErrUnknownPolicy      = errors.New("unknown target policy")
	ErrInstallPrefixScope = errors.New("$<INSTALL_PREFIX> is only valid during export-file generation")
	ErrUnknownFeature     = errors.New("unknown compile feature")
)

// DiagnosticSink is the host's diagnostic channel (spec §4.11, §6). A fatal
// error and a policy warning are reported distinctly because only the
// former is sticky (sets Context.HadError); a host may, for instance,
// color them differently or count them separately.
type DiagnosticSink interface {
	Fatal(message string, backtrace []string)
	PolicyWarning(policyName, message string)
}

// nopSink discards everything; used when a Context is built without an
// explicit sink (quiet evaluation, or tests that only check HadError).
type nopSink struct{}

func (nopSink) Fatal(string, []string)       {}
func (nopSink) PolicyWarning(string, string) {}

// fail marks ctx as having hit a fatal error, formats and reports it
// (unless ctx.Quiet), and returns the empty string — the universal fatal
// return value (spec §3, §4.11, §7). The `path` argument identifies the
// operator or sub-expression the error originates in, matching the
// "phase=eval path=<path>: <reason>" message shape used throughout this
// package's diagnostics.
func fail(ctx *Context, path string, err error) string {
	ctx.HadError = true
	if ctx.Quiet {
		return ""
	}
	msg := fmt.Sprintf("phase=eval path=%s: %s", path, err)
	sink := ctx.Sink
	if sink == nil {
		sink = nopSink{}
	}
	sink.Fatal(msg, append([]string(nil), ctx.Backtrace...))
	return ""
}

// failf is fail with a formatted reason instead of a wrapped error.
func failf(ctx *Context, path, format string, args ...any) string {
	return fail(ctx, path, fmt.Errorf(format, args...))
}

// warnPolicy reports a non-fatal policy warning; evaluation continues.
func warnPolicy(ctx *Context, policyName, message string) {
	sink := ctx.Sink
	if sink == nil {
		sink = nopSink{}
	}
	sink.PolicyWarning(policyName, message)
}

// backtraceString renders a backtrace in Context.Backtrace order,
// outermost first and innermost last, joined for a single-line message.
func backtraceString(bt []string) string {
	if len(bt) == 0 {
		return ""
	}
	return strings.Join(bt, " -> ")
}
