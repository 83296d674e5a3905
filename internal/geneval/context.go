package geneval

// Context is the per-top-level-evaluation scratch space (spec §3). A
// caller constructs one Context per call to Evaluate and never shares it
// across concurrent evaluations; the registry and AST are the only shared,
// immutable state.
type Context struct {
	// Build is the host's query surface. Required.
	Build BuildContext

	// Config is the active build configuration; may be empty.
	Config string

	// HeadTarget is the target that started this evaluation; nil for
	// expressions evaluated outside any binary target.
	HeadTarget TargetHandle

	// CurrentTarget is the target whose property list is presently being
	// walked; equals HeadTarget unless a TARGET_PROPERTY descent is in
	// progress.
	CurrentTarget TargetHandle

	// Quiet suppresses error reporting through Sink while still setting
	// HadError.
	Quiet bool

	// EvaluateForBuildsystem enables artifacts only valid for internal
	// buildsystem evaluation (TARGET_OBJECTS).
	EvaluateForBuildsystem bool

	// Sink receives fatal errors and policy warnings. A nil Sink discards
	// both.
	Sink DiagnosticSink

	// HadError is the sticky fatal flag (spec §3, §7): once true, every
	// Evaluate call returns "" immediately without further work.
	HadError bool

	// HadContextSensitiveCondition is set when any sub-expression's value
	// depends on per-configuration or per-target state ($<CONFIG>,
	// $<CONFIG:...>, $<TARGET_POLICY:...>, or a link-interface-dependent
	// property consultation), marking the whole result non-memoizable
	// across configurations.
	HadContextSensitiveCondition bool

	// AllTargets and DependTargets are populated as a side effect by
	// operators that reference a target's artifacts (TARGET_FILE family,
	// TARGET_OBJECTS), for the caller's buildsystem linker to consume
	// afterward. TARGET_PROPERTY does not add to them.
	AllTargets    map[string]struct{}
	DependTargets map[string]struct{}

	// SeenTargetProperties records every property name read directly on
	// HeadTarget via TARGET_PROPERTY, used for link-interface consistency
	// diagnostics by the host.
	SeenTargetProperties map[string]struct{}

	// MaxLanguageStandard maps target name -> language -> required
	// standard level, populated when COMPILE_FEATURES is consulted while
	// link-libraries evaluation is active (EvaluatingLinkLibraries below,
	// or the role bit on the active DAG frame or one of its ancestors).
	MaxLanguageStandard map[string]map[string]string

	// EvaluatingLinkLibraries / EvaluatingSources / TransitivePropertiesOnly mirror
	// the DAG frame role bits for the *current* top-level evaluation
	// (spec §3 "DAG frame" role flags). They are set by the host before
	// calling Evaluate for link-libraries or usage-requirement
	// evaluation, and read by LINK_ONLY, LINKER_LANGUAGE, and
	// TARGET_PROPERTY's link-libraries recursion guard.
	EvaluatingLinkLibraries bool
	EvaluatingSources       bool
	TransitivePropertiesOnly bool

	// ForExport marks evaluation for export-file generation: the only
	// context in which $<INSTALL_PREFIX> is valid, and in which
	// $<INSTALL_INTERFACE:...> (not $<BUILD_INTERFACE:...>) content is
	// kept.
	ForExport bool

	// InstallPrefix is the value $<INSTALL_PREFIX> returns when ForExport
	// is set.
	InstallPrefix string

	// Backtrace is the stack of operator identifiers currently being
	// evaluated, innermost last, used to format fatal-error messages
	// (spec §9 "SUPPLEMENTED FEATURES" #1 in SPEC_FULL.md).
	Backtrace []string

	// visitedTargetProperties records every (target, property) pair a
	// TARGET_PROPERTY descent has entered anywhere in this top-level
	// evaluation, keyed by target+"\x1f"+property. It backs the
	// "AlreadySeen" DAG check result (spec §4.6 step 4): a diamond in the
	// link-interface graph reaches the same pair twice without either
	// occurrence being an ancestor of the other, and revisiting it would
	// recompute (not merely re-derive) the same content.
	visitedTargetProperties map[string]struct{}
}

// NewContext returns a Context ready for a top-level Evaluate call.
func NewContext(build BuildContext, config string, head TargetHandle) *Context {
	return &Context{
		Build:         build,
		Config:        config,
		HeadTarget:    head,
		CurrentTarget: head,
		AllTargets:    map[string]struct{}{},
		DependTargets: map[string]struct{}{},
		SeenTargetProperties: map[string]struct{}{},
		MaxLanguageStandard:  map[string]map[string]string{},
		visitedTargetProperties: map[string]struct{}{},
	}
}

// pushBacktrace records entry into identifier's evaluation and returns a
// function that pops it. Always called as `defer ctx.pushBacktrace(name)()`.
func (ctx *Context) pushBacktrace(identifier string) func() {
	ctx.Backtrace = append(ctx.Backtrace, identifier)
	depth := len(ctx.Backtrace)
	return func() {
		ctx.Backtrace = ctx.Backtrace[:depth-1]
	}
}

// recordTarget marks name as both referenced and, if depend is true, a
// build dependency.
func (ctx *Context) recordTarget(name string, depend bool) {
	ctx.AllTargets[name] = struct{}{}
	if depend {
		ctx.DependTargets[name] = struct{}{}
	}
}

// markContextSensitive sets the sticky non-memoizable flag.
func (ctx *Context) markContextSensitive() {
	ctx.HadContextSensitiveCondition = true
}

// withCurrentTarget swaps CurrentTarget to t for the duration of fn, then
// restores it, mutating the single shared Context in place. Descending into
// a differently-rooted TARGET_PROPERTY sub-expression must use the same
// Context object the caller holds: an earlier copy-based approach lost
// HadError/HadContextSensitiveCondition updates made during the descent,
// since a value copy's bool fields don't write back to the original.
func (ctx *Context) withCurrentTarget(t TargetHandle, fn func()) {
	prev := ctx.CurrentTarget
	ctx.CurrentTarget = t
	defer func() { ctx.CurrentTarget = prev }()
	fn()
}

// withHead swaps HeadTarget to t for the duration of fn, then restores it,
// for GENEX_EVAL/TARGET_GENEX_EVAL's re-rooted evaluation (spec §9
// supplemented feature #4).
func (ctx *Context) withHead(t TargetHandle, fn func()) {
	prev := ctx.HeadTarget
	ctx.HeadTarget = t
	defer func() { ctx.HeadTarget = prev }()
	fn()
}

// checkTargetProperty layers "AlreadySeen" detection on top of Frame.push's
// ancestor-only self-reference/cyclic checks (spec §4.6 step 4): a diamond
// in the link-interface graph can reach the same (target, property) pair
// twice along two branches, neither of which is an ancestor of the other,
// which a pure parent-chain walk can never notice.
func (ctx *Context) checkTargetProperty(target, property string) (alreadySeen bool) {
	key := target + "\x1f" + property
	if _, seen := ctx.visitedTargetProperties[key]; seen {
		return true
	}
	ctx.visitedTargetProperties[key] = struct{}{}
	return false
}
