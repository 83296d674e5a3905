package geneval

import (
	"regexp"
	"strings"
)

// transitiveWhitelist is the set of INTERFACE_* properties (and their
// direct, non-INTERFACE_ counterparts where CMake exposes one) that
// propagate through the link-interface graph (spec §4.6): compile
// definitions/options/features, include directories, system include
// directories, sources, position-independent code, compile language,
// autouic options, autogen target depends.
var transitiveWhitelist = map[string]bool{
	"COMPILE_DEFINITIONS":          true,
	"INTERFACE_COMPILE_DEFINITIONS": true,
	"COMPILE_OPTIONS":               true,
	"INTERFACE_COMPILE_OPTIONS":     true,
	"COMPILE_FEATURES":              true,
	"INTERFACE_COMPILE_FEATURES":    true,
	"INCLUDE_DIRECTORIES":           true,
	"INTERFACE_INCLUDE_DIRECTORIES": true,
	"SYSTEM_INCLUDE_DIRECTORIES":    true,
	"INTERFACE_SYSTEM_INCLUDE_DIRECTORIES": true,
	"SOURCES":                  true,
	"INTERFACE_SOURCES":        true,
	"POSITION_INDEPENDENT_CODE": true,
	"COMPILE_LANGUAGE":         true,
	"AUTOUIC_OPTIONS":          true,
	"INTERFACE_AUTOUIC_OPTIONS": true,
	"AUTOGEN_TARGET_DEPENDS":   true,
}

// identPlusRe matches a generator-expression property name (spec §4.6
// step 1: "property name regex [A-Za-z0-9_]+").
var identPlusRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func registerTargetPropertyOps() {
	register(&Node{Name: "TARGET_PROPERTY", Arity: Dynamic, Eval: evalTargetProperty})
	register(&Node{Name: "ALIASED_TARGET", Arity: 1, Eval: evalAliasedTarget})

	register(&Node{Name: "LINK_ONLY", Arity: 1, RawEval: evalLinkOnly})
	register(&Node{Name: "BUILD_INTERFACE", Arity: OneOrZero, RawEval: interfaceMarkerOp(false)})
	register(&Node{Name: "INSTALL_INTERFACE", Arity: OneOrZero, RawEval: interfaceMarkerOp(true)})
	register(&Node{Name: "INSTALL_PREFIX", Arity: 0, Eval: evalInstallPrefix})

	register(&Node{Name: "GENEX_EVAL", Arity: 1, RawEval: evalGenexEval})
	register(&Node{Name: "TARGET_GENEX_EVAL", Arity: 2, RawEval: evalTargetGenexEval})
}

// evalAliasedTarget implements the ALIASED_TARGET early return of spec §4.6
// step 3: the alias's canonical name, or empty if tgt is not an alias.
func evalAliasedTarget(params []string, ctx *Context, dag *Frame) string {
	name := params[0]
	if !ctx.Build.IsAlias(name) {
		return ""
	}
	tgt, ok := ctx.Build.Target(name)
	if !ok {
		return ""
	}
	return tgt.AliasTarget()
}

// evalTargetProperty implements spec §4.6 in full: the hard operator.
func evalTargetProperty(params []string, ctx *Context, dag *Frame) string {
	if len(params) != 1 && len(params) != 2 {
		return failf(ctx, "TARGET_PROPERTY", "%w: TARGET_PROPERTY expects 1 or 2 parameters, got %d", ErrArity, len(params))
	}

	var targetName, prop string
	if len(params) == 2 {
		targetName, prop = params[0], params[1]
		if targetName == "" {
			return failf(ctx, "TARGET_PROPERTY", "target name parameter must not be empty")
		}
	} else {
		prop = params[0]
		if ctx.HeadTarget == nil {
			return fail(ctx, "TARGET_PROPERTY", ErrNotBinaryTarget)
		}
		targetName = ctx.HeadTarget.Name()
	}
	if prop == "" {
		return failf(ctx, "TARGET_PROPERTY", "property name parameter must not be empty")
	}
	if !identPlusRe.MatchString(prop) {
		return failf(ctx, "TARGET_PROPERTY", "%w: %q", ErrBadPropertyName, prop)
	}

	tgt, ok := ctx.Build.Target(targetName)
	if !ok {
		return failf(ctx, "TARGET_PROPERTY", "%w: %q", ErrUnknownTarget, targetName)
	}
	requestedName := targetName
	if alias := tgt.AliasTarget(); alias != "" {
		resolved, ok := ctx.Build.Target(alias)
		if !ok {
			return failf(ctx, "TARGET_PROPERTY", "%w: %q", ErrUnknownTarget, alias)
		}
		tgt = resolved
		targetName = alias
	}

	if ctx.HeadTarget != nil && targetName == ctx.HeadTarget.Name() {
		ctx.SeenTargetProperties[prop] = struct{}{}
	}

	switch prop {
	case "ALIASED_TARGET":
		return evalAliasedTarget([]string{requestedName}, ctx, dag)
	case "LINKER_LANGUAGE":
		if (dag.isEvaluatingLinkLibraries() || ctx.EvaluatingLinkLibraries || ctx.EvaluatingSources) &&
			linkerLanguagePropagates(tgt, ctx) {
			return failf(ctx, "TARGET_PROPERTY", "LINKER_LANGUAGE may not be read while evaluating %q's link libraries or sources", targetName)
		}
		return tgt.LinkerLanguage(ctx.Config)
	}

	child, result := dag.push(targetName, prop)
	switch result {
	case DAGSelfReference:
		return failf(ctx, "TARGET_PROPERTY", "%w: %s,%s", ErrSelfReference, targetName, prop)
	case DAGCyclic:
		return ""
	}
	// AlreadySeen: dag.push only detects ancestor-chain revisits (Cyclic).
	// A diamond in the link-interface graph reaches the same (target,
	// property) pair twice via sibling branches, which checkTargetProperty
	// tracks across the whole top-level evaluation.
	if ctx.checkTargetProperty(targetName, prop) &&
		(transitiveWhitelist[prop] || transitiveWhitelist[interfaceTwin(prop)]) {
		return ""
	}

	if (dag.isEvaluatingLinkLibraries() || ctx.EvaluatingLinkLibraries) &&
		(transitiveWhitelist[prop] || transitiveWhitelist[interfaceTwin(prop)]) {
		if _, ok := tgt.Property(prop); !ok {
			return ""
		}
		return fail(ctx, "TARGET_PROPERTY", ErrLinkLibraryCycle)
	}

	interfaceProp := interfacePropertyName(ctx, tgt, prop)

	transitiveContent, hadErr := collectTransitiveContent(ctx, tgt, targetName, prop, interfaceProp, child)
	if hadErr {
		return ""
	}

	rawValue, hasRaw := tgt.Property(prop)
	if !hasRaw {
		if tgt.IsImported() || tgt.Type() == TargetInterfaceLibrary {
			return transitiveContent
		}
		for _, kind := range []ConsistentPropertyKind{ConsistentBool, ConsistentString, ConsistentNumberMin, ConsistentNumberMax} {
			if value, ok := tgt.ConsistentProperty(prop, ctx.Config, kind); ok {
				ctx.markContextSensitive()
				return value
			}
		}
		return transitiveContent
	}

	if !transitiveWhitelist[prop] {
		return Evaluate(rawValue, ctx, child)
	}

	var rawText string
	ctx.withCurrentTarget(tgt, func() {
		rawText = Evaluate(rawValue, ctx, child)
	})
	if ctx.HadError {
		return ""
	}
	return joinNonEmpty(rawText, transitiveContent)
}

// linkerLanguagePropagates reports whether tgt is a static library whose
// link interface propagates LINKER_LANGUAGE under the governing policy
// (spec §4.6 step 3, compiler-ops policy constants).
func linkerLanguagePropagates(tgt TargetHandle, ctx *Context) bool {
	if tgt.Type() != TargetStaticLibrary {
		return false
	}
	status, known := tgt.PolicyStatus(PolicyLinkInterfacePropagatesLinkerLanguage)
	if !known {
		return true
	}
	return status != PolicyNew && status != PolicyRequiredNew
}

// interfaceTwin returns prop's INTERFACE_ form if prop is the direct form
// of a whitelisted pair, or "" otherwise. Used for symmetric whitelist
// membership tests (spec §4.6 step 6: "prop ... or matches its INTERFACE_
// twin").
func interfaceTwin(prop string) string {
	if strings.HasPrefix(prop, "INTERFACE_") {
		return prop
	}
	return "INTERFACE_" + prop
}

// interfacePropertyName computes the name used to query the link-interface
// graph (spec §4.6 step 6). tgt is the already-resolved target the property
// is being read on, not ctx.CurrentTarget: at this point in evalTargetProperty
// CurrentTarget still holds whatever an outer descent left it as (nil for a
// top-level evaluation with no head target), while tgt is always non-nil.
func interfacePropertyName(ctx *Context, tgt TargetHandle, prop string) string {
	if transitiveWhitelist[prop] {
		return interfaceTwin(prop)
	}
	if transitiveWhitelist[interfaceTwin(prop)] {
		return interfaceTwin(prop)
	}
	if strings.HasPrefix(prop, "COMPILE_DEFINITIONS_") {
		status, known := tgt.PolicyStatus(PolicyLegacyCompileDefinitionsPropagation)
		if known && (status == PolicyWarn || status == PolicyOld) {
			return "INTERFACE_COMPILE_DEFINITIONS"
		}
	}
	return ""
}

// collectTransitiveContent implements spec §4.6 step 7: gather the
// ;-joined, empty-stripped recursive TARGET_PROPERTY reads over the
// relevant set of targets.
func collectTransitiveContent(ctx *Context, tgt TargetHandle, targetName, prop, interfaceProp string, child *Frame) (content string, hadError bool) {
	var targets []string
	switch {
	case transitiveWhitelist[prop]:
		targets = tgt.TransitivePropertyTargets(ctx.Config)
	case interfaceProp != "" && transitiveWhitelist[interfaceProp]:
		targets = tgt.LinkImplementationLibraries(ctx.Config)
	default:
		return "", false
	}
	if interfaceProp == "" {
		interfaceProp = interfaceTwin(prop)
	}

	parts := make([]string, 0, len(targets))
	for _, depName := range targets {
		if depName == targetName {
			continue
		}
		sub := synthTargetProperty(depName, interfaceProp)
		grandchild := child.withRoles(false, false, false, false)
		var value string
		ctx.withCurrentTarget(tgt, func() {
			value = Evaluate(sub, ctx, grandchild)
		})
		if ctx.HadError {
			return "", true
		}
		if value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, ";"), false
}

// joinNonEmpty joins a and b with ";", dropping either side if empty (spec
// §4.6 step 9's "append ... with ';' separator", which per the whitelisted
// property's list semantics must not introduce a leading/trailing
// separator when one side is empty).
func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + ";" + b
	}
}

// evalLinkOnly implements $<LINK_ONLY:...> (spec §4.10): empty when the
// enclosing evaluation is transitive-properties-only, otherwise its
// literal content. A RawEval because the decision of whether to evaluate
// the content at all must be made before evaluating it — the whole point
// is that private link dependencies must not leak into usage-requirement
// propagation, even if evaluating them would itself be side-effect-free.
func evalLinkOnly(params [][]Evaluator, ctx *Context, dag *Frame) string {
	if ctx.HadError {
		return ""
	}
	if dag.isTransitivePropertiesOnly(ctx) {
		return ""
	}
	return evalConcat(params[0], ctx, dag)
}

// interfaceMarkerOp builds BUILD_INTERFACE/INSTALL_INTERFACE (spec §4.10):
// forExport selects which of the pair evaluates its content versus
// discarding it, based on ctx.ForExport.
func interfaceMarkerOp(forExport bool) func(params [][]Evaluator, ctx *Context, dag *Frame) string {
	return func(params [][]Evaluator, ctx *Context, dag *Frame) string {
		if ctx.HadError {
			return ""
		}
		if ctx.ForExport != forExport {
			return ""
		}
		if len(params) == 0 {
			return ""
		}
		return evalConcat(params[0], ctx, dag)
	}
}

// evalInstallPrefix implements $<INSTALL_PREFIX> (spec §4.10): valid only
// during export-file generation.
func evalInstallPrefix(params []string, ctx *Context, dag *Frame) string {
	if !ctx.ForExport {
		return fail(ctx, "INSTALL_PREFIX", ErrInstallPrefixScope)
	}
	return ctx.InstallPrefix
}

// evalGenexEval implements $<GENEX_EVAL:expr> (SPEC_FULL.md supplemented
// feature #4): re-evaluate expr under a fresh DAG frame, head and current
// target unchanged. A RawEval because its content must be re-entered as a
// brand-new top-level evaluation rather than folded into the caller's
// parameter-concatenation pass.
func evalGenexEval(params [][]Evaluator, ctx *Context, dag *Frame) string {
	if ctx.HadError {
		return ""
	}
	if len(params) != 1 {
		return failf(ctx, "GENEX_EVAL", "%w: GENEX_EVAL expects 1 parameter, got %d", ErrArity, len(params))
	}
	return evalConcat(params[0], ctx, nil)
}

// evalTargetGenexEval implements $<TARGET_GENEX_EVAL:tgt,expr>
// (SPEC_FULL.md supplemented feature #4): re-evaluate expr with tgt
// substituted for both head and current target.
func evalTargetGenexEval(params [][]Evaluator, ctx *Context, dag *Frame) string {
	if ctx.HadError {
		return ""
	}
	if len(params) != 2 {
		return failf(ctx, "TARGET_GENEX_EVAL", "%w: TARGET_GENEX_EVAL expects 2 parameters, got %d", ErrArity, len(params))
	}
	targetName := evalConcat(params[0], ctx, dag)
	if ctx.HadError {
		return ""
	}
	tgt, ok := ctx.Build.Target(targetName)
	if !ok {
		return failf(ctx, "TARGET_GENEX_EVAL", "%w: %q", ErrUnknownTarget, targetName)
	}

	var result string
	ctx.withHead(tgt, func() {
		ctx.withCurrentTarget(tgt, func() {
			result = evalConcat(params[1], ctx, nil)
		})
	})
	return result
}
