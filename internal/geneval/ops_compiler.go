package geneval

import "strings"

// Policy identifiers consulted by the operators in this file and by
// ops_target_property.go. These form the "short whitelist of policies
// affecting target behavior" spec §4.9 requires TARGET_POLICY to validate
// against.
const (
	// PolicyCompilerIDMatchCase governs whether a case-insensitive match on
	// a compiler-id/platform-id query is accepted under OLD/WARN semantics
	// (spec §4.4).
	PolicyCompilerIDMatchCase = "COMPILER_ID_MATCH_CASE"

	// PolicyLegacyCompileDefinitionsPropagation governs whether reading
	// COMPILE_DEFINITIONS_<CONFIG> through TARGET_PROPERTY also consults
	// the target's INTERFACE_COMPILE_DEFINITIONS under OLD/WARN semantics
	// (spec §4.6 step 6).
	PolicyLegacyCompileDefinitionsPropagation = "LEGACY_COMPILE_DEFINITIONS_PROPAGATION"

	// PolicyLinkInterfacePropagatesLinkerLanguage governs whether a static
	// library propagates LINKER_LANGUAGE through its link interface (spec
	// §4.6 step 3).
	PolicyLinkInterfacePropagatesLinkerLanguage = "LINK_INTERFACE_PROPAGATES_LINKER_LANGUAGE"
)

// knownPolicies is the whitelist TARGET_POLICY (ops_policy.go) validates
// its parameter against.
var knownPolicies = []string{
	PolicyCompilerIDMatchCase,
	PolicyLegacyCompileDefinitionsPropagation,
	PolicyLinkInterfacePropagatesLinkerLanguage,
}

func registerCompilerOps() {
	register(&Node{Name: "C_COMPILER_ID", Arity: OneOrZero, Eval: identityQueryOp("CMAKE_C_COMPILER_ID")})
	register(&Node{Name: "CXX_COMPILER_ID", Arity: OneOrZero, Eval: identityQueryOp("CMAKE_CXX_COMPILER_ID")})
	register(&Node{Name: "PLATFORM_ID", Arity: OneOrZero, RequiresLiteralInput: false, Eval: platformIDOp()})

	register(&Node{Name: "C_COMPILER_VERSION", Arity: OneOrZero, Eval: versionQueryOp("CMAKE_C_COMPILER_VERSION")})
	register(&Node{Name: "CXX_COMPILER_VERSION", Arity: OneOrZero, Eval: versionQueryOp("CMAKE_CXX_COMPILER_VERSION")})

	register(&Node{Name: "CONFIG", Arity: OneOrZero, Eval: evalConfig})

	register(&Node{Name: "LINK_LANGUAGE", Arity: OneOrZero, Eval: evalLinkLanguage})
	register(&Node{Name: "LINK_LANGUAGE_AND_ID", Arity: 2, Eval: evalLinkLanguageAndID})
}

// identityQueryOp builds the C_COMPILER_ID/CXX_COMPILER_ID evaluator: with
// no parameter, return the raw definition; with one, compare case-sensitive
// first and fall back to a policy-gated case-insensitive match (spec §4.4).
func identityQueryOp(defKey string) EvalFunc {
	return func(params []string, ctx *Context, dag *Frame) string {
		if ctx.HeadTarget == nil {
			return fail(ctx, "COMPILER_ID", ErrNotBinaryTarget)
		}
		value, _ := ctx.Build.Definition(defKey)
		if len(params) == 0 {
			return value
		}
		return matchIdentifierWithPolicyFallback(ctx, "COMPILER_ID", params[0], value)
	}
}

func platformIDOp() EvalFunc {
	return func(params []string, ctx *Context, dag *Frame) string {
		value, _ := ctx.Build.Definition("CMAKE_SYSTEM_NAME")
		if len(params) == 0 {
			return value
		}
		return matchIdentifierWithPolicyFallback(ctx, "PLATFORM_ID", params[0], value)
	}
}

// matchIdentifierWithPolicyFallback implements the shared case-sensitive
// first, policy-gated case-insensitive fallback rule used by
// C_COMPILER_ID/CXX_COMPILER_ID/PLATFORM_ID (spec §4.4). want must match
// [A-Za-z0-9_]* or the call is fatal.
func matchIdentifierWithPolicyFallback(ctx *Context, opName, want, actual string) string {
	if !identRe.MatchString(want) {
		return failf(ctx, opName, "%s: parameter must match [A-Za-z0-9_]*, got %q", opName, want)
	}
	if want == actual {
		return "1"
	}
	if !strings.EqualFold(want, actual) {
		return "0"
	}

	// Only a case-insensitive match: consult the policy.
	status, known := ctx.HeadTarget.PolicyStatus(PolicyCompilerIDMatchCase)
	if !known {
		status = PolicyOld
	}
	switch status {
	case PolicyNew, PolicyRequiredNew:
		return "0"
	case PolicyWarn:
		warnPolicy(ctx, PolicyCompilerIDMatchCase, opName+": comparison matched only case-insensitively")
		return "1"
	default: // Old, RequiredOld
		return "1"
	}
}

func versionQueryOp(defKey string) EvalFunc {
	return func(params []string, ctx *Context, dag *Frame) string {
		if ctx.HeadTarget == nil {
			return fail(ctx, "COMPILER_VERSION", ErrNotBinaryTarget)
		}
		value, _ := ctx.Build.Definition(defKey)
		if len(params) == 0 {
			return value
		}
		if !numericRe.MatchString(params[0]) {
			return failf(ctx, "COMPILER_VERSION", "parameter must match [0-9.]*, got %q", params[0])
		}
		c, err := compareVersions(params[0], value)
		if err != nil {
			return fail(ctx, "COMPILER_VERSION", err)
		}
		if c == 0 {
			return "1"
		}
		return "0"
	}
}

func evalConfig(params []string, ctx *Context, dag *Frame) string {
	ctx.markContextSensitive()
	if len(params) == 0 {
		return ctx.Config
	}
	for _, want := range strings.Split(params[0], ";") {
		if strings.EqualFold(want, ctx.Config) {
			return "1"
		}
		if configMatchesImportedMapping(ctx, want) {
			return "1"
		}
	}
	return "0"
}

// configMatchesImportedMapping implements the MAP_IMPORTED_CONFIG_<ACTIVE>
// fallback of spec §4.4: if CurrentTarget is imported and declares a
// mapping for the active config, a match against any entry in that list
// also satisfies $<CONFIG:name>.
func configMatchesImportedMapping(ctx *Context, want string) bool {
	if ctx.CurrentTarget == nil || !ctx.CurrentTarget.IsImported() {
		return false
	}
	for _, mapped := range ctx.CurrentTarget.MappedConfigs(ctx.Config) {
		if strings.EqualFold(mapped, want) {
			return true
		}
	}
	return false
}

// evalLinkLanguage implements $<LINK_LANGUAGE[:langs]> (SPEC_FULL.md
// supplemented feature #3): with no parameter, the head target's computed
// link language for the active config; with a semicolon-separated
// parameter, "1" iff the link language is one of the listed languages.
func evalLinkLanguage(params []string, ctx *Context, dag *Frame) string {
	if ctx.HeadTarget == nil {
		return fail(ctx, "LINK_LANGUAGE", ErrNotBinaryTarget)
	}
	lang := ctx.HeadTarget.LinkerLanguage(ctx.Config)
	if len(params) == 0 {
		return lang
	}
	for _, want := range strings.Split(params[0], ";") {
		if want == lang {
			return "1"
		}
	}
	return "0"
}

// evalLinkLanguageAndID implements $<LINK_LANGUAGE_AND_ID:lang,compilerID>
// (SPEC_FULL.md supplemented feature #3): "1" iff the head target's link
// language equals lang AND that language's compiler id equals compilerID.
func evalLinkLanguageAndID(params []string, ctx *Context, dag *Frame) string {
	if ctx.HeadTarget == nil {
		return fail(ctx, "LINK_LANGUAGE_AND_ID", ErrNotBinaryTarget)
	}
	lang := ctx.HeadTarget.LinkerLanguage(ctx.Config)
	if lang != params[0] {
		return "0"
	}
	value, _ := ctx.Build.Definition("CMAKE_" + lang + "_COMPILER_ID")
	if value != params[1] {
		return "0"
	}
	return "1"
}
