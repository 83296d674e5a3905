package geneval

import "strings"

// registerPolicyOps installs $<TARGET_POLICY:pol> (spec §4.9).
func registerPolicyOps() {
	register(&Node{Name: "TARGET_POLICY", Arity: 1, Eval: evalTargetPolicy})
}

func evalTargetPolicy(params []string, ctx *Context, dag *Frame) string {
	if ctx.HeadTarget == nil {
		return fail(ctx, "TARGET_POLICY", ErrNotBinaryTarget)
	}

	policy := params[0]
	if !isKnownPolicy(policy) {
		return failf(ctx, "TARGET_POLICY", "%w: %q (accepted: %s)", ErrUnknownPolicy, policy, strings.Join(knownPolicies, ", "))
	}

	ctx.markContextSensitive()

	status, known := ctx.HeadTarget.PolicyStatus(policy)
	if !known {
		status = PolicyOld
	}
	switch status {
	case PolicyNew:
		return "1"
	case PolicyWarn:
		warnPolicy(ctx, policy, ctx.Build.PolicyMessage(policy))
		return "0"
	default: // Old, RequiredOld, RequiredNew
		return "0"
	}
}

func isKnownPolicy(name string) bool {
	for _, p := range knownPolicies {
		if p == name {
			return true
		}
	}
	return false
}
