package geneval

// CheckResult is the outcome of pushing a new DAG frame (spec §3, §4.6
// step 4).
type CheckResult int

const (
	// DAGOk means this (target, property) pair has not been seen on the
	// current path from the root; proceed.
	DAGOk CheckResult = iota
	// DAGAlreadySeen means this (target, property) pair was already
	// visited earlier in the same top-level evaluation via a sibling
	// branch — a diamond in the link-interface graph, not a cycle. push
	// never returns it; Context.checkTargetProperty reports that case.
	DAGAlreadySeen
	// DAGCyclic means this (target, property) pair is an ancestor of
	// itself reached through a different path length (a true cycle that
	// closes somewhere above the immediate parent).
	DAGCyclic
	// DAGSelfReference means a node directly requests its own (target,
	// property) pair as its immediate parent — always fatal.
	DAGSelfReference
)

// Frame is a stack-local guard record pushed on every property descent
// (spec §3 "DAG frame"). Frames form a linked list along the Go call
// stack: each recursive descent allocates a new Frame with Parent set to
// the caller's, so walking Parent pointers answers "have I been here
// before on this path" without any persistent graph structure (spec §9).
type Frame struct {
	Parent   *Frame
	Target   string
	Property string

	// Role bits describing why this frame exists.
	EvaluatingLinkLibraries  bool
	EvaluatingSources        bool
	TransitivePropertiesOnly bool
	TopTarget                bool
}

// push returns a new Frame for (target, property) whose parent is f (f may
// be nil for the top-level call), and the CheckResult for that new frame.
func (f *Frame) push(target, property string) (*Frame, CheckResult) {
	child := &Frame{Parent: f, Target: target, Property: property}

	if f != nil && f.Target == target && f.Property == property {
		return child, DAGSelfReference
	}

	seenAsAncestor := false
	for p := f; p != nil; p = p.Parent {
		if p.Target == target && p.Property == property {
			seenAsAncestor = true
			break
		}
	}
	if seenAsAncestor {
		return child, DAGCyclic
	}

	// AlreadySeen: distinct from Cyclic. A true implementation would also
	// need to know about *sibling* descents (the same (target,property)
	// reached via a different branch, not an ancestor). We approximate
	// that with a per-root visited set threaded through Context, checked
	// by callers via Context.checkTargetProperty after push returns Ok;
	// push itself only ever returns Ok/Cyclic/SelfReference. See
	// evalTargetProperty in ops_target_property.go for that check.
	return child, DAGOk
}

// withRoles returns a copy of f with the given role bits OR'd in. Its one
// caller, TARGET_PROPERTY's transitive descent, passes every bit false, so
// the copy keeps the parent frame's bits unchanged.
func (f *Frame) withRoles(linkLibs, sources, transitiveOnly, top bool) *Frame {
	if f == nil {
		return &Frame{
			EvaluatingLinkLibraries:  linkLibs,
			EvaluatingSources:        sources,
			TransitivePropertiesOnly: transitiveOnly,
			TopTarget:                top,
		}
	}
	cp := *f
	cp.EvaluatingLinkLibraries = cp.EvaluatingLinkLibraries || linkLibs
	cp.EvaluatingSources = cp.EvaluatingSources || sources
	cp.TransitivePropertiesOnly = cp.TransitivePropertiesOnly || transitiveOnly
	cp.TopTarget = cp.TopTarget || top
	return &cp
}

// isEvaluatingLinkLibraries reports whether this frame or any ancestor has
// the link-libraries role bit set.
func (f *Frame) isEvaluatingLinkLibraries() bool {
	for p := f; p != nil; p = p.Parent {
		if p.EvaluatingLinkLibraries {
			return true
		}
	}
	return false
}

// isTransitivePropertiesOnly reports whether this frame or any ancestor has
// the transitive-properties-only role bit set (used by LINK_ONLY).
func (f *Frame) isTransitivePropertiesOnly(ctx *Context) bool {
	if ctx.TransitivePropertiesOnly {
		return true
	}
	for p := f; p != nil; p = p.Parent {
		if p.TransitivePropertiesOnly {
			return true
		}
	}
	return false
}
