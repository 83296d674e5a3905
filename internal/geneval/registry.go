package geneval

import "sync"

// registry is the process-wide, immutable identifier -> Node table (spec
// §4.2). It is built lazily on first use and never mutated afterward, so
// concurrent evaluations across goroutines may share it freely.
var (
	registryOnce sync.Once
	registry     map[string]*Node
)

// lookupNode resolves an upper-case identifier to its Node descriptor,
// building the registry on first call.
func lookupNode(name string) (*Node, bool) {
	registryOnce.Do(buildRegistry)
	nd, ok := registry[name]
	return nd, ok
}

// register adds nd to the registry under construction. Called only from
// buildRegistry (and the ops_*.go registration helpers it calls); panics on
// a duplicate name, since that is a programming error in this package, not
// a runtime condition callers can hit.
func register(nd *Node) {
	if _, exists := registry[nd.Name]; exists {
		panic("geneval: duplicate node registration: " + nd.Name)
	}
	registry[nd.Name] = nd
}

// buildRegistry constructs the full ~50-entry operator table. Split across
// ops_*.go by category; each register*Ops function owns one category.
func buildRegistry() {
	registry = make(map[string]*Node, 64)
	registerLogicOps()
	registerCompilerOps()
	registerArtifactOps()
	registerTargetPropertyOps()
	registerObjectOps()
	registerFeatureOps()
	registerPolicyOps()
}
