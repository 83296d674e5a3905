package geneval

import "strings"

// registerObjectOps installs $<TARGET_OBJECTS:tgt> (spec §4.7).
func registerObjectOps() {
	register(&Node{Name: "TARGET_OBJECTS", Arity: 1, Eval: evalTargetObjects})
}

func evalTargetObjects(params []string, ctx *Context, dag *Frame) string {
	if !ctx.EvaluateForBuildsystem {
		return fail(ctx, "TARGET_OBJECTS", ErrNotForBuildsystem)
	}

	targetName := params[0]
	tgt, ok := ctx.Build.Target(targetName)
	if !ok {
		return failf(ctx, "TARGET_OBJECTS", "%w: %q", ErrUnknownTarget, targetName)
	}
	if tgt.Type() != TargetObjectLibrary {
		return failf(ctx, "TARGET_OBJECTS", "target %q is not an object library", targetName)
	}

	gen, ok := ctx.Build.GeneratorTarget(tgt)
	if !ok {
		return failf(ctx, "TARGET_OBJECTS", "target %q has no generator backing", targetName)
	}

	sources, err := gen.ObjectSources(ctx.Config)
	if err != nil {
		return fail(ctx, "TARGET_OBJECTS", err)
	}

	ctx.recordTarget(targetName, true)

	store := ctx.Build.Sources()
	paths := make([]string, 0, len(sources))
	for _, src := range sources {
		objPath := gen.ObjectFilePath(src, ctx.Config)
		handle := store.GetOrCreateSource(objPath, false)
		store.MarkExternalObject(handle, targetName)
		paths = append(paths, objPath)
	}

	return strings.Join(paths, ";")
}
