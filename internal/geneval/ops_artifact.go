package geneval

import (
	"fmt"
	"path/filepath"
)

// artifactKind and qualifierKind implement the "template booleans" of the
// original evaluator as the two small enums spec §9 recommends, dispatched
// two-dimensionally instead of through four constructor booleans.
type artifactKind int

const (
	artifactMain artifactKind = iota
	artifactLinker
	artifactSoname
)

type qualifierKind int

const (
	qualifierFull qualifierKind = iota
	qualifierName
	qualifierDir
)

// registerArtifactOps installs the TARGET_FILE family (spec §4.5): three
// artifact kinds crossed with three qualifiers, nine nodes in total.
func registerArtifactOps() {
	artifacts := []struct {
		suffix string
		kind   artifactKind
	}{
		{"", artifactMain},
		{"LINKER_", artifactLinker},
		{"SONAME_", artifactSoname},
	}
	qualifiers := []struct {
		suffix string
		kind   qualifierKind
	}{
		{"", qualifierFull},
		{"_DIR", qualifierDir},
		{"_NAME", qualifierName},
	}

	for _, a := range artifacts {
		for _, q := range qualifiers {
			name := fmt.Sprintf("TARGET_%sFILE%s", a.suffix, q.suffix)
			register(&Node{Name: name, Arity: 1, Eval: targetFileOp(a.kind, q.kind)})
		}
	}
}

func targetFileOp(artifact artifactKind, qualifier qualifierKind) EvalFunc {
	return func(params []string, ctx *Context, dag *Frame) string {
		targetName := params[0]
		tgt, ok := ctx.Build.Target(targetName)
		if !ok {
			return failf(ctx, "TARGET_FILE", "%w: %q", ErrUnknownTarget, targetName)
		}

		switch tgt.Type() {
		case TargetExecutable, TargetStaticLibrary, TargetSharedLibrary, TargetModuleLibrary:
			// ok
		default:
			return failf(ctx, "TARGET_FILE", "target %q is not an executable or library", targetName)
		}

		if dag.isEvaluatingLinkLibraries() || (dag != nil && dag.EvaluatingSources) || ctx.EvaluatingLinkLibraries || ctx.EvaluatingSources {
			return failf(ctx, "TARGET_FILE", "TARGET_FILE-family expressions may not be evaluated while collecting %q's link libraries or sources", targetName)
		}

		ctx.recordTarget(targetName, true)

		var path string
		var err error
		switch artifact {
		case artifactMain:
			path, err = tgt.ArtifactPath(ctx.Config, false)
		case artifactLinker:
			if !tgt.IsLinkable() {
				return failf(ctx, "TARGET_LINKER_FILE", "%w: %q", ErrNotLinkable, targetName)
			}
			path, err = tgt.ArtifactPath(ctx.Config, true)
		case artifactSoname:
			if tgt.Type() != TargetSharedLibrary || tgt.IsDLLPlatform() {
				return failf(ctx, "TARGET_SONAME_FILE", "%w: %q", ErrNotSharedLibrary, targetName)
			}
			path, err = tgt.Soname(ctx.Config)
		}
		if err != nil {
			return fail(ctx, "TARGET_FILE", err)
		}

		switch qualifier {
		case qualifierFull:
			return path
		case qualifierName:
			return filepath.Base(path)
		case qualifierDir:
			if artifact == artifactSoname {
				return filepath.Dir(path)
			}
			dir, err := tgt.OutputDirectory(ctx.Config, artifact == artifactLinker)
			if err != nil {
				return fail(ctx, "TARGET_FILE_DIR", err)
			}
			return dir
		}
		return path
	}
}
