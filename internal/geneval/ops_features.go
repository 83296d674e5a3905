package geneval

// registerFeatureOps installs $<COMPILE_FEATURES:...> (spec §4.8).
func registerFeatureOps() {
	register(&Node{Name: "COMPILE_FEATURES", Arity: OneOrMore, GeneratesContent: true, Eval: evalCompileFeatures})
}

// evalCompileFeatures classifies every requested feature and checks its
// availability for the head target. In link-libraries evaluation, an
// unavailable feature doesn't fail outright: it records the language
// standard level it needs in max-language-standard and lets the caller's
// own standard-selection pass decide whether that's still satisfiable.
func evalCompileFeatures(params []string, ctx *Context, dag *Frame) string {
	if ctx.HeadTarget == nil {
		return fail(ctx, "COMPILE_FEATURES", ErrNotBinaryTarget)
	}

	inLinkLibraries := dag.isEvaluatingLinkLibraries() || ctx.EvaluatingLinkLibraries

	for _, feature := range params {
		if feature == "" {
			continue
		}
		lang, ok := ctx.Build.ClassifyFeature(feature)
		if !ok {
			return failf(ctx, "COMPILE_FEATURES", "%w: %q", ErrUnknownFeature, feature)
		}

		available, required := ctx.Build.FeatureAvailable(ctx.HeadTarget, feature, ctx.Config)
		if available {
			continue
		}

		if !inLinkLibraries {
			return "0"
		}

		if ctx.MaxLanguageStandard[ctx.HeadTarget.Name()] == nil {
			ctx.MaxLanguageStandard[ctx.HeadTarget.Name()] = map[string]string{}
		}
		if cur := ctx.MaxLanguageStandard[ctx.HeadTarget.Name()][lang]; required > cur {
			ctx.MaxLanguageStandard[ctx.HeadTarget.Name()][lang] = required
		}
	}
	return "1"
}
