package geneval

import "testing"

// TestTargetPropertyDiamondPropagation is spec §8 scenario 5: lib has
// INTERFACE_COMPILE_DEFINITIONS=FOO and links to libdep, whose
// INTERFACE_COMPILE_DEFINITIONS=BAR.
func TestTargetPropertyDiamondPropagation(t *testing.T) {
	build := newFakeBuild()
	lib := build.add(newFakeTarget("lib"))
	lib.properties["INTERFACE_COMPILE_DEFINITIONS"] = Text("FOO")
	lib.transitiveDeps = []string{"libdep"}

	libdep := build.add(newFakeTarget("libdep"))
	libdep.properties["INTERFACE_COMPILE_DEFINITIONS"] = Text("BAR")

	ctx := newTestContext(build, lib)
	got := mustEval(t, ctx, content("TARGET_PROPERTY", "lib", "INTERFACE_COMPILE_DEFINITIONS"))
	if got != "FOO;BAR" {
		t.Fatalf("got %q, want %q", got, "FOO;BAR")
	}
}

// TestTargetPropertyMutualCycleTerminates is spec §8 scenario 6: a and b
// each list each other in INTERFACE_INCLUDE_DIRECTORIES with own dirs /A
// and /B; reading from head a must terminate with "/A;/B".
func TestTargetPropertyMutualCycleTerminates(t *testing.T) {
	build := newFakeBuild()
	a := build.add(newFakeTarget("a"))
	a.properties["INTERFACE_INCLUDE_DIRECTORIES"] = Text("/A")
	a.transitiveDeps = []string{"b"}

	b := build.add(newFakeTarget("b"))
	b.properties["INTERFACE_INCLUDE_DIRECTORIES"] = Text("/B")
	b.transitiveDeps = []string{"a"}

	ctx := newTestContext(build, a)
	got := mustEval(t, ctx, content("TARGET_PROPERTY", "a", "INTERFACE_INCLUDE_DIRECTORIES"))
	if got != "/A;/B" {
		t.Fatalf("got %q, want %q", got, "/A;/B")
	}
}

func TestTargetPropertyUnknownTargetIsFatal(t *testing.T) {
	build := newFakeBuild()
	ctx := newTestContext(build, nil)
	got := Evaluate(content("TARGET_PROPERTY", "ghost", "FOO"), ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("got (%q, hadError=%v), want fatal", got, ctx.HadError)
	}
}

func TestTargetPropertyNoHeadTargetSingleParam(t *testing.T) {
	build := newFakeBuild()
	ctx := newTestContext(build, nil)
	got := Evaluate(content("TARGET_PROPERTY", "FOO"), ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("TARGET_PROPERTY with no head target and 1 param should be fatal, got (%q, hadError=%v)", got, ctx.HadError)
	}
}

func TestTargetPropertyAliasResolution(t *testing.T) {
	build := newFakeBuild()
	real := build.add(newFakeTarget("real"))
	real.properties["FOO"] = Text("bar")
	aliasTgt := build.add(newFakeTarget("myalias"))
	aliasTgt.alias = "real"

	ctx := newTestContext(build, nil)
	got := mustEval(t, ctx, content("TARGET_PROPERTY", "myalias", "FOO"))
	if got != "bar" {
		t.Fatalf("got %q, want %q", got, "bar")
	}
}

func TestTargetPropertyAbsentFallsBackToConsistentProperty(t *testing.T) {
	build := newFakeBuild()
	tgt := build.add(newFakeTarget("lib"))
	tgt.consistent = map[ConsistentPropertyKind]map[string]string{
		ConsistentBool: {"POSITION_INDEPENDENT_CODE": "1"},
	}

	ctx := newTestContext(build, tgt)
	got := mustEval(t, ctx, content("TARGET_PROPERTY", "lib", "POSITION_INDEPENDENT_CODE"))
	if got != "1" {
		t.Fatalf("got %q, want %q", got, "1")
	}
	if !ctx.HadContextSensitiveCondition {
		t.Fatalf("consistent-property fallback must mark the context sensitive")
	}
}

func TestTargetPropertyImportedAbsentReturnsTransitiveOnly(t *testing.T) {
	build := newFakeBuild()
	dep := build.add(newFakeTarget("dep"))
	dep.properties["INTERFACE_COMPILE_DEFINITIONS"] = Text("X")

	imported := build.add(newFakeTarget("imp"))
	imported.imported = true
	imported.transitiveDeps = []string{"dep"}

	ctx := newTestContext(build, imported)
	got := mustEval(t, ctx, content("TARGET_PROPERTY", "imp", "INTERFACE_COMPILE_DEFINITIONS"))
	if got != "X" {
		t.Fatalf("got %q, want %q", got, "X")
	}
}

func TestAliasedTargetReturnsCanonicalName(t *testing.T) {
	build := newFakeBuild()
	build.add(newFakeTarget("real"))
	aliasTgt := build.add(newFakeTarget("myalias"))
	aliasTgt.alias = "real"
	build.aliases["myalias"] = true

	ctx := newTestContext(build, nil)
	got := mustEval(t, ctx, content("ALIASED_TARGET", "myalias"))
	if got != "real" {
		t.Fatalf("got %q, want %q", got, "real")
	}

	got2 := mustEval(t, ctx, content("ALIASED_TARGET", "real"))
	if got2 != "" {
		t.Fatalf("non-alias target should return empty, got %q", got2)
	}
}

func TestLinkOnlyRespectsTransitivePropertiesOnly(t *testing.T) {
	build := newFakeBuild()

	ctx := newTestContext(build, nil)
	got := mustEval(t, ctx, content("LINK_ONLY", "pthread"))
	if got != "pthread" {
		t.Fatalf("got %q, want %q", got, "pthread")
	}

	ctx2 := newTestContext(build, nil)
	ctx2.TransitivePropertiesOnly = true
	got2 := mustEval(t, ctx2, content("LINK_ONLY", "pthread"))
	if got2 != "" {
		t.Fatalf("got %q, want empty under transitive-properties-only", got2)
	}
}

func TestInterfaceMarkers(t *testing.T) {
	build := newFakeBuild()

	ctx := newTestContext(build, nil)
	got := mustEval(t, ctx, content("BUILD_INTERFACE", "x"))
	if got != "x" {
		t.Fatalf("BUILD_INTERFACE outside export should keep content, got %q", got)
	}
	got2 := mustEval(t, ctx, content("INSTALL_INTERFACE", "x"))
	if got2 != "" {
		t.Fatalf("INSTALL_INTERFACE outside export should drop content, got %q", got2)
	}

	ctx.ForExport = true
	got3 := mustEval(t, ctx, content("BUILD_INTERFACE", "x"))
	if got3 != "" {
		t.Fatalf("BUILD_INTERFACE during export should drop content, got %q", got3)
	}
	got4 := mustEval(t, ctx, content("INSTALL_INTERFACE", "x"))
	if got4 != "x" {
		t.Fatalf("INSTALL_INTERFACE during export should keep content, got %q", got4)
	}
}

func TestInstallPrefixOnlyValidForExport(t *testing.T) {
	build := newFakeBuild()
	ctx := newTestContext(build, nil)
	got := Evaluate(content("INSTALL_PREFIX"), ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("INSTALL_PREFIX outside export must be fatal, got (%q, hadError=%v)", got, ctx.HadError)
	}

	ctx2 := newTestContext(build, nil)
	ctx2.ForExport = true
	ctx2.InstallPrefix = "/usr/local"
	got2 := mustEval(t, ctx2, content("INSTALL_PREFIX"))
	if got2 != "/usr/local" {
		t.Fatalf("got %q, want %q", got2, "/usr/local")
	}
}

func TestTargetObjectsRequiresBuildsystemEvaluation(t *testing.T) {
	build := newFakeBuild()
	ctx := newTestContext(build, nil)
	got := Evaluate(content("TARGET_OBJECTS", "olib"), ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("got (%q, hadError=%v), want fatal", got, ctx.HadError)
	}
}

func TestTargetObjectsHappyPath(t *testing.T) {
	build := newFakeBuild()
	olib := build.add(newFakeTarget("olib"))
	olib.kind = TargetObjectLibrary
	store := newFakeSourceStore()
	build.sources = store
	build.generators["olib"] = &fakeGeneratorTarget{sources: []string{"a.c", "b.c"}}

	ctx := newTestContext(build, nil)
	ctx.EvaluateForBuildsystem = true
	got := mustEval(t, ctx, content("TARGET_OBJECTS", "olib"))
	if got != "a.c.o;b.c.o" {
		t.Fatalf("got %q, want %q", got, "a.c.o;b.c.o")
	}
	if store.marked["src:a.c.o"] != "olib" {
		t.Fatalf("a.c.o should be marked as an external object of olib, got %v", store.marked)
	}
}

func TestTargetPolicyUnknownIsFatal(t *testing.T) {
	build := newFakeBuild()
	tgt := build.add(newFakeTarget("app"))
	ctx := newTestContext(build, tgt)
	got := Evaluate(content("TARGET_POLICY", "NOT_A_POLICY"), ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("got (%q, hadError=%v), want fatal", got, ctx.HadError)
	}
}

func TestTargetPolicyStatuses(t *testing.T) {
	build := newFakeBuild()
	build.policyMessages[PolicyCompilerIDMatchCase] = "case-insensitive match is deprecated"
	tgt := build.add(newFakeTarget("app"))
	ctx := newTestContext(build, tgt)

	tgt.policies[PolicyCompilerIDMatchCase] = PolicyNew
	if got := mustEval(t, ctx, content("TARGET_POLICY", PolicyCompilerIDMatchCase)); got != "1" {
		t.Fatalf("NEW policy: got %q, want %q", got, "1")
	}
	if !ctx.HadContextSensitiveCondition {
		t.Fatalf("TARGET_POLICY must mark the context sensitive")
	}

	sink := &fakeSink{}
	ctx2 := newTestContext(build, tgt)
	ctx2.Sink = sink
	tgt.policies[PolicyCompilerIDMatchCase] = PolicyWarn
	if got := mustEval(t, ctx2, content("TARGET_POLICY", PolicyCompilerIDMatchCase)); got != "0" {
		t.Fatalf("WARN policy: got %q, want %q", got, "0")
	}
	if len(sink.warnings) != 1 {
		t.Fatalf("expected a policy warning to be emitted, got %v", sink.warnings)
	}
}

func TestCompileFeaturesUnknownFeatureIsFatal(t *testing.T) {
	build := newFakeBuild()
	tgt := build.add(newFakeTarget("app"))
	ctx := newTestContext(build, tgt)
	got := Evaluate(content("COMPILE_FEATURES", "nonexistent"), ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("got (%q, hadError=%v), want fatal", got, ctx.HadError)
	}
}

func TestCompileFeaturesRecordsMaxStandardDuringLinkLibraries(t *testing.T) {
	build := newFakeBuild()
	build.features["cxx_std_17"] = "cxx"
	build.unavailable["cxx_std_17"] = "17"
	tgt := build.add(newFakeTarget("app"))
	ctx := newTestContext(build, tgt)
	ctx.EvaluatingLinkLibraries = true

	got := mustEval(t, ctx, content("COMPILE_FEATURES", "cxx_std_17"))
	if got != "1" {
		t.Fatalf("got %q, want %q", got, "1")
	}
	if ctx.MaxLanguageStandard["app"]["cxx"] != "17" {
		t.Fatalf("max language standard not recorded: %v", ctx.MaxLanguageStandard)
	}
}

func TestCompileFeaturesUnavailableOutsideLinkLibrariesReturnsZero(t *testing.T) {
	build := newFakeBuild()
	build.features["cxx_std_17"] = "cxx"
	build.unavailable["cxx_std_17"] = "17"
	tgt := build.add(newFakeTarget("app"))
	ctx := newTestContext(build, tgt)

	got := mustEval(t, ctx, content("COMPILE_FEATURES", "cxx_std_17"))
	if got != "0" {
		t.Fatalf("got %q, want %q", got, "0")
	}
}
