package geneval

import (
	"strings"
	"testing"
)

func newTestContext(build BuildContext, head TargetHandle) *Context {
	return NewContext(build, "Debug", head)
}

func TestEvaluateLiteralConcat(t *testing.T) {
	root := Concat{Text("a-"), Text("b")}
	ctx := newTestContext(newFakeBuild(), nil)
	got := Evaluate(root, ctx, nil)
	if got != "a-b" {
		t.Fatalf("got %q, want %q", got, "a-b")
	}
}

func TestEvaluateUnknownIdentifierIsFatal(t *testing.T) {
	root := &Content{Identifier: []Evaluator{Text("NOPE")}}
	ctx := newTestContext(newFakeBuild(), nil)
	got := Evaluate(root, ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("got (%q, hadError=%v), want empty + hadError", got, ctx.HadError)
	}
}

func TestEvaluateArityMismatch(t *testing.T) {
	root := &Content{Identifier: []Evaluator{Text("STREQUAL")}, Parameters: [][]Evaluator{{Text("a")}}}
	ctx := newTestContext(newFakeBuild(), nil)
	got := Evaluate(root, ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("STREQUAL with 1 param should be fatal, got (%q, hadError=%v)", got, ctx.HadError)
	}
}

func TestHadErrorShortCircuitsFurtherEvaluation(t *testing.T) {
	// AND's second parameter, "STREQUAL:a" (malformed on purpose via wrong
	// arity), sets HadError; the outer AND must not overwrite the empty
	// result with anything derived from a partial evaluation.
	bad := &Content{Identifier: []Evaluator{Text("STREQUAL")}, Parameters: [][]Evaluator{{Text("a")}}}
	root := &Content{
		Identifier: []Evaluator{Text("AND")},
		Parameters: [][]Evaluator{{Text("1")}, {bad}},
	}
	ctx := newTestContext(newFakeBuild(), nil)
	got := Evaluate(root, ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("got (%q, hadError=%v), want empty + hadError", got, ctx.HadError)
	}
}

func content(name string, params ...string) *Content {
	c := &Content{Identifier: []Evaluator{Text(name)}}
	for _, p := range params {
		c.Parameters = append(c.Parameters, []Evaluator{Text(p)})
	}
	return c
}

func mustEval(t *testing.T, ctx *Context, e Evaluator) string {
	t.Helper()
	got := Evaluate(e, ctx, nil)
	if ctx.HadError {
		t.Fatalf("unexpected fatal error evaluating %#v", e)
	}
	return got
}

func TestArbitraryContentCommaRejoin(t *testing.T) {
	// $<1:a,b,c> - node "1" has AcceptsArbitraryContent + arity 1, so all
	// three comma-separated groups rejoin into one literal-comma parameter.
	root := &Content{
		Identifier: []Evaluator{Text("1")},
		Parameters: [][]Evaluator{{Text("a")}, {Text("b")}, {Text("c")}},
	}
	ctx := newTestContext(newFakeBuild(), nil)
	got := mustEval(t, ctx, root)
	if got != "a,b,c" {
		t.Fatalf("got %q, want %q", got, "a,b,c")
	}
}

func TestZeroNodeDiscardsContent(t *testing.T) {
	root := &Content{
		Identifier: []Evaluator{Text("0")},
		Parameters: [][]Evaluator{{Text("whatever")}},
	}
	ctx := newTestContext(newFakeBuild(), nil)
	got := mustEval(t, ctx, root)
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestArtifactPathRequiresKnownTarget(t *testing.T) {
	build := newFakeBuild()
	ctx := newTestContext(build, nil)
	got := Evaluate(content("TARGET_FILE", "missing"), ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("expected fatal error for unknown target, got (%q, hadError=%v)", got, ctx.HadError)
	}
}

func TestArtifactPathHappyPath(t *testing.T) {
	build := newFakeBuild()
	tgt := build.add(newFakeTarget("app"))
	tgt.artifactPath = "/out/app"
	ctx := newTestContext(build, nil)

	got := Evaluate(content("TARGET_FILE", "app"), ctx, nil)
	if got != "/out/app" || ctx.HadError {
		t.Fatalf("got (%q, hadError=%v)", got, ctx.HadError)
	}
	if _, ok := ctx.AllTargets["app"]; !ok {
		t.Fatalf("TARGET_FILE should record its target in AllTargets")
	}
}

func TestArtifactPathNameQualifier(t *testing.T) {
	build := newFakeBuild()
	tgt := build.add(newFakeTarget("app"))
	tgt.artifactPath = "/out/app"
	ctx := newTestContext(build, nil)

	got := Evaluate(content("TARGET_FILE_NAME", "app"), ctx, nil)
	if got != "app" {
		t.Fatalf("got %q, want %q", got, "app")
	}
}

func TestSonameFileRejectsNonSharedLibrary(t *testing.T) {
	build := newFakeBuild()
	build.add(newFakeTarget("app")) // executable by default
	ctx := newTestContext(build, nil)

	got := Evaluate(content("TARGET_SONAME_FILE", "app"), ctx, nil)
	if got != "" || !ctx.HadError {
		t.Fatalf("expected fatal error, got (%q, hadError=%v)", got, ctx.HadError)
	}
}

func TestJoinOperator(t *testing.T) {
	ctx := newTestContext(newFakeBuild(), nil)
	got := Evaluate(content("JOIN", "a;b;c", "+"), ctx, nil)
	if got != "a+b+c" {
		t.Fatalf("got %q, want %q", got, "a+b+c")
	}
}

func TestMakeCIdentifier(t *testing.T) {
	ctx := newTestContext(newFakeBuild(), nil)
	got := Evaluate(content("MAKE_C_IDENTIFIER", "1-weird.name"), ctx, nil)
	if got != "_1_weird_name" {
		t.Fatalf("got %q, want %q", got, "_1_weird_name")
	}
}

func TestBacktraceUnwindsAfterFatalError(t *testing.T) {
	sink := &fakeSink{}
	build := newFakeBuild()
	ctx := newTestContext(build, nil)
	ctx.Sink = sink

	root := &Content{Identifier: []Evaluator{Text("NOPE")}}
	Evaluate(root, ctx, nil)
	if len(ctx.Backtrace) != 0 {
		t.Fatalf("backtrace should unwind after error, got %v", ctx.Backtrace)
	}
	if len(sink.fatals) != 1 || !strings.Contains(sink.fatals[0], "NOPE") {
		t.Fatalf("sink.fatals = %v", sink.fatals)
	}
}
