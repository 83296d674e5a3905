// Package geneval implements the generator-expression evaluation engine:
// the AST, the node registry, and the evaluation driver that walks a
// compiled $<...> expression against a per-evaluation context.
package geneval

// Evaluator is a node in a compiled generator expression. It is either a
// Text leaf or a Content compound. The tree is built once by a parser (out
// of scope for this package) and is immutable and safely shareable across
// concurrent evaluations, each with its own *Context.
type Evaluator interface {
	// Evaluate produces this node's string value under ctx. dag is the DAG
	// frame of the enclosing TARGET_PROPERTY descent (nil at the root).
	Evaluate(ctx *Context, dag *Frame) string
}

// Text is a literal run of bytes outside any $<...> form.
type Text string

// Evaluate returns the literal text unchanged.
func (t Text) Evaluate(ctx *Context, dag *Frame) string {
	return string(t)
}

// Content is a compound $<...> node: an identifier built from
// Identifier (evaluated and concatenated to yield the operator name), and
// Parameters, one ordered sequence of Evaluator per comma-separated
// argument. Parameters[i] is itself a sequence because a single argument
// can interleave literal text with nested $<...> forms.
type Content struct {
	Identifier []Evaluator
	Parameters [][]Evaluator
}

// Evaluate resolves the node's identifier, looks it up in the registry, and
// dispatches to the driver in driver.go. See runContent for the full
// parameter-evaluation and arity-checking algorithm (spec §4.1).
func (c *Content) Evaluate(ctx *Context, dag *Frame) string {
	return runContent(c, ctx, dag)
}

// Concat is a top-level sequence of sibling Evaluators — a parsed
// expression's root, or a property value compiled by the host (spec §6's
// TargetHandle.Property). It is Evaluator itself so a parser's output can be
// handed straight to Evaluate without an extra wrapper type at each call
// site.
type Concat []Evaluator

// Evaluate concatenates every element's value, short-circuiting on error.
func (c Concat) Evaluate(ctx *Context, dag *Frame) string {
	return evalConcat([]Evaluator(c), ctx, dag)
}

// evalConcat evaluates each Evaluator in seq against ctx and concatenates
// the results, short-circuiting on ctx.HadError.
func evalConcat(seq []Evaluator, ctx *Context, dag *Frame) string {
	if len(seq) == 0 {
		return ""
	}
	var b []byte
	for _, e := range seq {
		if ctx.HadError {
			return ""
		}
		b = append(b, e.Evaluate(ctx, dag)...)
	}
	return string(b)
}

// isLiteralText reports whether every node in seq is a Text leaf, per the
// requires-literal-input node flag (spec §4.1).
func isLiteralText(seq []Evaluator) bool {
	for _, e := range seq {
		if _, ok := e.(Text); !ok {
			return false
		}
	}
	return true
}
