package geneval

import (
	"fmt"
	"strings"
)

// runContent implements the Content evaluation algorithm of spec §4.1:
// resolve the identifier, look it up, evaluate parameters according to the
// node's flags, check arity, and invoke the node.
func runContent(c *Content, ctx *Context, dag *Frame) string {
	if ctx.HadError {
		return ""
	}

	ident := evalConcat(c.Identifier, ctx, dag)
	if ctx.HadError {
		return ""
	}

	nd, ok := lookupNode(ident)
	if !ok {
		return fail(ctx, ident, fmt.Errorf("%w: %s", ErrUnknownIdentifier, ident))
	}

	pop := ctx.pushBacktrace(ident)
	defer pop()

	if nd.RawEval != nil {
		if !nd.arityOK(len(c.Parameters)) {
			return fail(ctx, ident, fmt.Errorf("%w: %s expects %s, got %d", ErrArity, ident, describeArity(nd.Arity), len(c.Parameters)))
		}
		return nd.RawEval(c.Parameters, ctx, dag)
	}

	if nd.RequiresLiteralInput {
		for _, p := range c.Parameters {
			if !isLiteralText(p) {
				return fail(ctx, ident, ErrNonLiteralInput)
			}
		}
	}

	var params []string
	if nd.AcceptsArbitraryContent {
		var err error
		params, err = evalArbitraryContentParams(c.Parameters, nd, ctx, dag)
		if err != nil {
			return fail(ctx, ident, err)
		}
	} else {
		for _, p := range c.Parameters {
			if ctx.HadError {
				return ""
			}
			params = append(params, evalConcat(p, ctx, dag))
		}
		if ctx.HadError {
			return ""
		}
		if !nd.arityOK(len(params)) {
			return fail(ctx, ident, fmt.Errorf("%w: %s expects %s, got %d", ErrArity, ident, describeArity(nd.Arity), len(params)))
		}
	}

	if ctx.HadError {
		return ""
	}
	return nd.Eval(params, ctx, dag)
}

// evalArbitraryContentParams evaluates the parameters of a node whose last
// declared parameter absorbs any additional raw parameter groups,
// rejoining them with a literal comma (spec §4.1, the escaped-comma rule).
//
// want is the node's declared arity (>=1; OneOrMore/OneOrZero/Dynamic are
// not used by any arbitrary-content built-in and are treated as 1). When
// the node does not generate content (its result is discarded by its
// caller) and want is 1, the mere presence of any parameter group
// satisfies the requirement even before evaluation — there is nothing to
// check beyond "at least one group was written".
func evalArbitraryContentParams(raw [][]Evaluator, nd *Node, ctx *Context, dag *Frame) ([]string, error) {
	want := int(nd.Arity)
	if want < 1 {
		want = 1
	}

	if !nd.GeneratesContent && want == 1 {
		if len(raw) == 0 {
			return nil, fmt.Errorf("%w: missing parameter", ErrArity)
		}
	} else if len(raw) < want {
		return nil, fmt.Errorf("%w: expects at least %d parameter(s), got %d", ErrArity, want, len(raw))
	}

	params := make([]string, 0, want)
	for i := 0; i < want-1; i++ {
		if ctx.HadError {
			return nil, nil
		}
		params = append(params, evalConcat(raw[i], ctx, dag))
	}

	restStart := want - 1
	if restStart > len(raw) {
		restStart = len(raw)
	}
	rest := raw[restStart:]
	parts := make([]string, 0, len(rest))
	for _, p := range rest {
		if ctx.HadError {
			return nil, nil
		}
		parts = append(parts, evalConcat(p, ctx, dag))
	}
	params = append(params, strings.Join(parts, ","))

	return params, nil
}

// describeArity renders an Arity for error messages.
func describeArity(a Arity) string {
	switch a {
	case OneOrMore:
		return "at least 1 parameter"
	case OneOrZero:
		return "at most 1 parameter"
	case Dynamic:
		return "a variable number of parameters"
	default:
		return fmt.Sprintf("%d parameter(s)", int(a))
	}
}

// Evaluate is the package's single external operation (spec §6): evaluate
// a compiled expression's root node against ctx, optionally nested under an
// existing DAG frame (nil at the top of a fresh top-level call).
func Evaluate(root Evaluator, ctx *Context, parent *Frame) string {
	if ctx.HadError {
		return ""
	}
	return root.Evaluate(ctx, parent)
}
