package geneval

import (
	"regexp"
	"strings"
)

// registerLogicOps installs the logic, comparison, case/identifier, and
// literal operators of spec §4.3.
func registerLogicOps() {
	register(&Node{Name: "0", Arity: 1, GeneratesContent: false, AcceptsArbitraryContent: true, Eval: evalZero})
	register(&Node{Name: "1", Arity: 1, GeneratesContent: true, AcceptsArbitraryContent: true, Eval: evalOne})

	register(&Node{Name: "AND", Arity: OneOrMore, Eval: evalAnd})
	register(&Node{Name: "OR", Arity: OneOrMore, Eval: evalOr})
	register(&Node{Name: "NOT", Arity: 1, Eval: evalNot})
	register(&Node{Name: "BOOL", Arity: 1, Eval: evalBool})
	register(&Node{Name: "IF", Arity: 3, Eval: evalIf})

	register(&Node{Name: "STREQUAL", Arity: 2, Eval: evalStrEqual})
	register(&Node{Name: "EQUAL", Arity: 2, Eval: evalEqual})
	register(&Node{Name: "IN_LIST", Arity: 2, Eval: evalInList})

	register(&Node{Name: "VERSION_LESS", Arity: 2, Eval: versionCompareOp(func(c int) bool { return c < 0 })})
	register(&Node{Name: "VERSION_GREATER", Arity: 2, Eval: versionCompareOp(func(c int) bool { return c > 0 })})
	register(&Node{Name: "VERSION_EQUAL", Arity: 2, Eval: versionCompareOp(func(c int) bool { return c == 0 })})
	register(&Node{Name: "VERSION_LESS_EQUAL", Arity: 2, Eval: versionCompareOp(func(c int) bool { return c <= 0 })})
	register(&Node{Name: "VERSION_GREATER_EQUAL", Arity: 2, Eval: versionCompareOp(func(c int) bool { return c >= 0 })})

	register(&Node{Name: "ANGLE-R", Arity: 0, Eval: func([]string, *Context, *Frame) string { return ">" }})
	register(&Node{Name: "COMMA", Arity: 0, Eval: func([]string, *Context, *Frame) string { return "," }})
	register(&Node{Name: "SEMICOLON", Arity: 0, Eval: func([]string, *Context, *Frame) string { return ";" }})

	register(&Node{Name: "LOWER_CASE", Arity: 1, Eval: func(p []string, _ *Context, _ *Frame) string { return asciiLower(p[0]) }})
	register(&Node{Name: "UPPER_CASE", Arity: 1, Eval: func(p []string, _ *Context, _ *Frame) string { return asciiUpper(p[0]) }})
	register(&Node{Name: "MAKE_C_IDENTIFIER", Arity: 1, Eval: func(p []string, _ *Context, _ *Frame) string { return makeCIdentifier(p[0]) }})
	register(&Node{Name: "JOIN", Arity: 2, Eval: func(p []string, _ *Context, _ *Frame) string {
		if p[0] == "" {
			return ""
		}
		return strings.Join(strings.Split(p[0], ";"), p[1])
	}})
}

func evalZero(params []string, ctx *Context, dag *Frame) string {
	return ""
}

func evalOne(params []string, ctx *Context, dag *Frame) string {
	return params[0]
}

func mustBit(ctx *Context, ident, path string, s string) (bool, bool) {
	switch s {
	case "0":
		return false, true
	case "1":
		return true, true
	default:
		failf(ctx, path, "%s: parameter must be \"0\" or \"1\", got %q", ident, s)
		return false, false
	}
}

func evalAnd(params []string, ctx *Context, dag *Frame) string {
	// AND and OR are never short-circuited (spec §5): every parameter is
	// validated even after the result is already determined.
	result := true
	ok := true
	for _, p := range params {
		b, valid := mustBit(ctx, "AND", "AND", p)
		if !valid {
			ok = false
			continue
		}
		if !b {
			result = false
		}
	}
	if !ok {
		return ""
	}
	if result {
		return "1"
	}
	return "0"
}

func evalOr(params []string, ctx *Context, dag *Frame) string {
	result := false
	ok := true
	for _, p := range params {
		b, valid := mustBit(ctx, "OR", "OR", p)
		if !valid {
			ok = false
			continue
		}
		if b {
			result = true
		}
	}
	if !ok {
		return ""
	}
	if result {
		return "1"
	}
	return "0"
}

func evalNot(params []string, ctx *Context, dag *Frame) string {
	b, ok := mustBit(ctx, "NOT", "NOT", params[0])
	if !ok {
		return ""
	}
	if b {
		return "0"
	}
	return "1"
}

// offEquivalents is the case-insensitive set of strings $<BOOL:...>
// considers false, plus the "-NOTFOUND" suffix rule (spec §4.3).
var offEquivalents = map[string]struct{}{
	"": {}, "0": {}, "OFF": {}, "NO": {}, "FALSE": {}, "N": {}, "IGNORE": {}, "NOTFOUND": {},
}

func evalBool(params []string, ctx *Context, dag *Frame) string {
	s := strings.ToUpper(params[0])
	if _, off := offEquivalents[s]; off {
		return "0"
	}
	if strings.HasSuffix(s, "-NOTFOUND") {
		return "0"
	}
	return "1"
}

func evalIf(params []string, ctx *Context, dag *Frame) string {
	b, ok := mustBit(ctx, "IF", "IF", params[0])
	if !ok {
		return ""
	}
	if b {
		return params[1]
	}
	return params[2]
}

func evalStrEqual(params []string, ctx *Context, dag *Frame) string {
	if params[0] == params[1] {
		return "1"
	}
	return "0"
}

func evalEqual(params []string, ctx *Context, dag *Frame) string {
	a, err := parseCMakeInteger(params[0])
	if err != nil {
		return fail(ctx, "EQUAL", err)
	}
	b, err := parseCMakeInteger(params[1])
	if err != nil {
		return fail(ctx, "EQUAL", err)
	}
	if a == b {
		return "1"
	}
	return "0"
}

func evalInList(params []string, ctx *Context, dag *Frame) string {
	if params[1] == "" {
		return "0"
	}
	for _, elem := range strings.Split(params[1], ";") {
		if elem == params[0] {
			return "1"
		}
	}
	return "0"
}

func versionCompareOp(pred func(int) bool) EvalFunc {
	return func(params []string, ctx *Context, dag *Frame) string {
		c, err := compareVersions(params[0], params[1])
		if err != nil {
			return fail(ctx, "VERSION", err)
		}
		if pred(c) {
			return "1"
		}
		return "0"
	}
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

var identByteRe = regexp.MustCompile(`[A-Za-z0-9_]`)

func makeCIdentifier(s string) string {
	b := []byte(s)
	for i, c := range b {
		if !identByteRe.Match([]byte{c}) {
			b[i] = '_'
		}
	}
	out := string(b)
	if len(out) > 0 && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// identRe validates the parameter to C_COMPILER_ID/CXX_COMPILER_ID/
// PLATFORM_ID-style operators (spec §4.4).
var identRe = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// numericRe validates the parameter to C_COMPILER_VERSION-style operators.
var numericRe = regexp.MustCompile(`^[0-9.]*$`)
