package geneval

// synthTargetProperty builds the AST for $<TARGET_PROPERTY:target,prop>
// directly, without going through a surface-syntax parser. Parsing
// arbitrary user text is explicitly out of scope for this package (spec
// §1); the only "expressions" ever constructed at evaluation time are
// these two-parameter TARGET_PROPERTY forms the transitive-propagation
// algorithm itself synthesizes (spec §4.6 step 7), so a general parser
// would be solving a problem this package never actually has.
func synthTargetProperty(target, property string) *Content {
	return &Content{
		Identifier: []Evaluator{Text("TARGET_PROPERTY")},
		Parameters: [][]Evaluator{
			{Text(target)},
			{Text(property)},
		},
	}
}
