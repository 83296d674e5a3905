package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"genexpr/internal/geneval"
	"genexpr/internal/genevalyaml"
	"genexpr/internal/genexprparse"
)

// evaluateRoot runs a parsed expression against ctx as a fresh top-level
// evaluation (no enclosing DAG frame).
func evaluateRoot(root geneval.Evaluator, ctx *geneval.Context) string {
	return geneval.Evaluate(root, ctx, nil)
}

var (
	flagEvalConfig      string
	flagEvalHeadTarget  string
	flagEvalForExport   bool
	flagEvalInteractive bool
)

var evalCmd = &cobra.Command{
	Use:   "eval <fixture> [expression]",
	Short: "Evaluate a generator expression against a fixture",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringVar(&flagEvalConfig, "config", "", "override the fixture's config value")
	evalCmd.Flags().StringVar(&flagEvalHeadTarget, "head-target", "", "override the fixture's head_target")
	evalCmd.Flags().BoolVar(&flagEvalForExport, "for-export", false, "evaluate as if generating an export file")
	evalCmd.Flags().BoolVarP(&flagEvalInteractive, "interactive", "i", false, "prompt for the expression with a form instead of taking it as an argument")
}

func runEval(cmd *cobra.Command, args []string) error {
	path, err := resolveFixturePath(args[0])
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading fixture %s: %w", path, err)
	}
	fixture, err := genevalyaml.ParseFixture(data)
	if err != nil {
		return fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	if flagEvalConfig != "" {
		fixture.Config = flagEvalConfig
	}
	if flagEvalHeadTarget != "" {
		fixture.HeadTarget = flagEvalHeadTarget
	}
	fixture.ForExport = fixture.ForExport || flagEvalForExport

	expr := ""
	if len(args) == 2 {
		expr = args[1]
	}
	if expr == "" {
		if !flagEvalInteractive {
			return fmt.Errorf("an expression is required unless --interactive is given")
		}
		expr, err = promptExpression(fixture)
		if err != nil {
			return err
		}
	}

	root, err := genexprparse.Parse(expr)
	if err != nil {
		return fmt.Errorf("parsing expression: %w", err)
	}

	host := genevalyaml.NewHost(fixture)
	sink := newConsoleSink()
	ctx, err := host.NewContext(sink)
	if err != nil {
		return err
	}

	result := evaluateRoot(root, ctx)
	if sink.fatalCount > 0 {
		return fmt.Errorf("%d fatal error(s) during evaluation", sink.fatalCount)
	}
	fmt.Println(result)
	return nil
}

// promptExpression builds a huh form offering the fixture's known target
// names as a starting point, so a user exploring a new fixture doesn't
// have to already know what's in it.
func promptExpression(fixture genevalyaml.Fixture) (string, error) {
	names := make([]string, 0, len(fixture.Targets))
	for name := range fixture.Targets {
		names = append(names, name)
	}
	sort.Strings(names)

	var target, property, expr string
	options := make([]huh.Option[string], 0, len(names)+1)
	options = append(options, huh.NewOption("(type my own expression)", ""))
	for _, n := range names {
		options = append(options, huh.NewOption(n, n))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Target").
				Options(options...).
				Value(&target),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Property name").
				Value(&property).
				Placeholder("INTERFACE_COMPILE_DEFINITIONS"),
		).WithHideFunc(func() bool { return target == "" }),
		huh.NewGroup(
			huh.NewInput().
				Title("Expression").
				Value(&expr).
				Placeholder("$<TARGET_PROPERTY:name,PROP>"),
		).WithHideFunc(func() bool { return target != "" }),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompting for expression: %w", err)
	}
	if target != "" {
		return fmt.Sprintf("$<TARGET_PROPERTY:%s,%s>", target, property), nil
	}
	return expr, nil
}
