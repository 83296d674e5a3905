package main

import (
	"fmt"
	"os"
	"sort"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"genexpr/internal/genevalyaml"
)

var flagTargetsPick bool

var targetsCmd = &cobra.Command{
	Use:   "targets <fixture>",
	Short: "List the targets declared in a fixture",
	Args:  cobra.ExactArgs(1),
	RunE:  runTargets,
}

func init() {
	targetsCmd.Flags().BoolVar(&flagTargetsPick, "pick", false, "fuzzy-pick one target and print its declared properties")
}

func runTargets(cmd *cobra.Command, args []string) error {
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

	names := make([]string, 0, len(fixture.Targets))
	for name := range fixture.Targets {
		names = append(names, name)
	}
	sort.Strings(names)

	if !flagTargetsPick {
		for _, name := range names {
			fmt.Printf("%s\t(%s)\n", name, fixture.Targets[name].Type)
		}
		return nil
	}

	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string { return names[i] },
		fuzzyfinder.WithPromptString("Select target: "),
	)
	if err != nil {
		return fmt.Errorf("no target selected: %w", err)
	}

	selected := fixture.Targets[names[idx]]
	props := make([]string, 0, len(selected.Properties))
	for prop := range selected.Properties {
		props = append(props, prop)
	}
	sort.Strings(props)
	for _, prop := range props {
		fmt.Printf("%s = %s\n", prop, selected.Properties[prop])
	}
	return nil
}
