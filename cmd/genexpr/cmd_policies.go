package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"genexpr/internal/genevalyaml"
)

var policiesCmd = &cobra.Command{
	Use:   "policies <fixture>",
	Short: "List the known policies and any per-target status set in a fixture",
	Args:  cobra.ExactArgs(1),
	RunE:  runPolicies,
}

func runPolicies(cmd *cobra.Command, args []string) error {
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

	policies := append([]string(nil), fixture.KnownPolicies...)
	sort.Strings(policies)
	for _, p := range policies {
		fmt.Println(p)
		if msg, ok := fixture.PolicyMessages[p]; ok {
			fmt.Printf("  warn message: %s\n", msg)
		}
		targetNames := make([]string, 0, len(fixture.Targets))
		for name := range fixture.Targets {
			targetNames = append(targetNames, name)
		}
		sort.Strings(targetNames)
		for _, name := range targetNames {
			if status, ok := fixture.Targets[name].Policies[p]; ok {
				fmt.Printf("  %s: %s\n", name, status)
			}
		}
	}
	return nil
}
