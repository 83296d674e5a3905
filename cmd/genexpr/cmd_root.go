package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   appName + " [command]",
	Short: "Evaluate CMake-style generator expressions against a fixture target graph",
	Long: "genexpr evaluates $<...> generator expressions against a YAML-described\n" +
		"target graph (an \"fixture\"), without needing a real buildsystem.\n\n" +
		"Fixtures are looked up by name under " + "$" + envFixtureDir + " (or " +
		"~/.config/" + appName + "/fixtures) unless a path is given.",
}
