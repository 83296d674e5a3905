package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"genexpr/internal/genevalyaml"
)

var browseCmd = &cobra.Command{
	Use:   "browse <fixture>",
	Short: "Interactively browse a fixture's targets and their properties",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
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

	m := newBrowseModel(fixture)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
