package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd.AddCommand(evalCmd, targetsCmd, policiesCmd, browseCmd)

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}
