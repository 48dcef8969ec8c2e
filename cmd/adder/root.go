package main

import (
	"github.com/spf13/cobra"
)

const cliToolVersion = "adder-cli 0.0.0-dev"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "adder",
		Short:         "Tooling for the Adder runtime value engine",
		Version:       cliToolVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.AddCommand(newConformanceCommand())
	return root
}
