package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"adder/runtime-go/pkg/conformance"
	"adder/runtime-go/pkg/runtime"
)

func newConformanceCommand() *cobra.Command {
	var verbose bool
	var stats bool
	cmd := &cobra.Command{
		Use:   "conformance [files...]",
		Short: "Run fixture suites against the value engine",
		Long: "Run declarative conformance fixtures against the value engine.\n" +
			"With no arguments the fixtures/ directory is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConformance(cmd.OutOrStdout(), args, verbose, stats)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report every case, not just failures")
	cmd.Flags().BoolVar(&stats, "stats", false, "report heap statistics per suite")
	return cmd
}

func runConformance(out io.Writer, args []string, verbose, stats bool) error {
	suites, err := loadSuites(args)
	if err != nil {
		return err
	}

	passed, failed := 0, 0
	for _, suite := range suites {
		ctx := runtime.NewContext()
		for _, c := range suite.Cases {
			result := conformance.RunCase(ctx, suite.Name, c)
			if result.Passed {
				passed++
				if verbose {
					fmt.Fprintf(out, "ok   %s: %s\n", result.Suite, result.Case)
				}
				continue
			}
			failed++
			fmt.Fprintf(out, "FAIL %s: %s: %s\n", result.Suite, result.Case, result.Detail)
		}
		if stats {
			fmt.Fprintf(out, "     %s: heap live=%d allocated=%d\n",
				suite.Name, ctx.Heap().Live(), ctx.Heap().Allocated())
		}
	}

	fmt.Fprintf(out, "%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return fmt.Errorf("%d conformance case(s) failed", failed)
	}
	return nil
}

func loadSuites(args []string) ([]*conformance.Suite, error) {
	if len(args) == 0 {
		return conformance.LoadDir("fixtures")
	}
	suites := make([]*conformance.Suite, 0, len(args))
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			loaded, err := conformance.LoadDir(arg)
			if err != nil {
				return nil, err
			}
			suites = append(suites, loaded...)
			continue
		}
		suite, err := conformance.Load(arg)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}
