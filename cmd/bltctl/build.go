package main

import (
	"fmt"
	"os"

	"github.com/jonathanvdc/blt/internal/sexpr"
	"github.com/jonathanvdc/blt/pkg/blt"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newBuildCmd())
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <source.sexpr> <out.blt>",
		Short: "Compile a text s-expression forest into a BLT file",
		Long: `The build command parses a tiny s-expression text form - bare names,
"quoted strings", decimal integers, (target arg1 arg2) calls, and a
leading @(attr1, attr2) attribute prefix - into a forest and encodes it
as a BLT file.

Example:
  bltctl build example.sexpr example.blt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args)
		},
	}
}

func runBuild(args []string) error {
	srcPath, outPath := args[0], args[1]
	printVerbose("Reading %s\n", srcPath)

	src, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", srcPath, err)
	}

	forest, err := sexpr.Parse(string(src))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", srcPath, err)
	}
	printVerbose("Parsed %d top-level node(s)\n", len(forest))

	if err := blt.WriteFilePath(outPath, forest, nil); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"source": srcPath,
			"out":    outPath,
			"nodes":  len(forest),
		})
	}
	printInfo("%s: wrote %d top-level node(s) to %s\n", srcPath, len(forest), outPath)
	return nil
}
