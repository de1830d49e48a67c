package main

import (
	"fmt"

	"github.com/jonathanvdc/blt/pkg/blt"
	"github.com/jonathanvdc/blt/pkg/node"
	"github.com/spf13/cobra"
)

var dumpIdentifier string

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpIdentifier, "identifier", "", "Opaque label passed to the node factory")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file.blt>",
		Short: "Human-readable dump of a BLT file's forest",
		Long: `The dump command decodes a BLT file and prints its top-level forest
as s-expressions, one per line.

Example:
  bltctl dump example.blt
  bltctl dump example.blt --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

func runDump(args []string) error {
	path := args[0]
	printVerbose("Opening %s\n", path)

	forest, err := blt.ReadFilePath(path, dumpIdentifier, nil)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if jsonOut {
		rendered := make([]string, len(forest))
		for i, n := range forest {
			rendered[i] = node.Sprint(n)
		}
		return printJSON(map[string]interface{}{
			"file":   path,
			"forest": rendered,
		})
	}

	for _, n := range forest {
		printInfo("%s\n", node.Sprint(n))
	}
	return nil
}
