package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ged/gedcom"
)

// readInput reads the named file, or stdin when name is empty or "-".
func readInput(cmd *cobra.Command, name string) ([]byte, string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return data, name, nil
}

// parseInput reads and parses one GEDCOM input. Input that cannot be
// parsed at all is returned as an error; diagnostics are printed to stderr
// when warn is set.
func parseInput(cmd *cobra.Command, name string, warn bool) (*gedcom.Document, gedcom.Diagnostics, error) {
	data, file, err := readInput(cmd, name)
	if err != nil {
		return nil, nil, err
	}
	doc, diags, err := gedcom.Parse(data, gedcom.WithFile(file))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}
	if warn {
		for _, d := range diags {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", file, d)
		}
	}
	return doc, diags, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
