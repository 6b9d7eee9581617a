package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/ged/gedcom/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "GEDCOM line grammar tools",
	}

	cmd.AddCommand(newGrammarShowCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarShowCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the built-in EBNF grammar",
		Args:  checkArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list {
				_, err := fmt.Fprint(cmd.OutOrStdout(), grammar.Source())
				return err
			}
			names := grammar.Productions()
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list production names only")

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and verify an EBNF grammar file",
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			g, err := ebnf.Parse(filename, f)
			if err != nil {
				printErrors(cmd, err)
				return validationError{failed: 1}
			}
			if startProduction == "" {
				return nil
			}
			if err := ebnf.Verify(g, startProduction); err != nil {
				printErrors(cmd, err)
				return validationError{failed: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (empty only checks syntax)")

	return cmd
}

func newGrammarMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <production> <text>",
		Short: "Check text against a production of the built-in grammar",
		Args:  checkArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := grammar.MatchProduction(args[0], args[1])
			if err != nil {
				return usageError{err}
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%q does not match %s\n", args[1], args[0])
				return validationError{failed: 1}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q matches %s\n", args[1], args[0])
			return nil
		},
	}
}

func printErrors(cmd *cobra.Command, err error) {
	for _, line := range grammar.Errors(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), line)
	}
}
