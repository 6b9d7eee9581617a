package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ged/format"
)

func newParseCmd(a *app) *cobra.Command {
	var withDiagnostics bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a GEDCOM file and dump its records",
		Long: `Parse a GEDCOM file and print its records in a structured format.

Reads from stdin when no file is given. Diagnostics are included in the
json and yaml output with --diagnostics and always printed to stderr.`,
		Args: checkArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, diags, err := parseInput(cmd, firstArg(args), true)
			if err != nil {
				return err
			}

			opts := []format.Option{format.WithWriteOptions(a.cfg.WriteOptions()...)}
			if withDiagnostics {
				opts = append(opts, format.WithDiagnostics(diags))
			}
			enc, err := format.New(a.cfg.Format, cmd.OutOrStdout(), opts...)
			if err != nil {
				return usageError{err}
			}
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "json", fmt.Sprintf("output format %v", format.Names()))
	cmd.Flags().BoolVar(&withDiagnostics, "diagnostics", false, "include diagnostics in json and yaml output")

	return cmd
}
