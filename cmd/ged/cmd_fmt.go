package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ged/gedcom"
)

func newFmtCmd(a *app) *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a GEDCOM file in canonical form",
		Long: `Rewrite a GEDCOM file in canonical form to stdout.

Levels are recomputed, records keep their order and long values are split
into CONC lines at --line-length bytes. If no file is provided, reads from
stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: checkArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := firstArg(args)
			if fmtOverwrite && (filename == "" || filename == "-") {
				return usageError{fmt.Errorf("-w requires a file argument")}
			}

			doc, _, err := parseInput(cmd, filename, true)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := gedcom.Write(&buf, doc, a.cfg.WriteOptions()...); err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(filename, buf.Bytes(), 0644)
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().Int("line-length", gedcom.DefaultMaxLineLength, "longest value before CONC splitting, 0 disables")
	cmd.Flags().String("line-ending", "lf", "line terminator (lf, crlf, cr)")

	return cmd
}
