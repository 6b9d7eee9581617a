package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/ged/gedcom"
)

type validation struct {
	file   string
	report *gedcom.Report
	err    error
}

func newValidateCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check GEDCOM files for errors",
		Long: `Check GEDCOM files and print one summary line per file.

In lenient mode malformed lines and pointers to undeclared records are
errors. In strict mode every diagnostic is an error, including unknown
tags and tokens outside the GEDCOM grammar.

Exit status is 0 when every file passes, 2 when any file fails
validation, 1 when a file cannot be read and 3 on usage errors.`,
		Args: checkArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := validateFiles(cmd.Context(), args, a.cfg.Level())

			out := cmd.OutOrStdout()
			var failed int
			var ioErr error
			for _, r := range results {
				if r.err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.file, r.err)
					if ioErr == nil {
						ioErr = r.err
					}
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", r.file, r.report)
				if r.report.Fatal != nil {
					fmt.Fprintf(out, "%s: fatal: %v\n", r.file, r.report.Fatal)
				}
				if !quiet {
					for _, d := range r.report.Errors {
						fmt.Fprintf(out, "%s: error: %s\n", r.file, d)
					}
					for _, d := range r.report.Warnings {
						fmt.Fprintf(out, "%s: warning: %s\n", r.file, d)
					}
				}
				if r.report.Failed() {
					failed++
				}
			}

			if ioErr != nil {
				return ioErr
			}
			if failed > 0 {
				return validationError{failed: failed}
			}
			return nil
		},
	}

	cmd.Flags().String("level", "lenient", "validation level (lenient, strict)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary lines")

	return cmd
}

// validateFiles validates files concurrently. Results keep the order of
// files.
func validateFiles(ctx context.Context, files []string, level gedcom.Level) []validation {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]validation, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			results[i].file = file
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			data, err := os.ReadFile(file)
			if err != nil {
				results[i].err = fmt.Errorf("read file: %w", err)
				return nil
			}
			results[i].report = gedcom.Validate(data, level, gedcom.WithFile(file))
			return nil
		})
	}
	g.Wait()
	return results
}
