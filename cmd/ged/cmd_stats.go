package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ged/gedcom"
)

var statsOrder = []gedcom.RecordKind{
	gedcom.HeaderRecord,
	gedcom.IndividualRecord,
	gedcom.FamilyRecord,
	gedcom.SourceRecord,
	gedcom.RepositoryRecord,
	gedcom.NoteRecord,
	gedcom.MultimediaRecord,
	gedcom.SubmitterRecord,
	gedcom.SubmissionRecord,
	gedcom.CustomRecord,
	gedcom.TrailerRecord,
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Count the records of each kind in a GEDCOM file",
		Args:  checkArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, diags, err := parseInput(cmd, firstArg(args), false)
			if err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), doc, diags)
		},
	}
}

func printStats(w io.Writer, doc *gedcom.Document, diags gedcom.Diagnostics) error {
	stats := doc.Stats()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, kind := range statsOrder {
		if n := stats[kind]; n > 0 {
			fmt.Fprintf(tw, "%s\t%d\n", kind, n)
		}
	}
	fmt.Fprintf(tw, "records\t%d\n", len(doc.Records))
	fmt.Fprintf(tw, "diagnostics\t%d\n", len(diags))
	return tw.Flush()
}
