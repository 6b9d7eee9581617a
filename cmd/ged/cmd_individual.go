package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ged/format"
	"github.com/dhamidi/ged/gedcom"
)

// individualFilter selects individuals by xref or by name. Name matches
// are case-insensitive substring matches; empty fields match everything.
type individualFilter struct {
	xref      string
	lastname  string
	firstname string
}

func (f individualFilter) match(indi *gedcom.Individual) bool {
	if f.xref != "" && !strings.EqualFold(indi.Xref, normalizeXref(f.xref)) {
		return false
	}
	if f.lastname == "" && f.firstname == "" {
		return true
	}
	for _, name := range indi.Names {
		if containsFold(name.Surname(), f.lastname) && containsFold(name.Given(), f.firstname) {
			return true
		}
	}
	return false
}

func (f individualFilter) apply(doc *gedcom.Document) []*gedcom.Individual {
	var out []*gedcom.Individual
	for _, indi := range doc.Individuals() {
		if f.match(indi) {
			out = append(out, indi)
		}
	}
	return out
}

// normalizeXref accepts I1 as well as @I1@.
func normalizeXref(x string) string {
	if strings.HasPrefix(x, "@") {
		return x
	}
	return "@" + x + "@"
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func newIndividualCmd(a *app) *cobra.Command {
	var filter individualFilter
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "individual [file]",
		Short: "Find individuals by cross-reference or name",
		Long: `Find individuals by cross-reference or name.

--lastname and --firstname match case-insensitively anywhere in the
surname and given names. Without --format, prints one tab-separated line
per match: xref, name, birth date and death date.`,
		Args: checkArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := parseInput(cmd, firstArg(args), false)
			if err != nil {
				return err
			}
			matches := filter.apply(doc)

			if outputFormat == "" {
				return printIndividuals(cmd.OutOrStdout(), matches)
			}
			records := make([]gedcom.Record, len(matches))
			for i, indi := range matches {
				records[i] = indi
			}
			enc, err := format.New(outputFormat, cmd.OutOrStdout(), format.WithWriteOptions(a.cfg.WriteOptions()...))
			if err != nil {
				return usageError{err}
			}
			return enc.Encode(gedcom.NewDocument(records...))
		},
	}

	cmd.Flags().StringVar(&filter.xref, "xref", "", "cross-reference of the individual, e.g. @I1@")
	cmd.Flags().StringVar(&filter.lastname, "lastname", "", "surname to search for")
	cmd.Flags().StringVar(&filter.firstname, "firstname", "", "given name to search for")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", fmt.Sprintf("print matches in a format %v", format.Names()))

	return cmd
}

func printIndividuals(w io.Writer, matches []*gedcom.Individual) error {
	for _, indi := range matches {
		name := ""
		if n := indi.Name(); n != nil {
			name = n.String()
		}
		var born, died string
		if b := indi.Birth(); b != nil {
			born = b.Date
		}
		if d := indi.Death(); d != nil {
			died = d.Date
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", indi.Xref, name, born, died); err != nil {
			return err
		}
	}
	return nil
}
